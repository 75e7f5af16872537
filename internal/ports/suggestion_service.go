package ports

import (
	"context"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

// SuggestionService sends one analysis request to the remote service.
type SuggestionService interface {
	Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResponse, error)
}
