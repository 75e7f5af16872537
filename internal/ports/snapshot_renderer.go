package ports

import (
	"context"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

// SnapshotRenderer renders a page with a filter applied and returns PNG bytes.
type SnapshotRenderer interface {
	Capture(ctx context.Context, url string, filter domain.FilterExpression) ([]byte, error)
}
