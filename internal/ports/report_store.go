package ports

import "github.com/iamvenkatgiri/AccessAI/internal/domain"

// ReportStore persists analysis reports so they can be reviewed later.
type ReportStore interface {
	SaveReport(report domain.AnalysisReport) (id string, err error)
}
