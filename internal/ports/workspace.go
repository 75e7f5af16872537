package ports

import "github.com/iamvenkatgiri/AccessAI/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
