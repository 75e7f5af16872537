package ports

import "github.com/iamvenkatgiri/AccessAI/internal/domain"

// WorkspaceLocator finds an AccessAI workspace root starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}

// ConfigLoader reads accessai.yaml from a workspace root.
type ConfigLoader interface {
	LoadConfig(root string) (domain.Config, error)
}
