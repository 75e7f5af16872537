package usecase

import (
	"strings"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute scaffolds a workspace at root. apiURL is optional.
func (uc *InitWorkspace) Execute(root, apiURL string, force bool) error {
	if strings.TrimSpace(root) == "" {
		return &domain.OpError{Op: "init.validate", Kind: domain.KindInvalidInput, Err: domain.ErrInvalidInput}
	}
	return uc.initializer.Init(domain.WorkspaceSpec{Root: root, APIURL: apiURL}, force)
}
