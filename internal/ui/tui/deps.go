package tui

import (
	"log/slog"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/ports"
)

type Deps struct {
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer

	// Config is the loaded accessai.yaml, or defaults outside a workspace.
	Config domain.Config

	Suggestions ports.SuggestionService
	// Reports is optional; nil disables saving from the TUI.
	Reports ports.ReportStore

	Logger *slog.Logger
	Debug  bool
}

// Start selects what the TUI opens on.
type Start struct {
	// URL, when set, opens the simulation screen directly.
	URL  string
	Mode domain.ImpairmentMode
}
