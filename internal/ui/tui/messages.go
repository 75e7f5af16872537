package tui

import (
	"time"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

// simStateMsg carries one controller snapshot; ok is false once the controller is closed.
type simStateMsg struct {
	src   <-chan domain.SimulationState
	state domain.SimulationState
	ok    bool
}

type wipeTickMsg time.Time

type analyzeDoneMsg struct {
	report domain.AnalysisReport
	id     string
	err    error
}
