package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/usecase"
)

const wipeFrame = 40 * time.Millisecond

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return initWorkspaceDoneMsg{err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: wd, err: errors.New("WorkspaceInitializer is nil")}
		}

		uc := usecase.NewInitWorkspace(deps.WorkspaceInitializer)
		err = uc.Execute(wd, deps.Config.API.URL, false)
		return initWorkspaceDoneMsg{root: wd, err: err}
	}
}

// listenSimulation waits for the next controller snapshot.
func listenSimulation(ch <-chan domain.SimulationState) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		return simStateMsg{src: ch, state: st, ok: ok}
	}
}

func cmdWipeTick() tea.Cmd {
	return tea.Tick(wipeFrame, func(t time.Time) tea.Msg { return wipeTickMsg(t) })
}

func listenAnalyze(ch <-chan analyzeDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return analyzeDoneMsg{err: errors.New("analysis channel closed")}
		}
		return msg
	}
}

func startAnalyzeAsync(deps Deps, sub domain.Submission) (chan analyzeDoneMsg, tea.Cmd) {
	ch := make(chan analyzeDoneMsg, 1)

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		if deps.Suggestions == nil {
			ch <- analyzeDoneMsg{err: errors.New("SuggestionService is nil")}
			return
		}

		log.Info("submit.start",
			"has_code", sub.Code != "",
			"file", sub.FilePath,
			"api", deps.Config.API.URL,
		)

		timeout := deps.Config.API.Timeout
		if timeout <= 0 {
			timeout = time.Minute
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*timeout)
		defer cancel()

		uc := usecase.NewSubmitAnalysis(deps.Suggestions)
		report, err := uc.Execute(ctx, sub)
		if err != nil {
			log.Error("submit.failed", "err", err)
			ch <- analyzeDoneMsg{err: err}
			return
		}

		var id string
		if deps.Reports != nil {
			var saveErr error
			id, saveErr = deps.Reports.SaveReport(report)
			if saveErr != nil {
				log.Warn("submit.save_failed", "err", saveErr)
			}
		}

		for _, w := range report.Warnings {
			log.Warn("submit.warning", "warning", w)
		}
		log.Info("submit.ok",
			"report_id", report.ID,
			"saved_id", id,
			"code_suggestions", len(report.CodeSuggestions),
			"visual_suggestions", len(report.VisualSuggestions),
		)

		ch <- analyzeDoneMsg{report: report, id: id}
	}()

	return ch, listenAnalyze(ch)
}
