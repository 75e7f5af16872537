package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

// safeModel keeps a panic in one screen from taking down the terminal.
// Recovery releases any running simulation so its timers stop firing into a
// model that no longer shows it.
type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			tm, cmd = s.recovered("tui.update", r), nil
		}
	}()

	inner, c := s.m.Update(msg)

	if mm, ok := inner.(model); ok {
		s.m = mm
	} else if sm, ok := inner.(safeModel); ok {
		s = sm
	}

	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.view", r)
			out = msgUnexpected
		}
	}()
	return s.m.View()
}

// recovered logs the panic with the simulation context and returns the model
// reset to the home screen.
func (s safeModel) recovered(where string, r any) safeModel {
	s.logPanic(where, r)

	s.m = s.m.goHome()
	s.m.running = false
	s.m.toast = msgUnexpected
	return s
}

func (s safeModel) logPanic(where string, r any) {
	attrs := []any{
		"where", where,
		"screen", int(s.m.scr),
		"panic", fmt.Sprint(r),
		"stack", string(debug.Stack()),
	}
	if s.m.sim != nil {
		st := s.m.simState
		attrs = append(attrs,
			"url", s.m.pageURL,
			"mode", st.Mode.String(),
			"transition", st.Transition.String(),
			"generation", st.Generation,
		)
	}
	s.log.Error("panic.recovered", attrs...)
}

var _ tea.Model = (*safeModel)(nil)
