package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

const (
	focusCode = iota
	focusFile
)

func newCodeInput() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Paste HTML, CSS or JS here"
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetWidth(72)
	ta.SetHeight(10)
	return ta
}

func newFileInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/page.html (optional)"
	ti.CharLimit = 1024
	ti.Width = 60
	return ti
}

func (m model) updateAnalyze(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.running {
			return m, nil
		}
		m.codeInput.Blur()
		m.fileInput.Blur()
		return m.goHome(), nil

	case "tab", "shift+tab":
		if m.focus == focusCode {
			m.focus = focusFile
			m.codeInput.Blur()
			return m, m.fileInput.Focus()
		}
		m.focus = focusCode
		m.fileInput.Blur()
		return m, m.codeInput.Focus()

	case "ctrl+s":
		if m.running {
			return m, nil
		}
		sub := domain.Submission{
			Code:     m.codeInput.Value(),
			FilePath: strings.TrimSpace(m.fileInput.Value()),
		}
		m.running = true
		m.report = nil
		m.reportID = ""
		m.toast = ""
		_, cmd := startAnalyzeAsync(m.deps, sub)
		return m, tea.Batch(cmd, m.spinner.Tick)
	}

	if m.running {
		return m, nil
	}
	return m.forward(msg)
}

func (m model) viewAnalyze() string {
	label := func(s string, on bool) string {
		if on {
			return m.theme.Focused.Render("› " + s)
		}
		return "  " + s
	}

	form := m.theme.Title.Render("Analyze") + "\n\n" +
		label("Code", m.focus == focusCode) + "\n" + m.codeInput.View() + "\n\n" +
		label("File", m.focus == focusFile) + "\n" + m.fileInput.View()

	out := m.theme.Card.Render(form)

	switch {
	case m.running:
		out += "\n" + m.spinner.View() + " Submitting…"
	case m.report != nil:
		width := 72
		if m.width > 12 {
			width = m.width - 12
		}
		out += "\n" + m.theme.Card.Render(renderReport(*m.report, m.reportID, width))
	}

	return out + "\n" + m.theme.Help.Render("tab switch field • ctrl+s submit • esc back")
}
