package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iamvenkatgiri/AccessAI/internal/colorfilter"
	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/simulation"
)

const (
	modeListWidth = 34
	wipeWidth     = 32
	advisoryTitle = "AI Insights"
)

type modeItem struct {
	profile domain.ImpairmentProfile
}

func (i modeItem) Title() string { return i.profile.Label }
func (i modeItem) Description() string {
	if i.profile.Filter.IsEmpty() {
		return "no filter"
	}
	return i.profile.Filter.String()
}
func (i modeItem) FilterValue() string { return i.profile.Label }

func newModeList() list.Model {
	profiles := domain.Profiles()
	items := make([]list.Item, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, modeItem{profile: p})
	}

	l := list.New(items, list.NewDefaultDelegate(), modeListWidth, 20)
	l.Title = "Vision"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}

// wipe tracks the transition animation between selection and filter swap.
type wipe struct {
	start time.Time
	dur   time.Duration
}

func (w wipe) progress(now time.Time) float64 {
	if w.dur <= 0 || w.start.IsZero() {
		return 1
	}
	p := float64(now.Sub(w.start)) / float64(w.dur)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func (m model) openSimulation(target string, mode domain.ImpairmentMode) (tea.Model, tea.Cmd) {
	m.closeSimulation()

	cfg := m.deps.Config.Simulation
	opts := []simulation.Option{
		simulation.WithDelays(simulation.Delays{Transition: cfg.TransitionDelay, Settle: cfg.SettleDelay}),
	}
	if m.deps.Logger != nil {
		opts = append(opts, simulation.WithLogger(m.deps.Logger))
	}
	opts = append(opts, m.simOpts...)

	m.sim = simulation.New(opts...)
	m.simCh, _ = m.sim.Subscribe()
	m.simState = m.sim.State()
	m.pageURL = target
	m.scr = screenSimulation
	m.toast = ""
	m.modes.Select(0)

	cmds := []tea.Cmd{listenSimulation(m.simCh)}
	if mode.Valid() && mode != domain.ModeNormal {
		for i, p := range domain.Profiles() {
			if p.Mode == mode {
				m.modes.Select(i)
			}
		}
		var cmd tea.Cmd
		m, cmd = m.selectMode(mode)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m model) selectMode(mode domain.ImpairmentMode) (model, tea.Cmd) {
	if m.sim == nil {
		return m, nil
	}
	m.sim.SelectMode(mode)
	m.wipe = wipe{start: time.Now(), dur: m.sim.Delays().Transition}
	return m, cmdWipeTick()
}

func (m *model) closeSimulation() {
	if m.sim != nil {
		m.sim.Close()
	}
	m.sim = nil
	m.simCh = nil
}

func (m model) onSimState(msg simStateMsg) (tea.Model, tea.Cmd) {
	if !msg.ok || msg.src != m.simCh || m.sim == nil {
		return m, nil
	}
	m.simState = msg.state
	return m, listenSimulation(m.simCh)
}

func (m model) updateSimulation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "q":
		return m.goHome(), nil

	case "enter", " ":
		it, ok := m.modes.SelectedItem().(modeItem)
		if !ok {
			return m, nil
		}
		return m.selectMode(it.profile.Mode)

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(msg.String())
		modes := domain.Modes()
		if n > len(modes) {
			return m, nil
		}
		m.modes.Select(n - 1)
		return m.selectMode(modes[n-1])
	}

	var cmd tea.Cmd
	m.modes, cmd = m.modes.Update(msg)
	return m, cmd
}

func (m model) viewSimulation() string {
	left := m.theme.Card.Render(m.modes.View())
	right := m.theme.Card.Render(m.viewPage(time.Now()))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	help := m.theme.Help.Render("↑/↓ choose • enter apply • 1-7 quick select • esc back")
	return body + "\n" + help
}

func (m model) viewPage(now time.Time) string {
	st := m.simState
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Page") + "  " + clampString(m.pageURL, 56) + "\n")
	b.WriteString(fmt.Sprintf("Mode    %s  %s\n", st.Mode.Label(), m.theme.Help.Render("["+st.Transition.String()+"]")))

	filter := "none"
	if !st.Filter.IsEmpty() {
		filter = st.Filter.String()
	}
	b.WriteString("Filter  " + filter + "\n")

	if st.Transition == domain.TransitionTransitioning {
		b.WriteString(m.theme.Wipe.Render(renderWipe(m.wipe.progress(now), wipeWidth)) + "\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString("\n" + renderPalette(st.Filter) + "\n")

	if !st.Filter.IsEmpty() {
		if a, c, d := colorfilter.MinDistinctPair(colorfilter.DefaultPalette, st.Filter); d >= 0 {
			b.WriteString(m.theme.Help.Render(fmt.Sprintf("closest colours: %s / %s (ΔE %.1f)", a, c, d*100)) + "\n")
		}
		if r := colorfilter.BlurRadius(st.Filter); r > 0 {
			b.WriteString(m.theme.Help.Render(fmt.Sprintf("blur %gpx: fine text and thin borders soften", r)) + "\n")
		}
	}

	b.WriteString("\n" + m.viewAdvisory())
	return b.String()
}

func (m model) viewAdvisory() string {
	st := m.simState
	if !st.AdvisoryVisible() {
		return ""
	}
	title := m.theme.Title.Render(advisoryTitle)

	var body string
	switch {
	case st.Pending:
		body = m.spinner.View() + " Analyzing…\n" + m.theme.Muted.Render(wrapText(string(st.Advisory), 56))
	default:
		body = wrapText(string(st.Advisory), 56)
	}
	return m.theme.Advisory.Render(title + "\n" + body)
}

func renderWipe(p float64, width int) string {
	if width <= 0 {
		return ""
	}
	n := int(p*float64(width) + 0.5)
	if n > width {
		n = width
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func renderPalette(fe domain.FilterExpression) string {
	swatches := colorfilter.FilterPalette(colorfilter.DefaultPalette, fe)

	var before, after strings.Builder
	for _, s := range swatches {
		before.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(s.Before)).Render("   "))
		after.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(s.After)).Render("   "))
	}
	return "original  " + before.String() + "\n" + "simulated " + after.String()
}
