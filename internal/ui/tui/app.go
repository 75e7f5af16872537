package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/simulation"
)

type screen int

const (
	screenHome screen = iota
	screenURL
	screenSimulation
	screenAnalyze
)

const (
	menuSimulate = "Simulate"
	menuAnalyze  = "Analyze"
	menuInit     = "Init Workspace"
	menuQuit     = "Quit"
)

type menuItem struct {
	title string
	desc  string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type model struct {
	theme Theme
	deps  Deps
	start Start

	scr    screen
	menu   list.Model
	width  int
	height int

	workspaceFound bool
	workspaceRoot  string

	toast   string
	spinner spinner.Model

	// URL prompt
	urlInput textinput.Model

	// simulation screen
	sim      *simulation.Controller
	simCh    <-chan domain.SimulationState
	simState domain.SimulationState
	pageURL  string
	modes    list.Model
	wipe     wipe
	simOpts  []simulation.Option

	// analyze screen
	codeInput textarea.Model
	fileInput textinput.Model
	focus     int
	running   bool
	report    *domain.AnalysisReport
	reportID  string
}

func Run(deps Deps, start Start) error {
	m := newModel(deps, start)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	final, err := p.Run()
	if sm, ok := final.(safeModel); ok {
		sm.m.closeSimulation()
	}
	return err
}

func newModel(deps Deps, start Start) model {
	t := DefaultTheme()

	items := []list.Item{
		menuItem{menuSimulate, "Preview a page as people with vision impairments see it"},
		menuItem{menuAnalyze, "Submit code or a file for accessibility suggestions"},
		menuItem{menuInit, "Create accessai.yaml, reports/ and snapshots/ here"},
		menuItem{menuQuit, "Exit AccessAI"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "AccessAI"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ui := textinput.New()
	ui.Placeholder = "https://example.com"
	ui.CharLimit = 2048
	ui.Width = 60

	m := model{
		theme:     t,
		deps:      deps,
		start:     start,
		scr:       screenHome,
		menu:      l,
		spinner:   sp,
		urlInput:  ui,
		modes:     newModeList(),
		simState:  domain.InitialSimulationState(),
		codeInput: newCodeInput(),
		fileInput: newFileInput(),
	}

	wd, err := os.Getwd()
	if err == nil && deps.WorkspaceLocator != nil {
		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr == nil {
			m.workspaceFound = true
			m.workspaceRoot = root
		}
	}

	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if strings.TrimSpace(m.start.URL) != "" {
		cmds = append(cmds, func() tea.Msg { return openSimulationMsg{url: m.start.URL, mode: m.start.Mode} })
	}
	return tea.Batch(cmds...)
}

// openSimulationMsg asks the model to enter the simulation screen.
type openSimulationMsg struct {
	url  string
	mode domain.ImpairmentMode
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-10)
		m.modes.SetSize(modeListWidth, max(msg.Height-12, 8))
		m.codeInput.SetWidth(max(msg.Width-12, 20))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace ready at " + msg.root
		return m, cmdRefreshWorkspace(m.deps)

	case openSimulationMsg:
		return m.openSimulation(msg.url, msg.mode)

	case simStateMsg:
		return m.onSimState(msg)

	case wipeTickMsg:
		if m.scr == screenSimulation && m.simState.Transition == domain.TransitionTransitioning {
			return m, cmdWipeTick()
		}
		return m, nil

	case analyzeDoneMsg:
		m.running = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		r := msg.report
		m.report = &r
		m.reportID = msg.id
		m.toast = ""
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.closeSimulation()
			return m, tea.Quit
		}
		switch m.scr {
		case screenHome:
			return m.updateHome(msg)
		case screenURL:
			return m.updateURL(msg)
		case screenSimulation:
			return m.updateSimulation(msg)
		case screenAnalyze:
			return m.updateAnalyze(msg)
		}
	}

	return m.forward(msg)
}

// forward hands non-key messages to the active screen's components.
func (m model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.scr {
	case screenHome:
		m.menu, cmd = m.menu.Update(msg)
	case screenURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
	case screenAnalyze:
		if m.focus == 0 {
			m.codeInput, cmd = m.codeInput.Update(msg)
		} else {
			m.fileInput, cmd = m.fileInput.Update(msg)
		}
	}
	return m, cmd
}

func (m model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menu.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "enter":
		it, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		m.toast = ""
		switch it.title {
		case menuQuit:
			return m, tea.Quit
		case menuSimulate:
			m.scr = screenURL
			m.urlInput.SetValue("")
			return m, m.urlInput.Focus()
		case menuAnalyze:
			m.scr = screenAnalyze
			m.focus = 0
			m.fileInput.Blur()
			return m, m.codeInput.Focus()
		case menuInit:
			return m, cmdInitWorkspaceHere(m.deps)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m model) updateURL(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.urlInput.Blur()
		m.scr = screenHome
		m.toast = ""
		return m, nil
	case "enter":
		route, err := domain.BuildSimulationRoute(m.urlInput.Value())
		if err != nil {
			m.toast = userMessage(err)
			return m, nil
		}
		m.urlInput.Blur()
		target, _ := domain.ParseSimulationRoute(route)
		return m.openSimulation(target, domain.ModeNormal)
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m model) goHome() model {
	m.closeSimulation()
	m.scr = screenHome
	m.toast = ""
	return m
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("AccessAI") + "\n" +
		m.theme.Subtitle.Render("Accessibility suggestions and vision-impairment simulation") + "\n"

	var workspaceBanner string
	if m.workspaceFound {
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		workspaceBanner = m.theme.Help.Render("No workspace (defaults in use). Init Workspace creates one here.")
	}

	toast := ""
	if m.toast != "" {
		toast = "\n" + m.theme.Toast.Render(m.toast)
	}

	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • q quit")
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + m.theme.Card.Render(m.menu.View()) + toast + "\n" + help)

	case screenURL:
		card := m.theme.Card.Render(
			m.theme.Title.Render("Simulate") + "\n\n" +
				"Page URL\n" + m.urlInput.View() + "\n\n" +
				m.theme.Help.Render("enter simulate • esc back"),
		)
		return wrap.Render(header + "\n" + card + toast)

	case screenSimulation:
		return wrap.Render(header + "\n" + m.viewSimulation() + toast)

	case screenAnalyze:
		return wrap.Render(header + "\n" + m.viewAnalyze() + toast)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
