package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style

	Toast    lipgloss.Style
	Advisory lipgloss.Style
	Muted    lipgloss.Style
	Wipe     lipgloss.Style
	Focused  lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),

		Toast: lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
		Advisory: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("36")),
		Muted:   lipgloss.NewStyle().Faint(true).Italic(true),
		Wipe:    lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Focused: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
	}
}
