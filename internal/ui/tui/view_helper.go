package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

// wrapText breaks s on spaces so no line exceeds width runes, when possible.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	var b strings.Builder
	n := 0
	for i, w := range strings.Fields(s) {
		wl := utf8.RuneCountInString(w)
		if i > 0 {
			if n+1+wl > width {
				b.WriteString("\n")
				n = 0
			} else {
				b.WriteString(" ")
				n++
			}
		}
		b.WriteString(w)
		n += wl
	}
	return b.String()
}

func renderSuggestions(heading string, items []domain.Suggestion, width int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%d)\n", heading, len(items)))
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return b.String()
	}
	for i, s := range items {
		title := strings.TrimSpace(s.Title)
		if title == "" {
			title = "Suggestion"
		}
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, title))
		if body := strings.TrimSpace(s.Suggestion); body != "" {
			for _, line := range strings.Split(wrapText(body, width-3), "\n") {
				b.WriteString("   " + line + "\n")
			}
		}
	}
	return b.String()
}

func renderReport(r domain.AnalysisReport, savedID string, width int) string {
	var b strings.Builder

	if r.Total() == 0 && len(r.Warnings) == 0 {
		b.WriteString("No suggestions returned.\n")
	} else {
		b.WriteString(renderSuggestions("Code suggestions", r.CodeSuggestions, width))
		b.WriteString("\n")
		b.WriteString(renderSuggestions("Visual suggestions", r.VisualSuggestions, width))
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range r.Warnings {
			b.WriteString("  - " + w + "\n")
		}
	}

	if savedID != "" {
		b.WriteString("\nSaved as " + savedID + "\n")
	}
	return b.String()
}
