package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

const msgUnexpected = "Unexpected error (see logs)"

// userMessage turns an error into the one-line text shown in the toast.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "workspacefinder") {
				return "Workspace not found"
			}
			if strings.TrimSpace(oe.Path) != "" {
				return "File not found: " + filepath.Base(oe.Path)
			}
			return "Not found"

		case domain.KindInvalidInput:
			switch {
			case strings.HasPrefix(oe.Op, "domain."):
				return "Please enter a valid URL."
			case oe.Op == "submit.validate" && oe.Path != "":
				return "That file is too large to upload."
			case oe.Op == "submit.validate":
				return "Please enter some code or attach a file!"
			}
			return "Invalid input"

		case domain.KindUnsupportedFile:
			return "Only HTML, CSS, JS, or image files are allowed."

		case domain.KindRemote:
			return "An error occurred while submitting the code."

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config"

		default:
			return msgUnexpected
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return msgUnexpected
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
