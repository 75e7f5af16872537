// Package template fills {{NAME}} placeholders in workspace scaffolding files.
package template

import (
	"fmt"
	"strings"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// RenderString replaces {{VAR}} placeholders with vars values.
// A missing variable or a malformed placeholder is an invalid_config error.
func RenderString(input string, vars map[string]string) (string, error) {
	var out strings.Builder
	err := scan(input, func(lit, key string) error {
		out.WriteString(lit)
		if key == "" {
			return nil
		}
		v, ok := vars[key]
		if !ok {
			return fmt.Errorf("%w: missing variable %q", domain.ErrInvalidConfig, key)
		}
		out.WriteString(v)
		return nil
	})
	if err != nil {
		return "", &domain.OpError{Op: "template.render", Kind: domain.KindInvalidConfig, Err: err}
	}
	return out.String(), nil
}

// Placeholders lists the distinct placeholder names in input, in order of first use.
func Placeholders(input string) ([]string, error) {
	seen := map[string]bool{}
	var names []string
	err := scan(input, func(_, key string) error {
		if key != "" && !seen[key] {
			seen[key] = true
			names = append(names, key)
		}
		return nil
	})
	if err != nil {
		return nil, &domain.OpError{Op: "template.placeholders", Kind: domain.KindInvalidConfig, Err: err}
	}
	return names, nil
}

// scan calls emit for every literal run followed by its placeholder key ("" at the end).
func scan(input string, emit func(lit, key string) error) error {
	rest := input
	for {
		start := strings.Index(rest, openDelim)
		if start == -1 {
			return emit(rest, "")
		}

		lit := rest[:start]
		rest = rest[start+len(openDelim):]

		end := strings.Index(rest, closeDelim)
		if end == -1 {
			return fmt.Errorf("%w: unclosed placeholder", domain.ErrInvalidConfig)
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return fmt.Errorf("%w: empty placeholder", domain.ErrInvalidConfig)
		}
		if err := emit(lit, key); err != nil {
			return err
		}
		rest = rest[end+len(closeDelim):]
	}
}
