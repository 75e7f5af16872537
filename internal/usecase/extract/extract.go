package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

// DefaultPath is where the analysis service puts its suggestion list.
const DefaultPath = "$.suggestions"

// Suggestions pulls suggestion records out of a JSON response body.
//
// Policy:
//   - body that is not JSON -> error
//   - path that matches nothing -> empty list, no error
//   - a single object at path -> one-element list
//   - records missing both title and text are skipped
func Suggestions(body []byte, path string) ([]domain.Suggestion, error) {
	expr := strings.TrimSpace(path)
	if expr == "" {
		expr = DefaultPath
	}

	doc, err := parseJSON(body)
	if err != nil {
		return nil, fmt.Errorf("response body is not valid JSON: %w", err)
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		if isMissing(err) {
			return []domain.Suggestion{}, nil
		}
		return nil, fmt.Errorf("jsonpath %s: %w", expr, err)
	}

	return toSuggestions(val)
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// jsonpath reports absent keys as errors; for the service an absent list means "none".
func isMissing(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unknown key") || strings.Contains(msg, "out of bounds")
}

func toSuggestions(v any) ([]domain.Suggestion, error) {
	out := []domain.Suggestion{}

	switch t := v.(type) {
	case nil:
		return out, nil
	case map[string]any:
		if s, ok := toSuggestion(t); ok {
			out = append(out, s)
		}
		return out, nil
	case []any:
		// A wildcard path can yield a list of lists.
		if len(t) == 1 {
			if inner, ok := t[0].([]any); ok {
				t = inner
			}
		}
		for i, item := range t {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("suggestion %d: expected object, got %T", i, item)
			}
			if s, ok := toSuggestion(m); ok {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list of suggestions, got %T", v)
	}
}

func toSuggestion(m map[string]any) (domain.Suggestion, bool) {
	s := domain.Suggestion{
		Title:      str(m["suggestionTitle"]),
		Suggestion: str(m["suggestion"]),
	}
	if s.Title == "" && s.Suggestion == "" {
		return s, false
	}
	return s, true
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return fmt.Sprint(t)
	}
}
