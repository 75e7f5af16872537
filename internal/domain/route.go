package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// SimulationPath is the route that shows the simulation view.
const SimulationPath = "/simulation"

// BuildSimulationRoute returns "/simulation?url=<escaped>" for a non-blank target.
func BuildSimulationRoute(target string) (string, error) {
	t := strings.TrimSpace(target)
	if t == "" {
		return "", &OpError{
			Op:   "domain.build_route",
			Kind: KindInvalidInput,
			Err:  fmt.Errorf("please enter a valid URL: %w", ErrInvalidInput),
		}
	}
	return SimulationPath + "?url=" + url.QueryEscape(t), nil
}

// ParseSimulationRoute extracts the content URL from a simulation route.
// Anything that is not a simulation route is taken as the content URL itself.
func ParseSimulationRoute(s string) (string, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return "", &OpError{
			Op:   "domain.parse_route",
			Kind: KindInvalidInput,
			Err:  ErrInvalidInput,
		}
	}

	if !strings.HasPrefix(in, SimulationPath) {
		return in, nil
	}

	u, err := url.Parse(in)
	if err != nil {
		return "", &OpError{Op: "domain.parse_route", Kind: KindInvalidInput, Path: in, Err: err}
	}
	if u.Path != SimulationPath {
		return in, nil
	}

	target := strings.TrimSpace(u.Query().Get("url"))
	if target == "" {
		return "", &OpError{
			Op:   "domain.parse_route",
			Kind: KindInvalidInput,
			Path: in,
			Err:  fmt.Errorf("no URL provided: %w", ErrInvalidInput),
		}
	}
	return target, nil
}
