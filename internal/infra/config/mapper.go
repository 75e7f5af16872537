package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

// MapConfig overlays every key present in yc on base.
func MapConfig(path string, base domain.Config, yc YAMLConfig) (domain.Config, error) {
	cfg := base
	a := yc.AccessAI

	if v := strings.TrimSpace(a.API.URL); v != "" {
		cfg.API.URL = v
	}
	if err := setDuration(path, "api.timeout", a.API.Timeout, &cfg.API.Timeout); err != nil {
		return base, err
	}
	if v := strings.TrimSpace(a.API.SuggestionsPath); v != "" {
		if !strings.HasPrefix(v, "$") {
			return base, invalidField(path, "api.suggestions_path", "must be a JSONPath starting with $")
		}
		cfg.API.SuggestionsPath = v
	}
	if a.API.InsecureSkipVerify != nil {
		cfg.API.InsecureSkipVerify = *a.API.InsecureSkipVerify
	}

	if err := setDuration(path, "simulation.transition_delay", a.Simulation.TransitionDelay, &cfg.Simulation.TransitionDelay); err != nil {
		return base, err
	}
	if err := setDuration(path, "simulation.settle_delay", a.Simulation.SettleDelay, &cfg.Simulation.SettleDelay); err != nil {
		return base, err
	}

	if a.Snapshot.Headless != nil {
		cfg.Snapshot.Headless = *a.Snapshot.Headless
	}
	if a.Snapshot.ViewportWidth < 0 {
		return base, invalidField(path, "snapshot.viewport_width", "must be positive")
	}
	if a.Snapshot.ViewportHeight < 0 {
		return base, invalidField(path, "snapshot.viewport_height", "must be positive")
	}
	if a.Snapshot.ViewportWidth > 0 {
		cfg.Snapshot.ViewportWidth = a.Snapshot.ViewportWidth
	}
	if a.Snapshot.ViewportHeight > 0 {
		cfg.Snapshot.ViewportHeight = a.Snapshot.ViewportHeight
	}
	if err := setDuration(path, "snapshot.navigation_timeout", a.Snapshot.NavigationTimeout, &cfg.Snapshot.NavigationTimeout); err != nil {
		return base, err
	}
	if a.Snapshot.FullPage != nil {
		cfg.Snapshot.FullPage = *a.Snapshot.FullPage
	}

	if v := strings.TrimSpace(a.Paths.ReportsDir); v != "" {
		cfg.Paths.ReportsDir = v
	}
	if v := strings.TrimSpace(a.Paths.SnapshotsDir); v != "" {
		cfg.Paths.SnapshotsDir = v
	}

	if a.Masking.Enabled != nil {
		cfg.Masking.Enabled = *a.Masking.Enabled
	}
	return cfg, nil
}

func setDuration(path, field, raw string, dst *time.Duration) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return invalidField(path, field, err.Error())
	}
	if d < 0 {
		return invalidField(path, field, "must not be negative")
	}
	*dst = d
	return nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
