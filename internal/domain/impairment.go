package domain

import (
	"fmt"
	"strings"
)

// ImpairmentMode identifies the simulated visual condition.
type ImpairmentMode string

const (
	ModeNormal        ImpairmentMode = "normal"
	ModeDeuteranopia  ImpairmentMode = "deuteranopia"
	ModeProtanopia    ImpairmentMode = "protanopia"
	ModeTritanopia    ImpairmentMode = "tritanopia"
	ModeAchromatopsia ImpairmentMode = "achromatopsia"
	ModeLowVision     ImpairmentMode = "low-vision"
	ModeHighContrast  ImpairmentMode = "high-contrast"
)

// AdvisoryText is the static accessibility tip shown next to a non-normal mode.
type AdvisoryText string

// ImpairmentProfile is one row of the fixed lookup table.
type ImpairmentProfile struct {
	Mode     ImpairmentMode   `json:"mode"`
	Label    string           `json:"label"`
	Filter   FilterExpression `json:"filter"`
	Advisory AdvisoryText     `json:"advisory"`
}

var profiles = []ImpairmentProfile{
	{Mode: ModeNormal, Label: "Normal Vision"},
	{
		Mode:  ModeDeuteranopia,
		Label: "Red-Green Color Blindness (Deuteranopia)",
		Filter: FilterExpression{
			{FilterGrayscale, 0.5}, {FilterSepia, 1}, {FilterHueRotate, -50}, {FilterSaturate, 1.2}, {FilterContrast, 0.85},
		},
		Advisory: "This looks good! Consider using shapes to enhance clarity.",
	},
	{
		Mode:  ModeProtanopia,
		Label: "Red-Green Color Blindness (Protanopia)",
		Filter: FilterExpression{
			{FilterGrayscale, 0.5}, {FilterSepia, 1}, {FilterHueRotate, -35}, {FilterSaturate, 1.2}, {FilterContrast, 0.85},
		},
		Advisory: "This looks good! Ensure important elements are distinguishable.",
	},
	{
		Mode:  ModeTritanopia,
		Label: "Blue-Yellow Color Blindness (Tritanopia)",
		Filter: FilterExpression{
			{FilterGrayscale, 0.5}, {FilterSepia, 1}, {FilterHueRotate, 90}, {FilterSaturate, 1.1}, {FilterContrast, 0.85},
		},
		Advisory: "This looks good! Ensure high contrast for key elements.",
	},
	{
		Mode:     ModeAchromatopsia,
		Label:    "Achromatopsia",
		Filter:   FilterExpression{{FilterGrayscale, 1}},
		Advisory: "This looks good! Use textures and patterns for differentiation.",
	},
	{
		Mode:     ModeLowVision,
		Label:    "Low Vision",
		Filter:   FilterExpression{{FilterBlur, 4}, {FilterContrast, 1.5}},
		Advisory: "Text may appear small; consider optimizing for larger fonts and higher contrast for better readability.",
	},
	{
		Mode:     ModeHighContrast,
		Label:    "High Contrast",
		Filter:   FilterExpression{{FilterContrast, 2}, {FilterBrightness, 0.8}},
		Advisory: "This looks good! High contrast can enhance visibility, but be mindful of color combinations.",
	},
}

// Modes returns every mode in menu order, Normal first.
func Modes() []ImpairmentMode {
	out := make([]ImpairmentMode, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.Mode)
	}
	return out
}

// Profiles returns a copy of the lookup table in menu order.
func Profiles() []ImpairmentProfile {
	out := make([]ImpairmentProfile, 0, len(profiles))
	for _, p := range profiles {
		p.Filter = p.Filter.Clone()
		out = append(out, p)
	}
	return out
}

func (m ImpairmentMode) Valid() bool {
	_, ok := lookup(m)
	return ok
}

func (m ImpairmentMode) String() string { return string(m) }

// Profile returns the lookup row for m. It panics on a mode outside the closed set;
// user input must go through ParseImpairmentMode first.
func (m ImpairmentMode) Profile() ImpairmentProfile {
	p, ok := lookup(m)
	if !ok {
		panic(fmt.Sprintf("domain: unknown impairment mode %q", string(m)))
	}
	p.Filter = p.Filter.Clone()
	return p
}

// Filter is the FilterExpression derived from m.
func (m ImpairmentMode) Filter() FilterExpression { return m.Profile().Filter }

// Advisory is the AdvisoryText derived from m.
func (m ImpairmentMode) Advisory() AdvisoryText { return m.Profile().Advisory }

func (m ImpairmentMode) Label() string { return m.Profile().Label }

func lookup(m ImpairmentMode) (ImpairmentProfile, bool) {
	for _, p := range profiles {
		if p.Mode == m {
			return p, true
		}
	}
	return ImpairmentProfile{}, false
}

// ParseImpairmentMode accepts the wire names ("low-vision"), underscores and
// camel-case variants ("LowVision"). An empty string is Normal.
func ParseImpairmentMode(s string) (ImpairmentMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return ModeNormal, nil
	}
	key = strings.ReplaceAll(key, "_", "-")

	for _, p := range profiles {
		name := string(p.Mode)
		if key == name || key == strings.ReplaceAll(name, "-", "") {
			return p.Mode, nil
		}
	}
	return "", &OpError{
		Op:   "domain.parse_mode",
		Kind: KindInvalidInput,
		Err:  fmt.Errorf("unknown impairment mode %q: %w", s, ErrInvalidInput),
	}
}
