package colorfilter

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

// Swatch is a named colour.
type Swatch struct {
	Name string
	Hex  string
}

// DefaultPalette covers the hues that the simulated conditions confuse most.
var DefaultPalette = []Swatch{
	{"red", "#e53935"},
	{"orange", "#fb8c00"},
	{"yellow", "#fdd835"},
	{"green", "#43a047"},
	{"cyan", "#00acc1"},
	{"blue", "#1e88e5"},
	{"purple", "#8e24aa"},
	{"pink", "#d81b60"},
	{"gray", "#757575"},
	{"white", "#ffffff"},
}

// FilteredSwatch pairs the original colour with its filtered rendering.
type FilteredSwatch struct {
	Name   string
	Before string
	After  string
}

// FilterPalette applies fe to every swatch. Invalid hex values pass through unchanged.
func FilterPalette(palette []Swatch, fe domain.FilterExpression) []FilteredSwatch {
	out := make([]FilteredSwatch, 0, len(palette))
	for _, s := range palette {
		after := s.Hex
		if c, err := colorful.Hex(s.Hex); err == nil {
			after = Apply(c, fe).Hex()
		}
		out = append(out, FilteredSwatch{Name: s.Name, Before: s.Hex, After: after})
	}
	return out
}

// MinDistinctPair returns the two swatches whose filtered colours are closest in
// CIE Lab space, with their distance. Small distances flag hues that become
// hard to tell apart under fe.
func MinDistinctPair(palette []Swatch, fe domain.FilterExpression) (a, b string, dist float64) {
	filtered := FilterPalette(palette, fe)
	dist = -1
	for i := 0; i < len(filtered); i++ {
		ci, err := colorful.Hex(filtered[i].After)
		if err != nil {
			continue
		}
		for j := i + 1; j < len(filtered); j++ {
			cj, err := colorful.Hex(filtered[j].After)
			if err != nil {
				continue
			}
			d := ci.DistanceLab(cj)
			if dist < 0 || d < dist {
				a, b, dist = filtered[i].Name, filtered[j].Name, d
			}
		}
	}
	return a, b, dist
}
