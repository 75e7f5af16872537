package colorfilter

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

const eps = 1e-3

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestApply_EmptyExpressionIsIdentity(t *testing.T) {
	c := colorful.Color{R: 0.2, G: 0.4, B: 0.6}
	got := Apply(c, nil)
	if !near(got.R, c.R) || !near(got.G, c.G) || !near(got.B, c.B) {
		t.Fatalf("expected identity, got %+v", got)
	}
}

func TestApply_GrayscaleEqualisesChannels(t *testing.T) {
	for _, s := range DefaultPalette {
		c, err := colorful.Hex(s.Hex)
		if err != nil {
			t.Fatalf("bad palette hex %s: %v", s.Hex, err)
		}
		got := Apply(c, domain.ModeAchromatopsia.Filter())
		if !near(got.R, got.G) || !near(got.G, got.B) {
			t.Errorf("%s: expected gray, got %+v", s.Name, got)
		}
	}
}

func TestApply_HighContrastOnWhite(t *testing.T) {
	// contrast(2) pushes white to 1.5, clamped to 1; brightness(0.8) then gives 0.8.
	got := Apply(colorful.Color{R: 1, G: 1, B: 1}, domain.ModeHighContrast.Filter())
	for _, v := range []float64{got.R, got.G, got.B} {
		if !near(v, 0.8) {
			t.Fatalf("expected 0.8 per channel, got %+v", got)
		}
	}
}

func TestApply_ContrastAroundMidGray(t *testing.T) {
	mid := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	got := Apply(mid, domain.FilterExpression{{Func: domain.FilterContrast, Amount: 3}})
	if !near(got.R, 0.5) {
		t.Fatalf("contrast must keep mid gray fixed, got %+v", got)
	}
}

func TestApply_HueRotateZeroIsIdentity(t *testing.T) {
	c := colorful.Color{R: 0.9, G: 0.1, B: 0.3}
	got := Apply(c, domain.FilterExpression{{Func: domain.FilterHueRotate, Amount: 0}})
	if !near(got.R, c.R) || !near(got.G, c.G) || !near(got.B, c.B) {
		t.Fatalf("expected identity, got %+v", got)
	}
}

func TestApply_BlurDoesNotChangeColour(t *testing.T) {
	c := colorful.Color{R: 0.3, G: 0.3, B: 0.3}
	got := Apply(c, domain.FilterExpression{{Func: domain.FilterBlur, Amount: 4}})
	if !near(got.R, 0.3) {
		t.Fatalf("blur altered colour: %+v", got)
	}
}

func TestApplyHex(t *testing.T) {
	got, err := ApplyHex("#ffffff", domain.ModeHighContrast.Filter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "#cccccc" {
		t.Fatalf("got %s", got)
	}

	if _, err := ApplyHex("not-a-colour", nil); !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected KindInvalidInput, got %v", err)
	}
}

func TestBlurRadius(t *testing.T) {
	if r := BlurRadius(domain.ModeLowVision.Filter()); r != 4 {
		t.Fatalf("expected 4, got %v", r)
	}
	if r := BlurRadius(domain.ModeAchromatopsia.Filter()); r != 0 {
		t.Fatalf("expected 0, got %v", r)
	}
}

func TestFilterPalette(t *testing.T) {
	out := FilterPalette(DefaultPalette, domain.ModeNormal.Filter())
	if len(out) != len(DefaultPalette) {
		t.Fatalf("expected %d swatches, got %d", len(DefaultPalette), len(out))
	}
	for i, s := range out {
		if s.Before != DefaultPalette[i].Hex || s.After != DefaultPalette[i].Hex {
			t.Errorf("%s: Normal must not change colours: %+v", s.Name, s)
		}
	}
}

func TestMinDistinctPair_GrayscaleCollapsesHues(t *testing.T) {
	_, _, normal := MinDistinctPair(DefaultPalette, nil)
	_, _, gray := MinDistinctPair(DefaultPalette, domain.ModeAchromatopsia.Filter())
	if gray >= normal {
		t.Fatalf("expected grayscale to reduce the smallest distance: normal=%v gray=%v", normal, gray)
	}
}
