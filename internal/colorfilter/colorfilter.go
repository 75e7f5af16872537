// Package colorfilter applies a FilterExpression to individual sRGB colours using
// the matrices from the CSS Filter Effects specification. The terminal renderer
// uses it to show how a palette looks under each simulated impairment.
package colorfilter

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

type matrix [3][3]float64

func (m matrix) mul(c colorful.Color) colorful.Color {
	return colorful.Color{
		R: m[0][0]*c.R + m[0][1]*c.G + m[0][2]*c.B,
		G: m[1][0]*c.R + m[1][1]*c.G + m[1][2]*c.B,
		B: m[2][0]*c.R + m[2][1]*c.G + m[2][2]*c.B,
	}
}

// Apply runs every colour operation of fe over c, clamping after each step.
// Blur has no effect on a single colour and is skipped.
func Apply(c colorful.Color, fe domain.FilterExpression) colorful.Color {
	out := c.Clamped()
	for _, op := range fe {
		out = applyOp(out, op).Clamped()
	}
	return out
}

// ApplyHex is Apply for "#rrggbb" strings.
func ApplyHex(hex string, fe domain.FilterExpression) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", &domain.OpError{Op: "colorfilter.apply_hex", Kind: domain.KindInvalidInput, Err: err}
	}
	return Apply(c, fe).Hex(), nil
}

// BlurRadius returns the summed blur radius in pixels, 0 when there is none.
func BlurRadius(fe domain.FilterExpression) float64 {
	var r float64
	for _, op := range fe {
		if op.Func == domain.FilterBlur {
			r += op.Amount
		}
	}
	return r
}

func applyOp(c colorful.Color, op domain.FilterOp) colorful.Color {
	a := op.Amount
	switch op.Func {
	case domain.FilterGrayscale:
		return grayscale(a).mul(c)
	case domain.FilterSepia:
		return sepia(a).mul(c)
	case domain.FilterSaturate:
		return saturate(a).mul(c)
	case domain.FilterHueRotate:
		return hueRotate(a).mul(c)
	case domain.FilterContrast:
		return linear(c, a, 0.5-0.5*a)
	case domain.FilterBrightness:
		return linear(c, a, 0)
	default:
		return c
	}
}

func linear(c colorful.Color, slope, intercept float64) colorful.Color {
	return colorful.Color{
		R: c.R*slope + intercept,
		G: c.G*slope + intercept,
		B: c.B*slope + intercept,
	}
}

func grayscale(amount float64) matrix {
	a := 1 - math.Min(math.Max(amount, 0), 1)
	return matrix{
		{0.2126 + 0.7874*a, 0.7152 - 0.7152*a, 0.0722 - 0.0722*a},
		{0.2126 - 0.2126*a, 0.7152 + 0.2848*a, 0.0722 - 0.0722*a},
		{0.2126 - 0.2126*a, 0.7152 - 0.7152*a, 0.0722 + 0.9278*a},
	}
}

func sepia(amount float64) matrix {
	a := 1 - math.Min(math.Max(amount, 0), 1)
	return matrix{
		{0.393 + 0.607*a, 0.769 - 0.769*a, 0.189 - 0.189*a},
		{0.349 - 0.349*a, 0.686 + 0.314*a, 0.168 - 0.168*a},
		{0.272 - 0.272*a, 0.534 - 0.534*a, 0.131 + 0.869*a},
	}
}

func saturate(s float64) matrix {
	s = math.Max(s, 0)
	return matrix{
		{0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s},
		{0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s},
		{0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s},
	}
}

func hueRotate(deg float64) matrix {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return matrix{
		{0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928},
		{0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283},
		{0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072},
	}
}
