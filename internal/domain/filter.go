package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterFunc names a single composable visual filter operation.
type FilterFunc string

const (
	FilterGrayscale  FilterFunc = "grayscale"
	FilterSepia      FilterFunc = "sepia"
	FilterHueRotate  FilterFunc = "hue-rotate"
	FilterSaturate   FilterFunc = "saturate"
	FilterContrast   FilterFunc = "contrast"
	FilterBrightness FilterFunc = "brightness"
	FilterBlur       FilterFunc = "blur"
)

// unit is the CSS unit each function is written with.
func (f FilterFunc) unit() string {
	switch f {
	case FilterHueRotate:
		return "deg"
	case FilterBlur:
		return "px"
	default:
		return ""
	}
}

// FilterOp is one operation with its amount (degrees for hue-rotate, pixels for blur).
type FilterOp struct {
	Func   FilterFunc
	Amount float64
}

func (op FilterOp) String() string {
	return fmt.Sprintf("%s(%s%s)", op.Func, strconv.FormatFloat(op.Amount, 'f', -1, 64), op.Func.unit())
}

// FilterExpression is an ordered list of operations applied left to right.
// The zero value means "no filter".
type FilterExpression []FilterOp

// String renders the expression as a CSS filter value, "" when empty.
func (fe FilterExpression) String() string {
	if len(fe) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fe))
	for _, op := range fe {
		parts = append(parts, op.String())
	}
	return strings.Join(parts, " ")
}

func (fe FilterExpression) IsEmpty() bool { return len(fe) == 0 }

// Clone returns a copy that does not share the backing array.
func (fe FilterExpression) Clone() FilterExpression {
	if fe == nil {
		return nil
	}
	out := make(FilterExpression, len(fe))
	copy(out, fe)
	return out
}

func (fe FilterExpression) MarshalText() ([]byte, error) {
	return []byte(fe.String()), nil
}

func (fe *FilterExpression) UnmarshalText(b []byte) error {
	parsed, err := ParseFilterExpression(string(b))
	if err != nil {
		return err
	}
	*fe = parsed
	return nil
}

// ParseFilterExpression parses a CSS filter string made of the supported functions.
// "" and "none" yield an empty expression.
func ParseFilterExpression(s string) (FilterExpression, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}

	var out FilterExpression
	rest := s
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		closeIdx := strings.IndexByte(rest, ')')
		if open <= 0 || closeIdx < open {
			return nil, fmt.Errorf("filter %q: malformed near %q: %w", s, rest, ErrInvalidInput)
		}

		fn := FilterFunc(strings.ToLower(strings.TrimSpace(rest[:open])))
		switch fn {
		case FilterGrayscale, FilterSepia, FilterHueRotate, FilterSaturate,
			FilterContrast, FilterBrightness, FilterBlur:
		default:
			return nil, fmt.Errorf("filter %q: unsupported function %q: %w", s, fn, ErrInvalidInput)
		}

		arg := strings.TrimSpace(rest[open+1 : closeIdx])
		if u := fn.unit(); u != "" {
			arg = strings.TrimSuffix(arg, u)
		}
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("filter %q: bad amount for %s: %w", s, fn, ErrInvalidInput)
		}

		out = append(out, FilterOp{Func: fn, Amount: v})
		rest = strings.TrimSpace(rest[closeIdx+1:])
	}
	return out, nil
}
