package domain

import (
	"encoding/json"
	"testing"
)

func TestFilterExpression_String(t *testing.T) {
	fe := FilterExpression{{FilterBlur, 4}, {FilterContrast, 1.5}}
	if got := fe.String(); got != "blur(4px) contrast(1.5)" {
		t.Fatalf("got %q", got)
	}
	if (FilterExpression{}).String() != "" {
		t.Fatalf("empty expression should render as empty string")
	}
}

func TestParseFilterExpression_RoundTripsLookupTable(t *testing.T) {
	for _, p := range Profiles() {
		parsed, err := ParseFilterExpression(p.Filter.String())
		if err != nil {
			t.Fatalf("%s: parse error: %v", p.Mode, err)
		}
		if parsed.String() != p.Filter.String() {
			t.Fatalf("%s: got %q, want %q", p.Mode, parsed.String(), p.Filter.String())
		}
	}
}

func TestParseFilterExpression_None(t *testing.T) {
	for _, in := range []string{"", "  ", "none", "NONE"} {
		fe, err := ParseFilterExpression(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if !fe.IsEmpty() {
			t.Fatalf("%q: expected empty expression", in)
		}
	}
}

func TestParseFilterExpression_Errors(t *testing.T) {
	for _, in := range []string{
		"invert(1)",
		"contrast(",
		"contrast(abc)",
		"(1)",
		"grayscale(1) trailing",
	} {
		if _, err := ParseFilterExpression(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}

func TestFilterExpression_JSONAsString(t *testing.T) {
	b, err := json.Marshal(struct {
		F FilterExpression `json:"f"`
	}{F: ModeHighContrast.Filter()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"f":"contrast(2) brightness(0.8)"}` {
		t.Fatalf("got %s", b)
	}
}
