package domain

import "testing"

func TestBuildSimulationRoute(t *testing.T) {
	got, err := BuildSimulationRoute(" https://example.com/a?b=c ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "/simulation?url=https%3A%2F%2Fexample.com%2Fa%3Fb%3Dc"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildSimulationRoute_Blank(t *testing.T) {
	if _, err := BuildSimulationRoute("   "); !IsKind(err, KindInvalidInput) {
		t.Fatalf("expected KindInvalidInput, got %v", err)
	}
}

func TestParseSimulationRoute(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://example.com", "https://example.com"},
		{"/simulation?url=https%3A%2F%2Fexample.com%2Fa%3Fb%3Dc", "https://example.com/a?b=c"},
		{"/simulations/other", "/simulations/other"},
	}
	for _, c := range cases {
		got, err := ParseSimulationRoute(c.in)
		if err != nil {
			t.Errorf("ParseSimulationRoute(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseSimulationRoute(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseSimulationRoute_MissingURL(t *testing.T) {
	for _, in := range []string{"", "/simulation", "/simulation?url="} {
		if _, err := ParseSimulationRoute(in); !IsKind(err, KindInvalidInput) {
			t.Errorf("%q: expected KindInvalidInput, got %v", in, err)
		}
	}
}

func TestRoute_RoundTrip(t *testing.T) {
	target := "http://localhost:3000/page?x=1&y=two words"
	route, err := BuildSimulationRoute(target)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	got, err := ParseSimulationRoute(route)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != target {
		t.Fatalf("got %q, want %q", got, target)
	}
}
