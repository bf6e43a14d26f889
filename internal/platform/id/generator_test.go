package id

import (
	"strings"
	"testing"
)

func TestRandomGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewRandomGenerator(0)
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	if len(first) != defaultSize*2 {
		t.Fatalf("expected %d hex chars, got %q", defaultSize*2, first)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}
	if !Acceptable(first) {
		t.Fatalf("generated id %q must be acceptable", first)
	}
}

func TestAcceptable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{in: "req-42_a.b", want: true},
		{in: "", want: false},
		{in: "has space", want: false},
		{in: "newline\n", want: false},
		{in: strings.Repeat("a", maxLength), want: true},
		{in: strings.Repeat("a", maxLength+1), want: false},
	}

	for _, tt := range tests {
		if got := Acceptable(tt.in); got != tt.want {
			t.Fatalf("Acceptable(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}
