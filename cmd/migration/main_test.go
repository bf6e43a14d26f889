package main

import "testing"

func TestParseSteps(t *testing.T) {
	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("expected default 1 step, got %d %v", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("expected 3 steps, got %d %v", got, err)
	}
	if _, err := parseSteps([]string{"0"}); err == nil {
		t.Fatal("expected error for zero steps")
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if _, err := parseVersion("-1"); err == nil {
		t.Fatal("expected error for negative version")
	}
	if got, err := parseTarget("1760000002"); err != nil || got != 1760000002 {
		t.Fatalf("unexpected target %d %v", got, err)
	}
}
