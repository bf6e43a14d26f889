package game

import (
	"errors"
	"testing"
)

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]Status{
		"FT":       StatusFinal,
		"aot":      StatusFinal,
		" final ":  StatusFinal,
		"NS":       StatusScheduled,
		"":         StatusScheduled,
		"Q3":       StatusInProgress,
		"HT":       StatusInProgress,
		"BT":       StatusInProgress,
		"FINISHED": StatusFinal,
	}
	for raw, want := range cases {
		if got := NormalizeStatus(raw); got != want {
			t.Fatalf("NormalizeStatus(%q)=%s want %s", raw, got, want)
		}
	}
}

func TestGame_WinnerTeamID(t *testing.T) {
	t.Parallel()

	home, away := 101, 99
	g := Game{HomeTeamID: 1, AwayTeamID: 2, Status: StatusFinal, HomeScore: &home, AwayScore: &away}
	if got := g.WinnerTeamID(); got != 1 {
		t.Fatalf("expected home winner, got %d", got)
	}

	g.Status = StatusInProgress
	if got := g.WinnerTeamID(); got != 0 {
		t.Fatalf("expected no winner for unfinished game, got %d", got)
	}

	tied := 99
	g = Game{HomeTeamID: 1, AwayTeamID: 2, Status: StatusFinal, HomeScore: &tied, AwayScore: &away}
	if got := g.WinnerTeamID(); got != 0 {
		t.Fatalf("expected no winner for tied score, got %d", got)
	}
}

func TestParseVenue(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]Venue{"": VenueAny, "ALL": VenueAny, "home": VenueHome, "H": VenueHome, "away": VenueAway, "a": VenueAway} {
		got, err := ParseVenue(raw)
		if err != nil {
			t.Fatalf("ParseVenue(%q) error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseVenue(%q)=%q want %q", raw, got, want)
		}
	}

	if _, err := ParseVenue("neutral"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestValidateSeason(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"2024", "2024-2025", "2023/24"} {
		if err := ValidateSeason(ok); err != nil {
			t.Fatalf("ValidateSeason(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "2024 2025", "2024;drop", "00000000000000000000000000000000000"} {
		if err := ValidateSeason(bad); !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("ValidateSeason(%q) expected ErrInvalidFilter, got %v", bad, err)
		}
	}
}
