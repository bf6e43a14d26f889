package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilter is returned for filter tokens the query layer does not understand.
var ErrInvalidFilter = errors.New("invalid filter")

const maxSeasonLength = 32

// ParseVenue accepts "", "all", "home"/"h" and "away"/"a" in any case.
func ParseVenue(raw string) (Venue, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return VenueAny, nil
	case "home", "h":
		return VenueHome, nil
	case "away", "a":
		return VenueAway, nil
	default:
		return VenueAny, fmt.Errorf("%w: venue %q (expected home, away or all)", ErrInvalidFilter, raw)
	}
}

// ValidateSeason checks that a season label is a single opaque token such as
// "2024" or "2024-2025".
func ValidateSeason(season string) error {
	if season == "" {
		return fmt.Errorf("%w: season is required", ErrInvalidFilter)
	}
	if len(season) > maxSeasonLength {
		return fmt.Errorf("%w: season %q is too long", ErrInvalidFilter, season)
	}
	for _, r := range season {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '-', r == '/', r == '_':
		default:
			return fmt.Errorf("%w: season %q contains %q", ErrInvalidFilter, season, r)
		}
	}

	return nil
}
