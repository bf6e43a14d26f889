package stats

import "github.com/riskibarqy/hoop-analytics/internal/domain/game"

// Side is a game seen from one participating team.
type Side struct {
	IsHome        bool
	TeamScore     int
	OpponentScore int
	OpponentID    int64
	OpponentName  string
}

// ResolveVenue orients a game around teamID. Missing scores read as zero.
func ResolveVenue(g game.Game, teamID int64) (Side, bool) {
	switch teamID {
	case g.HomeTeamID:
		return Side{
			IsHome:        true,
			TeamScore:     intValue(g.HomeScore),
			OpponentScore: intValue(g.AwayScore),
			OpponentID:    g.AwayTeamID,
			OpponentName:  g.AwayTeamName,
		}, true
	case g.AwayTeamID:
		return Side{
			IsHome:        false,
			TeamScore:     intValue(g.AwayScore),
			OpponentScore: intValue(g.HomeScore),
			OpponentID:    g.HomeTeamID,
			OpponentName:  g.HomeTeamName,
		}, true
	default:
		return Side{}, false
	}
}

// Venue is "H" or "A".
func (s Side) Venue() string {
	if s.IsHome {
		return "H"
	}
	return "A"
}

// Result is "W" for a win; a tie counts as "L".
func (s Side) Result() string {
	if s.TeamScore > s.OpponentScore {
		return "W"
	}
	return "L"
}

// QuarterScores returns the team's and the opponent's points for one period.
func (s Side) QuarterScores(q game.Quarter) (team, opponent int) {
	if s.IsHome {
		return intValue(q.HomeScore), intValue(q.AwayScore)
	}
	return intValue(q.AwayScore), intValue(q.HomeScore)
}

func (s Side) matches(venue game.Venue) bool {
	switch venue {
	case game.VenueHome:
		return s.IsHome
	case game.VenueAway:
		return !s.IsHome
	default:
		return true
	}
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
