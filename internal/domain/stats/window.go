package stats

import (
	"sort"

	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
)

// WindowFilter narrows the games a rolling aggregate is computed over.
// Window 0 keeps every matching game.
type WindowFilter struct {
	Window int
	Season string
	Venue  game.Venue
}

// SelectWindow returns the team's finished games matching filter, newest first.
func SelectWindow(games []game.Game, teamID int64, filter WindowFilter) []game.Game {
	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		if !g.HasFinalScore() {
			continue
		}
		if filter.Season != "" && g.Season != filter.Season {
			continue
		}
		side, ok := ResolveVenue(g, teamID)
		if !ok || !side.matches(filter.Venue) {
			continue
		}
		out = append(out, g)
	}

	SortNewestFirst(out)
	if filter.Window > 0 && len(out) > filter.Window {
		out = out[:filter.Window]
	}
	return out
}

// SelectMeetings returns finished games between the two teams in a season, newest first.
func SelectMeetings(games []game.Game, team1ID, team2ID int64, season string) []game.Game {
	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		if !g.HasFinalScore() || g.Season != season {
			continue
		}
		if (g.HomeTeamID == team1ID && g.AwayTeamID == team2ID) ||
			(g.HomeTeamID == team2ID && g.AwayTeamID == team1ID) {
			out = append(out, g)
		}
	}

	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders games by date descending, breaking ties by id descending.
func SortNewestFirst(games []game.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		if games[i].Date.Equal(games[j].Date) {
			return games[i].ID > games[j].ID
		}
		return games[i].Date.After(games[j].Date)
	})
}
