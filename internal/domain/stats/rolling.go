package stats

import (
	"strings"

	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
)

const formLength = 5

// RollingAverages aggregates an already selected window of the team's games.
// quarters is keyed by game id; games without rows simply do not contribute
// to the quarter averages.
func RollingAverages(teamID int64, window []game.Game, quarters map[int64][]game.Quarter) RollingStats {
	var (
		count, scored, conceded int
		tally                   periodTally
		form                    = make([]string, 0, formLength)
	)

	for _, g := range window {
		side, ok := ResolveVenue(g, teamID)
		if !ok {
			continue
		}
		count++
		scored += side.TeamScore
		conceded += side.OpponentScore
		if len(form) < formLength {
			form = append(form, side.Result())
		}

		for _, q := range regulation(quarters[g.ID]) {
			points, _ := side.QuarterScores(q)
			tally.add(q.Number, points)
		}
	}

	if count == 0 {
		return RollingStats{
			Quarters: emptyPeriods(),
			Halves:   emptyPeriods(),
		}
	}

	avgScore := mean(scored, count)
	avgOpponent := mean(conceded, count)
	return RollingStats{
		GamesCount:       count,
		AvgScore:         toFloat(avgScore),
		AvgOpponentScore: toFloat(avgOpponent),
		AvgTotal:         toFloat(avgScore.Add(avgOpponent)),
		Quarters:         tally.quarters(),
		Halves:           tally.halves(),
		Form:             strings.Join(form, "-"),
	}
}
