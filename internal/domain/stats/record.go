package stats

import "github.com/riskibarqy/hoop-analytics/internal/domain/game"

// Record summarizes wins and scoring over the given finished games of a team.
func Record(teamID int64, games []game.Game) SeasonRecord {
	var count, wins, scored, conceded int
	for _, g := range games {
		if !g.HasFinalScore() {
			continue
		}
		side, ok := ResolveVenue(g, teamID)
		if !ok {
			continue
		}
		count++
		scored += side.TeamScore
		conceded += side.OpponentScore
		if g.WinnerTeamID() == teamID {
			wins++
		}
	}

	return SeasonRecord{
		Games:      count,
		Wins:       wins,
		AvgPoints:  toFloat(mean(scored, count)),
		AvgAgainst: toFloat(mean(conceded, count)),
		WinPct:     toFloat(percent(wins, count)),
	}
}
