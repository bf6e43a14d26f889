package stats

import "github.com/riskibarqy/hoop-analytics/internal/domain/game"

// HeadToHead aggregates the season's finished meetings of team1 and team2.
// Swapping the teams swaps every paired field of the result.
func HeadToHead(team1ID, team2ID int64, season string, games []game.Game, quarters map[int64][]game.Quarter) HeadToHeadStats {
	meetings := SelectMeetings(games, team1ID, team2ID, season)
	if len(meetings) == 0 {
		return HeadToHeadStats{
			Team1Quarters: emptyPeriods(),
			Team2Quarters: emptyPeriods(),
			Team1Halves:   emptyPeriods(),
			Team2Halves:   emptyPeriods(),
		}
	}

	var (
		team1Points, team2Points int
		team1Tally, team2Tally   periodTally
	)
	for _, g := range meetings {
		side, _ := ResolveVenue(g, team1ID)
		team1Points += side.TeamScore
		team2Points += side.OpponentScore

		for _, q := range regulation(quarters[g.ID]) {
			own, opp := side.QuarterScores(q)
			team1Tally.add(q.Number, own)
			team2Tally.add(q.Number, opp)
		}
	}

	team1Avg := mean(team1Points, len(meetings))
	team2Avg := mean(team2Points, len(meetings))
	return HeadToHeadStats{
		GamesCount:    len(meetings),
		Team1Avg:      toFloat(team1Avg),
		Team2Avg:      toFloat(team2Avg),
		AvgTotal:      toFloat(team1Avg.Add(team2Avg)),
		Team1Quarters: team1Tally.quarters(),
		Team2Quarters: team2Tally.quarters(),
		Team1Halves:   team1Tally.halves(),
		Team2Halves:   team2Tally.halves(),
	}
}
