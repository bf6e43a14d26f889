package memory

import (
	"time"

	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
	"github.com/riskibarqy/hoop-analytics/internal/domain/league"
)

const (
	LeagueIDNBA        int64 = 12
	LeagueIDEuroLeague int64 = 120

	SeedSeason = "2024-2025"
)

type seedTeam struct {
	id       int64
	leagueID int64
	name     string
}

var seedTeams = map[int64]seedTeam{
	132:  {id: 132, leagueID: LeagueIDNBA, name: "Boston Celtics"},
	145:  {id: 145, leagueID: LeagueIDNBA, name: "Los Angeles Lakers"},
	147:  {id: 147, leagueID: LeagueIDNBA, name: "Miami Heat"},
	150:  {id: 150, leagueID: LeagueIDNBA, name: "Denver Nuggets"},
	1301: {id: 1301, leagueID: LeagueIDEuroLeague, name: "Real Madrid"},
	1302: {id: 1302, leagueID: LeagueIDEuroLeague, name: "Olympiacos"},
}

func SeedLeagues() []league.League {
	return []league.League{
		{ID: LeagueIDNBA, Name: "NBA"},
		{ID: LeagueIDEuroLeague, Name: "Euroleague"},
	}
}

// SeedGames returns a small season with finished, overtime and upcoming games.
func SeedGames() []game.Game {
	return []game.Game{
		seedGame(9001, "2024-10-22T23:30:00Z", "FT", 132, 145, 112, 104),
		seedGame(9002, "2024-10-25T00:00:00Z", "FT", 147, 132, 98, 107),
		seedGame(9003, "2024-10-27T19:30:00Z", "AOT", 145, 150, 121, 118),
		seedGame(9004, "2024-10-30T00:30:00Z", "FT", 150, 132, 101, 99),
		seedGame(9005, "2024-11-02T23:00:00Z", "FT", 145, 132, 110, 115),
		seedGame(9006, "2024-11-05T01:00:00Z", "FT", 147, 150, 95, 95),
		seedGame(9007, "2024-11-09T20:00:00Z", "NS", 132, 145, -1, -1),
		seedGame(9101, "2024-10-24T18:00:00Z", "FT", 1301, 1302, 88, 81),
		seedGame(9102, "2024-11-07T18:45:00Z", "FT", 1302, 1301, 79, 84),
	}
}

func SeedQuarters() []game.Quarter {
	return []game.Quarter{
		seedQuarter(9001, 1, 30, 24), seedQuarter(9001, 2, 28, 27), seedQuarter(9001, 3, 25, 29), seedQuarter(9001, 4, 29, 24),
		seedQuarter(9002, 1, 22, 31), seedQuarter(9002, 2, 26, 24), seedQuarter(9002, 3, 25, 26), seedQuarter(9002, 4, 25, 26),
		seedQuarter(9003, 1, 27, 30), seedQuarter(9003, 2, 31, 28), seedQuarter(9003, 3, 24, 25), seedQuarter(9003, 4, 26, 25),
		seedQuarter(9003, 5, 13, 10),
		seedQuarter(9005, 1, 28, 30), seedQuarter(9005, 2, 27, 29),
		seedQuarter(9101, 1, 20, 18), seedQuarter(9101, 2, 24, 19), seedQuarter(9101, 3, 21, 22), seedQuarter(9101, 4, 23, 22),
	}
}

func seedGame(id int64, startsAt, status string, homeID, awayID int64, homeScore, awayScore int) game.Game {
	ts, err := time.Parse(time.RFC3339, startsAt)
	if err != nil {
		panic(err)
	}
	home, away := seedTeams[homeID], seedTeams[awayID]
	leagueName := "NBA"
	if home.leagueID == LeagueIDEuroLeague {
		leagueName = "Euroleague"
	}

	g := game.Game{
		ID:           id,
		LeagueID:     home.leagueID,
		LeagueName:   leagueName,
		Season:       SeedSeason,
		Date:         ts,
		Status:       game.NormalizeStatus(status),
		HomeTeamID:   homeID,
		HomeTeamName: home.name,
		AwayTeamID:   awayID,
		AwayTeamName: away.name,
	}
	if homeScore >= 0 && awayScore >= 0 {
		g.HomeScore = &homeScore
		g.AwayScore = &awayScore
	}
	return g
}

func seedQuarter(gameID int64, number, home, away int) game.Quarter {
	return game.Quarter{GameID: gameID, Number: number, HomeScore: &home, AwayScore: &away}
}
