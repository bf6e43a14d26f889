package httpapi

import (
	"time"

	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
	"github.com/riskibarqy/hoop-analytics/internal/domain/league"
	"github.com/riskibarqy/hoop-analytics/internal/domain/stats"
	"github.com/riskibarqy/hoop-analytics/internal/usecase"
)

type leagueDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type teamRefDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type gameDTO struct {
	ID         int64      `json:"id"`
	LeagueID   int64      `json:"league_id"`
	LeagueName string     `json:"league_name"`
	Season     string     `json:"season"`
	Date       string     `json:"date"`
	Status     string     `json:"status"`
	HomeTeam   teamRefDTO `json:"home_team"`
	AwayTeam   teamRefDTO `json:"away_team"`
	HomeScore  *int       `json:"home_score"`
	AwayScore  *int       `json:"away_score"`
}

type quarterDTO struct {
	Quarter   int  `json:"quarter"`
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
}

type teamGameDTO struct {
	Game          gameDTO      `json:"game"`
	Quarters      []quarterDTO `json:"quarters"`
	OpponentID    int64        `json:"opponent_id"`
	OpponentName  string       `json:"opponent_name"`
	Venue         string       `json:"venue"`
	Result        string       `json:"result"`
	TeamScore     int          `json:"team_score"`
	OpponentScore int          `json:"opponent_score"`
}

type meetingDTO struct {
	Game     gameDTO      `json:"game"`
	Quarters []quarterDTO `json:"quarters"`
}

type rollingStatsDTO struct {
	GamesCount       int                `json:"games_count"`
	AvgScore         float64            `json:"avg_score"`
	AvgOpponentScore float64            `json:"avg_opponent_score"`
	AvgTotal         float64            `json:"avg_total"`
	Quarters         map[string]float64 `json:"quarters"`
	Halves           map[string]float64 `json:"halves"`
	Form             string             `json:"form"`
}

type headToHeadStatsDTO struct {
	Team1ID       int64              `json:"team1_id"`
	Team2ID       int64              `json:"team2_id"`
	Season        string             `json:"season"`
	GamesCount    int                `json:"games_count"`
	Team1Avg      float64            `json:"team1_avg"`
	Team2Avg      float64            `json:"team2_avg"`
	AvgTotal      float64            `json:"avg_total"`
	Team1Quarters map[string]float64 `json:"team1_quarters"`
	Team2Quarters map[string]float64 `json:"team2_quarters"`
	Team1Halves   map[string]float64 `json:"team1_halves"`
	Team2Halves   map[string]float64 `json:"team2_halves"`
}

type restDaysDTO struct {
	Days         *int    `json:"days"`
	LastGameDate *string `json:"last_game_date"`
}

type seasonRecordDTO struct {
	Games      int     `json:"games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	AvgPoints  float64 `json:"avg_points"`
	AvgAgainst float64 `json:"avg_against"`
	WinPct     float64 `json:"win_pct"`
}

type matchupSideDTO struct {
	TeamID int64           `json:"team_id"`
	Record seasonRecordDTO `json:"season_record"`
	Rest   restDaysDTO     `json:"rest"`
	Last5  rollingStatsDTO `json:"last_5"`
	Last10 rollingStatsDTO `json:"last_10"`
}

type matchupDTO struct {
	Game       gameDTO            `json:"game"`
	Home       matchupSideDTO     `json:"home"`
	Away       matchupSideDTO     `json:"away"`
	HeadToHead headToHeadStatsDTO `json:"head_to_head"`
}

type prewarmDTO struct {
	Date   string `json:"date"`
	Games  int    `json:"games"`
	Teams  int    `json:"teams"`
	Failed int    `json:"failed"`
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{ID: v.ID, Name: v.Name}
}

func gameToDTO(v game.Game) gameDTO {
	return gameDTO{
		ID:         v.ID,
		LeagueID:   v.LeagueID,
		LeagueName: v.LeagueName,
		Season:     v.Season,
		Date:       v.Date.UTC().Format(time.RFC3339),
		Status:     string(v.Status),
		HomeTeam:   teamRefDTO{ID: v.HomeTeamID, Name: v.HomeTeamName, Logo: v.HomeTeamLogo},
		AwayTeam:   teamRefDTO{ID: v.AwayTeamID, Name: v.AwayTeamName, Logo: v.AwayTeamLogo},
		HomeScore:  v.HomeScore,
		AwayScore:  v.AwayScore,
	}
}

func gamesToDTO(items []game.Game) []gameDTO {
	out := make([]gameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameToDTO(item))
	}
	return out
}

func quartersToDTO(items []game.Quarter) []quarterDTO {
	out := make([]quarterDTO, 0, len(items))
	for _, q := range items {
		out = append(out, quarterDTO{Quarter: q.Number, HomeScore: q.HomeScore, AwayScore: q.AwayScore})
	}
	return out
}

func teamGamesToDTO(items []usecase.TeamGame) []teamGameDTO {
	out := make([]teamGameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamGameDTO{
			Game:          gameToDTO(item.Game),
			Quarters:      quartersToDTO(item.Quarters),
			OpponentID:    item.OpponentID,
			OpponentName:  item.OpponentName,
			Venue:         item.Venue,
			Result:        item.Result,
			TeamScore:     item.TeamScore,
			OpponentScore: item.OpponentScore,
		})
	}
	return out
}

func meetingsToDTO(items []usecase.Meeting) []meetingDTO {
	out := make([]meetingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, meetingDTO{Game: gameToDTO(item.Game), Quarters: quartersToDTO(item.Quarters)})
	}
	return out
}

func periodsToDTO(v map[stats.Period]float64) map[string]float64 {
	out := make(map[string]float64, len(v))
	for period, value := range v {
		out[string(period)] = value
	}
	return out
}

func rollingStatsToDTO(v stats.RollingStats) rollingStatsDTO {
	return rollingStatsDTO{
		GamesCount:       v.GamesCount,
		AvgScore:         v.AvgScore,
		AvgOpponentScore: v.AvgOpponentScore,
		AvgTotal:         v.AvgTotal,
		Quarters:         periodsToDTO(v.Quarters),
		Halves:           periodsToDTO(v.Halves),
		Form:             v.Form,
	}
}

func headToHeadStatsToDTO(team1ID, team2ID int64, season string, v stats.HeadToHeadStats) headToHeadStatsDTO {
	return headToHeadStatsDTO{
		Team1ID:       team1ID,
		Team2ID:       team2ID,
		Season:        season,
		GamesCount:    v.GamesCount,
		Team1Avg:      v.Team1Avg,
		Team2Avg:      v.Team2Avg,
		AvgTotal:      v.AvgTotal,
		Team1Quarters: periodsToDTO(v.Team1Quarters),
		Team2Quarters: periodsToDTO(v.Team2Quarters),
		Team1Halves:   periodsToDTO(v.Team1Halves),
		Team2Halves:   periodsToDTO(v.Team2Halves),
	}
}

func restDaysToDTO(v stats.RestDays) restDaysDTO {
	out := restDaysDTO{Days: v.Days}
	if v.LastGameDate != nil {
		formatted := v.LastGameDate.UTC().Format(time.RFC3339)
		out.LastGameDate = &formatted
	}
	return out
}

func seasonRecordToDTO(v stats.SeasonRecord) seasonRecordDTO {
	return seasonRecordDTO{
		Games:      v.Games,
		Wins:       v.Wins,
		Losses:     v.Games - v.Wins,
		AvgPoints:  v.AvgPoints,
		AvgAgainst: v.AvgAgainst,
		WinPct:     v.WinPct,
	}
}

func matchupToDTO(v usecase.Matchup) matchupDTO {
	return matchupDTO{
		Game: gameToDTO(v.Game),
		Home: matchupSideDTO{
			TeamID: v.Game.HomeTeamID,
			Record: seasonRecordToDTO(v.HomeRecord),
			Rest:   restDaysToDTO(v.HomeRest),
			Last5:  rollingStatsToDTO(v.HomeLast5),
			Last10: rollingStatsToDTO(v.HomeLast10),
		},
		Away: matchupSideDTO{
			TeamID: v.Game.AwayTeamID,
			Record: seasonRecordToDTO(v.AwayRecord),
			Rest:   restDaysToDTO(v.AwayRest),
			Last5:  rollingStatsToDTO(v.AwayLast5),
			Last10: rollingStatsToDTO(v.AwayLast10),
		},
		HeadToHead: headToHeadStatsToDTO(v.Game.HomeTeamID, v.Game.AwayTeamID, v.Game.Season, v.HeadToHead),
	}
}
