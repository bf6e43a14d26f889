package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
)

type gameTableModel struct {
	ID           int64          `db:"id"`
	LeagueID     int64          `db:"league_id"`
	LeagueName   string         `db:"league_name"`
	Season       string         `db:"season"`
	StartsAt     time.Time      `db:"starts_at"`
	Status       string         `db:"status"`
	HomeTeamID   int64          `db:"home_team_id"`
	HomeTeamName string         `db:"home_team_name"`
	HomeTeamLogo sql.NullString `db:"home_team_logo"`
	AwayTeamID   int64          `db:"away_team_id"`
	AwayTeamName string         `db:"away_team_name"`
	AwayTeamLogo sql.NullString `db:"away_team_logo"`
	HomeScore    sql.NullInt64  `db:"home_score"`
	AwayScore    sql.NullInt64  `db:"away_score"`
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:           m.ID,
		LeagueID:     m.LeagueID,
		LeagueName:   m.LeagueName,
		Season:       m.Season,
		Date:         m.StartsAt.UTC(),
		Status:       game.NormalizeStatus(m.Status),
		HomeTeamID:   m.HomeTeamID,
		HomeTeamName: m.HomeTeamName,
		HomeTeamLogo: m.HomeTeamLogo.String,
		AwayTeamID:   m.AwayTeamID,
		AwayTeamName: m.AwayTeamName,
		AwayTeamLogo: m.AwayTeamLogo.String,
		HomeScore:    nullIntPtr(m.HomeScore),
		AwayScore:    nullIntPtr(m.AwayScore),
	}
}

type quarterTableModel struct {
	GameID     int64         `db:"game_id"`
	QuarterNum int           `db:"quarter_num"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
}

func (m quarterTableModel) toDomain() game.Quarter {
	return game.Quarter{
		GameID:    m.GameID,
		Number:    m.QuarterNum,
		HomeScore: nullIntPtr(m.HomeScore),
		AwayScore: nullIntPtr(m.AwayScore),
	}
}
