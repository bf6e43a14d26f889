package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
	qb "github.com/riskibarqy/hoop-analytics/internal/platform/querybuilder"
)

var gameColumns = []string{
	"g.id",
	"g.league_id",
	"l.name AS league_name",
	"g.season",
	"g.starts_at",
	"g.status",
	"g.home_team_id",
	"ht.name AS home_team_name",
	"ht.logo AS home_team_logo",
	"g.away_team_id",
	"aw.name AS away_team_name",
	"aw.logo AS away_team_logo",
	"g.home_score",
	"g.away_score",
}

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func selectGames() *qb.SelectBuilder {
	return qb.Select(gameColumns...).
		From("games g").
		Join("JOIN leagues l ON l.id = g.league_id").
		Join("JOIN teams ht ON ht.id = g.home_team_id").
		Join("JOIN teams aw ON aw.id = g.away_team_id")
}

func finishedWithScores() []qb.Condition {
	return []qb.Condition{
		// Codes are matched the way game.NormalizeStatus reads them.
		qb.Any("upper(btrim(g.status))", pq.Array(game.FinalStatusCodes)),
		qb.IsNotNull("g.home_score"),
		qb.IsNotNull("g.away_score"),
	}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID int64) (game.Game, bool, error) {
	query, args, err := selectGames().Where(qb.Eq("g.id", gameID)).ToSQL()
	if err != nil {
		return game.Game{}, false, crerr.Wrap(err, "build get game by id query")
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, crerr.Wrapf(err, "get game id=%d", gameID)
	}

	return row.toDomain(), true, nil
}

func (r *GameRepository) ListByDate(ctx context.Context, query game.DateQuery) ([]game.Game, error) {
	sqlQuery, args, err := buildGamesByDateQuery(query)
	if err != nil {
		return nil, crerr.Wrap(err, "build select games by date query")
	}
	return r.selectGames(ctx, "select games by date", sqlQuery, args)
}

func (r *GameRepository) ListFinishedByTeam(ctx context.Context, query game.TeamQuery) ([]game.Game, error) {
	sqlQuery, args, err := buildTeamGamesQuery(query)
	if err != nil {
		return nil, crerr.Wrap(err, "build select team games query")
	}
	return r.selectGames(ctx, "select team games", sqlQuery, args)
}

func (r *GameRepository) ListHeadToHead(ctx context.Context, query game.HeadToHeadQuery) ([]game.Game, error) {
	sqlQuery, args, err := buildHeadToHeadQuery(query)
	if err != nil {
		return nil, crerr.Wrap(err, "build select head to head query")
	}
	return r.selectGames(ctx, "select head to head games", sqlQuery, args)
}

func (r *GameRepository) ListQuarters(ctx context.Context, gameIDs []int64) (map[int64][]game.Quarter, error) {
	out := make(map[int64][]game.Quarter, len(gameIDs))
	if len(gameIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("game_id", "quarter_num", "home_score", "away_score").
		From("quarters").
		Where(qb.Any("game_id", pq.Array(gameIDs))).
		OrderBy("game_id", "quarter_num").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select quarters query")
	}

	var rows []quarterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "select quarters for %d games", len(gameIDs))
	}
	for _, row := range rows {
		out[row.GameID] = append(out[row.GameID], row.toDomain())
	}

	return out, nil
}

func (r *GameRepository) selectGames(ctx context.Context, op, query string, args []any) ([]game.Game, error) {
	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, op)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func buildGamesByDateQuery(query game.DateQuery) (string, []any, error) {
	start := query.Day.UTC().Truncate(24 * time.Hour)
	return selectGames().
		Where(qb.Expr("g.starts_at >= ? AND g.starts_at < ?", start, start.Add(24*time.Hour))).
		WhereIf(query.LeagueID > 0, qb.Eq("g.league_id", query.LeagueID)).
		OrderBy("g.starts_at", "g.id").
		ToSQL()
}

func buildTeamGamesQuery(query game.TeamQuery) (string, []any, error) {
	var side qb.Condition
	switch query.Venue {
	case game.VenueHome:
		side = qb.Eq("g.home_team_id", query.TeamID)
	case game.VenueAway:
		side = qb.Eq("g.away_team_id", query.TeamID)
	default:
		side = qb.Or(qb.Eq("g.home_team_id", query.TeamID), qb.Eq("g.away_team_id", query.TeamID))
	}

	b := selectGames().
		Where(side).
		Where(finishedWithScores()...).
		WhereIf(query.Season != "", qb.Eq("g.season", query.Season))
	if query.Before != nil {
		b.Where(qb.Expr("g.starts_at < ?", query.Before.UTC()))
	}

	return b.OrderBy("g.starts_at DESC", "g.id DESC").
		Limit(query.Limit).
		ToSQL()
}

func buildHeadToHeadQuery(query game.HeadToHeadQuery) (string, []any, error) {
	return selectGames().
		Where(qb.Or(
			qb.And(qb.Eq("g.home_team_id", query.Team1ID), qb.Eq("g.away_team_id", query.Team2ID)),
			qb.And(qb.Eq("g.home_team_id", query.Team2ID), qb.Eq("g.away_team_id", query.Team1ID)),
		)).
		Where(qb.Eq("g.season", query.Season)).
		Where(finishedWithScores()...).
		OrderBy("g.starts_at DESC", "g.id DESC").
		ToSQL()
}
