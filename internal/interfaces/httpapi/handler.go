package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/hoop-analytics/internal/platform/logging"
	"github.com/riskibarqy/hoop-analytics/internal/usecase"
)

type Handler struct {
	stats     *usecase.StatsService
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(statsService *usecase.StatsService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		stats:     statsService,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// fail logs at warn for client errors and at error for everything else, then
// writes the error envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.stats.LeagueCatalog(ctx)
	if err != nil {
		h.fail(ctx, w, "list leagues failed", err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListGamesOnDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGamesOnDate")
	defer span.End()

	params := newParamReader(r)
	req := dateRequest{
		Date:     params.pathString("date"),
		LeagueID: params.queryInt64("league_id"),
	}
	if err := h.bind(ctx, params, &req); err != nil {
		h.fail(ctx, w, "list games on date rejected", err)
		return
	}

	items, err := h.stats.GamesOnDate(ctx, req.Date, req.LeagueID)
	if err != nil {
		h.fail(ctx, w, "list games on date failed", err, "date", req.Date, "league_id", req.LeagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, gamesToDTO(items))
}

func (h *Handler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchup")
	defer span.End()

	params := newParamReader(r)
	req := gameRequest{GameID: params.pathInt64("gameID")}
	if err := h.bind(ctx, params, &req); err != nil {
		h.fail(ctx, w, "get matchup rejected", err)
		return
	}

	matchup, err := h.stats.MatchupPreview(ctx, req.GameID)
	if err != nil {
		h.fail(ctx, w, "get matchup failed", err, "game_id", req.GameID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchupToDTO(matchup))
}

func (h *Handler) ListQuarters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListQuarters")
	defer span.End()

	params := newParamReader(r)
	req := gameRequest{GameID: params.pathInt64("gameID")}
	if err := h.bind(ctx, params, &req); err != nil {
		h.fail(ctx, w, "list quarters rejected", err)
		return
	}

	items, err := h.stats.QuartersForGame(ctx, req.GameID)
	if err != nil {
		h.fail(ctx, w, "list quarters failed", err, "game_id", req.GameID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, quartersToDTO(items))
}

func (h *Handler) ListLastGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLastGames")
	defer span.End()

	params := newParamReader(r)
	req := teamWindowRequest{
		TeamID: params.pathInt64("teamID"),
		Limit:  params.pathInt("limit"),
	}
	if err := h.bind(ctx, params, &req); err != nil {
		h.fail(ctx, w, "list last games rejected", err)
		return
	}

	items, err := h.stats.LastNGames(ctx, req.TeamID, req.Limit)
	if err != nil {
		h.fail(ctx, w, "list last games failed", err, "team_id", req.TeamID, "limit", req.Limit)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamGamesToDTO(items))
}

func (h *Handler) GetTeamAverages(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamAverages")
	defer span.End()

	params := newParamReader(r)
	req := teamWindowRequest{
		TeamID: params.pathInt64("teamID"),
		Limit:  params.pathInt("limit"),
		Season: params.queryString("season"),
		Venue:  params.queryLower("venue"),
	}
	if err := h.bind(ctx, params, &req); err != nil {
		h.fail(ctx, w, "get team averages rejected", err)
		return
	}

	result, err := h.stats.TeamAverages(ctx, usecase.TeamAveragesQuery{
		TeamID: req.TeamID,
		Window: req.Limit,
		Season: req.Season,
		Venue:  req.Venue,
	})
	if err != nil {
		h.fail(ctx, w, "get team averages failed", err, "team_id", req.TeamID, "limit", req.Limit)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rollingStatsToDTO(result))
}

func (h *Handler) GetTeamRestDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRestDays")
	defer span.End()

	params := newParamReader(r)
	req := restDaysRequest{
		TeamID: params.pathInt64("teamID"),
		AsOf:   params.queryString("as_of"),
		Season: params.queryString("season"),
	}
	if err := h.bind(ctx, params, &req); err != nil {
		h.fail(ctx, w, "get rest days rejected", err)
		return
	}

	result, err := h.stats.TeamRestDays(ctx, usecase.RestDaysQuery{TeamID: req.TeamID, AsOf: req.AsOf, Season: req.Season})
	if err != nil {
		h.fail(ctx, w, "get rest days failed", err, "team_id", req.TeamID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, restDaysToDTO(result))
}

func (h *Handler) GetTeamSeasonRecord(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamSeasonRecord")
	defer span.End()

	params := newParamReader(r)
	req := seasonRecordRequest{
		TeamID: params.pathInt64("teamID"),
		Season: params.pathString("season"),
		Venue:  params.queryLower("venue"),
	}
	if err := h.bind(ctx, params, &req); err != nil {
		h.fail(ctx, w, "get season record rejected", err)
		return
	}

	result, err := h.stats.TeamSeasonRecord(ctx, req.TeamID, req.Season, req.Venue)
	if err != nil {
		h.fail(ctx, w, "get season record failed", err, "team_id", req.TeamID, "season", req.Season)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, seasonRecordToDTO(result))
}

func (h *Handler) ListHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHeadToHead")
	defer span.End()

	req, err := h.bindHeadToHead(ctx, r)
	if err != nil {
		h.fail(ctx, w, "list head to head rejected", err)
		return
	}

	items, err := h.stats.HeadToHead(ctx, req.Team1ID, req.Team2ID, req.Season)
	if err != nil {
		h.fail(ctx, w, "list head to head failed", err, "team1_id", req.Team1ID, "team2_id", req.Team2ID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, meetingsToDTO(items))
}

func (h *Handler) GetHeadToHeadAverages(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHeadToHeadAverages")
	defer span.End()

	req, err := h.bindHeadToHead(ctx, r)
	if err != nil {
		h.fail(ctx, w, "get head to head averages rejected", err)
		return
	}

	result, err := h.stats.HeadToHeadAverages(ctx, req.Team1ID, req.Team2ID, req.Season)
	if err != nil {
		h.fail(ctx, w, "get head to head averages failed", err, "team1_id", req.Team1ID, "team2_id", req.Team2ID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, headToHeadStatsToDTO(req.Team1ID, req.Team2ID, req.Season, result))
}

func (h *Handler) PrewarmDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PrewarmDate")
	defer span.End()

	params := newParamReader(r)
	req := dateRequest{Date: params.pathString("date")}
	if err := h.bind(ctx, params, &req); err != nil {
		h.fail(ctx, w, "prewarm rejected", err)
		return
	}

	result, err := h.stats.PrewarmDate(ctx, req.Date)
	if err != nil {
		h.fail(ctx, w, "prewarm failed", err, "date", req.Date)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, prewarmDTO{
		Date:   result.Date,
		Games:  result.Games,
		Teams:  result.Teams,
		Failed: result.Failed,
	})
}

func (h *Handler) InvalidateTeamCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InvalidateTeamCache")
	defer span.End()

	params := newParamReader(r)
	req := teamRequest{TeamID: params.pathInt64("teamID")}
	if err := h.bind(ctx, params, &req); err != nil {
		h.fail(ctx, w, "invalidate team cache rejected", err)
		return
	}

	h.stats.InvalidateTeam(ctx, req.TeamID)
	h.logger.InfoContext(ctx, "team cache invalidated", "team_id", req.TeamID)
	writeSuccess(ctx, w, http.StatusOK, map[string]int64{"team_id": req.TeamID})
}

func (h *Handler) bind(ctx context.Context, params *paramReader, req any) error {
	if err := params.Err(); err != nil {
		return err
	}
	return h.validateRequest(ctx, req)
}

func (h *Handler) bindHeadToHead(ctx context.Context, r *http.Request) (headToHeadRequest, error) {
	params := newParamReader(r)
	req := headToHeadRequest{
		Team1ID: params.pathInt64("team1ID"),
		Team2ID: params.pathInt64("team2ID"),
		Season:  params.pathString("season"),
	}
	if err := h.bind(ctx, params, &req); err != nil {
		return headToHeadRequest{}, err
	}
	return req, nil
}
