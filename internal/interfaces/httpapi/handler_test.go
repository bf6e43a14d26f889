package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/hoop-analytics/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hoop-analytics/internal/platform/cache"
	"github.com/riskibarqy/hoop-analytics/internal/platform/logging"
	"github.com/riskibarqy/hoop-analytics/internal/usecase"
)

const testJobToken = "job-secret"

type envelope[T any] struct {
	APIVersion string     `json:"apiVersion"`
	RequestID  string     `json:"requestId"`
	Data       T          `json:"data"`
	Error      *errorBody `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	games := memory.NewGameRepository(memory.SeedGames(), memory.SeedQuarters())
	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	svc := usecase.NewStatsService(games, leagues, cache.NewStore(cache.DefaultTTLPolicy()), usecase.StatsConfig{}, logging.NewNop())

	return NewRouter(NewHandler(svc, logging.NewNop()), logging.NewNop(), RouterConfig{
		SwaggerEnabled:   true,
		InternalJobToken: testJobToken,
	})
}

func serve(t *testing.T, router http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHandler_ListLeagues(t *testing.T) {
	t.Parallel()

	rec := serve(t, newTestRouter(t), http.MethodGet, "/v1/leagues", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decode[[]leagueDTO](t, rec)
	if len(body.Data) != 2 || body.Data[0].Name != "Euroleague" || body.Data[1].Name != "NBA" {
		t.Fatalf("expected leagues ordered by name, got %+v", body.Data)
	}
	if body.RequestID == "" || rec.Header().Get(headerRequestID) != body.RequestID {
		t.Fatalf("expected request id in header and body, got header=%q body=%q", rec.Header().Get(headerRequestID), body.RequestID)
	}
}

func TestHandler_ListGamesOnDate(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := serve(t, router, http.MethodGet, "/v1/games/2024-10-22", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode[[]gameDTO](t, rec)
	if len(body.Data) != 1 || body.Data[0].ID != 9001 {
		t.Fatalf("expected game 9001 only, got %+v", body.Data)
	}
	if body.Data[0].HomeTeam.Name != "Boston Celtics" || body.Data[0].Status != "FINAL" {
		t.Fatalf("unexpected game payload: %+v", body.Data[0])
	}

	rec = serve(t, router, http.MethodGet, "/v1/games/2024-10-22?league_id=120", nil)
	if got := decode[[]gameDTO](t, rec); rec.Code != http.StatusOK || len(got.Data) != 0 {
		t.Fatalf("expected empty list for other league, got %d %+v", rec.Code, got.Data)
	}

	for _, target := range []string{"/v1/games/2024-13-40", "/v1/games/2024-10-22?league_id=x", "/v1/games/2024-10-22?league_id=-1"} {
		rec := serve(t, router, http.MethodGet, target, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestHandler_ListQuarters(t *testing.T) {
	t.Parallel()

	rec := serve(t, newTestRouter(t), http.MethodGet, "/v1/quarters/9003", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode[[]quarterDTO](t, rec)
	if len(body.Data) != 5 || body.Data[4].Quarter != 5 {
		t.Fatalf("expected four quarters plus overtime, got %+v", body.Data)
	}
}

func TestHandler_ListLastGames(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := serve(t, router, http.MethodGet, "/v1/teams/132/last-games/2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode[[]teamGameDTO](t, rec)
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 games, got %d", len(body.Data))
	}
	first, second := body.Data[0], body.Data[1]
	if first.Game.ID != 9005 || first.Venue != "A" || first.Result != "W" || first.TeamScore != 115 {
		t.Fatalf("unexpected newest game: %+v", first)
	}
	if second.Game.ID != 9004 || second.Result != "L" || second.OpponentName != "Denver Nuggets" {
		t.Fatalf("unexpected second game: %+v", second)
	}

	for _, target := range []string{"/v1/teams/abc/last-games/5", "/v1/teams/132/last-games/0", "/v1/teams/0/last-games/5"} {
		rec := serve(t, router, http.MethodGet, target, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
		if got := decode[any](t, rec); got.Error == nil || got.Error.Status != "INVALID_ARGUMENT" {
			t.Fatalf("%s: expected INVALID_ARGUMENT error, got %+v", target, got.Error)
		}
	}
}

func TestHandler_GetTeamAverages(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := serve(t, router, http.MethodGet, "/v1/teams/132/averages/5?season=2024-2025", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decode[rollingStatsDTO](t, rec).Data
	if got.GamesCount != 4 || got.AvgScore != 108.3 || got.AvgOpponentScore != 103.3 || got.AvgTotal != 211.6 {
		t.Fatalf("unexpected averages: %+v", got)
	}
	if got.Form != "W-L-W-W" {
		t.Fatalf("expected form W-L-W-W, got %q", got.Form)
	}

	rec = serve(t, router, http.MethodGet, "/v1/teams/132/averages/5?venue=HOME", nil)
	home := decode[rollingStatsDTO](t, rec).Data
	if rec.Code != http.StatusOK || home.GamesCount != 1 || home.AvgScore != 112 {
		t.Fatalf("unexpected home averages: %d %+v", rec.Code, home)
	}
	if home.Quarters["q1"] != 30 || home.Halves["h1"] != 58 {
		t.Fatalf("unexpected home splits: %+v %+v", home.Quarters, home.Halves)
	}

	rec = serve(t, router, http.MethodGet, "/v1/teams/132/averages/5?venue=neutral", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown venue, got %d", rec.Code)
	}
}

func TestHandler_GetTeamRestDaysAndRecord(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := serve(t, router, http.MethodGet, "/v1/teams/132/rest-days?as_of=2024-11-09&season=2024-2025", nil)
	rest := decode[restDaysDTO](t, rec).Data
	if rec.Code != http.StatusOK || rest.Days == nil || *rest.Days != 6 {
		t.Fatalf("expected 6 rest days, got %d %+v", rec.Code, rest)
	}
	if rest.LastGameDate == nil || *rest.LastGameDate != "2024-11-02T23:00:00Z" {
		t.Fatalf("unexpected last game date: %v", rest.LastGameDate)
	}

	rec = serve(t, router, http.MethodGet, "/v1/teams/132/rest-days?as_of=2024-10-01", nil)
	rest = decode[restDaysDTO](t, rec).Data
	if rec.Code != http.StatusOK || rest.Days != nil || rest.LastGameDate != nil {
		t.Fatalf("expected empty rest days before the season, got %+v", rest)
	}

	rec = serve(t, router, http.MethodGet, "/v1/teams/132/seasons/2024-2025?venue=away", nil)
	record := decode[seasonRecordDTO](t, rec).Data
	if rec.Code != http.StatusOK || record.Games != 3 || record.Wins != 2 || record.Losses != 1 {
		t.Fatalf("unexpected away record: %d %+v", rec.Code, record)
	}
}

func TestHandler_HeadToHead(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := serve(t, router, http.MethodGet, "/v1/h2h/132/145/2024-2025", nil)
	meetings := decode[[]meetingDTO](t, rec).Data
	if rec.Code != http.StatusOK || len(meetings) != 2 || meetings[0].Game.ID != 9005 {
		t.Fatalf("unexpected meetings: %d %+v", rec.Code, meetings)
	}

	rec = serve(t, router, http.MethodGet, "/v1/h2h/132/145/2024-2025/averages", nil)
	avg := decode[headToHeadStatsDTO](t, rec).Data
	if rec.Code != http.StatusOK || avg.GamesCount != 2 || avg.Team1Avg != 113.5 || avg.Team2Avg != 107 {
		t.Fatalf("unexpected head to head averages: %d %+v", rec.Code, avg)
	}

	rec = serve(t, router, http.MethodGet, "/v1/h2h/132/132/2024-2025", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for identical teams, got %d", rec.Code)
	}
}

func TestHandler_GetMatchup(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := serve(t, router, http.MethodGet, "/v1/games/9007/matchup", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decode[matchupDTO](t, rec).Data
	if got.Home.TeamID != 132 || got.Away.TeamID != 145 {
		t.Fatalf("unexpected sides: %+v", got)
	}
	if got.Home.Record.Games != 1 || got.Home.Record.Wins != 1 {
		t.Fatalf("expected home record from home games, got %+v", got.Home.Record)
	}
	if got.Away.Record.Games != 1 || got.Away.Record.Wins != 0 {
		t.Fatalf("expected away record from away games, got %+v", got.Away.Record)
	}
	if got.Home.Rest.Days == nil || *got.Home.Rest.Days != 6 {
		t.Fatalf("expected 6 rest days for home side, got %+v", got.Home.Rest)
	}
	if got.HeadToHead.GamesCount != 2 || got.HeadToHead.Team1Avg != 113.5 {
		t.Fatalf("unexpected head to head: %+v", got.HeadToHead)
	}

	rec = serve(t, router, http.MethodGet, "/v1/games/999/matchup", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown game, got %d", rec.Code)
	}
}

func TestHandler_InternalCacheRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := serve(t, router, http.MethodPost, "/v1/internal/cache/prewarm/2024-11-09", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = serve(t, router, http.MethodPost, "/v1/internal/cache/prewarm/2024-11-09", map[string]string{headerInternalJobToken: testJobToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := decode[prewarmDTO](t, rec).Data
	if result.Games != 1 || result.Teams != 2 || result.Failed != 0 {
		t.Fatalf("unexpected prewarm result: %+v", result)
	}

	rec = serve(t, router, http.MethodPost, "/v1/internal/cache/teams/132/invalidate", map[string]string{headerInternalJobToken: testJobToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_OpenAPI(t *testing.T) {
	t.Parallel()

	rec := serve(t, newTestRouter(t), http.MethodGet, "/openapi.yaml", nil)
	if rec.Code != http.StatusOK || len(rec.Body.Bytes()) == 0 {
		t.Fatalf("expected embedded openapi document, got %d", rec.Code)
	}
}
