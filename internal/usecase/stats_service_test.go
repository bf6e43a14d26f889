package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
	"github.com/riskibarqy/hoop-analytics/internal/domain/league"
	"github.com/riskibarqy/hoop-analytics/internal/platform/cache"
)

type gameRepoStub struct {
	mu       sync.Mutex
	games    []game.Game
	quarters map[int64][]game.Quarter
	err      error
	calls    atomic.Int32
	lastTeam game.TeamQuery
}

func (s *gameRepoStub) snapshot() []game.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]game.Game(nil), s.games...)
}

func (s *gameRepoStub) setGames(items []game.Game) {
	s.mu.Lock()
	s.games = items
	s.mu.Unlock()
}

func (s *gameRepoStub) GetByID(_ context.Context, gameID int64) (game.Game, bool, error) {
	s.calls.Add(1)
	if s.err != nil {
		return game.Game{}, false, s.err
	}
	for _, g := range s.snapshot() {
		if g.ID == gameID {
			return g, true, nil
		}
	}
	return game.Game{}, false, nil
}

func (s *gameRepoStub) ListByDate(_ context.Context, query game.DateQuery) ([]game.Game, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]game.Game, 0)
	for _, g := range s.snapshot() {
		if g.Date.UTC().Format(dateLayout) == query.Day.Format(dateLayout) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *gameRepoStub) ListFinishedByTeam(_ context.Context, query game.TeamQuery) ([]game.Game, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.lastTeam = query
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]game.Game, 0)
	for _, g := range s.snapshot() {
		if !g.HasFinalScore() || !g.Involves(query.TeamID) {
			continue
		}
		if query.Before != nil && !g.Date.Before(*query.Before) {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (s *gameRepoStub) ListHeadToHead(_ context.Context, _ game.HeadToHeadQuery) ([]game.Game, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot(), nil
}

func (s *gameRepoStub) ListQuarters(_ context.Context, gameIDs []int64) (map[int64][]game.Quarter, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[int64][]game.Quarter, len(gameIDs))
	for _, id := range gameIDs {
		if items, ok := s.quarters[id]; ok {
			out[id] = items
		}
	}
	return out, nil
}

type leagueRepoStub struct {
	items []league.League
}

func (s *leagueRepoStub) List(context.Context) ([]league.League, error) {
	return append([]league.League(nil), s.items...), nil
}

func intPtr(v int) *int { return &v }

func finishedGame(id int64, date string, home, away int64, homeScore, awayScore int) game.Game {
	ts, err := time.Parse(time.RFC3339, date)
	if err != nil {
		panic(err)
	}
	return game.Game{
		ID:         id,
		Season:     "2024",
		Date:       ts,
		Status:     game.StatusFinal,
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
	}
}

func newTestService(repo *gameRepoStub, clock func() time.Time) *StatsService {
	store := cache.NewStore(cache.DefaultTTLPolicy(), cache.WithClock(clock))
	svc := NewStatsService(repo, &leagueRepoStub{}, store, StatsConfig{MaxWindow: 20}, nil)
	svc.now = clock
	return svc
}

func TestStatsService_TeamAverages_Scenario(t *testing.T) {
	t.Parallel()

	repo := &gameRepoStub{games: []game.Game{
		finishedGame(1, "2024-01-10T19:00:00Z", 10, 20, 100, 90),
		finishedGame(2, "2024-01-12T19:00:00Z", 30, 10, 85, 80),
	}}
	svc := newTestService(repo, time.Now)

	got, err := svc.TeamAverages(context.Background(), TeamAveragesQuery{TeamID: 10, Window: 10})
	if err != nil {
		t.Fatalf("team averages: %v", err)
	}
	if got.GamesCount != 2 || got.AvgScore != 90.0 || got.AvgOpponentScore != 87.5 || got.AvgTotal != 177.5 {
		t.Fatalf("unexpected averages: %+v", got)
	}
}

func TestStatsService_TeamAverages_CachedWithinTTLAndRefreshedAfter(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	repo := &gameRepoStub{games: []game.Game{finishedGame(1, "2024-01-10T19:00:00Z", 10, 20, 100, 90)}}
	svc := newTestService(repo, clock)
	ctx := context.Background()
	query := TeamAveragesQuery{TeamID: 10, Window: 5}

	first, err := svc.TeamAverages(ctx, query)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}

	repo.setGames(append(repo.snapshot(), finishedGame(2, "2024-01-20T19:00:00Z", 10, 20, 120, 80)))
	second, err := svc.TeamAverages(ctx, query)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second.GamesCount != first.GamesCount || second.AvgScore != first.AvgScore {
		t.Fatalf("expected cached result within ttl, got %+v then %+v", first, second)
	}

	mu.Lock()
	now = now.Add(5 * time.Minute)
	mu.Unlock()

	third, err := svc.TeamAverages(ctx, query)
	if err != nil {
		t.Fatalf("third call: %v", err)
	}
	if third.GamesCount != 2 || third.AvgScore != 110.0 {
		t.Fatalf("expected refreshed result after ttl, got %+v", third)
	}
}

func TestStatsService_TeamAverages_ValidatesInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(&gameRepoStub{}, time.Now)
	ctx := context.Background()

	cases := []TeamAveragesQuery{
		{TeamID: 0, Window: 5},
		{TeamID: 10, Window: 0},
		{TeamID: 10, Window: 5, Venue: "neutral"},
		{TeamID: 10, Window: 5, Season: "2024; DROP"},
	}
	for _, query := range cases {
		if _, err := svc.TeamAverages(ctx, query); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("query %+v: expected ErrInvalidInput, got %v", query, err)
		}
	}
}

func TestStatsService_TeamAverages_ClampsWindow(t *testing.T) {
	t.Parallel()

	repo := &gameRepoStub{}
	svc := newTestService(repo, time.Now)

	if _, err := svc.TeamAverages(context.Background(), TeamAveragesQuery{TeamID: 10, Window: 500}); err != nil {
		t.Fatalf("team averages: %v", err)
	}
	if repo.lastTeam.Limit != 20 {
		t.Fatalf("expected window clamped to 20, got %d", repo.lastTeam.Limit)
	}
}

func TestStatsService_FailuresAreNotCached(t *testing.T) {
	t.Parallel()

	down := errors.New("storage down")
	repo := &gameRepoStub{err: down}
	svc := newTestService(repo, time.Now)
	ctx := context.Background()

	if _, err := svc.HeadToHeadAverages(ctx, 10, 20, "2024"); !errors.Is(err, down) {
		t.Fatalf("expected storage error, got %v", err)
	}

	repo.err = nil
	repo.setGames([]game.Game{finishedGame(1, "2024-01-10T19:00:00Z", 10, 20, 100, 90)})
	got, err := svc.HeadToHeadAverages(ctx, 10, 20, "2024")
	if err != nil {
		t.Fatalf("expected recovery after failure, got %v", err)
	}
	if got.GamesCount != 1 || got.Team1Avg != 100 || got.Team2Avg != 90 {
		t.Fatalf("unexpected head to head: %+v", got)
	}
}

func TestStatsService_HeadToHead_EmptySeason(t *testing.T) {
	t.Parallel()

	svc := newTestService(&gameRepoStub{}, time.Now)
	got, err := svc.HeadToHeadAverages(context.Background(), 10, 20, "2024")
	if err != nil {
		t.Fatalf("head to head averages: %v", err)
	}
	if got.GamesCount != 0 || len(got.Team1Quarters) != 0 || len(got.Team2Quarters) != 0 {
		t.Fatalf("expected empty record, got %+v", got)
	}

	if _, err := svc.HeadToHead(context.Background(), 10, 10, "2024"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected same-team pair to be invalid, got %v", err)
	}
}

func TestStatsService_LastNGames(t *testing.T) {
	t.Parallel()

	repo := &gameRepoStub{
		games: []game.Game{
			finishedGame(1, "2024-01-10T19:00:00Z", 10, 20, 100, 90),
			finishedGame(2, "2024-01-12T19:00:00Z", 30, 10, 85, 85),
		},
		quarters: map[int64][]game.Quarter{
			1: {{GameID: 1, Number: 2}, {GameID: 1, Number: 1}},
		},
	}
	repo.games[1].HomeTeamName = "Heat"
	svc := newTestService(repo, time.Now)

	got, err := svc.LastNGames(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("last n games: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected game count: %d", len(got))
	}
	if got[0].Game.ID != 2 || got[0].Venue != "A" || got[0].Result != "L" || got[0].OpponentName != "Heat" {
		t.Fatalf("unexpected newest game: %+v", got[0])
	}
	if got[1].Result != "W" || got[1].Venue != "H" || len(got[1].Quarters) != 2 || got[1].Quarters[0].Number != 1 {
		t.Fatalf("unexpected oldest game: %+v", got[1])
	}
	if got[0].Quarters == nil {
		t.Fatal("expected empty quarter slice, not nil")
	}
}

func TestStatsService_TeamRestDays(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)
	repo := &gameRepoStub{games: []game.Game{
		finishedGame(1, "2024-01-10T19:00:00Z", 10, 20, 100, 90),
		finishedGame(2, "2024-01-13T19:00:00Z", 30, 10, 85, 80),
	}}
	svc := newTestService(repo, func() time.Time { return now })
	ctx := context.Background()

	got, err := svc.TeamRestDays(ctx, RestDaysQuery{TeamID: 10})
	if err != nil {
		t.Fatalf("rest days: %v", err)
	}
	if got.Days == nil || *got.Days != 1 {
		t.Fatalf("expected 1 full day since last game, got %v", got.Days)
	}

	got, err = svc.TeamRestDays(ctx, RestDaysQuery{TeamID: 10, AsOf: "2024-01-13"})
	if err != nil {
		t.Fatalf("rest days as of: %v", err)
	}
	if got.Days == nil || *got.Days != 2 {
		t.Fatalf("expected 2 days before Jan 13, got %v", got.Days)
	}

	got, err = svc.TeamRestDays(ctx, RestDaysQuery{TeamID: 99})
	if err != nil {
		t.Fatalf("rest days unknown team: %v", err)
	}
	if got.Days != nil {
		t.Fatalf("expected nil days without prior game, got %v", *got.Days)
	}

	if _, err := svc.TeamRestDays(ctx, RestDaysQuery{TeamID: 10, AsOf: "13/01/2024"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid date error, got %v", err)
	}
}

func TestStatsService_GamesOnDateAndQuarters(t *testing.T) {
	t.Parallel()

	scheduled := finishedGame(3, "2024-01-10T23:00:00Z", 20, 30, 0, 0)
	scheduled.Status = game.StatusScheduled
	scheduled.HomeScore, scheduled.AwayScore = nil, nil

	repo := &gameRepoStub{
		games: []game.Game{scheduled, finishedGame(1, "2024-01-10T19:00:00Z", 10, 20, 100, 90)},
		quarters: map[int64][]game.Quarter{
			1: {{GameID: 1, Number: 5}, {GameID: 1, Number: 1}},
		},
	}
	svc := newTestService(repo, time.Now)
	ctx := context.Background()

	items, err := svc.GamesOnDate(ctx, "2024-01-10", 0)
	if err != nil {
		t.Fatalf("games on date: %v", err)
	}
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 3 {
		t.Fatalf("expected games ordered by time, got %+v", items)
	}
	if _, err := svc.GamesOnDate(ctx, "2024-13-10", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid date, got %v", err)
	}

	quarters, err := svc.QuartersForGame(ctx, 1)
	if err != nil {
		t.Fatalf("quarters: %v", err)
	}
	if len(quarters) != 2 || quarters[0].Number != 1 || quarters[1].Number != 5 {
		t.Fatalf("expected ordered quarters including overtime, got %+v", quarters)
	}
}

func TestStatsService_ConcurrentMissesShareOneLoad(t *testing.T) {
	t.Parallel()

	repo := &gameRepoStub{games: []game.Game{finishedGame(1, "2024-01-10T19:00:00Z", 10, 20, 100, 90)}}
	svc := newTestService(repo, time.Now)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := svc.TeamSeasonRecord(context.Background(), 10, "2024", ""); err != nil {
				t.Errorf("season record: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if calls := repo.calls.Load(); calls < 1 || calls > 16 {
		t.Fatalf("unexpected repository call count: %d", calls)
	}
	before := repo.calls.Load()
	if _, err := svc.TeamSeasonRecord(context.Background(), 10, "2024", ""); err != nil {
		t.Fatalf("season record: %v", err)
	}
	if repo.calls.Load() != before {
		t.Fatal("expected cached season record")
	}
}

func TestCacheKey_QuotesStringArguments(t *testing.T) {
	t.Parallel()

	a := cacheKey(keyTeamAverages, int64(1), 5, "20|24", "")
	b := cacheKey(keyTeamAverages, int64(1), 5, "20", "24")
	if a == b {
		t.Fatalf("expected distinct keys, both %q", a)
	}
	if got := cacheKey(keyLastGames, int64(10), 5); got != "last_games|10|5" {
		t.Fatalf("unexpected key: %q", got)
	}
}

func TestStatsService_InvalidateTeam_DropsTeamAggregates(t *testing.T) {
	t.Parallel()

	repo := &gameRepoStub{games: []game.Game{finishedGame(1, "2024-01-10T19:00:00Z", 10, 20, 100, 90)}}
	svc := newTestService(repo, time.Now)
	ctx := context.Background()
	query := TeamAveragesQuery{TeamID: 10, Window: 5}

	if _, err := svc.TeamAverages(ctx, query); err != nil {
		t.Fatalf("team averages: %v", err)
	}
	repo.setGames(append(repo.snapshot(), finishedGame(2, "2024-01-20T19:00:00Z", 10, 20, 120, 80)))

	svc.InvalidateTeam(ctx, 10)
	got, err := svc.TeamAverages(ctx, query)
	if err != nil {
		t.Fatalf("team averages after invalidate: %v", err)
	}
	if got.GamesCount != 2 || got.AvgScore != 110.0 {
		t.Fatalf("expected recomputed averages, got %+v", got)
	}
}

func TestStatsService_PrewarmDate_CountsGamesTeamsAndFailures(t *testing.T) {
	t.Parallel()

	upcoming := game.Game{
		ID:         50,
		Season:     "2024",
		Date:       time.Date(2024, 1, 20, 19, 0, 0, 0, time.UTC),
		Status:     game.StatusScheduled,
		HomeTeamID: 10,
		AwayTeamID: 20,
	}
	seasonless := game.Game{
		ID:         51,
		Date:       time.Date(2024, 1, 20, 21, 0, 0, 0, time.UTC),
		Status:     game.StatusScheduled,
		HomeTeamID: 30,
		AwayTeamID: 40,
	}
	repo := &gameRepoStub{games: []game.Game{
		finishedGame(1, "2024-01-10T19:00:00Z", 10, 20, 100, 90),
		upcoming,
		seasonless,
	}}
	svc := newTestService(repo, time.Now)
	ctx := context.Background()

	got, err := svc.PrewarmDate(ctx, "2024-01-20")
	if err != nil {
		t.Fatalf("prewarm: %v", err)
	}
	if got.Games != 2 || got.Teams != 4 || got.Failed != 1 {
		t.Fatalf("unexpected prewarm result: %+v", got)
	}

	before := repo.calls.Load()
	if _, err := svc.MatchupPreview(ctx, 50); err != nil {
		t.Fatalf("matchup preview: %v", err)
	}
	if after := repo.calls.Load(); after != before {
		t.Fatalf("expected prewarmed matchup served from cache, repository calls went %d -> %d", before, after)
	}
}

func TestStatsService_PrewarmDate_RejectsBadDate(t *testing.T) {
	t.Parallel()

	svc := newTestService(&gameRepoStub{}, time.Now)
	if _, err := svc.PrewarmDate(context.Background(), "20-01-2024"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStatsService_MatchupPreview_RestDaysMeasuredFromTipOff(t *testing.T) {
	t.Parallel()

	upcoming := game.Game{
		ID:         2,
		Season:     "2024",
		Date:       time.Date(2024, 1, 12, 19, 0, 0, 0, time.UTC),
		Status:     game.StatusScheduled,
		HomeTeamID: 10,
		AwayTeamID: 20,
	}
	repo := &gameRepoStub{games: []game.Game{
		finishedGame(1, "2024-01-10T19:00:00Z", 10, 30, 100, 90),
		finishedGame(3, "2024-01-12T13:00:00Z", 40, 20, 95, 97),
		upcoming,
	}}
	svc := newTestService(repo, time.Now)

	got, err := svc.MatchupPreview(context.Background(), 2)
	if err != nil {
		t.Fatalf("matchup preview: %v", err)
	}
	if got.HomeRest.Days == nil || *got.HomeRest.Days != 2 {
		t.Fatalf("expected 2 days between evening tip-offs, got %+v", got.HomeRest)
	}
	if got.AwayRest.Days == nil || *got.AwayRest.Days != 0 {
		t.Fatalf("expected same-day earlier game to count with 0 days, got %+v", got.AwayRest)
	}
	if got.AwayRest.LastGameDate == nil || !got.AwayRest.LastGameDate.Equal(repo.games[1].Date) {
		t.Fatalf("unexpected away last game date: %+v", got.AwayRest.LastGameDate)
	}
}

func TestStatsService_TeamRestDays_BeforeInstantOverridesAsOf(t *testing.T) {
	t.Parallel()

	repo := &gameRepoStub{games: []game.Game{finishedGame(1, "2024-01-10T19:00:00Z", 10, 20, 100, 90)}}
	svc := newTestService(repo, time.Now)
	ctx := context.Background()

	byDate, err := svc.TeamRestDays(ctx, RestDaysQuery{TeamID: 10, AsOf: "2024-01-12"})
	if err != nil {
		t.Fatalf("rest days as of date: %v", err)
	}
	if byDate.Days == nil || *byDate.Days != 1 {
		t.Fatalf("expected 1 day to midnight of Jan 12, got %v", byDate.Days)
	}

	byInstant, err := svc.TeamRestDays(ctx, RestDaysQuery{
		TeamID: 10,
		Before: time.Date(2024, 1, 12, 19, 0, 0, 0, time.UTC),
		AsOf:   "2024-01-12",
	})
	if err != nil {
		t.Fatalf("rest days before instant: %v", err)
	}
	if byInstant.Days == nil || *byInstant.Days != 2 {
		t.Fatalf("expected 2 days to the 19:00 cutoff, got %v", byInstant.Days)
	}
}

func TestStatsService_TeamAverages_CallerMutationDoesNotLeakIntoCache(t *testing.T) {
	t.Parallel()

	repo := &gameRepoStub{
		games: []game.Game{finishedGame(1, "2024-01-10T19:00:00Z", 10, 20, 100, 90)},
		quarters: map[int64][]game.Quarter{
			1: {{GameID: 1, Number: 1, HomeScore: intPtr(30), AwayScore: intPtr(20)}},
		},
	}
	svc := newTestService(repo, time.Now)
	ctx := context.Background()
	query := TeamAveragesQuery{TeamID: 10, Window: 5}

	first, err := svc.TeamAverages(ctx, query)
	if err != nil {
		t.Fatalf("team averages: %v", err)
	}
	first.Quarters["q1"] = -1

	second, err := svc.TeamAverages(ctx, query)
	if err != nil {
		t.Fatalf("team averages again: %v", err)
	}
	if second.Quarters["q1"] != 30 {
		t.Fatalf("expected cached q1 average 30, got %v", second.Quarters)
	}
}
