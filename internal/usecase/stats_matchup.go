package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
	"github.com/riskibarqy/hoop-analytics/internal/domain/stats"
	"github.com/riskibarqy/hoop-analytics/internal/platform/cache"
)

const matchupFanOut = 6

// Matchup is everything shown ahead of one game: each side's season record at
// its venue, rest before tip-off, recent season form and the season series.
type Matchup struct {
	Game       game.Game
	HomeRecord stats.SeasonRecord
	AwayRecord stats.SeasonRecord
	HomeRest   stats.RestDays
	AwayRest   stats.RestDays
	HomeLast5  stats.RollingStats
	HomeLast10 stats.RollingStats
	AwayLast5  stats.RollingStats
	AwayLast10 stats.RollingStats
	HeadToHead stats.HeadToHeadStats
}

type PrewarmResult struct {
	Date   string
	Games  int
	Teams  int
	Failed int
}

func (s *StatsService) gameByID(ctx context.Context, gameID int64) (game.Game, error) {
	if gameID <= 0 {
		return game.Game{}, fmt.Errorf("%w: game id must be positive", ErrInvalidInput)
	}

	return cache.Load(ctx, s.cache, cacheKey(keyGame, gameID), cache.ClassSchedule, func(ctx context.Context) (game.Game, error) {
		item, exists, err := s.games.GetByID(ctx, gameID)
		if err != nil {
			return game.Game{}, fmt.Errorf("get game: %w", err)
		}
		if !exists {
			return game.Game{}, fmt.Errorf("%w: game=%d", ErrNotFound, gameID)
		}
		return item, nil
	})
}

// MatchupPreview runs the independent sub-queries concurrently and fails if any of them fails.
func (s *StatsService) MatchupPreview(ctx context.Context, gameID int64) (Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.MatchupPreview")
	defer span.End()

	item, err := s.gameByID(ctx, gameID)
	if err != nil {
		return Matchup{}, err
	}
	if err := game.ValidateSeason(item.Season); err != nil {
		return Matchup{}, fmt.Errorf("%w: game=%d has no usable season", ErrNotFound, gameID)
	}

	out := Matchup{Game: item}
	tipOff := item.Date.UTC()
	home, away, season := item.HomeTeamID, item.AwayTeamID, item.Season

	p := pool.New().WithMaxGoroutines(matchupFanOut).WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) (err error) {
		out.HomeRecord, err = s.TeamSeasonRecord(ctx, home, season, string(game.VenueHome))
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		out.AwayRecord, err = s.TeamSeasonRecord(ctx, away, season, string(game.VenueAway))
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		out.HomeRest, err = s.TeamRestDays(ctx, RestDaysQuery{TeamID: home, Before: tipOff, Season: season})
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		out.AwayRest, err = s.TeamRestDays(ctx, RestDaysQuery{TeamID: away, Before: tipOff, Season: season})
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		out.HomeLast5, err = s.TeamAverages(ctx, TeamAveragesQuery{TeamID: home, Window: 5, Season: season})
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		out.HomeLast10, err = s.TeamAverages(ctx, TeamAveragesQuery{TeamID: home, Window: 10, Season: season})
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		out.AwayLast5, err = s.TeamAverages(ctx, TeamAveragesQuery{TeamID: away, Window: 5, Season: season})
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		out.AwayLast10, err = s.TeamAverages(ctx, TeamAveragesQuery{TeamID: away, Window: 10, Season: season})
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		out.HeadToHead, err = s.HeadToHeadAverages(ctx, home, away, season)
		return err
	})
	if err := p.Wait(); err != nil {
		return Matchup{}, fmt.Errorf("build matchup game=%d: %w", gameID, err)
	}

	return out, nil
}

// PrewarmDate computes the matchup of every game on date so later reads hit the
// cache. Individual failures are counted and logged, not returned.
func (s *StatsService) PrewarmDate(ctx context.Context, date string) (PrewarmResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PrewarmDate")
	defer span.End()

	items, err := s.GamesOnDate(ctx, date, 0)
	if err != nil {
		return PrewarmResult{}, err
	}

	result := PrewarmResult{Date: date, Games: len(items)}
	teams := make(map[int64]struct{}, len(items)*2)
	for _, g := range items {
		teams[g.HomeTeamID] = struct{}{}
		teams[g.AwayTeamID] = struct{}{}
	}
	result.Teams = len(teams)
	if len(items) == 0 {
		return result, nil
	}

	workers, err := ants.NewPool(s.cfg.PrewarmWorkers)
	if err != nil {
		return PrewarmResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var failed atomic.Int32
	var wg sync.WaitGroup
	for _, g := range items {
		gameID := g.ID
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			if _, err := s.MatchupPreview(ctx, gameID); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "prewarm matchup failed", "game_id", gameID, "error", err)
			}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return PrewarmResult{}, fmt.Errorf("submit prewarm task: %w", err)
		}
	}
	wg.Wait()

	result.Failed = int(failed.Load())
	s.logger.InfoContext(ctx, "cache prewarm finished",
		"date", date,
		"games", result.Games,
		"teams", result.Teams,
		"failed", result.Failed,
	)
	return result, nil
}
