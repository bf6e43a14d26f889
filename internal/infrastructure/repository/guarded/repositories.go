package guarded

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
	"github.com/riskibarqy/hoop-analytics/internal/domain/league"
	"github.com/riskibarqy/hoop-analytics/internal/platform/logging"
	"github.com/riskibarqy/hoop-analytics/internal/platform/resilience"
	"github.com/riskibarqy/hoop-analytics/internal/usecase"
)

// Guard bounds each repository call with a timeout and a circuit breaker and
// reports every storage failure as usecase.ErrDependencyUnavailable.
type Guard struct {
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewGuard(timeout time.Duration, breaker *resilience.CircuitBreaker, logger *logging.Logger) *Guard {
	if logger == nil {
		logger = logging.Default()
	}
	return &Guard{timeout: timeout, breaker: breaker, logger: logger}
}

func (g *Guard) do(ctx context.Context, op string, fn func(context.Context) error) error {
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}
		return fn(ctx)
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return err
	}

	g.logger.WarnContext(ctx, "repository call failed", "op", op, "error", err)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: %s: storage circuit open", usecase.ErrDependencyUnavailable, op)
	}
	return fmt.Errorf("%w: %s: %v", usecase.ErrDependencyUnavailable, op, err)
}

type GameRepository struct {
	next  game.Repository
	guard *Guard
}

func NewGameRepository(next game.Repository, guard *Guard) *GameRepository {
	return &GameRepository{next: next, guard: guard}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID int64) (item game.Game, exists bool, err error) {
	err = r.guard.do(ctx, "game.GetByID", func(ctx context.Context) (err error) {
		item, exists, err = r.next.GetByID(ctx, gameID)
		return err
	})
	return item, exists, err
}

func (r *GameRepository) ListByDate(ctx context.Context, query game.DateQuery) (items []game.Game, err error) {
	err = r.guard.do(ctx, "game.ListByDate", func(ctx context.Context) (err error) {
		items, err = r.next.ListByDate(ctx, query)
		return err
	})
	return items, err
}

func (r *GameRepository) ListFinishedByTeam(ctx context.Context, query game.TeamQuery) (items []game.Game, err error) {
	err = r.guard.do(ctx, "game.ListFinishedByTeam", func(ctx context.Context) (err error) {
		items, err = r.next.ListFinishedByTeam(ctx, query)
		return err
	})
	return items, err
}

func (r *GameRepository) ListHeadToHead(ctx context.Context, query game.HeadToHeadQuery) (items []game.Game, err error) {
	err = r.guard.do(ctx, "game.ListHeadToHead", func(ctx context.Context) (err error) {
		items, err = r.next.ListHeadToHead(ctx, query)
		return err
	})
	return items, err
}

func (r *GameRepository) ListQuarters(ctx context.Context, gameIDs []int64) (items map[int64][]game.Quarter, err error) {
	err = r.guard.do(ctx, "game.ListQuarters", func(ctx context.Context) (err error) {
		items, err = r.next.ListQuarters(ctx, gameIDs)
		return err
	})
	return items, err
}

type LeagueRepository struct {
	next  league.Repository
	guard *Guard
}

func NewLeagueRepository(next league.Repository, guard *Guard) *LeagueRepository {
	return &LeagueRepository{next: next, guard: guard}
}

func (r *LeagueRepository) List(ctx context.Context) (items []league.League, err error) {
	err = r.guard.do(ctx, "league.List", func(ctx context.Context) (err error) {
		items, err = r.next.List(ctx)
		return err
	})
	return items, err
}
