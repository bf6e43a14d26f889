package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/hoop-analytics/internal/domain/league"
)

type LeagueRepository struct {
	mu    sync.RWMutex
	items []league.League
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := append([]league.League(nil), leagues...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return &LeagueRepository{items: items}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.items))
	out = append(out, r.items...)
	return out, nil
}
