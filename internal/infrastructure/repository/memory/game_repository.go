package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
)

// GameRepository serves a fixed ledger held in memory. It applies the same
// filters and ordering as the SQL repository.
type GameRepository struct {
	mu       sync.RWMutex
	games    []game.Game
	byID     map[int64]int
	quarters map[int64][]game.Quarter
}

func NewGameRepository(games []game.Game, quarters []game.Quarter) *GameRepository {
	r := &GameRepository{
		games:    append([]game.Game(nil), games...),
		byID:     make(map[int64]int, len(games)),
		quarters: make(map[int64][]game.Quarter),
	}
	for i, g := range r.games {
		r.byID[g.ID] = i
	}
	for _, q := range quarters {
		r.quarters[q.GameID] = append(r.quarters[q.GameID], q)
	}
	for id := range r.quarters {
		items := r.quarters[id]
		sort.SliceStable(items, func(i, j int) bool { return items[i].Number < items[j].Number })
	}
	return r
}

func (r *GameRepository) GetByID(_ context.Context, gameID int64) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[gameID]
	if !ok {
		return game.Game{}, false, nil
	}
	return r.games[idx], true, nil
}

func (r *GameRepository) ListByDate(_ context.Context, query game.DateQuery) ([]game.Game, error) {
	start := query.Day.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	out := r.filter(func(g game.Game) bool {
		if query.LeagueID > 0 && g.LeagueID != query.LeagueID {
			return false
		}
		return !g.Date.Before(start) && g.Date.Before(end)
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *GameRepository) ListFinishedByTeam(_ context.Context, query game.TeamQuery) ([]game.Game, error) {
	out := r.filter(func(g game.Game) bool {
		if !g.HasFinalScore() {
			return false
		}
		switch query.Venue {
		case game.VenueHome:
			if g.HomeTeamID != query.TeamID {
				return false
			}
		case game.VenueAway:
			if g.AwayTeamID != query.TeamID {
				return false
			}
		default:
			if !g.Involves(query.TeamID) {
				return false
			}
		}
		if query.Season != "" && g.Season != query.Season {
			return false
		}
		return query.Before == nil || g.Date.Before(*query.Before)
	})
	sortNewestFirst(out)
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (r *GameRepository) ListHeadToHead(_ context.Context, query game.HeadToHeadQuery) ([]game.Game, error) {
	out := r.filter(func(g game.Game) bool {
		if !g.HasFinalScore() || g.Season != query.Season {
			return false
		}
		return (g.HomeTeamID == query.Team1ID && g.AwayTeamID == query.Team2ID) ||
			(g.HomeTeamID == query.Team2ID && g.AwayTeamID == query.Team1ID)
	})
	sortNewestFirst(out)
	return out, nil
}

func (r *GameRepository) ListQuarters(_ context.Context, gameIDs []int64) (map[int64][]game.Quarter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64][]game.Quarter, len(gameIDs))
	for _, id := range gameIDs {
		if items, ok := r.quarters[id]; ok {
			out[id] = append([]game.Quarter(nil), items...)
		}
	}
	return out, nil
}

func (r *GameRepository) filter(keep func(game.Game) bool) []game.Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, g := range r.games {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

func sortNewestFirst(items []game.Game) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date.Equal(items[j].Date) {
			return items[i].ID > items[j].ID
		}
		return items[i].Date.After(items[j].Date)
	})
}
