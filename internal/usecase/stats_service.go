package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
	"github.com/riskibarqy/hoop-analytics/internal/domain/league"
	"github.com/riskibarqy/hoop-analytics/internal/domain/stats"
	"github.com/riskibarqy/hoop-analytics/internal/platform/cache"
	"github.com/riskibarqy/hoop-analytics/internal/platform/logging"
)

const (
	dateLayout            = "2006-01-02"
	defaultMaxWindow      = 100
	defaultPrewarmWorkers = 4
)

type StatsConfig struct {
	// MaxWindow caps rolling windows; larger requests are clamped.
	MaxWindow      int
	PrewarmWorkers int
}

// TeamGame is one finished game seen from the requested team.
type TeamGame struct {
	Game          game.Game
	Quarters      []game.Quarter
	OpponentID    int64
	OpponentName  string
	Venue         string
	Result        string
	TeamScore     int
	OpponentScore int
}

// Meeting is a finished head-to-head game with its quarter lines.
type Meeting struct {
	Game     game.Game
	Quarters []game.Quarter
}

type TeamAveragesQuery struct {
	TeamID int64
	Window int
	Season string
	Venue  string
}

// RestDaysQuery measures rest up to a cutoff. Before, when set, is the exact
// instant (such as a tip-off); otherwise AsOf (YYYY-MM-DD) means midnight UTC of
// that day, and with neither the reference is now.
type RestDaysQuery struct {
	TeamID int64
	Before time.Time
	AsOf   string
	Season string
}

// StatsService answers read queries over the game ledger through the result cache.
type StatsService struct {
	games   game.Repository
	leagues league.Repository
	cache   *cache.Store
	cfg     StatsConfig
	logger  *logging.Logger
	now     func() time.Time
}

func NewStatsService(games game.Repository, leagues league.Repository, store *cache.Store, cfg StatsConfig, logger *logging.Logger) *StatsService {
	if cfg.MaxWindow <= 0 {
		cfg.MaxWindow = defaultMaxWindow
	}
	if cfg.PrewarmWorkers <= 0 {
		cfg.PrewarmWorkers = defaultPrewarmWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &StatsService{
		games:   games,
		leagues: leagues,
		cache:   store,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *StatsService) LeagueCatalog(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.LeagueCatalog")
	defer span.End()

	return cache.Load(ctx, s.cache, cacheKey(keyLeagues), cache.ClassCatalog, func(ctx context.Context) ([]league.League, error) {
		items, err := s.leagues.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list leagues: %w", err)
		}
		sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		return items, nil
	})
}

// GamesOnDate lists every game scheduled on a UTC calendar day, earliest first.
// leagueID 0 means all leagues.
func (s *StatsService) GamesOnDate(ctx context.Context, date string, leagueID int64) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GamesOnDate")
	defer span.End()

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if leagueID < 0 {
		return nil, fmt.Errorf("%w: league id must not be negative", ErrInvalidInput)
	}

	key := cacheKey(keyGamesOnDate, day.Format(dateLayout), leagueID)
	return cache.Load(ctx, s.cache, key, cache.ClassSchedule, func(ctx context.Context) ([]game.Game, error) {
		items, err := s.games.ListByDate(ctx, game.DateQuery{Day: day, LeagueID: leagueID})
		if err != nil {
			return nil, fmt.Errorf("list games by date: %w", err)
		}
		sort.SliceStable(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
		return nonNilGames(items), nil
	})
}

// QuartersForGame returns every period of a game, overtime included, ordered by number.
func (s *StatsService) QuartersForGame(ctx context.Context, gameID int64) ([]game.Quarter, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.QuartersForGame")
	defer span.End()

	if gameID <= 0 {
		return nil, fmt.Errorf("%w: game id must be positive", ErrInvalidInput)
	}

	return cache.Load(ctx, s.cache, cacheKey(keyQuarters, gameID), cache.ClassSchedule, func(ctx context.Context) ([]game.Quarter, error) {
		byGame, err := s.games.ListQuarters(ctx, []int64{gameID})
		if err != nil {
			return nil, fmt.Errorf("list quarters: %w", err)
		}
		return sortedQuarters(byGame[gameID]), nil
	})
}

func (s *StatsService) LastNGames(ctx context.Context, teamID int64, n int) ([]TeamGame, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.LastNGames")
	defer span.End()

	if err := validateTeamID(teamID); err != nil {
		return nil, err
	}
	window, err := s.normalizeWindow(n)
	if err != nil {
		return nil, err
	}

	key := cacheKey(keyLastGames, teamID, window)
	return cache.Load(ctx, s.cache, key, cache.ClassAggregate, func(ctx context.Context) ([]TeamGame, error) {
		recent, quarters, err := s.loadTeamWindow(ctx, teamID, stats.WindowFilter{Window: window})
		if err != nil {
			return nil, err
		}

		out := make([]TeamGame, 0, len(recent))
		for _, g := range recent {
			side, _ := stats.ResolveVenue(g, teamID)
			out = append(out, TeamGame{
				Game:          g,
				Quarters:      sortedQuarters(quarters[g.ID]),
				OpponentID:    side.OpponentID,
				OpponentName:  side.OpponentName,
				Venue:         side.Venue(),
				Result:        side.Result(),
				TeamScore:     side.TeamScore,
				OpponentScore: side.OpponentScore,
			})
		}
		return out, nil
	})
}

// HeadToHead lists the season's finished meetings between two teams, newest first.
func (s *StatsService) HeadToHead(ctx context.Context, team1ID, team2ID int64, season string) ([]Meeting, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.HeadToHead")
	defer span.End()

	season, err := validatePair(team1ID, team2ID, season)
	if err != nil {
		return nil, err
	}

	key := cacheKey(keyHeadToHead, team1ID, team2ID, season)
	return cache.Load(ctx, s.cache, key, cache.ClassAggregate, func(ctx context.Context) ([]Meeting, error) {
		meetings, quarters, err := s.loadMeetings(ctx, team1ID, team2ID, season)
		if err != nil {
			return nil, err
		}

		out := make([]Meeting, 0, len(meetings))
		for _, g := range meetings {
			out = append(out, Meeting{Game: g, Quarters: sortedQuarters(quarters[g.ID])})
		}
		return out, nil
	})
}

func (s *StatsService) TeamAverages(ctx context.Context, query TeamAveragesQuery) (stats.RollingStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TeamAverages")
	defer span.End()

	if err := validateTeamID(query.TeamID); err != nil {
		return stats.RollingStats{}, err
	}
	window, err := s.normalizeWindow(query.Window)
	if err != nil {
		return stats.RollingStats{}, err
	}
	season, err := optionalSeason(query.Season)
	if err != nil {
		return stats.RollingStats{}, err
	}
	venue, err := parseVenue(query.Venue)
	if err != nil {
		return stats.RollingStats{}, err
	}

	key := cacheKey(keyTeamAverages, query.TeamID, window, season, string(venue))
	return cache.Load(ctx, s.cache, key, cache.ClassAggregate, func(ctx context.Context) (stats.RollingStats, error) {
		filter := stats.WindowFilter{Window: window, Season: season, Venue: venue}
		recent, quarters, err := s.loadTeamWindow(ctx, query.TeamID, filter)
		if err != nil {
			return stats.RollingStats{}, err
		}
		return stats.RollingAverages(query.TeamID, recent, quarters), nil
	})
}

func (s *StatsService) HeadToHeadAverages(ctx context.Context, team1ID, team2ID int64, season string) (stats.HeadToHeadStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.HeadToHeadAverages")
	defer span.End()

	season, err := validatePair(team1ID, team2ID, season)
	if err != nil {
		return stats.HeadToHeadStats{}, err
	}

	key := cacheKey(keyHeadToHeadAvg, team1ID, team2ID, season)
	return cache.Load(ctx, s.cache, key, cache.ClassAggregate, func(ctx context.Context) (stats.HeadToHeadStats, error) {
		meetings, quarters, err := s.loadMeetings(ctx, team1ID, team2ID, season)
		if err != nil {
			return stats.HeadToHeadStats{}, err
		}
		return stats.HeadToHead(team1ID, team2ID, season, meetings, quarters), nil
	})
}

func (s *StatsService) TeamRestDays(ctx context.Context, query RestDaysQuery) (stats.RestDays, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TeamRestDays")
	defer span.End()

	if err := validateTeamID(query.TeamID); err != nil {
		return stats.RestDays{}, err
	}
	season, err := optionalSeason(query.Season)
	if err != nil {
		return stats.RestDays{}, err
	}

	var before *time.Time
	switch {
	case !query.Before.IsZero():
		cutoff := query.Before.UTC()
		before = &cutoff
	case strings.TrimSpace(query.AsOf) != "":
		day, err := parseDate(query.AsOf)
		if err != nil {
			return stats.RestDays{}, err
		}
		before = &day
	}
	asOf := ""
	if before != nil {
		asOf = before.Format(time.RFC3339Nano)
	}

	key := cacheKey(keyRestDays, query.TeamID, asOf, season)
	return cache.Load(ctx, s.cache, key, cache.ClassAggregate, func(ctx context.Context) (stats.RestDays, error) {
		items, err := s.games.ListFinishedByTeam(ctx, game.TeamQuery{
			TeamID: query.TeamID,
			Season: season,
			Before: before,
			Limit:  1,
		})
		if err != nil {
			return stats.RestDays{}, fmt.Errorf("list team games: %w", err)
		}

		reference := s.now().UTC()
		if before != nil {
			reference = *before
		}
		return stats.ComputeRestDays(items, query.TeamID, reference, before), nil
	})
}

// TeamSeasonRecord summarizes a team's finished games in a season, optionally
// only at home or away.
func (s *StatsService) TeamSeasonRecord(ctx context.Context, teamID int64, season, venue string) (stats.SeasonRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TeamSeasonRecord")
	defer span.End()

	if err := validateTeamID(teamID); err != nil {
		return stats.SeasonRecord{}, err
	}
	season, err := requiredSeason(season)
	if err != nil {
		return stats.SeasonRecord{}, err
	}
	side, err := parseVenue(venue)
	if err != nil {
		return stats.SeasonRecord{}, err
	}

	key := cacheKey(keyTeamSeasonRecord, teamID, season, string(side))
	return cache.Load(ctx, s.cache, key, cache.ClassAggregate, func(ctx context.Context) (stats.SeasonRecord, error) {
		items, err := s.games.ListFinishedByTeam(ctx, game.TeamQuery{TeamID: teamID, Season: season, Venue: side})
		if err != nil {
			return stats.SeasonRecord{}, fmt.Errorf("list team games: %w", err)
		}
		filtered := stats.SelectWindow(items, teamID, stats.WindowFilter{Season: season, Venue: side})
		return stats.Record(teamID, filtered), nil
	})
}

// InvalidateTeam drops every cached aggregate of one team.
func (s *StatsService) InvalidateTeam(ctx context.Context, teamID int64) {
	for _, op := range []string{keyLastGames, keyTeamAverages, keyRestDays, keyTeamSeasonRecord} {
		s.cache.DeletePrefix(ctx, cacheKey(op, teamID)+"|")
	}
}

func (s *StatsService) loadTeamWindow(ctx context.Context, teamID int64, filter stats.WindowFilter) ([]game.Game, map[int64][]game.Quarter, error) {
	items, err := s.games.ListFinishedByTeam(ctx, game.TeamQuery{
		TeamID: teamID,
		Season: filter.Season,
		Venue:  filter.Venue,
		Limit:  filter.Window,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list team games: %w", err)
	}

	recent := stats.SelectWindow(items, teamID, filter)
	quarters, err := s.quartersFor(ctx, recent)
	if err != nil {
		return nil, nil, err
	}
	return recent, quarters, nil
}

func (s *StatsService) loadMeetings(ctx context.Context, team1ID, team2ID int64, season string) ([]game.Game, map[int64][]game.Quarter, error) {
	items, err := s.games.ListHeadToHead(ctx, game.HeadToHeadQuery{Team1ID: team1ID, Team2ID: team2ID, Season: season})
	if err != nil {
		return nil, nil, fmt.Errorf("list head to head games: %w", err)
	}

	meetings := stats.SelectMeetings(items, team1ID, team2ID, season)
	quarters, err := s.quartersFor(ctx, meetings)
	if err != nil {
		return nil, nil, err
	}
	return meetings, quarters, nil
}

func (s *StatsService) quartersFor(ctx context.Context, games []game.Game) (map[int64][]game.Quarter, error) {
	if len(games) == 0 {
		return map[int64][]game.Quarter{}, nil
	}

	ids := make([]int64, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	quarters, err := s.games.ListQuarters(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list quarters: %w", err)
	}
	return quarters, nil
}

func (s *StatsService) normalizeWindow(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: window must be positive, got %d", ErrInvalidInput, n)
	}
	if n > s.cfg.MaxWindow {
		return s.cfg.MaxWindow, nil
	}
	return n, nil
}

func validateTeamID(teamID int64) error {
	if teamID <= 0 {
		return fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}
	return nil
}

func validatePair(team1ID, team2ID int64, season string) (string, error) {
	if err := validateTeamID(team1ID); err != nil {
		return "", err
	}
	if err := validateTeamID(team2ID); err != nil {
		return "", err
	}
	if team1ID == team2ID {
		return "", fmt.Errorf("%w: head to head needs two different teams", ErrInvalidInput)
	}
	return requiredSeason(season)
}

func requiredSeason(season string) (string, error) {
	season = strings.TrimSpace(season)
	if err := game.ValidateSeason(season); err != nil {
		return "", invalidFilter(err)
	}
	return season, nil
}

func optionalSeason(season string) (string, error) {
	season = strings.TrimSpace(season)
	if season == "" {
		return "", nil
	}
	return requiredSeason(season)
}

func parseVenue(raw string) (game.Venue, error) {
	venue, err := game.ParseVenue(raw)
	if err != nil {
		return game.VenueAny, invalidFilter(err)
	}
	return venue, nil
}

func parseDate(raw string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, raw)
	}
	return day, nil
}

func invalidFilter(err error) error {
	if errors.Is(err, game.ErrInvalidFilter) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return err
}

func sortedQuarters(items []game.Quarter) []game.Quarter {
	out := append([]game.Quarter(nil), items...)
	if out == nil {
		out = []game.Quarter{}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func nonNilGames(items []game.Game) []game.Game {
	if items == nil {
		return []game.Game{}
	}
	return items
}
