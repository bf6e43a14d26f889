package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/hoop-analytics/internal/config"
	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
	"github.com/riskibarqy/hoop-analytics/internal/domain/league"
	"github.com/riskibarqy/hoop-analytics/internal/infrastructure/cachetier"
	"github.com/riskibarqy/hoop-analytics/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/hoop-analytics/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hoop-analytics/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/hoop-analytics/internal/interfaces/httpapi"
	"github.com/riskibarqy/hoop-analytics/internal/platform/cache"
	"github.com/riskibarqy/hoop-analytics/internal/platform/logging"
	"github.com/riskibarqy/hoop-analytics/internal/platform/resilience"
	"github.com/riskibarqy/hoop-analytics/internal/usecase"
)

// App owns the HTTP server and every resource that must be released on shutdown.
type App struct {
	Server  *http.Server
	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}
	games, leagues, err := a.repositories(ctx, cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	store := a.resultCache(ctx, cfg, logger)

	statsService := usecase.NewStatsService(games, leagues, store, usecase.StatsConfig{
		MaxWindow:      cfg.StatsMaxWindow,
		PrewarmWorkers: cfg.PrewarmWorkers,
	}, logger)

	handler := httpapi.NewHandler(statsService, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

func (a *App) repositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (game.Repository, league.Repository, error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Info("storage driver selected", "driver", config.StorageMemory)
		return memory.NewGameRepository(memory.SeedGames(), memory.SeedQuarters()),
			memory.NewLeagueRepository(memory.SeedLeagues()),
			nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	a.closers = append(a.closers, db.Close)

	breaker := resilience.NewCircuitBreakerFromConfig(resilience.CircuitBreakerConfig{
		Enabled:          cfg.DB.CircuitEnabled,
		FailureThreshold: cfg.DB.CircuitFailureCount,
		OpenTimeout:      cfg.DB.CircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.DB.CircuitHalfOpenMaxReq,
	})
	guard := guarded.NewGuard(cfg.DB.QueryTimeout, breaker, logger)

	logger.Info("storage driver selected",
		"driver", config.StoragePostgres,
		"db_name", dbNameFromURL(cfg.DB.URL),
		"query_timeout", cfg.DB.QueryTimeout.String(),
		"circuit_enabled", cfg.DB.CircuitEnabled,
	)
	return guarded.NewGameRepository(postgres.NewGameRepository(db), guard),
		guarded.NewLeagueRepository(postgres.NewLeagueRepository(db), guard),
		nil
}

// resultCache returns nil when caching is disabled; a nil store passes every
// call straight to its loader.
func (a *App) resultCache(ctx context.Context, cfg config.Config, logger *logging.Logger) *cache.Store {
	if !cfg.Cache.Enabled {
		logger.Info("result cache disabled", "reason", "CACHE_ENABLED=false")
		return nil
	}

	policy := cache.TTLPolicy{
		cache.ClassCatalog:   cfg.Cache.CatalogTTL,
		cache.ClassSchedule:  cfg.Cache.ScheduleTTL,
		cache.ClassAggregate: cfg.Cache.AggregateTTL,
	}
	opts := []cache.Option{cache.WithLogger(logger)}

	if cfg.Redis.Enabled {
		tier := cachetier.NewRedisTier(cachetier.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		a.closers = append(a.closers, tier.Close)
		if err := tier.Ping(ctx); err != nil {
			logger.Warn("redis cache tier unreachable at startup", "addr", cfg.Redis.Addr, "error", err)
		}
		opts = append(opts, cache.WithRemote(tier))
	}

	logger.Info("result cache enabled",
		"catalog_ttl", cfg.Cache.CatalogTTL.String(),
		"schedule_ttl", cfg.Cache.ScheduleTTL.String(),
		"aggregate_ttl", cfg.Cache.AggregateTTL.String(),
		"redis_tier", cfg.Redis.Enabled,
	)
	return cache.NewStore(policy, opts...)
}

// Close releases resources in reverse acquisition order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
