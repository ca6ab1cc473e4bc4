package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/config"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/challenge"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/ladder"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/match"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/prizepool"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/infrastructure/account/supabase"
	cacherepo "github.com/FRBCAPL/FrontRangeHub-sub000/internal/infrastructure/repository/cache"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/infrastructure/repository/memory"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/infrastructure/repository/postgres"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/interfaces/httpapi"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/cache"
	idgen "github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/id"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/logging"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/platform/resilience"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/scheduler"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

// App holds the wired HTTP server and its background dependencies.
type App struct {
	Server    *http.Server
	Scheduler *scheduler.Service

	db     *sqlx.DB
	logger *logging.Logger
}

// New builds repositories, services, and the HTTP server from cfg.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}

	standingRepo, matchRepo, err := a.buildRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var prizeStore *cache.Store[prizepool.Snapshot]
	if cfg.CacheEnabled {
		prizeStore = cache.NewStore[prizepool.Snapshot](cfg.CacheTTL)
	}

	ladderSvc := usecase.NewLadderService(standingRepo, logger)
	matchSvc := usecase.NewMatchService(
		ladderSvc,
		standingRepo,
		matchRepo,
		idgen.NewUUIDGenerator(),
		usecase.MatchServiceConfig{
			Policy:          challenge.Policy{MaxChallengeSpots: cfg.LadderMaxChallengeSpots},
			SmackBackWindow: cfg.LadderSmackBackWindow,
		},
		logger,
	)
	prizeSvc := usecase.NewPrizePoolService(ladderSvc, matchSvc, prizeStore, cfg.MaintenanceWorkers, logger)
	maintenanceSvc := usecase.NewMaintenanceService(ladderSvc, prizeSvc, cfg.MaintenanceWorkers, logger)

	verifier := supabase.NewClient(supabase.ClientConfig{
		BaseURL:   cfg.AuthBaseURL,
		APIKey:    cfg.AuthAPIKey,
		JWTSecret: cfg.AuthJWTSecret,
		Timeout:   cfg.AuthTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AuthCircuitEnabled,
			FailureThreshold: cfg.AuthCircuitFailureCount,
			OpenTimeout:      cfg.AuthCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AuthCircuitHalfOpenMaxRq,
		},
		Logger: logger,
	})

	handler := httpapi.NewHandler(ladderSvc, matchSvc, prizeSvc, maintenanceSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	a.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	if cfg.MaintenanceEnabled {
		sched, err := scheduler.New(logger, 0)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("create scheduler: %w", err)
		}
		if _, err := scheduler.RegisterMaintenance(sched, cfg.MaintenanceCron, maintenanceSvc); err != nil {
			_ = sched.Stop()
			_ = a.Close()
			return nil, fmt.Errorf("register maintenance job: %w", err)
		}
		a.Scheduler = sched
	}

	return a, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config) (ladder.Repository, match.Repository, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		a.db = db

		if cfg.AppEnv == config.EnvDev {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				a.logger.Warn("bootstrap seed failed", "error", err)
			}
		}

		var standings ladder.Repository = postgres.NewStandingRepository(db)
		if cfg.CacheEnabled {
			standings = cacherepo.NewStandingRepository(standings, cache.NewStore[[]ladder.Standing](cfg.CacheTTL))
		}
		a.logger.Info("storage ready", "driver", cfg.StorageDriver, "db_name", dbNameFromURL(cfg.DBURL), "cache", cfg.CacheEnabled)
		return standings, postgres.NewMatchRepository(db), nil
	default:
		a.logger.Info("storage ready", "driver", config.StorageMemory)
		standings := memory.NewStandingRepository(memory.SeedStandings(time.Now().UTC()))
		return standings, memory.NewMatchRepository(nil), nil
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := DatabaseURL(cfg)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Close releases the database pool when one was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}
