package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pickem-league/pickem-api/external/espn"
	"github.com/pickem-league/pickem-api/internal/config"
	"github.com/pickem-league/pickem-api/internal/domain/lineup"
	"github.com/pickem-league/pickem-api/internal/domain/player"
	"github.com/pickem-league/pickem-api/internal/domain/user"
	"github.com/pickem-league/pickem-api/internal/domain/week"
	"github.com/pickem-league/pickem-api/internal/infrastructure/repository/memory"
	"github.com/pickem-league/pickem-api/internal/infrastructure/repository/postgres"
	"github.com/pickem-league/pickem-api/internal/interfaces/httpapi"
	"github.com/pickem-league/pickem-api/internal/platform/cache"
	"github.com/pickem-league/pickem-api/internal/platform/logging"
	"github.com/pickem-league/pickem-api/internal/platform/resilience"
	"github.com/pickem-league/pickem-api/internal/usecase"
)

type repositories struct {
	weekRepo   week.Repository
	lineupRepo lineup.Repository
	playerRepo player.Repository
	userRepo   user.Repository
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var teamsCache *cache.Store
	if cfg.CacheEnabled {
		teamsCache = cache.NewStore(cfg.CacheTTL)
	}

	usecaseLogger := logging.Default()

	provider := espn.NewClient(espn.ClientConfig{
		BaseURL:    cfg.ESPNBaseURL,
		Timeout:    cfg.ESPNTimeout,
		MaxRetries: cfg.ESPNMaxRetries,
		Logger:     usecaseLogger,
		CircuitBreaker: resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		}),
		TeamsCache: teamsCache,
	})

	weekSvc := usecase.NewWeekService(repos.weekRepo)
	responseSvc := usecase.NewResponseService(repos.weekRepo)
	answerSvc := usecase.NewAnswerService(repos.weekRepo, repos.userRepo, provider, usecaseLogger)
	lineupSvc := usecase.NewLineupService(repos.weekRepo, repos.lineupRepo, repos.playerRepo, provider)
	scoringSvc := usecase.NewScoringService(repos.lineupRepo, repos.playerRepo, provider, usecaseLogger)
	scoringSvc.SetWorkerCount(cfg.ScoringWorkers)
	nflSvc := usecase.NewNFLService(provider)

	if cfg.SeasonYearOverride > 0 && cfg.SeasonTypeOverride > 0 {
		season := usecase.SeasonInfo{Year: cfg.SeasonYearOverride, Type: cfg.SeasonTypeOverride}
		scoringSvc.SetSeasonOverride(season)
		nflSvc.SetSeasonOverride(season)
	}

	handler := httpapi.NewHandler(weekSvc, responseSvc, answerSvc, lineupSvc, scoringSvc, nflSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, func() error, error) {
	noop := func() error { return nil }

	if !cfg.DBEnabled {
		logger.Info("using in-memory repositories with seed data")
		return repositories{
			weekRepo:   memory.NewWeekRepository(),
			lineupRepo: memory.NewLineupRepository(),
			playerRepo: memory.NewPlayerRepository(memory.SeedPlayers()),
			userRepo:   memory.NewUserRepositoryWithSeed(memory.SeedUsers()),
		}, noop, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, err
	}

	if err := postgres.BootstrapSeed(context.Background(), db); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	logger.Info("using postgres repositories", "db", dbNameFromURL(cfg.DBURL))
	return repositories{
		weekRepo:   postgres.NewWeekRepository(db),
		lineupRepo: postgres.NewLineupRepository(db),
		playerRepo: postgres.NewPlayerRepository(db),
		userRepo:   postgres.NewUserRepository(db),
	}, db.Close, nil
}
