package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard"
	"github.com/Black-And-White-Club/wordle-bot/app/modules/user"
	"github.com/Black-And-White-Club/wordle-bot/app/modules/wordle"
	wordlecheckpoint "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/checkpoint"
	wordlequeue "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/queue"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/Black-And-White-Club/wordle-bot/internal/db/bundb"
	"github.com/Black-And-White-Club/wordle-bot/internal/discord"
	"github.com/Black-And-White-Club/wordle-bot/internal/eventbus"
	"github.com/Black-And-White-Club/wordle-bot/internal/httpserver"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/pkg/jwt"
)

// App wires the shared infrastructure and the user, wordle and leaderboard
// modules together.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        *message.Router
	Redis         *redis.Client
	HTTP          *httpserver.Server

	UserModule        *user.Module
	WordleModule      *wordle.Module
	LeaderboardModule *leaderboard.Module

	logger *slog.Logger
	wg     sync.WaitGroup
}

// Initialize connects to every backing service, runs migrations and builds
// the modules.
func (app *App) Initialize(ctx context.Context, cfg *config.Config) error {
	app.Config = cfg
	app.Observability = observability.Init(observability.Config{
		Environment: cfg.Observability.Environment,
		LogLevel:    cfg.Observability.LogLevel,
	})
	app.logger = app.Observability.Logger
	logger := app.logger

	db, err := bundb.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = db

	if err := bundb.MigrateAll(ctx, db, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if _, err := wordlequeue.MigrateRiver(ctx, cfg.Postgres.DSN, wordlequeue.Up, 0, logger); err != nil {
		return err
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS, logger, observability.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = bus

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 30 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create message router: %w", err)
	}
	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)
	metricsBuilder := metrics.NewPrometheusMetricsBuilder(app.Observability.Registry, "wordle_bot", "router")
	metricsBuilder.AddPrometheusRouterMetrics(router)
	app.Router = router

	client := discord.NewClient(cfg.Discord.APIBaseURL, cfg.Discord.Token)
	checkpoints := app.checkpointStore(ctx)

	app.HTTP = httpserver.New(cfg.HTTP, app.Observability.Registry, logger)
	tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL)

	app.UserModule, err = user.NewUserModule(ctx, cfg, app.Observability, db, client, bus, router)
	if err != nil {
		return fmt.Errorf("failed to initialize user module: %w", err)
	}

	app.WordleModule, err = wordle.NewWordleModule(ctx, cfg, app.Observability, db, client, checkpoints,
		app.UserModule.UserService, bus, router, app.HTTP.API(), tokens)
	if err != nil {
		return fmt.Errorf("failed to initialize wordle module: %w", err)
	}

	app.LeaderboardModule, err = leaderboard.NewLeaderboardModule(ctx, cfg, app.Observability, db,
		app.UserModule.UserService, bus, router, app.HTTP.API())
	if err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}

	logger.InfoContext(ctx, "Application initialized")
	return nil
}

// checkpointStore uses Redis when configured; scrape progress otherwise
// lives only as long as the process.
func (app *App) checkpointStore(ctx context.Context) wordlecheckpoint.Store {
	cfg := app.Config.Redis
	if cfg.Addr == "" {
		app.logger.WarnContext(ctx, "Redis not configured, scrape checkpoints are in-memory")
		return wordlecheckpoint.NewMemoryStore()
	}
	app.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return wordlecheckpoint.NewRedisStore(app.Redis)
}

// Run starts the modules, the message router and the HTTP server, and
// blocks until ctx is canceled or one of them fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.wg.Add(3)
	go app.UserModule.Run(ctx, &app.wg)
	go app.WordleModule.Run(ctx, &app.wg)
	go app.LeaderboardModule.Run(ctx, &app.wg)

	errCh := make(chan error, 2)
	go func() {
		if err := app.Router.Run(ctx); err != nil {
			errCh <- fmt.Errorf("message router: %w", err)
		}
	}()
	go func() {
		if err := app.HTTP.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		app.logger.Info("Shutdown requested")
		return nil
	case err := <-errCh:
		app.logger.Error("Component failed", attr.Error(err))
		return err
	}
}

// Close shuts everything down in reverse dependency order.
func (app *App) Close() error {
	var errs []error

	if app.LeaderboardModule != nil {
		errs = append(errs, app.LeaderboardModule.Close())
	}
	if app.WordleModule != nil {
		errs = append(errs, app.WordleModule.Close())
	}
	if app.UserModule != nil {
		errs = append(errs, app.UserModule.Close())
	}
	app.wg.Wait()

	if app.Router != nil {
		if err := app.Router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close router: %w", err))
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}
	}
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	if app.logger != nil {
		app.logger.Info("Application stopped")
	}
	return errors.Join(errs...)
}
