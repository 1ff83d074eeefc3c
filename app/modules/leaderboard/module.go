package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	leaderboardservice "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/infrastructure/handlers"
	leaderboardrouter "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/infrastructure/router"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/Black-And-White-Club/wordle-bot/internal/eventbus"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
)

// Module represents the leaderboard module.
type Module struct {
	LeaderboardService leaderboardservice.Service
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
	cancelFunc         context.CancelFunc
	logger             *slog.Logger
}

// NewLeaderboardModule creates a new instance of the Leaderboard module.
func NewLeaderboardModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	users leaderboardservice.UserDirectory,
	eventBus eventbus.EventBus,
	router *message.Router,
	api chi.Router,
) (*Module, error) {
	logger := obs.Logger.With("module", "leaderboard")
	tracer := obs.Tracer("leaderboard")

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule called")

	outcomes := wordledb.NewRepository(db)
	service := leaderboardservice.NewLeaderboardService(outcomes, users, cfg.Location(), logger, obs.Metrics, tracer)

	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, logger)

	leaderboardRouter := leaderboardrouter.NewLeaderboardRouter(logger, router, eventBus, tracer, obs.Metrics)
	if err := leaderboardRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	if api != nil {
		api.Get("/leaderboard/{window}", handlers.HandleHTTPLeaderboard)
		api.Get("/leaderboard/{window}/export.xlsx", handlers.HandleHTTPLeaderboardExport)
		api.Get("/users/{userID}/stats", handlers.HandleHTTPUserStats)
		api.Get("/users/{userID}/chart.png", handlers.HandleHTTPUserChart)
	}

	return &Module{
		LeaderboardService: service,
		LeaderboardRouter:  leaderboardRouter,
		logger:             logger,
	}, nil
}

// Run starts the leaderboard module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close stops the leaderboard module and cleans up resources.
func (m *Module) Close() error {
	m.logger.Info("Stopping leaderboard module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.logger.Info("Leaderboard module stopped")
	return nil
}
