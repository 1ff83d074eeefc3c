package wordle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	wordleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/application"
	wordlecheckpoint "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/checkpoint"
	wordlehandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/handlers"
	wordlequeue "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/queue"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	wordlerouter "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/router"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/Black-And-White-Club/wordle-bot/internal/eventbus"
	"github.com/Black-And-White-Club/wordle-bot/internal/httpserver"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/pkg/jwt"
)

const queueStopTimeout = 30 * time.Second

// Module represents the wordle module: ingestion, the scrape and member
// sync job queue, and the admin endpoints that feed it.
type Module struct {
	WordleService wordleservice.Service
	WordleRouter  *wordlerouter.WordleRouter
	queue         *wordlequeue.Service
	cancelFunc    context.CancelFunc
	logger        *slog.Logger
}

// NewWordleModule creates a new instance of the wordle module. api may be
// nil, in which case no admin routes are mounted.
func NewWordleModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	client wordleservice.ChannelClient,
	checkpoints wordlecheckpoint.Store,
	users userservice.Service,
	eventBus eventbus.EventBus,
	router *message.Router,
	api chi.Router,
	tokens jwt.Service,
) (*Module, error) {
	logger := obs.Logger.With("module", "wordle")
	tracer := obs.Tracer("wordle")

	logger.InfoContext(ctx, "wordle.NewWordleModule called")

	repo := wordledb.NewRepository(db)
	service := wordleservice.NewWordleService(
		repo,
		users,
		client,
		checkpoints,
		wordleservice.OptionsFromConfig(cfg),
		logger,
		obs.Metrics,
		tracer,
	)

	queue, err := wordlequeue.NewService(ctx, wordlequeue.Options{
		DSN:        cfg.Postgres.DSN,
		MaxWorkers: cfg.River.MaxWorkers,
		GuildID:    cfg.Discord.GuildID,
	}, logger, obs.Metrics, service, users, eventBus)
	if err != nil {
		return nil, fmt.Errorf("failed to create wordle queue: %w", err)
	}

	handlers := wordlehandlers.NewWordleHandlers(service, queue, cfg.Discord.GuildID, logger)

	wordleRouter := wordlerouter.NewWordleRouter(logger, router, eventBus, tracer, obs.Metrics)
	if err := wordleRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure wordle router: %w", err)
	}

	if api != nil {
		api.Route("/admin", func(r chi.Router) {
			r.Use(httpserver.RequireRole(tokens, jwt.RoleAdmin))
			r.Post("/scrape", handlers.HandleHTTPScrape)
			r.Post("/members/sync", handlers.HandleHTTPMemberSync)
		})
	}

	return &Module{
		WordleService: service,
		WordleRouter:  wordleRouter,
		queue:         queue,
		logger:        logger,
	}, nil
}

// Run starts the job queue and blocks until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting wordle module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.queue.Start(ctx); err != nil {
		m.logger.ErrorContext(ctx, "Failed to start wordle queue", attr.Error(err))
		return
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Wordle module goroutine stopped")
}

// Close stops the job queue, waiting for running jobs up to a timeout.
func (m *Module) Close() error {
	m.logger.Info("Stopping wordle module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	ctx, cancel := context.WithTimeout(context.Background(), queueStopTimeout)
	defer cancel()
	if err := m.queue.Stop(ctx); err != nil {
		m.logger.Error("Error stopping wordle queue", attr.Error(err))
		return fmt.Errorf("error stopping queue: %w", err)
	}

	m.logger.Info("Wordle module stopped")
	return nil
}
