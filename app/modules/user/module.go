package user

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	userhandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/handlers"
	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	userrouter "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/router"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/Black-And-White-Club/wordle-bot/internal/eventbus"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
)

// Module represents the user module.
type Module struct {
	UserService userservice.Service
	UserRouter  *userrouter.UserRouter
	cancelFunc  context.CancelFunc
	logger      *slog.Logger
}

// NewUserModule builds the user service and registers its event handlers.
func NewUserModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	members userservice.MemberLister,
	eventBus eventbus.EventBus,
	router *message.Router,
) (*Module, error) {
	logger := obs.Logger.With("module", "user")
	tracer := obs.Tracer("user")

	logger.InfoContext(ctx, "user.NewUserModule called")

	repo := userdb.NewRepository(db)
	service := userservice.NewUserService(repo, members, logger, obs.Metrics, tracer, db)

	handlers := userhandlers.NewUserHandlers(service, cfg.Discord.GuildID, logger)
	userRouter := userrouter.NewUserRouter(logger, router, eventBus, tracer, obs.Metrics)
	if err := userRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure user router: %w", err)
	}

	return &Module{
		UserService: service,
		UserRouter:  userRouter,
		logger:      logger,
	}, nil
}

// Run keeps the module alive until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting user module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "User module goroutine stopped")
}

// Close stops the user module.
func (m *Module) Close() error {
	m.logger.Info("Stopping user module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.logger.Info("User module stopped")
	return nil
}
