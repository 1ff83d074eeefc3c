package leaderboardrouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	leaderboardhandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/infrastructure/handlers"
	"github.com/Black-And-White-Club/wordle-bot/internal/eventbus"
	"github.com/Black-And-White-Club/wordle-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	leaderboardevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/leaderboard"
)

// LeaderboardRouter handles routing for leaderboard module events.
type LeaderboardRouter struct {
	logger   *slog.Logger
	Router   *message.Router
	eventBus eventbus.EventBus
	tracer   trace.Tracer
	metrics  observability.OperationMetrics
}

// NewLeaderboardRouter creates a new LeaderboardRouter.
func NewLeaderboardRouter(logger *slog.Logger, router *message.Router, eventBus eventbus.EventBus, tracer trace.Tracer, metrics observability.OperationMetrics) *LeaderboardRouter {
	return &LeaderboardRouter{
		logger:   logger,
		Router:   router,
		eventBus: eventBus,
		tracer:   tracer,
		metrics:  metrics,
	}
}

// Configure registers the leaderboard query handlers.
func (r *LeaderboardRouter) Configure(_ context.Context, handlers leaderboardhandlers.Handlers) error {
	deps := handlerDeps{
		router:   r.Router,
		eventBus: r.eventBus,
		logger:   r.logger,
		tracer:   r.tracer,
		metrics:  r.metrics,
	}

	registerHandler(deps, leaderboardevents.LeaderboardRequestedV1, handlers.HandleLeaderboardRequested)
	registerHandler(deps, leaderboardevents.StatsRequestedV1, handlers.HandleStatsRequested)
	return nil
}

type handlerDeps struct {
	router   *message.Router
	eventBus eventbus.EventBus
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  observability.OperationMetrics
}

// registerHandler wires one typed handler to its request topic.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "leaderboard." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.eventBus,
		"", // topic is read from message metadata
		deps.eventBus,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.metrics,
			handler,
		),
	)
}
