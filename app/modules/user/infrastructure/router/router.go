package userrouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	userhandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/handlers"
	"github.com/Black-And-White-Club/wordle-bot/internal/eventbus"
	"github.com/Black-And-White-Club/wordle-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	userevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/user"
)

// UserRouter handles routing for user module events.
type UserRouter struct {
	logger   *slog.Logger
	Router   *message.Router
	eventBus eventbus.EventBus
	tracer   trace.Tracer
	metrics  observability.OperationMetrics
}

// NewUserRouter creates a new UserRouter.
func NewUserRouter(logger *slog.Logger, router *message.Router, eventBus eventbus.EventBus, tracer trace.Tracer, metrics observability.OperationMetrics) *UserRouter {
	return &UserRouter{
		logger:   logger,
		Router:   router,
		eventBus: eventBus,
		tracer:   tracer,
		metrics:  metrics,
	}
}

// Configure registers the user handlers.
func (r *UserRouter) Configure(_ context.Context, handlers userhandlers.Handlers) error {
	deps := handlerDeps{
		router:   r.Router,
		eventBus: r.eventBus,
		logger:   r.logger,
		tracer:   r.tracer,
		metrics:  r.metrics,
	}

	registerHandler(deps, userevents.MembersSyncRequestedV1, handlers.HandleMembersSyncRequested)
	return nil
}

type handlerDeps struct {
	router   *message.Router
	eventBus eventbus.EventBus
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  observability.OperationMetrics
}

// registerHandler registers a pure transformation-pattern handler with typed payload
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "user." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.eventBus,
		"", // Watermill reads topic from message metadata when empty
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
