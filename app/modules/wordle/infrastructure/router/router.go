package wordlerouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	wordlehandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/handlers"
	"github.com/Black-And-White-Club/wordle-bot/internal/eventbus"
	"github.com/Black-And-White-Club/wordle-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	wordleevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/wordle"
)

// WordleRouter handles routing for wordle module events.
type WordleRouter struct {
	logger   *slog.Logger
	Router   *message.Router
	eventBus eventbus.EventBus
	tracer   trace.Tracer
	metrics  observability.OperationMetrics
}

// NewWordleRouter creates a new WordleRouter.
func NewWordleRouter(logger *slog.Logger, router *message.Router, eventBus eventbus.EventBus, tracer trace.Tracer, metrics observability.OperationMetrics) *WordleRouter {
	return &WordleRouter{
		logger:   logger,
		Router:   router,
		eventBus: eventBus,
		tracer:   tracer,
		metrics:  metrics,
	}
}

// Configure registers the wordle handlers on the shared router.
func (r *WordleRouter) Configure(_ context.Context, handlers wordlehandlers.Handlers) error {
	deps := handlerDeps{
		router:   r.Router,
		eventBus: r.eventBus,
		logger:   r.logger,
		tracer:   r.tracer,
		metrics:  r.metrics,
	}

	registerHandler(deps, wordleevents.ResultsAnnouncedV1, handlers.HandleResultsAnnounced)
	registerHandler(deps, wordleevents.ResultsScrapeRequestedV1, handlers.HandleScrapeRequested)
	return nil
}

type handlerDeps struct {
	router   *message.Router
	eventBus eventbus.EventBus
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  observability.OperationMetrics
}

// registerHandler registers a transformation-pattern handler with typed payload
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "wordle." + topic

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
