package wordleservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	wordlecheckpoint "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/checkpoint"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/Black-And-White-Club/wordle-bot/internal/discord"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/internal/results"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const serviceName = "WordleService"

// IdentityResolver maps a mention to a stored user.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token wordledomain.IdentityToken) (userservice.Resolution, error)
}

// ChannelClient is the part of the Discord API the wordle module uses.
type ChannelClient interface {
	ListChannelMessages(ctx context.Context, channelID, before string, limit int) ([]discord.Message, error)
	CreateMessage(ctx context.Context, channelID string, msg discord.OutgoingMessage) (*discord.Message, error)
}

// Options are the channel settings ingestion runs against.
type Options struct {
	ChannelID   string
	WordleAppID string
	Location    *time.Location
	PageSize    int
	MaxPages    int
	// BatchDelay is the minimum gap between two history pages.
	BatchDelay time.Duration
}

// OptionsFromConfig reads Options out of the application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ChannelID:   cfg.Discord.ChannelID,
		WordleAppID: cfg.Discord.WordleAppID,
		Location:    cfg.Location(),
		PageSize:    cfg.Scrape.PageSize,
		MaxPages:    cfg.Scrape.MaxPages,
		BatchDelay:  cfg.Scrape.BatchDelay,
	}
}

// WordleService ingests results posts into the outcome store.
type WordleService struct {
	repo        wordledb.Repository
	resolver    IdentityResolver
	discord     ChannelClient
	checkpoints wordlecheckpoint.Store
	opts        Options
	limiter     *rate.Limiter
	logger      *slog.Logger
	metrics     observability.WordleMetrics
	tracer      trace.Tracer
	now         func() time.Time
}

func NewWordleService(
	repo wordledb.Repository,
	resolver IdentityResolver,
	client ChannelClient,
	checkpoints wordlecheckpoint.Store,
	opts Options,
	logger *slog.Logger,
	metrics observability.WordleMetrics,
	tracer trace.Tracer,
) *WordleService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.PageSize <= 0 || opts.PageSize > discord.MaxMessagesPerPage {
		opts.PageSize = discord.MaxMessagesPerPage
	}
	if checkpoints == nil {
		checkpoints = wordlecheckpoint.NewMemoryStore()
	}

	limit := rate.Inf
	if opts.BatchDelay > 0 {
		limit = rate.Every(opts.BatchDelay)
	}

	return &WordleService{
		repo:        repo,
		resolver:    resolver,
		discord:     client,
		checkpoints: checkpoints,
		opts:        opts,
		limiter:     rate.NewLimiter(limit, 1),
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		now:         time.Now,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *WordleService,
	ctx context.Context,
	operationName string,
	messageID string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("message_id", messageID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.MessageID(messageID),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.MessageID(messageID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.MessageID(messageID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.MessageID(messageID),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.MessageID(messageID),
			attr.ExtractCorrelationID(ctx),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}
