package leaderboardservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/domain"
	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/internal/results"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "LeaderboardService"

// UserDirectory is the part of the user module the leaderboard reads.
type UserDirectory interface {
	ListActiveUsers(ctx context.Context) ([]*userdb.User, error)
	GetUser(ctx context.Context, userID string) (userservice.UserResult, error)
}

// LeaderboardService computes rankings and player stats. Nothing it derives
// is stored; every call recomputes from the outcome table.
type LeaderboardService struct {
	outcomes wordledb.Repository
	users    UserDirectory
	loc      *time.Location
	logger   *slog.Logger
	metrics  observability.LeaderboardMetrics
	tracer   trace.Tracer
	now      func() time.Time
}

func NewLeaderboardService(
	outcomes wordledb.Repository,
	users UserDirectory,
	loc *time.Location,
	logger *slog.Logger,
	metrics observability.LeaderboardMetrics,
	tracer trace.Tracer,
) *LeaderboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &LeaderboardService{
		outcomes: outcomes,
		users:    users,
		loc:      loc,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		now:      time.Now,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *LeaderboardService,
	ctx context.Context,
	operationName string,
	subject string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("subject", subject),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("subject", subject),
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
			attr.String("subject", subject),
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
			attr.String("subject", subject),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// globalBounds returns empty Bounds when nothing has been recorded yet.
func (s *LeaderboardService) globalBounds(ctx context.Context) (leaderboarddomain.Bounds, error) {
	start, end, err := s.outcomes.GetGlobalBounds(ctx, nil)
	if errors.Is(err, wordledb.ErrNoOutcomes) {
		return leaderboarddomain.Bounds{}, nil
	}
	if err != nil {
		return leaderboarddomain.Bounds{}, fmt.Errorf("failed to load global bounds: %w", err)
	}
	return leaderboarddomain.Bounds{Start: start, End: end}, nil
}

func toDomain(rows []*wordledb.Outcome) []leaderboarddomain.Outcome {
	out := make([]leaderboarddomain.Outcome, 0, len(rows))
	for _, r := range rows {
		out = append(out, leaderboarddomain.Outcome{
			UserID:     r.UserID,
			PuzzleDate: r.PuzzleDate,
			Solved:     r.Solved,
			Score:      r.Score,
		})
	}
	return out
}
