package wordlequeue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
)

const metricsService = "river"

// QueueService schedules background wordle work.
type QueueService interface {
	EnqueueScrape(ctx context.Context, since, channelID string) (EnqueueResult, error)
	EnqueueMemberSync(ctx context.Context, guildID string) (EnqueueResult, error)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Options configure the river client.
type Options struct {
	DSN        string
	MaxWorkers int
	// GuildID enables the daily member sync when set.
	GuildID string
}

// Service runs wordle jobs on River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics observability.OperationMetrics
}

// NewService connects a pgx pool for River and registers the wordle workers.
func NewService(ctx context.Context, opts Options, logger *slog.Logger, metrics observability.OperationMetrics, scraper Scraper, syncer MemberSyncer, publisher message.Publisher) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_wordle_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", metricsService)

	config, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	riverConfig := newRiverConfig(opts, ctxLogger, scraper, syncer, publisher)
	client, err := river.NewClient(riverpgxv5.New(pool), riverConfig)
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", metricsService)
	metrics.RecordOperationDuration(ctx, "initialize_service", metricsService, time.Since(start))
	ctxLogger.Info("Wordle queue service initialized")

	return &Service{
		client:  client,
		pool:    pool,
		logger:  logger.With(attr.String("component", "river_queue")),
		metrics: metrics,
	}, nil
}

func newRiverConfig(opts Options, logger *slog.Logger, scraper Scraper, syncer MemberSyncer, publisher message.Publisher) *river.Config {
	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 2
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewScrapeWorker(logger, scraper, publisher))
	river.AddWorker(workers, NewMemberSyncWorker(logger, syncer, publisher))

	cfg := &river.Config{
		Logger: logger,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 1},
			QueueName:          {MaxWorkers: maxWorkers},
		},
		Workers: workers,
	}

	if opts.GuildID != "" {
		guildID := opts.GuildID
		cfg.PeriodicJobs = []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(memberSyncInterval),
				func() (river.JobArgs, *river.InsertOpts) {
					return MemberSyncJob{GuildID: guildID}, insertOpts()
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		}
	}
	return cfg
}

func insertOpts() *river.InsertOpts {
	return &river.InsertOpts{
		Queue: QueueName,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	}
}

// Start starts the River client.
func (s *Service) Start(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "start_service", metricsService)
	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "start_service", metricsService)
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.metrics.RecordOperationSuccess(ctx, "start_service", metricsService)
	s.logger.Info("Wordle queue service started")
	return nil
}

// Stop waits for running jobs and closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "stop_service", metricsService)
	defer s.pool.Close()

	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "stop_service", metricsService)
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.metrics.RecordOperationSuccess(ctx, "stop_service", metricsService)
	s.logger.Info("Wordle queue service stopped")
	return nil
}

// EnqueueScrape queues a scrape of channelID back to since. An identical
// pending scrape is reported as a duplicate instead of inserted twice.
func (s *Service) EnqueueScrape(ctx context.Context, since, channelID string) (EnqueueResult, error) {
	return s.insert(ctx, "enqueue_scrape", ScrapeJob{Since: since, ChannelID: channelID})
}

// EnqueueMemberSync queues a member sync for guildID.
func (s *Service) EnqueueMemberSync(ctx context.Context, guildID string) (EnqueueResult, error) {
	return s.insert(ctx, "enqueue_member_sync", MemberSyncJob{GuildID: guildID})
}

func (s *Service) insert(ctx context.Context, operation string, args river.JobArgs) (EnqueueResult, error) {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, operation, metricsService)

	res, err := s.client.Insert(ctx, args, insertOpts())
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to insert job",
			attr.String("kind", args.Kind()),
			attr.Error(err),
		)
		s.metrics.RecordOperationFailure(ctx, operation, metricsService)
		return EnqueueResult{}, fmt.Errorf("failed to insert %s job: %w", args.Kind(), err)
	}

	s.metrics.RecordOperationSuccess(ctx, operation, metricsService)
	s.metrics.RecordOperationDuration(ctx, operation, metricsService, time.Since(start))
	s.logger.InfoContext(ctx, "Job enqueued",
		attr.String("kind", args.Kind()),
		attr.Int64("job_id", res.Job.ID),
		attr.Bool("duplicate", res.UniqueSkippedAsDuplicate),
		attr.ExtractCorrelationID(ctx),
	)
	return EnqueueResult{JobID: res.Job.ID, Duplicate: res.UniqueSkippedAsDuplicate}, nil
}
