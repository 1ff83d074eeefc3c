package wordlequeue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/riverqueue/river"

	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	wordleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/application"
	"github.com/Black-And-White-Club/wordle-bot/internal/eventbus"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
	userevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/user"
	wordleevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/wordle"
)

// Scraper is the part of the wordle service the scrape worker drives.
type Scraper interface {
	ScrapeChannel(ctx context.Context, req wordleservice.ScrapeRequest) (wordleservice.ScrapeResult, error)
}

// MemberSyncer is the part of the user service the sync worker drives.
type MemberSyncer interface {
	SyncMembers(ctx context.Context, guildID string) (userservice.SyncMembersResult, error)
}

// ScrapeWorker runs channel scrapes. A scrape that stops at the page limit
// snoozes and resumes from its checkpoint on the next attempt.
type ScrapeWorker struct {
	river.WorkerDefaults[ScrapeJob]
	scraper   Scraper
	publisher message.Publisher
	logger    *slog.Logger
}

func NewScrapeWorker(logger *slog.Logger, scraper Scraper, publisher message.Publisher) *ScrapeWorker {
	return &ScrapeWorker{scraper: scraper, publisher: publisher, logger: logger}
}

func (w *ScrapeWorker) Timeout(*river.Job[ScrapeJob]) time.Duration { return scrapeTimeout }

func (w *ScrapeWorker) Work(ctx context.Context, job *river.Job[ScrapeJob]) error {
	logger := w.logger.With(
		attr.Int64("job_id", job.ID),
		attr.Int("attempt", job.Attempt),
		attr.String("since", job.Args.Since),
		attr.ChannelID(job.Args.ChannelID),
	)
	logger.InfoContext(ctx, "Processing scrape job")

	result, err := w.scraper.ScrapeChannel(ctx, wordleservice.ScrapeRequest{
		Since:     job.Args.Since,
		ChannelID: job.Args.ChannelID,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Scrape job failed", attr.Error(err))
		return err
	}

	if result.IsFailure() {
		reason := (*result.Failure).Error()
		logger.WarnContext(ctx, "Scrape job rejected", attr.String("reason", reason))
		if pubErr := eventbus.PublishEvent(ctx, w.publisher, wordleevents.ScrapeFailedV1, wordleevents.ScrapeFailedPayloadV1{
			Since:     job.Args.Since,
			ChannelID: job.Args.ChannelID,
			Reason:    reason,
		}); pubErr != nil {
			logger.ErrorContext(ctx, "Failed to publish scrape failure", attr.Error(pubErr))
		}
		// Retrying cannot fix a bad range or a missing channel.
		return river.JobCancel(*result.Failure)
	}

	report := result.Success
	if err := eventbus.PublishEvent(ctx, w.publisher, wordleevents.ScrapeCompletedV1, wordleevents.ScrapeCompletedPayloadV1{
		ChannelID:     report.ChannelID,
		Since:         job.Args.Since,
		Pages:         report.Pages,
		Messages:      report.Messages,
		Announcements: report.Announcements,
		Recorded:      report.Recorded,
		Unresolved:    report.Unresolved,
		Failed:        report.Failed,
		Complete:      report.Complete,
	}); err != nil {
		return fmt.Errorf("failed to publish scrape completion: %w", err)
	}

	if !report.Complete {
		logger.InfoContext(ctx, "Scrape paused at page limit", attr.Int("pages", report.Pages))
		return river.JobSnooze(resumeDelay)
	}

	logger.InfoContext(ctx, "Scrape job completed", attr.Int("recorded", report.Recorded))
	return nil
}

// MemberSyncWorker refreshes the user table from the guild member list.
type MemberSyncWorker struct {
	river.WorkerDefaults[MemberSyncJob]
	syncer    MemberSyncer
	publisher message.Publisher
	logger    *slog.Logger
}

func NewMemberSyncWorker(logger *slog.Logger, syncer MemberSyncer, publisher message.Publisher) *MemberSyncWorker {
	return &MemberSyncWorker{syncer: syncer, publisher: publisher, logger: logger}
}

func (w *MemberSyncWorker) Timeout(*river.Job[MemberSyncJob]) time.Duration { return memberSyncTimeout }

func (w *MemberSyncWorker) Work(ctx context.Context, job *river.Job[MemberSyncJob]) error {
	logger := w.logger.With(
		attr.Int64("job_id", job.ID),
		attr.String("guild_id", job.Args.GuildID),
	)

	result, err := w.syncer.SyncMembers(ctx, job.Args.GuildID)
	if err != nil {
		logger.ErrorContext(ctx, "Member sync job failed", attr.Error(err))
		return err
	}

	if result.IsFailure() {
		reason := (*result.Failure).Error()
		if pubErr := eventbus.PublishEvent(ctx, w.publisher, userevents.MembersSyncFailedV1, userevents.MembersSyncFailedPayloadV1{
			GuildID: job.Args.GuildID,
			Reason:  reason,
		}); pubErr != nil {
			logger.ErrorContext(ctx, "Failed to publish member sync failure", attr.Error(pubErr))
		}
		return river.JobCancel(*result.Failure)
	}

	report := result.Success
	if err := eventbus.PublishEvent(ctx, w.publisher, userevents.MembersSyncedV1, userevents.MembersSyncedPayloadV1{
		GuildID: report.GuildID,
		Created: report.Created,
		Updated: report.Updated,
		Skipped: report.Skipped,
		Failed:  report.Failed,
	}); err != nil {
		return fmt.Errorf("failed to publish member sync result: %w", err)
	}

	logger.InfoContext(ctx, "Member sync job completed",
		attr.Int("created", report.Created),
		attr.Int("updated", report.Updated),
	)
	return nil
}
