package wordlequeue

import (
	"context"
	"errors"
	"testing"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"

	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	wordleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/application"
	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	"github.com/Black-And-White-Club/wordle-bot/internal/results"
	userevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/user"
	wordleevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/wordle"
)

func scrapeJob(since, channelID string) *river.Job[ScrapeJob] {
	return &river.Job[ScrapeJob]{
		JobRow: &rivertype.JobRow{ID: 42, Attempt: 1},
		Args:   ScrapeJob{Since: since, ChannelID: channelID},
	}
}

func TestScrapeWorker_Complete(t *testing.T) {
	scraper := &FakeScraper{ScrapeChannelFn: func(ctx context.Context, req wordleservice.ScrapeRequest) (wordleservice.ScrapeResult, error) {
		return results.SuccessResult[wordleservice.ScrapeReport, error](wordleservice.ScrapeReport{
			ChannelID:     "c1",
			Pages:         3,
			Messages:      250,
			Announcements: 12,
			Recorded:      40,
			Unresolved:    2,
			Complete:      true,
		}), nil
	}}
	pub := &FakePublisher{}
	w := NewScrapeWorker(observability.NoOpLogger, scraper, pub)

	require.NoError(t, w.Work(context.Background(), scrapeJob("2 weeks ago", "c1")))

	require.Equal(t, []wordleservice.ScrapeRequest{{Since: "2 weeks ago", ChannelID: "c1"}}, scraper.Requests)
	got := decodeOnly[wordleevents.ScrapeCompletedPayloadV1](t, pub, wordleevents.ScrapeCompletedV1)
	require.Equal(t, wordleevents.ScrapeCompletedPayloadV1{
		ChannelID:     "c1",
		Since:         "2 weeks ago",
		Pages:         3,
		Messages:      250,
		Announcements: 12,
		Recorded:      40,
		Unresolved:    2,
		Complete:      true,
	}, got)
}

func TestScrapeWorker_IncompleteSnoozes(t *testing.T) {
	scraper := &FakeScraper{ScrapeChannelFn: func(ctx context.Context, req wordleservice.ScrapeRequest) (wordleservice.ScrapeResult, error) {
		return results.SuccessResult[wordleservice.ScrapeReport, error](wordleservice.ScrapeReport{ChannelID: "c1", Pages: 5}), nil
	}}
	pub := &FakePublisher{}
	w := NewScrapeWorker(observability.NoOpLogger, scraper, pub)

	err := w.Work(context.Background(), scrapeJob("all", ""))

	var snooze *rivertype.JobSnoozeError
	require.ErrorAs(t, err, &snooze)
	require.Equal(t, resumeDelay, snooze.Duration)
	require.False(t, decodeOnly[wordleevents.ScrapeCompletedPayloadV1](t, pub, wordleevents.ScrapeCompletedV1).Complete)
}

func TestScrapeWorker_FailureCancels(t *testing.T) {
	scraper := &FakeScraper{ScrapeChannelFn: func(ctx context.Context, req wordleservice.ScrapeRequest) (wordleservice.ScrapeResult, error) {
		return results.FailureResult[wordleservice.ScrapeReport](wordledomain.ErrInvalidSince), nil
	}}
	pub := &FakePublisher{}
	w := NewScrapeWorker(observability.NoOpLogger, scraper, pub)

	err := w.Work(context.Background(), scrapeJob("banana", "c1"))

	var cancel *rivertype.JobCancelError
	require.ErrorAs(t, err, &cancel)
	require.ErrorIs(t, err, wordledomain.ErrInvalidSince)

	got := decodeOnly[wordleevents.ScrapeFailedPayloadV1](t, pub, wordleevents.ScrapeFailedV1)
	require.Equal(t, "banana", got.Since)
	require.Equal(t, wordledomain.ErrInvalidSince.Error(), got.Reason)
	require.Empty(t, pub.Messages[wordleevents.ScrapeCompletedV1])
}

func TestScrapeWorker_ErrorRetries(t *testing.T) {
	boom := errors.New("discord unavailable")
	scraper := &FakeScraper{ScrapeChannelFn: func(ctx context.Context, req wordleservice.ScrapeRequest) (wordleservice.ScrapeResult, error) {
		return wordleservice.ScrapeResult{}, boom
	}}
	pub := &FakePublisher{}
	w := NewScrapeWorker(observability.NoOpLogger, scraper, pub)

	err := w.Work(context.Background(), scrapeJob("all", "c1"))

	require.ErrorIs(t, err, boom)
	var cancel *rivertype.JobCancelError
	require.False(t, errors.As(err, &cancel))
	require.Empty(t, pub.Messages)
}

func TestScrapeWorker_PublishErrorRetries(t *testing.T) {
	scraper := &FakeScraper{ScrapeChannelFn: func(ctx context.Context, req wordleservice.ScrapeRequest) (wordleservice.ScrapeResult, error) {
		return results.SuccessResult[wordleservice.ScrapeReport, error](wordleservice.ScrapeReport{Complete: true}), nil
	}}
	pub := &FakePublisher{Err: errors.New("nats down")}
	w := NewScrapeWorker(observability.NoOpLogger, scraper, pub)

	require.Error(t, w.Work(context.Background(), scrapeJob("all", "c1")))
}

func TestMemberSyncWorker(t *testing.T) {
	job := &river.Job[MemberSyncJob]{JobRow: &rivertype.JobRow{ID: 7}, Args: MemberSyncJob{GuildID: "g1"}}

	t.Run("success publishes counts", func(t *testing.T) {
		pub := &FakePublisher{}
		syncer := &FakeMemberSyncer{SyncMembersFn: func(ctx context.Context, guildID string) (userservice.SyncMembersResult, error) {
			require.Equal(t, "g1", guildID)
			return results.SuccessResult[userservice.SyncReport, error](userservice.SyncReport{GuildID: "g1", Created: 3, Updated: 1, Skipped: 2}), nil
		}}

		require.NoError(t, NewMemberSyncWorker(observability.NoOpLogger, syncer, pub).Work(context.Background(), job))

		got := decodeOnly[userevents.MembersSyncedPayloadV1](t, pub, userevents.MembersSyncedV1)
		require.Equal(t, userevents.MembersSyncedPayloadV1{GuildID: "g1", Created: 3, Updated: 1, Skipped: 2}, got)
	})

	t.Run("failure cancels", func(t *testing.T) {
		pub := &FakePublisher{}
		syncer := &FakeMemberSyncer{SyncMembersFn: func(ctx context.Context, guildID string) (userservice.SyncMembersResult, error) {
			return results.FailureResult[userservice.SyncReport](userservice.ErrNoGuild), nil
		}}

		err := NewMemberSyncWorker(observability.NoOpLogger, syncer, pub).Work(context.Background(), job)

		var cancel *rivertype.JobCancelError
		require.ErrorAs(t, err, &cancel)
		got := decodeOnly[userevents.MembersSyncFailedPayloadV1](t, pub, userevents.MembersSyncFailedV1)
		require.Equal(t, userservice.ErrNoGuild.Error(), got.Reason)
	})

	t.Run("error retries", func(t *testing.T) {
		syncer := &FakeMemberSyncer{SyncMembersFn: func(ctx context.Context, guildID string) (userservice.SyncMembersResult, error) {
			return userservice.SyncMembersResult{}, context.DeadlineExceeded
		}}

		err := NewMemberSyncWorker(observability.NoOpLogger, syncer, &FakePublisher{}).Work(context.Background(), job)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestNewRiverConfig(t *testing.T) {
	cfg := newRiverConfig(Options{MaxWorkers: 4, GuildID: "g1"}, observability.NoOpLogger, &FakeScraper{}, &FakeMemberSyncer{}, &FakePublisher{})
	require.Equal(t, 4, cfg.Queues[QueueName].MaxWorkers)
	require.Len(t, cfg.PeriodicJobs, 1)

	cfg = newRiverConfig(Options{}, observability.NoOpLogger, &FakeScraper{}, &FakeMemberSyncer{}, &FakePublisher{})
	require.Equal(t, 2, cfg.Queues[QueueName].MaxWorkers)
	require.Empty(t, cfg.PeriodicJobs)
}
