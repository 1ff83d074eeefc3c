package wordlehandlers

import (
	"context"
	"time"

	wordleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/application"
	wordlequeue "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/queue"
	"github.com/Black-And-White-Club/wordle-bot/internal/discord"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
)

// FakeService implements wordleservice.Service for handler testing.
type FakeService struct {
	trace []string

	IngestAnnouncementFn func(ctx context.Context, msg discord.Message) (wordleservice.IngestResult, error)
	ScrapeChannelFn      func(ctx context.Context, req wordleservice.ScrapeRequest) (wordleservice.ScrapeResult, error)
	ReplyFn              func(ctx context.Context, report wordleservice.IngestReport) error
}

func (f *FakeService) IngestAnnouncement(ctx context.Context, msg discord.Message) (wordleservice.IngestResult, error) {
	f.trace = append(f.trace, "IngestAnnouncement")
	return f.IngestAnnouncementFn(ctx, msg)
}

func (f *FakeService) ScrapeChannel(ctx context.Context, req wordleservice.ScrapeRequest) (wordleservice.ScrapeResult, error) {
	f.trace = append(f.trace, "ScrapeChannel")
	return f.ScrapeChannelFn(ctx, req)
}

func (f *FakeService) Reply(ctx context.Context, report wordleservice.IngestReport) error {
	f.trace = append(f.trace, "Reply")
	if f.ReplyFn == nil {
		return nil
	}
	return f.ReplyFn(ctx, report)
}

func (f *FakeService) Trace() []string { return f.trace }

// FakeScheduler implements JobScheduler.
type FakeScheduler struct {
	EnqueueScrapeFn     func(ctx context.Context, since, channelID string) (wordlequeue.EnqueueResult, error)
	EnqueueMemberSyncFn func(ctx context.Context, guildID string) (wordlequeue.EnqueueResult, error)
	Calls               [][2]string
	SyncedGuilds        []string
}

func (f *FakeScheduler) EnqueueScrape(ctx context.Context, since, channelID string) (wordlequeue.EnqueueResult, error) {
	f.Calls = append(f.Calls, [2]string{since, channelID})
	return f.EnqueueScrapeFn(ctx, since, channelID)
}

func (f *FakeScheduler) EnqueueMemberSync(ctx context.Context, guildID string) (wordlequeue.EnqueueResult, error) {
	f.SyncedGuilds = append(f.SyncedGuilds, guildID)
	return f.EnqueueMemberSyncFn(ctx, guildID)
}

func newTestHandlers(svc *FakeService, queue *FakeScheduler) *WordleHandlers {
	h := NewWordleHandlers(svc, queue, "guild-1", observability.NoOpLogger)
	h.now = func() time.Time { return time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC) }
	return h
}
