package wordleservice

import (
	"context"

	"github.com/Black-And-White-Club/wordle-bot/internal/discord"
)

// Service is the wordle module's application API.
type Service interface {
	IngestAnnouncement(ctx context.Context, msg discord.Message) (IngestResult, error)
	ScrapeChannel(ctx context.Context, req ScrapeRequest) (ScrapeResult, error)
	Reply(ctx context.Context, report IngestReport) error
}

var _ Service = (*WordleService)(nil)
