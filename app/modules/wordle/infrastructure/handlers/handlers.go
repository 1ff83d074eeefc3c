package wordlehandlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	wordleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/application"
	wordlequeue "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/queue"
	"github.com/Black-And-White-Club/wordle-bot/internal/handlerwrapper"
	wordleevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/wordle"
)

// Handlers are the wordle module's event handlers.
type Handlers interface {
	HandleResultsAnnounced(ctx context.Context, payload *wordleevents.ResultsAnnouncedPayloadV1) ([]handlerwrapper.Result, error)
	HandleScrapeRequested(ctx context.Context, payload *wordleevents.ScrapeRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandleHTTPScrape(w http.ResponseWriter, r *http.Request)
	HandleHTTPMemberSync(w http.ResponseWriter, r *http.Request)
}

// JobScheduler queues background jobs.
type JobScheduler interface {
	EnqueueScrape(ctx context.Context, since, channelID string) (wordlequeue.EnqueueResult, error)
	EnqueueMemberSync(ctx context.Context, guildID string) (wordlequeue.EnqueueResult, error)
}

// WordleHandlers handles wordle-related events.
type WordleHandlers struct {
	service wordleservice.Service
	queue   JobScheduler
	guildID string
	logger  *slog.Logger
	now     func() time.Time
}

// NewWordleHandlers creates a new instance of WordleHandlers. guildID is the
// guild admin member syncs run against.
func NewWordleHandlers(service wordleservice.Service, queue JobScheduler, guildID string, logger *slog.Logger) *WordleHandlers {
	return &WordleHandlers{
		service: service,
		queue:   queue,
		guildID: guildID,
		logger:  logger,
		now:     time.Now,
	}
}

var _ Handlers = (*WordleHandlers)(nil)
