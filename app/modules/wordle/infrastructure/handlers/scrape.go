package wordlehandlers

import (
	"context"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	"github.com/Black-And-White-Club/wordle-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
	wordleevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/wordle"
)

const queueFailedReason = "failed to queue scrape"

// HandleScrapeRequested validates the requested range and queues a scrape
// job. The scrape itself reports through ScrapeCompleted.
func (h *WordleHandlers) HandleScrapeRequested(
	ctx context.Context,
	payload *wordleevents.ScrapeRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	since := payload.Since
	if since == "" {
		since = wordledomain.SinceAll
	}

	if _, err := wordledomain.ParseSince(since, h.now()); err != nil {
		return []handlerwrapper.Result{scrapeFailed(payload, since, err.Error())}, nil
	}

	queued, err := h.queue.EnqueueScrape(ctx, since, payload.ChannelID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to queue scrape",
			attr.String("since", since),
			attr.String("requested_by", payload.RequestedBy),
			attr.Error(err),
		)
		return []handlerwrapper.Result{scrapeFailed(payload, since, queueFailedReason)}, nil
	}

	return []handlerwrapper.Result{{
		Topic: wordleevents.ScrapeQueuedV1,
		Payload: &wordleevents.ScrapeQueuedPayloadV1{
			Since:     since,
			ChannelID: payload.ChannelID,
			JobID:     queued.JobID,
			Duplicate: queued.Duplicate,
		},
	}}, nil
}

func scrapeFailed(payload *wordleevents.ScrapeRequestedPayloadV1, since, reason string) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: wordleevents.ScrapeFailedV1,
		Payload: &wordleevents.ScrapeFailedPayloadV1{
			Since:     since,
			ChannelID: payload.ChannelID,
			Reason:    reason,
		},
	}
}
