package wordlehandlers

import (
	"context"
	"errors"

	wordleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/application"
	"github.com/Black-And-White-Club/wordle-bot/internal/discord"
	"github.com/Black-And-White-Club/wordle-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/internal/puzzledate"
	wordleevents "github.com/Black-And-White-Club/wordle-bot/pkg/events/wordle"
)

const ingestFailedReason = "failed to record results"

// HandleResultsAnnounced ingests a live results post and replies to it in
// the channel. Messages that are not the daily post are dropped.
func (h *WordleHandlers) HandleResultsAnnounced(
	ctx context.Context,
	payload *wordleevents.ResultsAnnouncedPayloadV1,
) ([]handlerwrapper.Result, error) {
	msg := discord.Message{
		ID:        payload.MessageID,
		ChannelID: payload.ChannelID,
		GuildID:   payload.GuildID,
		Author:    discord.User{ID: payload.AuthorID, Bot: payload.AuthorBot},
		Content:   payload.Content,
		Timestamp: payload.CreatedAt,
	}

	result, err := h.service.IngestAnnouncement(ctx, msg)
	if err != nil {
		return []handlerwrapper.Result{{
			Topic: wordleevents.ResultsIngestFailedV1,
			Payload: &wordleevents.ResultsIngestFailedPayloadV1{
				MessageID: payload.MessageID,
				ChannelID: payload.ChannelID,
				Reason:    ingestFailedReason,
			},
		}}, nil
	}

	if result.IsFailure() {
		if errors.Is(*result.Failure, wordleservice.ErrNotAnnouncement) {
			h.logger.DebugContext(ctx, "Ignoring non-announcement message", attr.MessageID(payload.MessageID))
			return nil, nil
		}
		return []handlerwrapper.Result{{
			Topic: wordleevents.ResultsIngestFailedV1,
			Payload: &wordleevents.ResultsIngestFailedPayloadV1{
				MessageID: payload.MessageID,
				ChannelID: payload.ChannelID,
				Reason:    (*result.Failure).Error(),
			},
		}}, nil
	}

	report := *result.Success
	if err := h.service.Reply(ctx, report); err != nil {
		// The outcomes are stored; only the confirmation is lost.
		h.logger.WarnContext(ctx, "Failed to reply to results announcement",
			attr.MessageID(payload.MessageID),
			attr.ChannelID(payload.ChannelID),
			attr.Error(err),
		)
	}

	entries := make([]wordleevents.RecordedEntryV1, 0, len(report.Entries))
	for _, e := range report.Entries {
		entries = append(entries, wordleevents.RecordedEntryV1{
			UserID:             e.UserID,
			Solved:             e.Solved,
			Score:              e.Score,
			PlaceholderCreated: e.PlaceholderCreated,
		})
	}

	return []handlerwrapper.Result{{
		Topic: wordleevents.ResultsRecordedV1,
		Payload: &wordleevents.ResultsRecordedPayloadV1{
			MessageID:  report.MessageID,
			ChannelID:  report.ChannelID,
			PuzzleDate: puzzledate.Key(report.PuzzleDate),
			Recorded:   report.Recorded,
			Unresolved: report.Unresolved,
			Failed:     report.Failed,
			Entries:    entries,
		},
	}}, nil
}
