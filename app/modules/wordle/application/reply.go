package wordleservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Black-And-White-Club/wordle-bot/internal/discord"
)

// ReplyColor is the green used on ingestion replies.
const ReplyColor = 5763719

// BuildReply renders the in-channel answer to a results post.
func BuildReply(report IngestReport) discord.OutgoingMessage {
	msg := discord.OutgoingMessage{}
	if report.MessageID != "" {
		msg.MessageReference = &discord.MessageReference{MessageID: report.MessageID}
	}

	if report.Recorded == 0 {
		msg.Embeds = []discord.Embed{{
			Title:       "No New Wordles found",
			Description: "No changes or additions were made.",
			Color:       ReplyColor,
		}}
		return msg
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Wordle date: %s", report.PuzzleDate.Format("02/01/2006"))
	for _, e := range report.Entries {
		score := "X"
		if e.Score != nil {
			score = fmt.Sprint(*e.Score)
		}
		fmt.Fprintf(&b, "\n- [%s] <@%s>", score, e.UserID)
	}

	msg.Embeds = []discord.Embed{{
		Title:       "New Wordle added to Database",
		Description: b.String(),
		Color:       ReplyColor,
	}}
	return msg
}

// Reply posts BuildReply(report) to the channel the announcement came from.
func (s *WordleService) Reply(ctx context.Context, report IngestReport) error {
	channelID := report.ChannelID
	if channelID == "" {
		channelID = s.opts.ChannelID
	}
	out := BuildReply(report)
	out.Embeds[0].Timestamp = s.now().UTC().Format(time.RFC3339)

	if _, err := s.discord.CreateMessage(ctx, channelID, out); err != nil {
		return fmt.Errorf("reply to %s: %w", report.MessageID, err)
	}
	return nil
}
