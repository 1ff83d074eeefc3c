package wordleservice

import (
	"context"
	"time"

	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/internal/discord"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/internal/results"
)

// RecordedEntry is one outcome written by an ingestion.
type RecordedEntry struct {
	UserID             string `json:"user_id"`
	Solved             bool   `json:"solved"`
	Score              *int   `json:"score,omitempty"`
	PlaceholderCreated bool   `json:"placeholder_created,omitempty"`
}

// IngestReport summarizes one announcement. Recorded + Unresolved + Failed
// equals the number of mentions in the post.
type IngestReport struct {
	MessageID  string          `json:"message_id"`
	ChannelID  string          `json:"channel_id"`
	PuzzleDate time.Time       `json:"puzzle_date"`
	Groups     int             `json:"groups"`
	Recorded   int             `json:"recorded"`
	Unresolved int             `json:"unresolved"`
	Failed     int             `json:"failed"`
	Entries    []RecordedEntry `json:"entries,omitempty"`
}

// IngestResult is ErrNotAnnouncement on failure.
type IngestResult = results.OperationResult[IngestReport, error]

// IngestAnnouncement records every outcome in a results post. Mentions are
// handled one by one in document order; a mention that cannot be resolved
// or stored is counted and skipped, and everything already written stays.
func (s *WordleService) IngestAnnouncement(ctx context.Context, msg discord.Message) (IngestResult, error) {
	return withTelemetry[IngestReport, error](s, ctx, "IngestAnnouncement", msg.ID, func(ctx context.Context) (IngestResult, error) {
		if !wordledomain.IsResultAnnouncement(msg.Author.ID, msg.Author.Bot, msg.Content, s.opts.WordleAppID) {
			return results.FailureResult[IngestReport](ErrNotAnnouncement), nil
		}
		report, err := s.ingestMessage(ctx, msg)
		if err != nil {
			return IngestResult{}, err
		}
		return results.SuccessResult[IngestReport, error](report), nil
	})
}

func (s *WordleService) ingestMessage(ctx context.Context, msg discord.Message) (IngestReport, error) {
	ann := wordledomain.ParseAnnouncement(msg.Content, msg.Timestamp, s.opts.Location)
	report := IngestReport{
		MessageID:  msg.ID,
		ChannelID:  msg.ChannelID,
		PuzzleDate: ann.PuzzleDate,
		Groups:     len(ann.Groups),
	}

	for _, group := range ann.Groups {
		for _, token := range group.Identities {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			s.ingestIdentity(ctx, msg, ann.PuzzleDate, group, token, &report)
		}
	}

	s.metrics.RecordOutcomesRecorded(ctx, report.Recorded)
	if report.Failed > 0 {
		s.metrics.RecordOutcomeFailures(ctx, report.Failed)
	}
	s.logger.InfoContext(ctx, "Ingested results announcement",
		attr.ExtractCorrelationID(ctx),
		attr.MessageID(msg.ID),
		attr.Date("puzzle_date", ann.PuzzleDate),
		attr.Int("recorded", report.Recorded),
		attr.Int("unresolved", report.Unresolved),
		attr.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *WordleService) ingestIdentity(
	ctx context.Context,
	msg discord.Message,
	puzzleDate time.Time,
	group wordledomain.ResultGroup,
	token wordledomain.IdentityToken,
	report *IngestReport,
) {
	res, err := s.resolver.ResolveIdentity(ctx, token)
	if err != nil {
		report.Failed++
		s.logger.ErrorContext(ctx, "Failed to resolve mention",
			attr.ExtractCorrelationID(ctx),
			attr.MessageID(msg.ID),
			attr.String("mention", token.String()),
			attr.Error(err),
		)
		return
	}
	if res.Kind == userservice.Unresolved {
		report.Unresolved++
		return
	}

	outcome := &wordledb.Outcome{
		UserID:     res.User.UserID,
		PuzzleDate: puzzleDate,
		Solved:     group.Solved,
		Score:      group.Score,
		MessageID:  msg.ID,
	}
	if err := s.repo.UpsertOutcome(ctx, nil, outcome); err != nil {
		report.Failed++
		s.logger.ErrorContext(ctx, "Failed to store outcome",
			attr.ExtractCorrelationID(ctx),
			attr.MessageID(msg.ID),
			attr.UserID(res.User.UserID),
			attr.Error(err),
		)
		return
	}

	report.Recorded++
	report.Entries = append(report.Entries, RecordedEntry{
		UserID:             res.User.UserID,
		Solved:             group.Solved,
		Score:              group.Score,
		PlaceholderCreated: res.Created,
	})
}
