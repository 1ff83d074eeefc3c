package wordleservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	wordlecheckpoint "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/checkpoint"
	"github.com/Black-And-White-Club/wordle-bot/internal/discord"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/internal/results"
)

// ScrapeRequest selects what part of the channel history to ingest.
type ScrapeRequest struct {
	// Since is "all", a Go duration or natural language ("2 weeks ago").
	Since string `json:"since"`
	// ChannelID overrides the configured results channel.
	ChannelID string `json:"channel_id,omitempty"`
}

// ScrapeReport summarizes one scrape run.
type ScrapeReport struct {
	ChannelID     string    `json:"channel_id"`
	Since         time.Time `json:"since"`
	Pages         int       `json:"pages"`
	Messages      int       `json:"messages"`
	Announcements int       `json:"announcements"`
	Recorded      int       `json:"recorded"`
	Unresolved    int       `json:"unresolved"`
	Failed        int       `json:"failed"`
	// Resumed is set when the run continued from a stored checkpoint.
	Resumed bool `json:"resumed"`
	// Complete is false when the run stopped at the page limit; the next
	// run with the same range picks up where this one stopped.
	Complete bool `json:"complete"`
}

// ScrapeResult is ErrNoChannel or wordledomain.ErrInvalidSince on failure.
type ScrapeResult = results.OperationResult[ScrapeReport, error]

// ScrapeChannel walks the channel history from newest to oldest and ingests
// every results post newer than the requested range. Pages are fetched one at
// a time, paced by the batch limiter, and the walk stops at the first message
// older than the cutoff. Progress is checkpointed after each page.
func (s *WordleService) ScrapeChannel(ctx context.Context, req ScrapeRequest) (ScrapeResult, error) {
	return withTelemetry[ScrapeReport, error](s, ctx, "ScrapeChannel", "", func(ctx context.Context) (ScrapeResult, error) {
		channelID := req.ChannelID
		if channelID == "" {
			channelID = s.opts.ChannelID
		}
		if channelID == "" {
			return results.FailureResult[ScrapeReport](ErrNoChannel), nil
		}

		since, err := wordledomain.ParseSince(req.Since, s.now())
		if err != nil {
			return results.FailureResult[ScrapeReport](err), nil
		}

		report, err := s.scrape(ctx, channelID, normalizeRange(req.Since), since)
		if err != nil {
			return ScrapeResult{}, err
		}
		return results.SuccessResult[ScrapeReport, error](report), nil
	})
}

func (s *WordleService) scrape(ctx context.Context, channelID, rangeText string, since time.Time) (ScrapeReport, error) {
	key := wordlecheckpoint.Key(channelID, rangeText)
	cp, err := s.checkpoints.Load(ctx, key)
	if err != nil {
		// Fall back to a full scan.
		s.logger.WarnContext(ctx, "Ignoring unreadable scrape checkpoint",
			attr.ExtractCorrelationID(ctx),
			attr.ChannelID(channelID),
			attr.Error(err),
		)
		cp = nil
	}

	report := ScrapeReport{ChannelID: channelID}
	before := ""
	if cp != nil {
		// Relative ranges keep the cutoff of the run that started them.
		since = cp.Since
		before = cp.Before
		report.Resumed = true
		s.logger.InfoContext(ctx, "Resuming channel scrape",
			attr.ExtractCorrelationID(ctx),
			attr.ChannelID(channelID),
			attr.String("before", before),
			attr.Int("pages_done", cp.Pages),
		)
	}
	report.Since = since

	for {
		if s.opts.MaxPages > 0 && report.Pages >= s.opts.MaxPages {
			s.logger.InfoContext(ctx, "Scrape stopped at page limit",
				attr.ExtractCorrelationID(ctx),
				attr.ChannelID(channelID),
				attr.Int("pages", report.Pages),
			)
			return report, nil
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return report, fmt.Errorf("wait for scrape slot: %w", err)
		}

		page, err := s.discord.ListChannelMessages(ctx, channelID, before, s.opts.PageSize)
		if err != nil {
			return report, fmt.Errorf("fetch history page %d: %w", report.Pages+1, err)
		}
		report.Pages++
		s.metrics.RecordScrapePage(ctx, len(page))

		done, err := s.scrapePage(ctx, page, since, &report)
		if err != nil {
			return report, err
		}
		if len(page) > 0 {
			before = page[len(page)-1].ID
		}

		if done || len(page) < s.opts.PageSize {
			break
		}
		s.saveCheckpoint(ctx, key, channelID, rangeText, before, since, cp, report)
	}

	report.Complete = true
	if err := s.checkpoints.Clear(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "Failed to clear scrape checkpoint",
			attr.ExtractCorrelationID(ctx),
			attr.ChannelID(channelID),
			attr.Error(err),
		)
	}

	s.logger.InfoContext(ctx, "Channel scrape complete",
		attr.ExtractCorrelationID(ctx),
		attr.ChannelID(channelID),
		attr.Int("pages", report.Pages),
		attr.Int("messages", report.Messages),
		attr.Int("announcements", report.Announcements),
		attr.Int("recorded", report.Recorded),
	)
	return report, nil
}

// scrapePage ingests a newest-first page and reports whether the cutoff was
// reached.
func (s *WordleService) scrapePage(ctx context.Context, page []discord.Message, since time.Time, report *ScrapeReport) (bool, error) {
	for _, msg := range page {
		if !since.IsZero() && msg.Timestamp.Before(since) {
			return true, nil
		}
		report.Messages++

		if !wordledomain.IsResultAnnouncement(msg.Author.ID, msg.Author.Bot, msg.Content, s.opts.WordleAppID) {
			continue
		}
		ing, err := s.ingestMessage(ctx, msg)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return false, err
			}
			return false, fmt.Errorf("ingest %s: %w", msg.ID, err)
		}
		report.Announcements++
		report.Recorded += ing.Recorded
		report.Unresolved += ing.Unresolved
		report.Failed += ing.Failed
	}
	return false, nil
}

func (s *WordleService) saveCheckpoint(ctx context.Context, key, channelID, rangeText, before string, since time.Time, prev *wordlecheckpoint.Checkpoint, report ScrapeReport) {
	cp := &wordlecheckpoint.Checkpoint{
		Before:   before,
		Range:    rangeText,
		Since:    since,
		Pages:    report.Pages,
		Messages: report.Messages,
	}
	if prev != nil {
		cp.Pages += prev.Pages
		cp.Messages += prev.Messages
	}
	if err := s.checkpoints.Save(ctx, key, cp); err != nil {
		s.logger.WarnContext(ctx, "Failed to save scrape checkpoint",
			attr.ExtractCorrelationID(ctx),
			attr.ChannelID(channelID),
			attr.Error(err),
		)
	}
}

func normalizeRange(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return wordledomain.SinceAll
	}
	return s
}
