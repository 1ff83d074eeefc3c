// Package wordleevents holds the result ingestion topics and payloads.
package wordleevents

import "time"

const (
	// ResultsScrapeRequestedV1 enqueues a channel history scrape.
	ResultsScrapeRequestedV1 = "wordle.results.scrape.requested.v1"
	ScrapeQueuedV1           = "wordle.results.scrape.queued.v1"
	ScrapeFailedV1           = "wordle.results.scrape.failed.v1"
	// ScrapeCompletedV1 is published by the scrape job when a run ends.
	ScrapeCompletedV1 = "wordle.results.scrape.completed.v1"

	// ResultsAnnouncedV1 carries one live results post from the frontend.
	ResultsAnnouncedV1    = "wordle.results.announced.v1"
	ResultsRecordedV1     = "wordle.results.recorded.v1"
	ResultsIngestFailedV1 = "wordle.results.ingest.failed.v1"
)

type ScrapeRequestedPayloadV1 struct {
	Since       string `json:"since"`
	ChannelID   string `json:"channel_id,omitempty"`
	RequestedBy string `json:"requested_by,omitempty"`
}

type ScrapeQueuedPayloadV1 struct {
	Since     string `json:"since"`
	ChannelID string `json:"channel_id,omitempty"`
	JobID     int64  `json:"job_id"`
	// Duplicate is set when an identical scrape was already queued.
	Duplicate bool `json:"duplicate,omitempty"`
}

type ScrapeFailedPayloadV1 struct {
	Since     string `json:"since"`
	ChannelID string `json:"channel_id,omitempty"`
	Reason    string `json:"reason"`
}

type ScrapeCompletedPayloadV1 struct {
	ChannelID     string `json:"channel_id"`
	Since         string `json:"since"`
	Pages         int    `json:"pages"`
	Messages      int    `json:"messages"`
	Announcements int    `json:"announcements"`
	Recorded      int    `json:"recorded"`
	Unresolved    int    `json:"unresolved"`
	Failed        int    `json:"failed"`
	Complete      bool   `json:"complete"`
}

// ResultsAnnouncedPayloadV1 is a Discord message as relayed by the frontend.
type ResultsAnnouncedPayloadV1 struct {
	MessageID string    `json:"message_id"`
	ChannelID string    `json:"channel_id"`
	GuildID   string    `json:"guild_id,omitempty"`
	AuthorID  string    `json:"author_id"`
	AuthorBot bool      `json:"author_bot"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type RecordedEntryV1 struct {
	UserID             string `json:"user_id"`
	Solved             bool   `json:"solved"`
	Score              *int   `json:"score,omitempty"`
	PlaceholderCreated bool   `json:"placeholder_created,omitempty"`
}

type ResultsRecordedPayloadV1 struct {
	MessageID  string            `json:"message_id"`
	ChannelID  string            `json:"channel_id"`
	PuzzleDate string            `json:"puzzle_date"`
	Recorded   int               `json:"recorded"`
	Unresolved int               `json:"unresolved"`
	Failed     int               `json:"failed"`
	Entries    []RecordedEntryV1 `json:"entries,omitempty"`
}

type ResultsIngestFailedPayloadV1 struct {
	MessageID string `json:"message_id"`
	ChannelID string `json:"channel_id,omitempty"`
	Reason    string `json:"reason"`
}
