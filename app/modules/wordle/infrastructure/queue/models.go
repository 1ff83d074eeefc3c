package wordlequeue

import "time"

const (
	// QueueName is the dedicated river queue for wordle jobs.
	QueueName = "wordle"

	scrapeTimeout     = 30 * time.Minute
	memberSyncTimeout = 5 * time.Minute

	// resumeDelay is how long an unfinished scrape waits before the next
	// slice of history is fetched.
	resumeDelay = 10 * time.Second

	memberSyncInterval = 24 * time.Hour
)

// ScrapeJob walks a channel's history back to Since.
type ScrapeJob struct {
	Since     string `json:"since" river:"unique"`
	ChannelID string `json:"channel_id" river:"unique"`
}

// Kind returns the job type identifier for River
func (ScrapeJob) Kind() string { return "wordle_scrape" }

// MemberSyncJob upserts every member of a guild.
type MemberSyncJob struct {
	GuildID string `json:"guild_id" river:"unique"`
}

// Kind returns the job type identifier for River
func (MemberSyncJob) Kind() string { return "wordle_member_sync" }

// EnqueueResult describes an inserted (or deduplicated) job.
type EnqueueResult struct {
	JobID int64
	// Duplicate is set when an identical job was already pending and no new
	// row was inserted.
	Duplicate bool
}
