// Package userevents holds the member sync topics and payloads.
package userevents

const (
	MembersSyncRequestedV1 = "wordle.members.sync.requested.v1"
	MembersSyncedV1        = "wordle.members.synced.v1"
	MembersSyncFailedV1    = "wordle.members.sync.failed.v1"
)

// MembersSyncRequestedPayloadV1 asks for a guild member sync. An empty
// GuildID means the configured guild.
type MembersSyncRequestedPayloadV1 struct {
	GuildID     string `json:"guild_id,omitempty"`
	RequestedBy string `json:"requested_by,omitempty"`
}

type MembersSyncedPayloadV1 struct {
	GuildID string `json:"guild_id"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

type MembersSyncFailedPayloadV1 struct {
	GuildID string `json:"guild_id,omitempty"`
	Reason  string `json:"reason"`
}
