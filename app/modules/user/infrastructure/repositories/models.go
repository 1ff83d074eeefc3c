package userdb

import (
	"time"

	"github.com/uptrace/bun"
)

// PlaceholderName fills every name column of a user created from a bare
// mention before the member sync has seen them.
const PlaceholderName = "unknown"

// User is a Discord guild member known to the bot. Users are never deleted.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        string    `bun:"user_id,unique,notnull" json:"user_id"`
	Username      string    `bun:"username,notnull" json:"username"`
	GuildName     string    `bun:"guild_name,notnull" json:"guild_name"`
	GlobalName    string    `bun:"global_name,notnull" json:"global_name"`
	IsPlaceholder bool      `bun:"is_placeholder,notnull,default:false" json:"is_placeholder"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// DisplayName is the name shown on leaderboards.
func (u *User) DisplayName() string {
	switch {
	case u.GuildName != "" && u.GuildName != PlaceholderName:
		return u.GuildName
	case u.GlobalName != "" && u.GlobalName != PlaceholderName:
		return u.GlobalName
	case u.Username != "" && u.Username != PlaceholderName:
		return u.Username
	}
	return u.UserID
}

// NewPlaceholder builds the row stored for a mentioned id the bot has not
// synced yet.
func NewPlaceholder(userID string) *User {
	return &User{
		UserID:        userID,
		Username:      PlaceholderName,
		GuildName:     PlaceholderName,
		GlobalName:    PlaceholderName,
		IsPlaceholder: true,
	}
}
