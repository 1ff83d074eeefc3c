package wordledb

import (
	"time"

	"github.com/uptrace/bun"
)

// Outcome is one user's result for one puzzle day. (user_id, puzzle_date) is
// unique; re-ingesting overwrites solved and score.
type Outcome struct {
	bun.BaseModel `bun:"table:wordle_outcomes,alias:wo"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        string    `bun:"user_id,notnull" json:"user_id"`
	PuzzleDate    time.Time `bun:"puzzle_date,type:date,notnull" json:"puzzle_date"`
	Solved        bool      `bun:"solved,notnull" json:"solved"`
	Score         *int      `bun:"score,nullzero" json:"score,omitempty"`
	MessageID     string    `bun:"message_id,notnull,default:''" json:"message_id,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
