package userdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for users.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get* / Find* methods)
//   - other errors: infrastructure failures
//
// Every method accepts an optional bun.IDB so callers can run it inside a
// transaction; nil uses the repository's connection.
type Repository interface {
	GetUserByUserID(ctx context.Context, db bun.IDB, userID string) (*User, error)
	ListUsersByIDs(ctx context.Context, db bun.IDB, userIDs []string) ([]*User, error)
	// FindUserByDisplayName matches guild_name, then username, then
	// global_name exactly. Placeholders never match.
	FindUserByDisplayName(ctx context.Context, db bun.IDB, name string) (*User, error)
	// ListUsersWithOutcomes returns users with at least one recorded result.
	ListUsersWithOutcomes(ctx context.Context, db bun.IDB) ([]*User, error)

	// CreatePlaceholder inserts a placeholder for userID unless the user
	// already exists. created reports whether a row was inserted; the stored
	// row is returned either way.
	CreatePlaceholder(ctx context.Context, db bun.IDB, userID string) (user *User, created bool, err error)
	// UpsertUser writes the synced names and clears the placeholder flag.
	// created reports whether the row is new.
	UpsertUser(ctx context.Context, db bun.IDB, user *User) (created bool, err error)
}
