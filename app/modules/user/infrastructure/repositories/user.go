package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Impl implements Repository using bun.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new user repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) GetUserByUserID(ctx context.Context, db bun.IDB, userID string) (*User, error) {
	if db == nil {
		db = r.db
	}
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("userdb.GetUserByUserID: %w", err)
	}
	return user, nil
}

func (r *Impl) ListUsersByIDs(ctx context.Context, db bun.IDB, userIDs []string) ([]*User, error) {
	if db == nil {
		db = r.db
	}
	if len(userIDs) == 0 {
		return []*User{}, nil
	}
	var users []*User
	err := db.NewSelect().
		Model(&users).
		Where("user_id IN (?)", bun.In(userIDs)).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("userdb.ListUsersByIDs: %w", err)
	}
	return users, nil
}

func (r *Impl) FindUserByDisplayName(ctx context.Context, db bun.IDB, name string) (*User, error) {
	if db == nil {
		db = r.db
	}
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("is_placeholder = FALSE").
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("guild_name = ?", name).
				WhereOr("username = ?", name).
				WhereOr("global_name = ?", name)
		}).
		OrderExpr("CASE WHEN guild_name = ? THEN 0 WHEN username = ? THEN 1 ELSE 2 END", name, name).
		Order("user_id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("userdb.FindUserByDisplayName: %w", err)
	}
	return user, nil
}

func (r *Impl) ListUsersWithOutcomes(ctx context.Context, db bun.IDB) ([]*User, error) {
	if db == nil {
		db = r.db
	}
	var users []*User
	err := db.NewSelect().
		Model(&users).
		Where("EXISTS (SELECT 1 FROM wordle_outcomes AS wo WHERE wo.user_id = u.user_id)").
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("userdb.ListUsersWithOutcomes: %w", err)
	}
	return users, nil
}

func (r *Impl) CreatePlaceholder(ctx context.Context, db bun.IDB, userID string) (*User, bool, error) {
	if db == nil {
		db = r.db
	}
	user := NewPlaceholder(userID)
	err := db.NewInsert().
		Model(user).
		On("CONFLICT (user_id) DO NOTHING").
		Returning("*").
		Scan(ctx)
	if err == nil {
		return user, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("userdb.CreatePlaceholder: %w", err)
	}

	// Conflict: someone already owns the id.
	existing, err := r.GetUserByUserID(ctx, db, userID)
	if err != nil {
		return nil, false, fmt.Errorf("userdb.CreatePlaceholder: %w", err)
	}
	return existing, false, nil
}

func (r *Impl) UpsertUser(ctx context.Context, db bun.IDB, user *User) (bool, error) {
	if db == nil {
		db = r.db
	}
	now := time.Now().UTC()
	user.IsPlaceholder = false
	user.UpdatedAt = now
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}

	// xmax is zero only on rows this statement inserted.
	var inserted bool
	err := db.NewInsert().
		Model(user).
		On("CONFLICT (user_id) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("guild_name = EXCLUDED.guild_name").
		Set("global_name = EXCLUDED.global_name").
		Set("is_placeholder = FALSE").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("id, created_at, (xmax = 0) AS inserted").
		Scan(ctx, &user.ID, &user.CreatedAt, &inserted)
	if err != nil {
		return false, fmt.Errorf("userdb.UpsertUser: %w", err)
	}
	return inserted, nil
}
