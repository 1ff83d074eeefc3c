package userdb

import (
	"context"

	"github.com/uptrace/bun"
)

// FakeRepository is a function-field fake of Repository for tests. Unset
// functions return zero values.
type FakeRepository struct {
	GetUserByUserIDFn       func(ctx context.Context, db bun.IDB, userID string) (*User, error)
	ListUsersByIDsFn        func(ctx context.Context, db bun.IDB, userIDs []string) ([]*User, error)
	FindUserByDisplayNameFn func(ctx context.Context, db bun.IDB, name string) (*User, error)
	ListUsersWithOutcomesFn func(ctx context.Context, db bun.IDB) ([]*User, error)
	CreatePlaceholderFn     func(ctx context.Context, db bun.IDB, userID string) (*User, bool, error)
	UpsertUserFn            func(ctx context.Context, db bun.IDB, user *User) (bool, error)

	trace []string
}

// Trace returns the names of the methods called, in order.
func (f *FakeRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRepository) GetUserByUserID(ctx context.Context, db bun.IDB, userID string) (*User, error) {
	f.record("GetUserByUserID")
	if f.GetUserByUserIDFn != nil {
		return f.GetUserByUserIDFn(ctx, db, userID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) ListUsersByIDs(ctx context.Context, db bun.IDB, userIDs []string) ([]*User, error) {
	f.record("ListUsersByIDs")
	if f.ListUsersByIDsFn != nil {
		return f.ListUsersByIDsFn(ctx, db, userIDs)
	}
	return []*User{}, nil
}

func (f *FakeRepository) FindUserByDisplayName(ctx context.Context, db bun.IDB, name string) (*User, error) {
	f.record("FindUserByDisplayName")
	if f.FindUserByDisplayNameFn != nil {
		return f.FindUserByDisplayNameFn(ctx, db, name)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) ListUsersWithOutcomes(ctx context.Context, db bun.IDB) ([]*User, error) {
	f.record("ListUsersWithOutcomes")
	if f.ListUsersWithOutcomesFn != nil {
		return f.ListUsersWithOutcomesFn(ctx, db)
	}
	return []*User{}, nil
}

func (f *FakeRepository) CreatePlaceholder(ctx context.Context, db bun.IDB, userID string) (*User, bool, error) {
	f.record("CreatePlaceholder")
	if f.CreatePlaceholderFn != nil {
		return f.CreatePlaceholderFn(ctx, db, userID)
	}
	return NewPlaceholder(userID), true, nil
}

func (f *FakeRepository) UpsertUser(ctx context.Context, db bun.IDB, user *User) (bool, error) {
	f.record("UpsertUser")
	if f.UpsertUserFn != nil {
		return f.UpsertUserFn(ctx, db, user)
	}
	return true, nil
}

var _ Repository = (*FakeRepository)(nil)
