package userhandlers

import (
	"context"

	userservice "github.com/Black-And-White-Club/wordle-bot/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
)

// FakeUserService implements userservice.Service for handler testing.
type FakeUserService struct {
	SyncMembersFn func(ctx context.Context, guildID string) (userservice.SyncMembersResult, error)
	GuildIDs      []string
}

func (f *FakeUserService) ResolveIdentity(ctx context.Context, token wordledomain.IdentityToken) (userservice.Resolution, error) {
	return userservice.Resolution{}, nil
}

func (f *FakeUserService) SyncMembers(ctx context.Context, guildID string) (userservice.SyncMembersResult, error) {
	f.GuildIDs = append(f.GuildIDs, guildID)
	return f.SyncMembersFn(ctx, guildID)
}

func (f *FakeUserService) GetUser(ctx context.Context, userID string) (userservice.UserResult, error) {
	return userservice.UserResult{}, nil
}

func (f *FakeUserService) ListActiveUsers(ctx context.Context) ([]*userdb.User, error) {
	return nil, nil
}
