package userservice

import (
	"context"

	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
)

// Service is the user module's application API.
type Service interface {
	ResolveIdentity(ctx context.Context, token wordledomain.IdentityToken) (Resolution, error)
	SyncMembers(ctx context.Context, guildID string) (SyncMembersResult, error)
	GetUser(ctx context.Context, userID string) (UserResult, error)
	ListActiveUsers(ctx context.Context) ([]*userdb.User, error)
}

var _ Service = (*UserService)(nil)
