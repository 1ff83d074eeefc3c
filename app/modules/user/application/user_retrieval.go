package userservice

import (
	"context"
	"errors"
	"fmt"

	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/internal/results"
)

// UserResult is ErrUserNotFound or ErrInvalidUserID on failure.
type UserResult = results.OperationResult[*userdb.User, error]

// GetUser looks up a single user.
func (s *UserService) GetUser(ctx context.Context, userID string) (UserResult, error) {
	return withTelemetry[*userdb.User, error](s, ctx, "GetUser", userID, func(ctx context.Context) (UserResult, error) {
		if userID == "" {
			return results.FailureResult[*userdb.User](ErrInvalidUserID), nil
		}
		user, err := s.repo.GetUserByUserID(ctx, nil, userID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return results.FailureResult[*userdb.User](ErrUserNotFound), nil
			}
			return UserResult{}, fmt.Errorf("failed to get user: %w", err)
		}
		return results.SuccessResult[*userdb.User, error](user), nil
	})
}

// ListActiveUsers returns every user with at least one recorded result.
func (s *UserService) ListActiveUsers(ctx context.Context) ([]*userdb.User, error) {
	users, err := s.repo.ListUsersWithOutcomes(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ListActiveUsers: %w", err)
	}
	return users, nil
}
