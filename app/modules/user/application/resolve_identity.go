package userservice

import (
	"context"
	"errors"
	"fmt"

	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/internal/results"
	"github.com/uptrace/bun"
)

// ResolutionKind says how a mention was matched to a user.
type ResolutionKind string

const (
	ResolvedByID   ResolutionKind = "id"
	ResolvedByName ResolutionKind = "name"
	Unresolved     ResolutionKind = "unresolved"
)

// Resolution is the outcome of resolving one mention. User is set unless
// Kind is Unresolved, in which case Reason says why.
type Resolution struct {
	Kind    ResolutionKind
	User    *userdb.User
	Created bool
	Reason  string
}

// ResolveIdentity maps a mention from a results post to a stored user.
// Numeric ids always resolve, creating a placeholder for unknown ids. Bare
// names resolve only against synced users and never create one.
func (s *UserService) ResolveIdentity(ctx context.Context, token wordledomain.IdentityToken) (Resolution, error) {
	result, err := withTelemetry[Resolution, error](s, ctx, "ResolveIdentity", token.UserID, func(ctx context.Context) (results.OperationResult[Resolution, error], error) {
		return runInTx[Resolution, error](s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[Resolution, error], error) {
			return s.resolveIdentity(ctx, db, token)
		})
	})
	if err != nil {
		return Resolution{}, err
	}

	res := *result.Success
	s.metrics.RecordIdentityResolution(ctx, string(res.Kind))
	return res, nil
}

func (s *UserService) resolveIdentity(ctx context.Context, db bun.IDB, token wordledomain.IdentityToken) (results.OperationResult[Resolution, error], error) {
	switch {
	case token.UserID != "":
		return s.resolveByID(ctx, db, token.UserID)
	case token.Name != "":
		return s.resolveByName(ctx, db, token.Name)
	}
	return results.SuccessResult[Resolution, error](Resolution{Kind: Unresolved, Reason: "malformed token"}), nil
}

func (s *UserService) resolveByID(ctx context.Context, db bun.IDB, userID string) (results.OperationResult[Resolution, error], error) {
	user, err := s.repo.GetUserByUserID(ctx, db, userID)
	if err == nil {
		return results.SuccessResult[Resolution, error](Resolution{Kind: ResolvedByID, User: user}), nil
	}
	if !errors.Is(err, userdb.ErrNotFound) {
		return results.OperationResult[Resolution, error]{}, fmt.Errorf("failed to get user: %w", err)
	}

	user, created, err := s.repo.CreatePlaceholder(ctx, db, userID)
	if err != nil {
		return results.OperationResult[Resolution, error]{}, fmt.Errorf("failed to create placeholder user: %w", err)
	}
	if created {
		s.logger.InfoContext(ctx, "Created placeholder user for unknown mention",
			attr.ExtractCorrelationID(ctx),
			attr.UserID(userID),
		)
	}
	return results.SuccessResult[Resolution, error](Resolution{Kind: ResolvedByID, User: user, Created: created}), nil
}

func (s *UserService) resolveByName(ctx context.Context, db bun.IDB, name string) (results.OperationResult[Resolution, error], error) {
	user, err := s.repo.FindUserByDisplayName(ctx, db, name)
	if err == nil {
		return results.SuccessResult[Resolution, error](Resolution{Kind: ResolvedByName, User: user}), nil
	}
	if !errors.Is(err, userdb.ErrNotFound) {
		return results.OperationResult[Resolution, error]{}, fmt.Errorf("failed to find user by name: %w", err)
	}

	s.logger.WarnContext(ctx, "No user matches mentioned name",
		attr.ExtractCorrelationID(ctx),
		attr.String("name", name),
	)
	return results.SuccessResult[Resolution, error](Resolution{Kind: Unresolved, Reason: fmt.Sprintf("no user named %q", name)}), nil
}
