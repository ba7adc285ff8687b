package commands

import (
	"context"
	"log/slog"

	"dealerbid/internal/domain/auth"
	"dealerbid/internal/domain/user"
	"dealerbid/internal/pkg/errs"
	"dealerbid/internal/pkg/jwt"
	"dealerbid/internal/pkg/password"
	"dealerbid/internal/usecase/queries"
	"dealerbid/internal/usecase/shared"
)

var ErrInvalidCredentials = errs.New("invalid email or password")

type LoginResult struct {
	Token string
	User  *queries.AuthorizedUserView
}

type AuthCommands interface {
	Login(ctx context.Context, creds auth.Credentials) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow   shared.UnitOfWork
	users queries.UserReadStore
	jwt   *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, users queries.UserReadStore, jwtSvc *jwt.Service) AuthCommands {
	return &authCommandsImpl{uow: uow, users: users, jwt: jwtSvc}
}

// Login deliberately reports one error for unknown emails and wrong
// passwords so the endpoint cannot be used to probe for accounts.
func (a *authCommandsImpl) Login(ctx context.Context, creds auth.Credentials) (*LoginResult, error) {
	view, hash, err := a.users.FindAuthorizedByEmail(ctx, creds.Email().Value())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	if err := password.ComparePassword(hash, creds.Password().Value()); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	if !view.IsActive {
		return nil, queries.ErrUserInactive
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Wrap(err, "stored role is not recognized")
	}

	token, err := a.jwt.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate access token")
	}

	if err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, tx.DB(), view.ID)
	}); err != nil {
		// Login still succeeds; the timestamp is bookkeeping.
		slog.Warn("failed to record last login", "user_id", view.ID, "error", err.Error())
	}

	return &LoginResult{Token: token, User: view}, nil
}
