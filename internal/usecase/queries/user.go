package queries

import (
	"context"

	"dealerbid/internal/pkg/errs"

	"github.com/google/uuid"
)

type AuthorizedUserView struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Dealership string    `json:"dealership"`
	Phone      *string   `json:"phone,omitempty"`
	IsActive   bool      `json:"is_active"`
}

type UserReadStore interface {
	FindAuthorizedByEmail(ctx context.Context, email string) (*AuthorizedUserView, string, error)
	FindAuthorizedByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

var (
	ErrUserNotFound = errs.New("user not found")
	ErrUserInactive = errs.New("user account is inactive")
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type userQueriesImpl struct {
	store UserReadStore
}

func NewUserQueries(store UserReadStore) UserQueries {
	return &userQueriesImpl{store: store}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.store.FindAuthorizedByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrUserNotFound)
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}
	return view, nil
}
