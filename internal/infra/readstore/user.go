package readstore

import (
	"context"

	"dealerbid/internal/infra"
	"dealerbid/internal/infra/db"
	"dealerbid/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

// FindAuthorizedByEmail also returns the stored password hash for the login flow.
func (r *UserReadStore) FindAuthorizedByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	query := `
		SELECT id, email, role, dealership, phone, is_active, password_hash
		FROM users
		WHERE email = $1
	`

	var (
		view queries.AuthorizedUserView
		hash string
	)
	err := r.db.QueryRow(ctx, query, email).Scan(
		&view.ID, &view.Email, &view.Role, &view.Dealership, &view.Phone, &view.IsActive, &hash,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	return &view, hash, nil
}

func (r *UserReadStore) FindAuthorizedByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	query := `
		SELECT id, email, role, dealership, phone, is_active
		FROM users
		WHERE id = $1
	`

	var view queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Email, &view.Role, &view.Dealership, &view.Phone, &view.IsActive,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &view, nil
}
