package repository

import (
	"context"
	"time"

	"dealerbid/internal/domain/token"
	"dealerbid/internal/infra"
	"dealerbid/internal/infra/db"
	"dealerbid/internal/usecase/shared"
)

type TokenRepository struct{}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{}
}

func (r *TokenRepository) Create(ctx context.Context, tx db.DBTX, t *token.SubmissionToken) error {
	query := `
		INSERT INTO submission_tokens (token, bid_request_id, buyer_id, expires_at, is_used)
		VALUES ($1, $2, $3, $4, false)
	`

	if _, err := tx.Exec(ctx, query, t.Value(), t.BidRequestID(), t.BuyerID(), t.ExpiresAt()); err != nil {
		return infra.WrapRepoErr("failed to create submission token", err)
	}

	return nil
}

// Consume performs the atomic check-and-set on the is_used flag. The WHERE
// clause rejects expired and already-used rows, so of two racing submissions
// exactly one sees its row come back.
func (r *TokenRepository) Consume(ctx context.Context, tx db.DBTX, value string, now time.Time) (*shared.TokenSnapshot, error) {
	query := `
		UPDATE submission_tokens
		SET is_used = true, used_at = $2
		WHERE token = $1 AND is_used = false AND expires_at > $2
		RETURNING token, bid_request_id, buyer_id, expires_at, is_used, used_at
	`

	var snap shared.TokenSnapshot
	err := tx.QueryRow(ctx, query, value, now).Scan(
		&snap.Value, &snap.BidRequestID, &snap.BuyerID,
		&snap.ExpiresAt, &snap.IsUsed, &snap.UsedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("token not consumable", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to consume submission token", err)
	}

	return &snap, nil
}
