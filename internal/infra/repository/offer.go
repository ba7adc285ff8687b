package repository

import (
	"context"

	"dealerbid/internal/domain/offer"
	"dealerbid/internal/infra"
	"dealerbid/internal/infra/db"

	"github.com/google/uuid"
)

type OfferRepository struct{}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{}
}

func (r *OfferRepository) Create(ctx context.Context, tx db.DBTX, o *offer.Offer) (uuid.UUID, error) {
	query := `
		INSERT INTO bid_responses (id, bid_request_id, buyer_id, offer_amount_cents, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		o.ID(), o.BidRequestID(), o.BuyerID(), o.Amount().Cents(), o.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create offer", err)
	}

	return id, nil
}

func (r *OfferRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status offer.Status) error {
	query := `
		UPDATE bid_responses
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update offer status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}

	return nil
}

// DeclinePendingSiblings closes out the losing offers once one is accepted.
func (r *OfferRepository) DeclinePendingSiblings(ctx context.Context, tx db.DBTX, bidRequestID, acceptedOfferID uuid.UUID) error {
	query := `
		UPDATE bid_responses
		SET status = 'declined', updated_at = now()
		WHERE bid_request_id = $1 AND id <> $2 AND status = 'pending'
	`

	if _, err := tx.Exec(ctx, query, bidRequestID, acceptedOfferID); err != nil {
		return infra.WrapRepoErr("failed to decline sibling offers", err)
	}

	return nil
}
