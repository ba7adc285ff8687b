package repository

import (
	"context"

	"dealerbid/internal/domain/bidrequest"
	"dealerbid/internal/infra"
	"dealerbid/internal/infra/db"

	"github.com/google/uuid"
)

type BidRequestRepository struct{}

func NewBidRequestRepository() *BidRequestRepository {
	return &BidRequestRepository{}
}

func (r *BidRequestRepository) Create(ctx context.Context, tx db.DBTX, req *bidrequest.BidRequest) (uuid.UUID, error) {
	query := `
		INSERT INTO bid_requests (id, vehicle_make, vehicle_model, vehicle_year, vehicle_vin, vehicle_mileage, status, created_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		RETURNING id
	`

	v := req.Vehicle()
	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		req.ID(), v.Make(), v.Model(), v.Year(), v.VIN(), v.Mileage(),
		req.Status().String(), req.CreatedBy(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create bid request", err)
	}

	return id, nil
}

func (r *BidRequestRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status bidrequest.Status) error {
	query := `
		UPDATE bid_requests
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update bid request status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("bid request not found", nil, infra.KindNotFound)
	}

	return nil
}
