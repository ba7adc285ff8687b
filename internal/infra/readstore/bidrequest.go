package readstore

import (
	"context"
	"time"

	"dealerbid/internal/infra"
	"dealerbid/internal/infra/db"
	"dealerbid/internal/usecase/queries"

	"github.com/google/uuid"
)

type BidRequestReadStore struct {
	db db.DBTX
}

func NewBidRequestReadStore(dbtx db.DBTX) *BidRequestReadStore {
	return &BidRequestReadStore{db: dbtx}
}

func (r *BidRequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BidRequestView, error) {
	query := `
		SELECT id, vehicle_make, vehicle_model, vehicle_year, vehicle_vin, vehicle_mileage,
		       status, created_by, created_at, updated_at
		FROM bid_requests
		WHERE id = $1
	`

	var view queries.BidRequestView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.VehicleMake, &view.VehicleModel, &view.VehicleYear,
		&view.VehicleVIN, &view.VehicleMileage,
		&view.Status, &view.CreatedBy, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("bid request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find bid request by ID", err)
	}

	offers, err := r.findOffers(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Offers = offers

	return &view, nil
}

func (r *BidRequestReadStore) findOffers(ctx context.Context, bidRequestID uuid.UUID) ([]queries.OfferView, error) {
	query := `
		SELECT o.id, o.buyer_id, u.dealership, o.offer_amount_cents, o.status, o.created_at
		FROM bid_responses o
		JOIN users u ON u.id = o.buyer_id
		WHERE o.bid_request_id = $1
		ORDER BY o.created_at
	`

	rows, err := r.db.Query(ctx, query, bidRequestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find offers for bid request", err)
	}
	defer rows.Close()

	result := make([]queries.OfferView, 0)
	for rows.Next() {
		var (
			view        queries.OfferView
			amountCents int64
		)
		if err := rows.Scan(&view.ID, &view.BuyerID, &view.BuyerDealership, &amountCents, &view.Status, &view.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer row", err)
		}
		amount := float64(amountCents) / 100.0
		view.Amount = &amount
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offer rows", err)
	}

	return result, nil
}

func (r *BidRequestReadStore) FindByCreatorFirstPage(ctx context.Context, creatorID uuid.UUID, limit int32) ([]*queries.BidRequestListItem, error) {
	query := `
		SELECT br.id,
		       br.vehicle_year || ' ' || br.vehicle_make || ' ' || br.vehicle_model,
		       br.status,
		       (SELECT count(*) FROM bid_responses o WHERE o.bid_request_id = br.id),
		       br.created_at
		FROM bid_requests br
		WHERE br.created_by = $1
		ORDER BY br.created_at DESC, br.id DESC
		LIMIT $2
	`

	return r.scanListItems(ctx, query, creatorID, limit)
}

func (r *BidRequestReadStore) FindByCreatorKeyset(ctx context.Context, creatorID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BidRequestListItem, error) {
	query := `
		SELECT br.id,
		       br.vehicle_year || ' ' || br.vehicle_make || ' ' || br.vehicle_model,
		       br.status,
		       (SELECT count(*) FROM bid_responses o WHERE o.bid_request_id = br.id),
		       br.created_at
		FROM bid_requests br
		WHERE br.created_by = $1 AND (br.created_at, br.id) < ($2, $3)
		ORDER BY br.created_at DESC, br.id DESC
		LIMIT $4
	`

	return r.scanListItems(ctx, query, creatorID, lastCreatedAt, lastID, limit)
}

func (r *BidRequestReadStore) scanListItems(ctx context.Context, query string, args ...any) ([]*queries.BidRequestListItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bid requests", err)
	}
	defer rows.Close()

	result := make([]*queries.BidRequestListItem, 0)
	for rows.Next() {
		item := &queries.BidRequestListItem{}
		if err := rows.Scan(&item.ID, &item.VehicleSummary, &item.Status, &item.OfferCount, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan bid request row", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bid request rows", err)
	}

	return result, nil
}
