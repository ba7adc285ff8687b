package readstore

import (
	"context"

	"dealerbid/internal/infra"
	"dealerbid/internal/infra/db"
	"dealerbid/internal/usecase/shared"

	"github.com/google/uuid"
)

// CommandReads serves the minimal lookups command handlers need for
// validation, bound to whatever DBTX the caller is running on.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

func (r *CommandReads) BidRequestByID(ctx context.Context, id uuid.UUID) (*shared.BidRequestSnapshot, error) {
	query := `
		SELECT id, vehicle_year || ' ' || vehicle_make || ' ' || vehicle_model, status, created_by, created_at
		FROM bid_requests
		WHERE id = $1
	`

	var snap shared.BidRequestSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.VehicleSummary, &snap.Status, &snap.CreatedBy, &snap.CreatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("bid request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find bid request", err)
	}

	return &snap, nil
}

func (r *CommandReads) TokenByValue(ctx context.Context, value string) (*shared.TokenSnapshot, error) {
	query := `
		SELECT token, bid_request_id, buyer_id, expires_at, is_used, used_at
		FROM submission_tokens
		WHERE token = $1
	`

	var snap shared.TokenSnapshot
	err := r.db.QueryRow(ctx, query, value).Scan(
		&snap.Value, &snap.BidRequestID, &snap.BuyerID,
		&snap.ExpiresAt, &snap.IsUsed, &snap.UsedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("submission token not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find submission token", err)
	}

	return &snap, nil
}

func (r *CommandReads) OfferByID(ctx context.Context, id uuid.UUID) (*shared.OfferSnapshot, error) {
	query := `
		SELECT id, bid_request_id, buyer_id, offer_amount_cents, status, created_at
		FROM bid_responses
		WHERE id = $1
	`

	var snap shared.OfferSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.BidRequestID, &snap.BuyerID,
		&snap.AmountCents, &snap.Status, &snap.CreatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offer", err)
	}

	return &snap, nil
}

func (r *CommandReads) OfferByRequestAndBuyer(ctx context.Context, bidRequestID, buyerID uuid.UUID) (*shared.OfferSnapshot, error) {
	query := `
		SELECT id, bid_request_id, buyer_id, offer_amount_cents, status, created_at
		FROM bid_responses
		WHERE bid_request_id = $1 AND buyer_id = $2
	`

	var snap shared.OfferSnapshot
	err := r.db.QueryRow(ctx, query, bidRequestID, buyerID).Scan(
		&snap.ID, &snap.BidRequestID, &snap.BuyerID,
		&snap.AmountCents, &snap.Status, &snap.CreatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offer", err)
	}

	return &snap, nil
}

func (r *CommandReads) CreatorContactByRequestID(ctx context.Context, bidRequestID uuid.UUID) (*shared.CreatorContact, error) {
	query := `
		SELECT u.id, u.email, COALESCE(u.phone, ''), u.dealership
		FROM bid_requests br
		JOIN users u ON u.id = br.created_by
		WHERE br.id = $1
	`

	var contact shared.CreatorContact
	err := r.db.QueryRow(ctx, query, bidRequestID).Scan(
		&contact.UserID, &contact.Email, &contact.Phone, &contact.Dealership,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("bid request creator not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find creator contact", err)
	}

	return &contact, nil
}

func (r *CommandReads) BuyerContactByID(ctx context.Context, buyerID uuid.UUID) (*shared.BuyerContact, error) {
	query := `
		SELECT id, email, COALESCE(phone, ''), dealership
		FROM users
		WHERE id = $1 AND role = 'buyer' AND is_active = true
	`

	var contact shared.BuyerContact
	err := r.db.QueryRow(ctx, query, buyerID).Scan(
		&contact.UserID, &contact.Email, &contact.Phone, &contact.Dealership,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("buyer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find buyer contact", err)
	}

	return &contact, nil
}
