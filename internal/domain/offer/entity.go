package offer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyResolved = errors.New("offer is already accepted or declined")
)

// Offer is one buyer's monetary bid recorded against a bid request.
// At most one offer exists per (bid_request_id, buyer_id) pair; the storage
// layer enforces this with a uniqueness constraint on top of the token's
// single-use semantics.
type Offer struct {
	id           uuid.UUID
	bidRequestID uuid.UUID
	buyerID      uuid.UUID
	amount       Amount
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

func NewOffer(bidRequestID, buyerID uuid.UUID, amount Amount) *Offer {
	return &Offer{
		id:           uuid.New(),
		bidRequestID: bidRequestID,
		buyerID:      buyerID,
		amount:       amount,
		status:       StatusPending,
	}
}

func ReconstructOffer(
	id, bidRequestID, buyerID uuid.UUID,
	amount Amount,
	status Status,
	createdAt, updatedAt time.Time,
) *Offer {
	return &Offer{
		id:           id,
		bidRequestID: bidRequestID,
		buyerID:      buyerID,
		amount:       amount,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (o *Offer) IsPending() bool {
	return o.status == StatusPending
}

func (o *Offer) Accept() error {
	if !o.IsPending() {
		return ErrAlreadyResolved
	}
	o.status = StatusAccepted
	return nil
}

func (o *Offer) Decline() error {
	if !o.IsPending() {
		return ErrAlreadyResolved
	}
	o.status = StatusDeclined
	return nil
}

func (o *Offer) ID() uuid.UUID           { return o.id }
func (o *Offer) BidRequestID() uuid.UUID { return o.bidRequestID }
func (o *Offer) BuyerID() uuid.UUID      { return o.buyerID }
func (o *Offer) Amount() Amount          { return o.amount }
func (o *Offer) Status() Status          { return o.status }
func (o *Offer) CreatedAt() time.Time    { return o.createdAt }
func (o *Offer) UpdatedAt() time.Time    { return o.updatedAt }
