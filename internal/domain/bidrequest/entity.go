package bidrequest

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyClosed = errors.New("bid request is already closed")
)

// BidRequest is a seller's vehicle listing open for buyer offers.
// Requests follow a soft lifecycle (pending -> approved/declined) and are
// never hard-deleted.
type BidRequest struct {
	id        uuid.UUID
	vehicle   Vehicle
	status    Status
	createdBy uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func NewBidRequest(vehicle Vehicle, createdBy uuid.UUID) *BidRequest {
	return &BidRequest{
		id:        uuid.New(),
		vehicle:   vehicle,
		status:    StatusPending,
		createdBy: createdBy,
	}
}

func ReconstructBidRequest(
	id uuid.UUID,
	vehicle Vehicle,
	status Status,
	createdBy uuid.UUID,
	createdAt, updatedAt time.Time,
) *BidRequest {
	return &BidRequest{
		id:        id,
		vehicle:   vehicle,
		status:    status,
		createdBy: createdBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *BidRequest) IsOpen() bool {
	return b.status == StatusPending
}

// Approve marks the request approved after the seller accepts an offer.
func (b *BidRequest) Approve() error {
	if !b.IsOpen() {
		return ErrAlreadyClosed
	}
	b.status = StatusApproved
	return nil
}

func (b *BidRequest) Decline() error {
	if !b.IsOpen() {
		return ErrAlreadyClosed
	}
	b.status = StatusDeclined
	return nil
}

func (b *BidRequest) ID() uuid.UUID        { return b.id }
func (b *BidRequest) Vehicle() Vehicle     { return b.vehicle }
func (b *BidRequest) Status() Status       { return b.status }
func (b *BidRequest) CreatedBy() uuid.UUID { return b.createdBy }
func (b *BidRequest) CreatedAt() time.Time { return b.createdAt }
func (b *BidRequest) UpdatedAt() time.Time { return b.updatedAt }
