package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types (CQRS separation)
type BidRequestSnapshot struct {
	ID             uuid.UUID
	VehicleSummary string
	Status         string
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
}

type TokenSnapshot struct {
	Value        string
	BidRequestID uuid.UUID
	BuyerID      uuid.UUID
	ExpiresAt    time.Time
	IsUsed       bool
	UsedAt       *time.Time
}

type OfferSnapshot struct {
	ID           uuid.UUID
	BidRequestID uuid.UUID
	BuyerID      uuid.UUID
	AmountCents  int64
	Status       string
	CreatedAt    time.Time
}

type CreatorContact struct {
	UserID     uuid.UUID
	Email      string
	Phone      string
	Dealership string
}

type BuyerContact struct {
	UserID     uuid.UUID
	Email      string
	Phone      string
	Dealership string
}
