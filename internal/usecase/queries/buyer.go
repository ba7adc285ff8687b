package queries

import (
	"context"

	"github.com/google/uuid"
)

// BuyerListItem is what sellers see when picking invitees.
type BuyerListItem struct {
	ID         uuid.UUID `json:"id"`
	Dealership string    `json:"dealership"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
}

type BuyerReadStore interface {
	ListActiveBuyers(ctx context.Context) ([]*BuyerListItem, error)
}

type BuyerQueries interface {
	ListBuyers(ctx context.Context) ([]*BuyerListItem, error)
}

type buyerQueriesImpl struct {
	store BuyerReadStore
}

func NewBuyerQueries(store BuyerReadStore) BuyerQueries {
	return &buyerQueriesImpl{store: store}
}

func (q *buyerQueriesImpl) ListBuyers(ctx context.Context) ([]*BuyerListItem, error) {
	return q.store.ListActiveBuyers(ctx)
}
