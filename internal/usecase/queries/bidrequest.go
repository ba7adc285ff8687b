package queries

import (
	"context"
	"time"

	"dealerbid/internal/domain/user"
	"dealerbid/internal/pkg/errs"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BidRequestView struct {
	ID             uuid.UUID   `json:"id"`
	VehicleMake    string      `json:"vehicle_make"`
	VehicleModel   string      `json:"vehicle_model"`
	VehicleYear    int32       `json:"vehicle_year"`
	VehicleVIN     *string     `json:"vehicle_vin,omitempty"`
	VehicleMileage *int32      `json:"vehicle_mileage,omitempty"`
	Status         string      `json:"status"`
	CreatedBy      uuid.UUID   `json:"created_by"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	Offers         []OfferView `json:"offers"`
}

type OfferView struct {
	ID              uuid.UUID `json:"id"`
	BuyerID         uuid.UUID `json:"buyer_id"`
	BuyerDealership string    `json:"buyer_dealership"`
	// Amount is withheld for actors without pricing visibility.
	Amount    *float64  `json:"amount,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type BidRequestListItem struct {
	ID             uuid.UUID `json:"id"`
	VehicleSummary string    `json:"vehicle_summary"`
	Status         string    `json:"status"`
	OfferCount     int32     `json:"offer_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type BidRequestQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BidRequestView, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, after *Cursor, limit int) ([]*BidRequestListItem, *Cursor, error)
}

type BidRequestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BidRequestView, error)
	FindByCreatorFirstPage(ctx context.Context, creatorID uuid.UUID, limit int32) ([]*BidRequestListItem, error)
	FindByCreatorKeyset(ctx context.Context, creatorID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BidRequestListItem, error)
}

var ErrForbidden = errs.New("actor may not view this bid request")

type bidRequestQueriesImpl struct {
	store BidRequestReadStore
}

func NewBidRequestQueries(store BidRequestReadStore) BidRequestQueries {
	return &bidRequestQueriesImpl{store: store}
}

// GetByID applies pricing visibility: offer amounts are shown to the
// request's creator and to administrators only.
func (q *bidRequestQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BidRequestView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if view.CreatedBy != actorID && actorRole != user.RoleAdmin {
		return nil, ErrForbidden
	}

	return view, nil
}

func (q *bidRequestQueriesImpl) ListByCreator(ctx context.Context, creatorID uuid.UUID, after *Cursor, limit int) ([]*BidRequestListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*BidRequestListItem
		err  error
	)

	if after == nil || after.After == "" {
		rows, err = q.store.FindByCreatorFirstPage(ctx, creatorID, int32(limit))
	} else {
		var (
			lastCreatedAt time.Time
			lastID        uuid.UUID
		)
		lastCreatedAt, lastID, err = DecodeAfterCursor(after.After)
		if err != nil {
			return nil, nil, err
		}
		rows, err = q.store.FindByCreatorKeyset(ctx, creatorID, lastCreatedAt, lastID, int32(limit))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) == limit {
		last := rows[len(rows)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}

	return rows, next, nil
}
