package shared

import (
	"context"
	"time"

	"dealerbid/internal/domain/bidrequest"
	"dealerbid/internal/domain/offer"
	"dealerbid/internal/domain/token"
	"dealerbid/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	BidRequests() BidRequestRepository
	Tokens() TokenRepository
	Offers() OfferRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	BidRequestByID(ctx context.Context, id uuid.UUID) (*BidRequestSnapshot, error)
	TokenByValue(ctx context.Context, value string) (*TokenSnapshot, error)
	OfferByID(ctx context.Context, id uuid.UUID) (*OfferSnapshot, error)
	OfferByRequestAndBuyer(ctx context.Context, bidRequestID, buyerID uuid.UUID) (*OfferSnapshot, error)
	CreatorContactByRequestID(ctx context.Context, bidRequestID uuid.UUID) (*CreatorContact, error)
	BuyerContactByID(ctx context.Context, buyerID uuid.UUID) (*BuyerContact, error)
}

type BidRequestRepository interface {
	Create(ctx context.Context, tx db.DBTX, req *bidrequest.BidRequest) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status bidrequest.Status) error
}

type TokenRepository interface {
	Create(ctx context.Context, tx db.DBTX, t *token.SubmissionToken) error
	// Consume flips is_used exactly once: the conditional update succeeds only
	// while the token is unused and unexpired, so concurrent submissions race
	// on the row and all but one lose.
	Consume(ctx context.Context, tx db.DBTX, value string, now time.Time) (*TokenSnapshot, error)
}

type OfferRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *offer.Offer) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status offer.Status) error
	DeclinePendingSiblings(ctx context.Context, tx db.DBTX, bidRequestID, acceptedOfferID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
