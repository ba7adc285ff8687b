package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"dealerbid/internal/domain/offer"
	"dealerbid/internal/infra"
	"dealerbid/internal/pkg/clock"
	"dealerbid/internal/pkg/errs"
	"dealerbid/internal/usecase/shared"

	"github.com/google/uuid"
)

// Reasons reported to anonymous callers when a token cannot be used.
// They deliberately avoid leaking whether a token ever existed.
const (
	ReasonInvalidOrExpired = "invalid_or_expired"
	ReasonExpired          = "expired"
	ReasonAlreadyUsed      = "already_used"
)

// TokenValidation is the pre-submission check result shown on the quick-bid form.
type TokenValidation struct {
	IsValid           bool
	Reason            string
	BidRequestID      uuid.UUID
	BuyerID           uuid.UUID
	VehicleSummary    string
	HasExistingBid    bool
	ExistingBidAmount *float64
}

// SubmitBidResult is returned once a bid has been durably recorded.
type SubmitBidResult struct {
	OfferID      uuid.UUID
	BidRequestID uuid.UUID
	Amount       float64
}

// QuickBidCommands implements the anonymous token-gated bid flow: a buyer
// holding an emailed link can inspect and submit exactly one bid without
// logging in.
type QuickBidCommands interface {
	ValidateToken(ctx context.Context, tokenValue string) (*TokenValidation, error)
	SubmitBid(ctx context.Context, tokenValue, rawAmount string) (*SubmitBidResult, error)
}

type quickBidCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewQuickBidCommands(uow shared.UnitOfWork, clk clock.Clock) QuickBidCommands {
	return &quickBidCommandsImpl{uow: uow, clock: clk}
}

func invalidToken(reason string) *TokenValidation {
	return &TokenValidation{IsValid: false, Reason: reason}
}

// ValidateToken never returns a domain error for a bad token; the outcome is
// encoded in the result so the form can render the right message. An error
// means the check itself could not be performed.
func (q *quickBidCommandsImpl) ValidateToken(ctx context.Context, tokenValue string) (*TokenValidation, error) {
	tokenValue = strings.TrimSpace(tokenValue)
	if tokenValue == "" {
		return invalidToken(ReasonInvalidOrExpired), nil
	}

	reads := q.uow.CommandReads()

	snap, err := reads.TokenByValue(ctx, tokenValue)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return invalidToken(ReasonInvalidOrExpired), nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := q.clock.Now()

	if !snap.ExpiresAt.After(now) {
		return invalidToken(ReasonExpired), nil
	}

	if snap.IsUsed {
		existing, err := reads.OfferByRequestAndBuyer(ctx, snap.BidRequestID, snap.BuyerID)
		switch {
		case err == nil:
			result := invalidToken(ReasonAlreadyUsed)
			result.HasExistingBid = true
			if amount, amtErr := offer.NewAmountFromCents(existing.AmountCents); amtErr == nil {
				units := amount.Units()
				result.ExistingBidAmount = &units
			}
			return result, nil
		case infra.IsKind(err, infra.KindNotFound):
			// Token marked used without a recorded bid; treat it as plain invalid
			// rather than hinting at a bid that does not exist.
			slog.Warn("used token has no matching bid",
				"bid_request_id", snap.BidRequestID, "buyer_id", snap.BuyerID)
			return invalidToken(ReasonInvalidOrExpired), nil
		default:
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}

	request, err := reads.BidRequestByID(ctx, snap.BidRequestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return invalidToken(ReasonInvalidOrExpired), nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &TokenValidation{
		IsValid:        true,
		BidRequestID:   snap.BidRequestID,
		BuyerID:        snap.BuyerID,
		VehicleSummary: request.VehicleSummary,
	}, nil
}

// SubmitBid consumes the token and records the bid in one transaction, so two
// racing submissions with the same token cannot both succeed.
func (q *quickBidCommandsImpl) SubmitBid(ctx context.Context, tokenValue, rawAmount string) (*SubmitBidResult, error) {
	tokenValue = strings.TrimSpace(tokenValue)
	if tokenValue == "" {
		return nil, errs.ErrTokenNotFound
	}

	amount, err := offer.ParseAmount(rawAmount)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidAmount)
	}

	var result SubmitBidResult

	err = q.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := q.clock.Now()

		snap, err := tx.Tokens().Consume(ctx, tx.DB(), tokenValue, now)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return q.classifyConsumeFailure(ctx, tx, tokenValue, now)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		o := offer.NewOffer(snap.BidRequestID, snap.BuyerID, amount)
		offerID, err := tx.Offers().Create(ctx, tx.DB(), o)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrDuplicateOffer)
			}
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, errs.ErrBidRequestNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = SubmitBidResult{
			OfferID:      offerID,
			BidRequestID: snap.BidRequestID,
			Amount:       amount.Units(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The bid is committed; notifying the seller must not undo that.
	q.enqueueBidReceived(ctx, &result)

	return &result, nil
}

// classifyConsumeFailure turns a failed conditional consume into the precise
// rejection: the token row is re-read to tell a missing token from an expired
// or already spent one.
func (q *quickBidCommandsImpl) classifyConsumeFailure(ctx context.Context, tx shared.Tx, tokenValue string, now time.Time) error {
	snap, err := tx.Reads().TokenByValue(ctx, tokenValue)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrTokenNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if snap.IsUsed {
		return errs.ErrTokenUsed
	}
	if !snap.ExpiresAt.After(now) {
		return errs.ErrTokenExpired
	}
	return errs.ErrTokenNotFound
}

func (q *quickBidCommandsImpl) enqueueBidReceived(ctx context.Context, result *SubmitBidResult) {
	err := q.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		creator, err := tx.Reads().CreatorContactByRequestID(ctx, result.BidRequestID)
		if err != nil {
			return err
		}
		request, err := tx.Reads().BidRequestByID(ctx, result.BidRequestID)
		if err != nil {
			return err
		}

		payload, err := json.Marshal(map[string]any{
			"type":            "bid_received",
			"bid_request_id":  result.BidRequestID,
			"offer_id":        result.OfferID,
			"recipient_email": creator.Email,
			"recipient_phone": creator.Phone,
			"vehicle_summary": request.VehicleSummary,
			"amount":          result.Amount,
		})
		if err != nil {
			return err
		}

		return tx.Notifications().CreateJob(ctx, tx.DB(), "email", "bid_received", payload, q.clock.Now())
	})
	if err != nil {
		slog.Warn("failed to enqueue bid notification",
			"bid_request_id", result.BidRequestID, "offer_id", result.OfferID, "error", err.Error())
	}
}
