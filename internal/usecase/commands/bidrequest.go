package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	"dealerbid/internal/domain/bidrequest"
	"dealerbid/internal/domain/offer"
	"dealerbid/internal/domain/user"
	"dealerbid/internal/infra"
	"dealerbid/internal/pkg/clock"
	"dealerbid/internal/pkg/errs"
	"dealerbid/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNotRequestOwner = errs.New("only the requesting seller may act on this bid request")
	ErrOfferNotPending = errs.New("offer already resolved")
	ErrRequestNotOpen  = errs.New("bid request no longer accepts resolutions")
)

type CreateBidRequestParams struct {
	Make     string
	Model    string
	Year     int
	VIN      string
	Mileage  *int32
	BuyerIDs []uuid.UUID
}

// BidRequestCommands covers the seller side of the marketplace: posting a
// vehicle for bids and resolving the offers that come back.
type BidRequestCommands interface {
	Create(ctx context.Context, sellerID uuid.UUID, params CreateBidRequestParams) (uuid.UUID, error)
	AcceptOffer(ctx context.Context, actorID uuid.UUID, actorRole user.Role, offerID uuid.UUID) error
	DeclineOffer(ctx context.Context, actorID uuid.UUID, actorRole user.Role, offerID uuid.UUID) error
}

type bidRequestCommandsImpl struct {
	uow    shared.UnitOfWork
	tokens TokenCommands
	clock  clock.Clock
}

func NewBidRequestCommands(uow shared.UnitOfWork, tokens TokenCommands, clk clock.Clock) BidRequestCommands {
	return &bidRequestCommandsImpl{uow: uow, tokens: tokens, clock: clk}
}

func (b *bidRequestCommandsImpl) Create(ctx context.Context, sellerID uuid.UUID, params CreateBidRequestParams) (uuid.UUID, error) {
	vehicle, err := bidrequest.NewVehicle(params.Make, params.Model, params.Year, params.VIN, params.Mileage)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	request := bidrequest.NewBidRequest(vehicle, sellerID)

	var requestID uuid.UUID
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err := tx.BidRequests().Create(ctx, tx.DB(), request)
		if err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		requestID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	if len(params.BuyerIDs) > 0 {
		// The request is committed either way; invitation trouble is logged,
		// not surfaced to the seller.
		if err := b.tokens.IssueTokens(ctx, sellerID, user.RoleSeller, requestID, params.BuyerIDs); err != nil {
			slog.Warn("failed to issue invitations for new bid request",
				"bid_request_id", requestID, "error", err.Error())
		}
	}

	return requestID, nil
}

func (b *bidRequestCommandsImpl) AcceptOffer(ctx context.Context, actorID uuid.UUID, actorRole user.Role, offerID uuid.UUID) error {
	return b.resolveOffer(ctx, actorID, actorRole, offerID, true)
}

func (b *bidRequestCommandsImpl) DeclineOffer(ctx context.Context, actorID uuid.UUID, actorRole user.Role, offerID uuid.UUID) error {
	return b.resolveOffer(ctx, actorID, actorRole, offerID, false)
}

// resolveOffer accepts or declines inside one transaction. Accepting also
// declines every other pending offer and closes the request, so a second
// accept on a sibling cannot slip in between.
func (b *bidRequestCommandsImpl) resolveOffer(ctx context.Context, actorID uuid.UUID, actorRole user.Role, offerID uuid.UUID, accept bool) error {
	var accepted *shared.OfferSnapshot

	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OfferByID(ctx, offerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrOfferNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		request, err := tx.Reads().BidRequestByID(ctx, snap.BidRequestID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrBidRequestNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if request.CreatedBy != actorID && actorRole != user.RoleAdmin {
			return ErrNotRequestOwner
		}
		if request.Status != string(bidrequest.StatusPending) {
			return errs.Mark(ErrRequestNotOpen, errs.ErrBidRequestClosed)
		}
		if snap.Status != string(offer.StatusPending) {
			return ErrOfferNotPending
		}

		if !accept {
			return tx.Offers().UpdateStatus(ctx, tx.DB(), offerID, offer.StatusDeclined)
		}

		if err := tx.Offers().UpdateStatus(ctx, tx.DB(), offerID, offer.StatusAccepted); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Offers().DeclinePendingSiblings(ctx, tx.DB(), snap.BidRequestID, offerID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.BidRequests().UpdateStatus(ctx, tx.DB(), snap.BidRequestID, bidrequest.StatusApproved); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		accepted = snap
		return nil
	})
	if err != nil {
		return err
	}

	if accepted != nil {
		b.enqueueOfferAccepted(ctx, accepted)
	}

	return nil
}

func (b *bidRequestCommandsImpl) enqueueOfferAccepted(ctx context.Context, snap *shared.OfferSnapshot) {
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		buyer, err := tx.Reads().BuyerContactByID(ctx, snap.BuyerID)
		if err != nil {
			return err
		}
		request, err := tx.Reads().BidRequestByID(ctx, snap.BidRequestID)
		if err != nil {
			return err
		}

		payload, err := json.Marshal(map[string]any{
			"type":            "offer_accepted",
			"bid_request_id":  snap.BidRequestID,
			"offer_id":        snap.ID,
			"recipient_email": buyer.Email,
			"recipient_phone": buyer.Phone,
			"vehicle_summary": request.VehicleSummary,
			"amount":          float64(snap.AmountCents) / 100.0,
		})
		if err != nil {
			return err
		}

		return tx.Notifications().CreateJob(ctx, tx.DB(), "email", "offer_accepted", payload, b.clock.Now())
	})
	if err != nil {
		slog.Warn("failed to enqueue offer accepted notification",
			"offer_id", snap.ID, "error", err.Error())
	}
}
