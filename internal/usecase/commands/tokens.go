package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"dealerbid/internal/domain/token"
	"dealerbid/internal/domain/user"
	"dealerbid/internal/infra"
	"dealerbid/internal/pkg/clock"
	"dealerbid/internal/pkg/config"
	"dealerbid/internal/pkg/errs"
	"dealerbid/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNoBuyersInvited = errs.New("at least one buyer must be invited")

// TokenCommands mints the single-use submission tokens that gate anonymous
// quick-bid access, and queues the invitation notifications carrying them.
// Only the request's creator (or an admin) may issue tokens for it.
type TokenCommands interface {
	IssueTokens(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bidRequestID uuid.UUID, buyerIDs []uuid.UUID) error
}

type tokenCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	server config.ServerConfig
	invite config.InviteConfig
}

func NewTokenCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) TokenCommands {
	return &tokenCommandsImpl{
		uow:    uow,
		clock:  clk,
		server: cfg.Server,
		invite: cfg.Invite,
	}
}

type issuedInvite struct {
	tok   *token.SubmissionToken
	buyer *shared.BuyerContact
}

// IssueTokens is a best-effort fan-out: a failure for one buyer is logged and
// skipped so the remaining invitations still go out.
func (t *tokenCommandsImpl) IssueTokens(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bidRequestID uuid.UUID, buyerIDs []uuid.UUID) error {
	if len(buyerIDs) == 0 {
		return ErrNoBuyersInvited
	}

	reads := t.uow.CommandReads()

	request, err := reads.BidRequestByID(ctx, bidRequestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrBidRequestNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if request.CreatedBy != actorID && actorRole != user.RoleAdmin {
		return ErrNotRequestOwner
	}

	now := t.clock.Now()

	issued := make([]issuedInvite, 0, len(buyerIDs))
	for _, buyerID := range buyerIDs {
		buyer, err := reads.BuyerContactByID(ctx, buyerID)
		if err != nil {
			slog.Warn("skipping invite for unknown buyer",
				"bid_request_id", bidRequestID, "buyer_id", buyerID, "error", err.Error())
			continue
		}

		tok, err := token.Issue(bidRequestID, buyerID, now, t.invite.TokenTTL)
		if err != nil {
			slog.Warn("skipping invite, token generation failed",
				"bid_request_id", bidRequestID, "buyer_id", buyerID, "error", err.Error())
			continue
		}

		err = t.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Tokens().Create(ctx, tx.DB(), tok)
		})
		if err != nil {
			slog.Warn("skipping invite, token persistence failed",
				"bid_request_id", bidRequestID, "buyer_id", buyerID, "error", err.Error())
			continue
		}

		issued = append(issued, issuedInvite{tok: tok, buyer: buyer})
	}

	// All surviving tokens are persisted; now queue one invitation each.
	for _, inv := range issued {
		t.enqueueInvitation(ctx, request, inv)
	}

	return nil
}

func (t *tokenCommandsImpl) enqueueInvitation(ctx context.Context, request *shared.BidRequestSnapshot, inv issuedInvite) {
	payload, err := json.Marshal(map[string]any{
		"type":            "buyer_invited",
		"bid_request_id":  request.ID,
		"buyer_id":        inv.buyer.UserID,
		"recipient_email": inv.buyer.Email,
		"recipient_phone": inv.buyer.Phone,
		"vehicle_summary": request.VehicleSummary,
		"submission_url":  t.buildSubmissionURL(request.ID, inv.tok.Value()),
	})
	if err != nil {
		slog.Warn("failed to encode invitation payload", "buyer_id", inv.buyer.UserID, "error", err.Error())
		return
	}

	kind := "email"
	if inv.buyer.Phone != "" {
		kind = "sms"
	}

	err = t.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().CreateJob(ctx, tx.DB(), kind, "buyer_invited", payload, t.clock.Now())
	})
	if err != nil {
		// Invitation delivery is best-effort; the token itself stays valid.
		slog.Warn("failed to enqueue invitation notification",
			"bid_request_id", request.ID, "buyer_id", inv.buyer.UserID, "error", err.Error())
	}
}

func (t *tokenCommandsImpl) buildSubmissionURL(bidRequestID uuid.UUID, tokenValue string) string {
	return fmt.Sprintf("%s/quick-bid/%s?token=%s",
		t.server.PublicOrigin, bidRequestID, url.QueryEscape(tokenValue))
}
