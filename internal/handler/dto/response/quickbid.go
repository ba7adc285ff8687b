package response

import (
	"dealerbid/internal/usecase/commands"

	"github.com/google/uuid"
)

type TokenValidationResponse struct {
	IsValid           bool      `json:"is_valid"`
	Reason            string    `json:"reason,omitempty"`
	BidRequestID      uuid.UUID `json:"bid_request_id,omitzero"`
	BuyerID           uuid.UUID `json:"buyer_id,omitzero"`
	VehicleSummary    string    `json:"vehicle_summary,omitempty"`
	HasExistingBid    bool      `json:"has_existing_bid,omitempty"`
	ExistingBidAmount *float64  `json:"existing_bid_amount,omitempty"`
}

func NewTokenValidationResponse(v *commands.TokenValidation) TokenValidationResponse {
	return TokenValidationResponse{
		IsValid:           v.IsValid,
		Reason:            v.Reason,
		BidRequestID:      v.BidRequestID,
		BuyerID:           v.BuyerID,
		VehicleSummary:    v.VehicleSummary,
		HasExistingBid:    v.HasExistingBid,
		ExistingBidAmount: v.ExistingBidAmount,
	}
}

type SubmitBidResponse struct {
	OfferID      uuid.UUID `json:"offer_id"`
	BidRequestID uuid.UUID `json:"bid_request_id"`
	Amount       float64   `json:"amount"`
}

func NewSubmitBidResponse(r *commands.SubmitBidResult) SubmitBidResponse {
	return SubmitBidResponse{
		OfferID:      r.OfferID,
		BidRequestID: r.BidRequestID,
		Amount:       r.Amount,
	}
}
