package request

import (
	"dealerbid/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBidRequestRequest struct {
	Make     string      `json:"make" binding:"required"`
	Model    string      `json:"model" binding:"required"`
	Year     int         `json:"year" binding:"required"`
	VIN      string      `json:"vin,omitempty"`
	Mileage  *int32      `json:"mileage,omitempty"`
	BuyerIDs []uuid.UUID `json:"buyer_ids,omitempty"`
}

func (r CreateBidRequestRequest) ToParams() commands.CreateBidRequestParams {
	return commands.CreateBidRequestParams{
		Make:     r.Make,
		Model:    r.Model,
		Year:     r.Year,
		VIN:      r.VIN,
		Mileage:  r.Mileage,
		BuyerIDs: r.BuyerIDs,
	}
}

type InviteBuyersRequest struct {
	BuyerIDs []uuid.UUID `json:"buyer_ids" binding:"required,min=1"`
}
