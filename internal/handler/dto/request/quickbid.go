package request

// SubmitBidRequest carries the raw amount string; parsing and normalization
// happen in the usecase layer so "25,000" and "$25000.00" both work.
type SubmitBidRequest struct {
	Token  string `json:"token" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}
