package response

import (
	"dealerbid/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBidRequestResponse struct {
	ID uuid.UUID `json:"id"`
}

type BidRequestListResponse struct {
	Items      []*queries.BidRequestListItem `json:"items"`
	NextCursor string                        `json:"next_cursor,omitempty"`
}
