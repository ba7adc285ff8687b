package api

import (
	"errors"
	"net/http"

	"dealerbid/internal/handler/middleware"
	"dealerbid/internal/pkg/errs"
	"dealerbid/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OfferHandler struct {
	bidRequestCommands commands.BidRequestCommands
}

func NewOfferHandler(bidRequestCommands commands.BidRequestCommands) *OfferHandler {
	return &OfferHandler{
		bidRequestCommands: bidRequestCommands,
	}
}

// @Summary Accept offer
// @Description Accept an offer; remaining pending offers are declined and the request closes
// @Tags offers
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /offers/{id}/accept [post]
func (h *OfferHandler) Accept(c *gin.Context) {
	h.resolve(c, true)
}

// @Summary Decline offer
// @Description Decline an offer; the bid request stays open for others
// @Tags offers
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /offers/{id}/decline [post]
func (h *OfferHandler) Decline(c *gin.Context) {
	h.resolve(c, false)
}

func (h *OfferHandler) resolve(c *gin.Context, accept bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID"})
		return
	}

	if accept {
		err = h.bidRequestCommands.AcceptOffer(c.Request.Context(), userID, role, offerID)
	} else {
		err = h.bidRequestCommands.DeclineOffer(c.Request.Context(), userID, role, offerID)
	}
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrOfferNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		case errors.Is(err, commands.ErrNotRequestOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the requesting seller may resolve offers"})
		case errors.Is(err, errs.ErrBidRequestClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "Bid request is already closed"})
		case errors.Is(err, commands.ErrOfferNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": "Offer is already resolved"})
		case isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
