package api

import (
	"errors"
	"net/http"

	reqdto "dealerbid/internal/handler/dto/request"
	resdto "dealerbid/internal/handler/dto/response"
	"dealerbid/internal/pkg/errs"
	"dealerbid/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// QuickBidHandler serves the unauthenticated token-gated endpoints. The token
// from the invitation link is the only credential.
type QuickBidHandler struct {
	quickBidCommands commands.QuickBidCommands
}

func NewQuickBidHandler(quickBidCommands commands.QuickBidCommands) *QuickBidHandler {
	return &QuickBidHandler{
		quickBidCommands: quickBidCommands,
	}
}

// @Summary Validate a submission token
// @Description Check whether a quick-bid token can still be used and describe the vehicle it is for
// @Tags quick-bid
// @Produce json
// @Param token query string true "Submission token"
// @Success 200 {object} resdto.TokenValidationResponse
// @Failure 500 {object} map[string]string
// @Router /quick-bid [get]
func (h *QuickBidHandler) ValidateToken(c *gin.Context) {
	result, err := h.quickBidCommands.ValidateToken(c.Request.Context(), c.Query("token"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.NewTokenValidationResponse(result))
}

// @Summary Submit a bid
// @Description Record an anonymous bid, consuming the submission token
// @Tags quick-bid
// @Accept json
// @Produce json
// @Param request body reqdto.SubmitBidRequest true "Bid submission"
// @Success 201 {object} resdto.SubmitBidResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /quick-bid [post]
func (h *QuickBidHandler) SubmitBid(c *gin.Context) {
	var req reqdto.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.quickBidCommands.SubmitBid(c.Request.Context(), req.Token, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bid amount"})
		case errors.Is(err, errs.ErrTokenNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		case errors.Is(err, errs.ErrTokenExpired):
			c.JSON(http.StatusGone, gin.H{"error": "This invitation has expired"})
		case errors.Is(err, errs.ErrTokenUsed):
			c.JSON(http.StatusConflict, gin.H{"error": "This invitation has already been used"})
		case errors.Is(err, errs.ErrDuplicateOffer):
			c.JSON(http.StatusConflict, gin.H{"error": "A bid has already been submitted for this request"})
		case errors.Is(err, errs.ErrBidRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bid request not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.NewSubmitBidResponse(result))
}
