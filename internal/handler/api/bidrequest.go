package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "dealerbid/internal/handler/dto/request"
	resdto "dealerbid/internal/handler/dto/response"
	"dealerbid/internal/handler/middleware"
	"dealerbid/internal/pkg/errs"
	"dealerbid/internal/usecase/commands"
	"dealerbid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BidRequestHandler struct {
	bidRequestCommands commands.BidRequestCommands
	tokenCommands      commands.TokenCommands
	bidRequestQueries  queries.BidRequestQueries
}

func NewBidRequestHandler(
	bidRequestCommands commands.BidRequestCommands,
	tokenCommands commands.TokenCommands,
	bidRequestQueries queries.BidRequestQueries,
) *BidRequestHandler {
	return &BidRequestHandler{
		bidRequestCommands: bidRequestCommands,
		tokenCommands:      tokenCommands,
		bidRequestQueries:  bidRequestQueries,
	}
}

// @Summary Create bid request
// @Description Post a vehicle for bids and optionally invite buyers
// @Tags bid-requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBidRequestRequest true "Bid request"
// @Success 201 {object} resdto.CreateBidRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bid-requests [post]
func (h *BidRequestHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req reqdto.CreateBidRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.bidRequestCommands.Create(c.Request.Context(), userID, req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateBidRequestResponse{ID: id})
}

// @Summary Get bid request
// @Description Get one bid request with its offers
// @Tags bid-requests
// @Security BearerAuth
// @Produce json
// @Param id path string true "Bid request ID"
// @Success 200 {object} queries.BidRequestView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bid-requests/{id} [get]
func (h *BidRequestHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bid request ID"})
		return
	}

	view, err := h.bidRequestQueries.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this bid request"})
		case isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bid request not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List bid requests
// @Description List the caller's bid requests, newest first
// @Tags bid-requests
// @Security BearerAuth
// @Produce json
// @Param after query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BidRequestListResponse
// @Failure 401 {object} map[string]string
// @Router /bid-requests [get]
func (h *BidRequestHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	var after *queries.Cursor
	if raw := c.Query("after"); raw != "" {
		after = &queries.Cursor{After: raw}
	}

	items, next, err := h.bidRequestQueries.ListByCreator(c.Request.Context(), userID, after, limit)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidCursor):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination cursor"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	resp := resdto.BidRequestListResponse{Items: items}
	if next != nil {
		resp.NextCursor = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Invite buyers
// @Description Issue submission tokens for additional buyers on an existing bid request
// @Tags bid-requests
// @Security BearerAuth
// @Accept json
// @Param id path string true "Bid request ID"
// @Param request body reqdto.InviteBuyersRequest true "Buyers to invite"
// @Success 202 "Accepted"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bid-requests/{id}/invites [post]
func (h *BidRequestHandler) InviteBuyers(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bid request ID"})
		return
	}

	var req reqdto.InviteBuyersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.tokenCommands.IssueTokens(c.Request.Context(), userID, role, id, req.BuyerIDs); err != nil {
		switch {
		case errors.Is(err, commands.ErrNotRequestOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to invite buyers on this bid request"})
		case errors.Is(err, errs.ErrBidRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bid request not found"})
		case errors.Is(err, commands.ErrNoBuyersInvited):
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least one buyer is required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusAccepted)
}
