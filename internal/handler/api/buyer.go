package api

import (
	"net/http"

	"dealerbid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BuyerHandler struct {
	buyerQueries queries.BuyerQueries
}

func NewBuyerHandler(buyerQueries queries.BuyerQueries) *BuyerHandler {
	return &BuyerHandler{
		buyerQueries: buyerQueries,
	}
}

// @Summary List buyers
// @Description List active buyer dealerships available for invitation
// @Tags buyers
// @Security BearerAuth
// @Produce json
// @Success 200 {array} queries.BuyerListItem
// @Failure 401 {object} map[string]string
// @Router /buyers [get]
func (h *BuyerHandler) List(c *gin.Context) {
	buyers, err := h.buyerQueries.ListBuyers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, buyers)
}
