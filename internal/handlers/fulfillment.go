// internal/handlers/fulfillment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/greeniecart/greeniecart-backend/internal/services"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

type FulfillmentHandler struct {
	fulfillmentService *services.FulfillmentService
}

func NewFulfillmentHandler(fulfillmentService *services.FulfillmentService) *FulfillmentHandler {
	return &FulfillmentHandler{
		fulfillmentService: fulfillmentService,
	}
}

// GET /seller/orders lists the line items of the seller's products across
// all buyers' orders.
func (h *FulfillmentHandler) ListReceived(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.fulfillmentService.ListReceived(sellerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"items": items})
}

// GET /seller/stats
func (h *FulfillmentHandler) Stats(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.fulfillmentService.Stats(sellerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"stats": stats})
}
