// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/greeniecart/greeniecart-backend/internal/i18n"
	"github.com/greeniecart/greeniecart-backend/internal/services"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListOrders(buyerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"orders": orders})
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(userID, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"order": order})
}

// POST /orders/:id/ship
func (h *OrderHandler) MarkShipped(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.MarkShipped(sellerID, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderShipped),
		"order":   order,
	})
}

// POST /orders/:id/complete
func (h *OrderHandler) MarkCompleted(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.MarkCompleted(buyerID, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderCompleted),
		"order":   order,
	})
}
