// internal/handlers/checkout.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/greeniecart/greeniecart-backend/internal/i18n"
	"github.com/greeniecart/greeniecart-backend/internal/services"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// POST /checkout turns the selected cart lines into an order.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.checkoutService.Checkout(buyerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCheckoutOrderPlaced),
		"order":   order,
	})
}
