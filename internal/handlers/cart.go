// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/greeniecart/greeniecart-backend/internal/i18n"
	"github.com/greeniecart/greeniecart-backend/internal/services"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// GET /cart
func (h *CartHandler) ListItems(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.cartService.ListItems(buyerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, view)
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	item, err := h.cartService.AddItem(buyerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemAdded, item.Name),
		"item":    item,
	})
}

// PATCH /cart/items/:id
func (h *CartHandler) SetQuantity(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	item, err := h.cartService.SetQuantity(buyerID, itemID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"item": item})
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(buyerID, itemID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemRemoved),
	})
}
