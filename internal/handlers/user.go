// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/greeniecart/greeniecart-backend/internal/i18n"
	"github.com/greeniecart/greeniecart-backend/internal/services"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GET /users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	stats, err := h.userService.Stats(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user, "stats": stats})
}

// PUT /users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserProfileUpdated),
		"user":    user,
	})
}

// GET /users/me/address returns the delivery prefill for the checkout form.
func (h *UserHandler) GetSavedAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	address, err := h.userService.SavedAddress(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"address": address})
}

// GET /users/me/products
func (h *UserHandler) ListMyProducts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	products, err := h.userService.ListProducts(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"products": products})
}
