// internal/handlers/common.go

// Package handlers wires HTTP requests to the service layer and maps service
// errors to status codes and localized messages.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/greeniecart/greeniecart-backend/internal/i18n"
	"github.com/greeniecart/greeniecart-backend/internal/models"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

// currentUserID pulls the authenticated user's ID out of the gin context.
// Routes behind AuthRequired always have one; a miss responds 401.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	return id, true
}

// optionalUserID is currentUserID for routes behind OptionalAuth: a missing
// or unparsable ID yields uuid.Nil instead of a 401.
func optionalUserID(c *gin.Context) uuid.UUID {
	raw, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// pathUUID parses a :param path segment as a UUID, responding 400 on garbage.
func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, param), nil)
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps the sentinel errors of the cart/checkout/order
// core to HTTP responses. Unrecognized errors become a 500 without leaking
// internals.
func respondServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		utils.UnauthorizedResponse(c, "")
	case errors.Is(err, models.ErrValidationFailed):
		respondValidationError(c, err)
	case errors.Is(err, models.ErrEmptySelection):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCheckoutEmptySelection), nil)
	case errors.Is(err, models.ErrDuplicateItem):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCartItemDuplicate))
	case errors.Is(err, models.ErrOwnProduct):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "OWN_PRODUCT", i18n.T(lang, i18n.KeyProductOwnProduct), nil)
	case errors.Is(err, models.ErrOutOfStock):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "OUT_OF_STOCK", i18n.T(lang, i18n.KeyProductOutOfStock), nil)
	case errors.Is(err, models.ErrProductUnavailable):
		utils.ErrorResponse(c, http.StatusConflict, "PRODUCT_UNAVAILABLE", i18n.T(lang, i18n.KeyCheckoutProductUnavailable, productNameFromError(err)), nil)
	case errors.Is(err, models.ErrInsufficientStock):
		utils.ErrorResponse(c, http.StatusConflict, "INSUFFICIENT_STOCK", i18n.T(lang, i18n.KeyCheckoutInsufficientStock, productNameFromError(err)), nil)
	case errors.Is(err, models.ErrInvalidTransition):
		utils.ErrorResponse(c, http.StatusConflict, "INVALID_TRANSITION", i18n.T(lang, i18n.KeyOrderInvalidTransition), nil)
	case errors.Is(err, models.ErrUpdateFailed):
		utils.ErrorResponse(c, http.StatusConflict, "UPDATE_FAILED", i18n.T(lang, i18n.KeyOrderUpdateFailed), nil)
	case errors.Is(err, models.ErrRemovalFailed):
		utils.ErrorResponse(c, http.StatusConflict, "REMOVAL_FAILED", i18n.T(lang, i18n.KeyCartRemovalFailed), nil)
	case errors.Is(err, models.ErrForbidden):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, models.ErrNotFound):
		utils.NotFoundResponse(c, "resource")
	default:
		utils.InternalErrorResponse(c, "")
	}
}

// respondValidationError returns field-level messages when a validator
// failure is in the chain; hand-written validation messages (payment rules,
// price checks) are already client-safe and pass through as-is.
func respondValidationError(c *gin.Context, err error) {
	if details := utils.GetValidationErrors(err); len(details) > 0 {
		utils.ValidationErrorResponse(c, details)
		return
	}
	utils.BadRequestResponse(c, err.Error(), nil)
}

// productNameFromError digs the quoted product name out of a wrapped
// checkout error, e.g. `"Bamboo Toothbrush": insufficient stock`.
func productNameFromError(err error) string {
	msg := err.Error()
	start := -1
	for i, r := range msg {
		if r == '"' {
			if start == -1 {
				start = i + 1
			} else {
				return msg[start:i]
			}
		}
	}
	return "item"
}
