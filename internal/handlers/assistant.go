// internal/handlers/assistant.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/greeniecart/greeniecart-backend/internal/i18n"
	"github.com/greeniecart/greeniecart-backend/internal/services"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

type AssistantHandler struct {
	assistantService *services.AssistantService
}

func NewAssistantHandler(assistantService *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
	}
}

// POST /assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	reply, err := h.assistantService.Ask(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, reply)
}
