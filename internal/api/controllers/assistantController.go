package controllers

import (
	"log"
	"net/http"

	"enside/madeiras-ops-worker/internal/dto"
	"enside/madeiras-ops-worker/internal/handlers"

	"github.com/gin-gonic/gin"
)

// AssistantController exposes the operations assistant
type AssistantController struct {
	assistant *handlers.AssistantHandler
}

// NewAssistantController creates a new AssistantController instance
func NewAssistantController(assistant *handlers.AssistantHandler) *AssistantController {
	return &AssistantController{
		assistant: assistant,
	}
}

// Chat handles POST /api/v1/assistant/chat
// @Summary Ask the operations assistant
// @Description Runs one assistant exchange, grounded in the optional operational context
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body dto.AssistantRequest true "Question and optional context"
// @Success 200 {object} dto.AssistantResponse
// @Failure 400 {object} dto.ErrorResponse "Bad request"
// @Failure 502 {object} dto.ErrorResponse "Assistant failure"
// @Router /api/v1/assistant/chat [post]
func (c *AssistantController) Chat(ctx *gin.Context) {
	var req dto.AssistantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid assistant payload: message is required"})
		return
	}

	reply, err := c.assistant.Chat(ctx.Request.Context(), req.Message, req.SystemContext)
	if err != nil {
		log.Printf("[AssistantController] Exchange failed: %v", err)
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, dto.AssistantResponse{Reply: reply})
}
