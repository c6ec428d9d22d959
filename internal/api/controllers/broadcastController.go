package controllers

import (
	"errors"
	"log"
	"net/http"

	"enside/madeiras-ops-worker/internal/dto"
	"enside/madeiras-ops-worker/internal/handlers"
	"enside/madeiras-ops-worker/internal/services"

	"github.com/gin-gonic/gin"
)

// BroadcastController starts, polls and cancels paced WhatsApp transmissions
type BroadcastController struct {
	processor *services.BroadcastProcessor
	store     *services.ContactStore
	supabase  *handlers.SupabaseHandler
}

// NewBroadcastController creates a new BroadcastController instance
func NewBroadcastController(processor *services.BroadcastProcessor, store *services.ContactStore) *BroadcastController {
	return &BroadcastController{
		processor: processor,
		store:     store,
	}
}

// SetSupabase enables template and saved-list resolution.
func (c *BroadcastController) SetSupabase(supabase *handlers.SupabaseHandler) {
	c.supabase = supabase
}

// Start handles POST /api/v1/broadcast
// @Summary Start a paced broadcast
// @Description Resolves the audience and message, validates the instance and launches the transmission in the background
// @Tags Broadcast
// @Accept json
// @Produce json
// @Param payload body dto.BroadcastRequest true "Broadcast request"
// @Success 202 {object} map[string]string "Run accepted"
// @Failure 400 {object} dto.ErrorResponse "Invalid broadcast"
// @Router /api/v1/broadcast [post]
func (c *BroadcastController) Start(ctx *gin.Context) {
	var req dto.BroadcastRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid broadcast payload"})
		return
	}

	message := req.Message
	if req.TemplateID != "" {
		if c.supabase == nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Templates are not available: persistence is not configured"})
			return
		}
		template, err := c.supabase.GetTemplate(req.TemplateID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		message = template.Content
	}

	contacts, err := c.resolveAudience(req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	runID, err := c.processor.Start(req.Instance, message, contacts)
	if err != nil {
		log.Printf("[BroadcastController] Failed to start broadcast: %v", err)
		if errors.Is(err, services.ErrInvalidBroadcast) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusAccepted, gin.H{"run_id": runID})
}

// resolveAudience picks the recipients: a saved transmission list when list_id
// is present, otherwise the reachable contacts of the requested category.
func (c *BroadcastController) resolveAudience(req dto.BroadcastRequest) ([]dto.Contact, error) {
	if req.ListID != "" {
		if c.supabase == nil {
			return nil, errors.New("saved lists are not available: persistence is not configured")
		}
		list, err := c.supabase.GetList(req.ListID)
		if err != nil {
			return nil, err
		}
		return c.store.FilterList(list.Contacts), nil
	}
	return c.store.FilterCategory(req.Category), nil
}

// Status handles GET /api/v1/broadcast/runs/:id
// @Summary Poll a broadcast run
// @Tags Broadcast
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} dto.BroadcastRunStatus
// @Failure 404 {object} dto.ErrorResponse "Unknown run"
// @Router /api/v1/broadcast/runs/{id} [get]
func (c *BroadcastController) Status(ctx *gin.Context) {
	run, ok := c.processor.Get(ctx.Param("id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Unknown broadcast run"})
		return
	}
	ctx.JSON(http.StatusOK, run)
}

// Cancel handles POST /api/v1/broadcast/runs/:id/cancel
// @Summary Cancel a running broadcast
// @Description Recipients already attempted keep their outcome; the rest are never contacted
// @Tags Broadcast
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]string "Cancellation requested"
// @Failure 404 {object} dto.ErrorResponse "Unknown run"
// @Router /api/v1/broadcast/runs/{id}/cancel [post]
func (c *BroadcastController) Cancel(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.processor.Cancel(id) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Unknown broadcast run"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "cancelling", "run_id": id})
}
