package controllers

import (
	"log"
	"net/http"

	"enside/madeiras-ops-worker/internal/dto"
	"enside/madeiras-ops-worker/internal/handlers"
	"enside/madeiras-ops-worker/internal/services"

	"github.com/gin-gonic/gin"
)

// InstanceController exposes the WhatsApp gateway: instance status and chat
// synchronization into the contact base
type InstanceController struct {
	evolution *handlers.EvolutionHandler
	store     *services.ContactStore
}

// NewInstanceController creates a new InstanceController instance
func NewInstanceController(evolution *handlers.EvolutionHandler, store *services.ContactStore) *InstanceController {
	return &InstanceController{
		evolution: evolution,
		store:     store,
	}
}

// ListInstances handles GET /api/v1/instances
// @Summary List gateway instances
// @Tags Instance
// @Produce json
// @Success 200 {array} handlers.InstanceInfo
// @Failure 502 {object} dto.ErrorResponse "Gateway unreachable"
// @Router /api/v1/instances [get]
func (c *InstanceController) ListInstances(ctx *gin.Context) {
	instances, err := c.evolution.FetchInstances(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, instances)
}

// Status handles GET /api/v1/instance/status
// @Summary Check the connection state of an instance
// @Tags Instance
// @Produce json
// @Param instance query string false "Instance name (defaults to the configured instance)"
// @Success 200 {object} handlers.InstanceStatus
// @Failure 502 {object} dto.ErrorResponse "Gateway unreachable"
// @Router /api/v1/instance/status [get]
func (c *InstanceController) Status(ctx *gin.Context) {
	status, err := c.evolution.ConnectionState(ctx.Request.Context(), ctx.Query("instance"))
	if err != nil {
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// SyncChats handles POST /api/v1/chats/sync
// @Summary Merge WhatsApp conversations into the contact base
// @Description Discovers individual chats on the instance and merges unknown numbers as contacts
// @Tags Instance
// @Produce json
// @Param instance query string false "Instance name (defaults to the configured instance)"
// @Success 200 {object} map[string]int "Merge result"
// @Failure 502 {object} dto.ErrorResponse "Gateway unreachable"
// @Router /api/v1/chats/sync [post]
func (c *InstanceController) SyncChats(ctx *gin.Context) {
	chats, err := c.evolution.FindChats(ctx.Request.Context(), ctx.Query("instance"))
	if err != nil {
		log.Printf("[InstanceController] Chat sync failed: %v", err)
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}

	added := c.store.Merge(handlers.ChatContacts(chats))
	ctx.JSON(http.StatusOK, gin.H{
		"chats": len(chats),
		"added": added,
	})
}
