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

// ContactsController handles spreadsheet synchronization and contact listing
type ContactsController struct {
	sheets   *handlers.SheetsHandler
	store    *services.ContactStore
	supabase *handlers.SupabaseHandler
}

// NewContactsController creates a new ContactsController instance
func NewContactsController(sheets *handlers.SheetsHandler, store *services.ContactStore) *ContactsController {
	return &ContactsController{
		sheets: sheets,
		store:  store,
	}
}

// SetSupabase enables audit events for sync operations.
func (c *ContactsController) SetSupabase(supabase *handlers.SupabaseHandler) {
	c.supabase = supabase
}

// Sync handles POST /api/v1/contacts/sync
// @Summary Synchronize contacts from the spreadsheet
// @Description Ingests one spreadsheet tab and replaces the contact base with the result
// @Tags Contacts
// @Accept json
// @Produce json
// @Param payload body dto.SyncRequest true "Tab to ingest"
// @Success 200 {object} map[string]interface{} "Sync result"
// @Failure 400 {object} dto.ErrorResponse "Bad request"
// @Failure 502 {object} dto.ErrorResponse "Spreadsheet unavailable or malformed"
// @Router /api/v1/contacts/sync [post]
func (c *ContactsController) Sync(ctx *gin.Context) {
	var req dto.SyncRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid sync payload: gid is required"})
		return
	}

	contacts, err := c.sheets.FetchContacts(ctx.Request.Context(), req.GID)
	if err != nil {
		log.Printf("[ContactsController] Sync failed for gid %s: %v", req.GID, err)
		if errors.Is(err, handlers.ErrSourceUnavailable) || errors.Is(err, handlers.ErrBadFormat) {
			ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.store.Replace(contacts)

	if c.supabase != nil {
		if err := c.supabase.InsertEvent("contacts_synced", "sheets", map[string]interface{}{
			"gid":      req.GID,
			"contacts": len(contacts),
		}); err != nil {
			log.Printf("[ContactsController] Failed to record sync event: %v", err)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"gid":      req.GID,
		"contacts": len(contacts),
	})
}

// List handles GET /api/v1/contacts
// @Summary List the current contact base
// @Description Returns the contacts from the last sync, optionally filtered by category
// @Tags Contacts
// @Produce json
// @Param category query string false "Category filter (SUPPLIER, CARRIER or CLIENT)"
// @Success 200 {array} dto.Contact
// @Router /api/v1/contacts [get]
func (c *ContactsController) List(ctx *gin.Context) {
	category := ctx.Query("category")
	if category == "" {
		ctx.JSON(http.StatusOK, c.store.All())
		return
	}
	ctx.JSON(http.StatusOK, c.store.FilterCategory(category))
}
