package controllers

import (
	"net/http"

	"enside/madeiras-ops-worker/internal/dto"
	"enside/madeiras-ops-worker/internal/handlers"

	"github.com/gin-gonic/gin"
)

// TemplatesController manages message templates and saved transmission lists
type TemplatesController struct {
	supabase *handlers.SupabaseHandler
}

// NewTemplatesController creates a new TemplatesController instance
func NewTemplatesController(supabase *handlers.SupabaseHandler) *TemplatesController {
	return &TemplatesController{
		supabase: supabase,
	}
}

// ListTemplates handles GET /api/v1/templates
// @Summary List message templates
// @Tags Templates
// @Produce json
// @Success 200 {array} dto.MessageTemplate
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/templates [get]
func (c *TemplatesController) ListTemplates(ctx *gin.Context) {
	templates, err := c.supabase.GetTemplates()
	if err != nil {
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, templates)
}

// CreateTemplate handles POST /api/v1/templates
// @Summary Create a message template
// @Tags Templates
// @Accept json
// @Produce json
// @Param payload body dto.MessageTemplate true "Template"
// @Success 201 {object} map[string]string "Created template ID"
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/templates [post]
func (c *TemplatesController) CreateTemplate(ctx *gin.Context) {
	var template dto.MessageTemplate
	if err := ctx.ShouldBindJSON(&template); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid template payload"})
		return
	}
	if template.Title == "" || template.Content == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Template title and content are required"})
		return
	}

	id, err := c.supabase.InsertTemplate(&template)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

// DeleteTemplate handles DELETE /api/v1/templates/:id
// @Summary Delete a message template
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} map[string]string
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/templates/{id} [delete]
func (c *TemplatesController) DeleteTemplate(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.supabase.DeleteTemplate(id); err != nil {
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}

// ListLists handles GET /api/v1/lists
// @Summary List saved transmission lists
// @Tags Templates
// @Produce json
// @Success 200 {array} dto.TransmissionList
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/lists [get]
func (c *TemplatesController) ListLists(ctx *gin.Context) {
	lists, err := c.supabase.GetLists()
	if err != nil {
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, lists)
}

// CreateList handles POST /api/v1/lists
// @Summary Save a transmission list
// @Tags Templates
// @Accept json
// @Produce json
// @Param payload body dto.TransmissionList true "Transmission list"
// @Success 201 {object} map[string]string "Created list ID"
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/lists [post]
func (c *TemplatesController) CreateList(ctx *gin.Context) {
	var list dto.TransmissionList
	if err := ctx.ShouldBindJSON(&list); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid list payload"})
		return
	}
	if list.Name == "" || len(list.Contacts) == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "List name and contacts are required"})
		return
	}

	id, err := c.supabase.InsertList(&list)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

// DeleteList handles DELETE /api/v1/lists/:id
// @Summary Delete a saved transmission list
// @Tags Templates
// @Produce json
// @Param id path string true "List ID"
// @Success 200 {object} map[string]string
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/lists/{id} [delete]
func (c *TemplatesController) DeleteList(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.supabase.DeleteList(id); err != nil {
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}
