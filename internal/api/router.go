package api

import (
	"net/http"

	"enside/madeiras-ops-worker/internal/api/controllers"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Controllers groups the route handlers. Optional collaborators may be nil;
// their routes are simply not registered.
type Controllers struct {
	Contacts  *controllers.ContactsController
	Instance  *controllers.InstanceController
	Broadcast *controllers.BroadcastController
	Templates *controllers.TemplatesController
	Assistant *controllers.AssistantController
}

// NewRouter creates and configures a new Gin router
func NewRouter(c Controllers) *gin.Engine {
	router := gin.Default() // Includes Logger and Recovery middleware

	// Health check endpoint
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		if c.Contacts != nil {
			v1.POST("/contacts/sync", c.Contacts.Sync)
			v1.GET("/contacts", c.Contacts.List)
		}

		if c.Instance != nil {
			v1.GET("/instances", c.Instance.ListInstances)
			v1.GET("/instance/status", c.Instance.Status)
			v1.POST("/chats/sync", c.Instance.SyncChats)
		}

		if c.Broadcast != nil {
			v1.POST("/broadcast", c.Broadcast.Start)
			v1.GET("/broadcast/runs/:id", c.Broadcast.Status)
			v1.POST("/broadcast/runs/:id/cancel", c.Broadcast.Cancel)
		}

		if c.Templates != nil {
			v1.GET("/templates", c.Templates.ListTemplates)
			v1.POST("/templates", c.Templates.CreateTemplate)
			v1.DELETE("/templates/:id", c.Templates.DeleteTemplate)
			v1.GET("/lists", c.Templates.ListLists)
			v1.POST("/lists", c.Templates.CreateList)
			v1.DELETE("/lists/:id", c.Templates.DeleteList)
		}

		if c.Assistant != nil {
			v1.POST("/assistant/chat", c.Assistant.Chat)
		}
	}

	return router
}
