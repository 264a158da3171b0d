package handlers

import (
	"cleverplus/internal/http/middleware"
	"cleverplus/internal/repo"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// SetupRoutes sets up all API routes
func SetupRoutes(api *echo.Group, db *gorm.DB) {
	tenantHandler := NewTenantHandler(repo.NewTenantRepository(db))
	userHandler := NewUserHandler(repo.NewUserRepository(db))
	conversationHandler := NewConversationHandler(repo.NewConversationRepository(db))
	messageHandler := NewMessageHandler(repo.NewMessageRepository(db))
	chatHandler := NewChatHandler()
	metaHandler := NewMetaHandler()

	// Chat stub and vocabulary metadata (no tenant context required)
	api.GET("/chat", chatHandler.Chat)
	api.GET("/meta/vocabularies", metaHandler.Vocabularies)

	// Tenant provisioning and administration
	admin := api.Group("/admin")
	admin.POST("/tenants", tenantHandler.Create)
	admin.GET("/tenants", tenantHandler.List)
	admin.GET("/tenants/:id", tenantHandler.GetByID)
	admin.GET("/tenants/slug/:slug", tenantHandler.GetBySlug)
	admin.PUT("/tenants/:id", tenantHandler.Update)
	admin.DELETE("/tenants/:id", tenantHandler.Delete)

	// Tenant-scoped routes; every request must carry a resolvable tenant
	tenant := api.Group("")
	tenant.Use(middleware.RequireTenant())

	users := tenant.Group("/users")
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.GetByID)
	users.PUT("/:id", userHandler.Update)
	users.POST("/:id/login", userHandler.RecordLogin)

	conversations := tenant.Group("/conversations")
	conversations.POST("", conversationHandler.Create)
	conversations.GET("", conversationHandler.List)
	conversations.GET("/:id", conversationHandler.GetByID)
	conversations.PUT("/:id", conversationHandler.Update)
	conversations.POST("/:id/transition", conversationHandler.Transition)
	conversations.POST("/:id/messages", messageHandler.Create)
	conversations.GET("/:id/messages", messageHandler.ListByConversation)

	messages := tenant.Group("/messages")
	messages.GET("/:id", messageHandler.GetByID)
	messages.POST("/:id/feedback", messageHandler.SetFeedback)
}
