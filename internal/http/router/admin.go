package router

import (
	"github.com/gin-gonic/gin"

	"github.com/denwilliams/slack-retro/internal/http/handler"
	"github.com/denwilliams/slack-retro/internal/http/middleware"
)

// AdminRouter mounts the schema endpoints. They require the admin key when one is configured.
func AdminRouter(rg *gin.RouterGroup, h *handler.AdminHandler, adminAPIKey string) {
	admin := rg.Group("")
	admin.Use(middleware.RequireAdminAPIKey(adminAPIKey))
	{
		admin.POST("/init-db", h.InitDB)
		admin.GET("/init-db", h.InitDBUsage)
		admin.GET("/db-health", h.DBHealth)
	}
}
