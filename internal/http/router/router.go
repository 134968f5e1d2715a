package router

import (
	"github.com/gin-gonic/gin"

	"github.com/denwilliams/slack-retro/internal/http/handler"
	"github.com/denwilliams/slack-retro/internal/mapper"
	"github.com/denwilliams/slack-retro/internal/service"
)

type RouterConfig struct {
	SigningSecret string
	AdminAPIKey   string
	OAuthEnabled  bool
	SecureCookies bool
}

func SetupRoutes(router *gin.Engine, services *service.Services, schema handler.SchemaManager, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	SlackRouter(router.Group("/slack"), services.Dispatcher(), mapper.NewSlackEventMapper(), cfg)
	if cfg.OAuthEnabled {
		OAuthRouter(router.Group("/slack/oauth"), handler.NewOAuthHandler(services.Installations(), cfg.SecureCookies))
	}

	AdminRouter(router.Group("/api"), handler.NewAdminHandler(schema), cfg.AdminAPIKey)
}
