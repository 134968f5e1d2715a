package router

import (
	"github.com/gin-gonic/gin"

	"github.com/denwilliams/slack-retro/internal/http/handler"
)

func OAuthRouter(rg *gin.RouterGroup, h *handler.OAuthHandler) {
	rg.GET("/install", h.Install)
	rg.GET("/callback", h.Callback)
}
