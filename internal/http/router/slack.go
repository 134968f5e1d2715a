package router

import (
	"github.com/gin-gonic/gin"

	"github.com/denwilliams/slack-retro/internal/http/handler/webhook"
	"github.com/denwilliams/slack-retro/internal/http/middleware"
	"github.com/denwilliams/slack-retro/internal/mapper"
	"github.com/denwilliams/slack-retro/internal/service"
)

func SlackRouter(rg *gin.RouterGroup, dispatcher service.Dispatcher, eventMapper mapper.EventMapper, cfg RouterConfig) {
	h := webhook.NewSlackWebhookHandler(eventMapper, dispatcher)
	rg.POST("/events", middleware.VerifySlackSignature(cfg.SigningSecret), h.HandleEvent)
}
