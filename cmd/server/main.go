package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/denwilliams/slack-retro/common/id"
	"github.com/denwilliams/slack-retro/common/logger"
	"github.com/denwilliams/slack-retro/common/otel"
	"github.com/denwilliams/slack-retro/core/config"
	"github.com/denwilliams/slack-retro/core/db"
	"github.com/denwilliams/slack-retro/internal/http/middleware"
	httprouter "github.com/denwilliams/slack-retro/internal/http/router"
	"github.com/denwilliams/slack-retro/internal/queue"
	"github.com/denwilliams/slack-retro/internal/service"
	"github.com/denwilliams/slack-retro/internal/service/chat"
	"github.com/denwilliams/slack-retro/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "retro server starting",
		"env", cfg.Env,
		"service", cfg.OTel.ServiceName,
		"refresh_mode", cfg.Refresh.Mode)

	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	var producer queue.Producer
	if cfg.Refresh.UsesQueue() {
		redisOpts, err := redis.ParseURL(cfg.Refresh.RedisURL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}

		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "redis connected", "stream", cfg.Refresh.RedisStream)

		producer = queue.NewRedisProducer(redisClient, cfg.Refresh.RedisStream, nil)
		defer producer.Close()
	}

	stores := store.NewStores(database.Queries())

	// One client for the configured bot token, built once and shared.
	fallback := chat.NewSlackPlatform(chat.NewSlackClient(cfg.Slack.BotToken))
	platforms := chat.NewInstallationResolver(fallback, stores.Installations(), chat.NewSlackClient)

	services := service.NewServices(
		stores,
		service.NewTxRunner(database),
		platforms,
		chat.NewSlackOAuth(cfg.Slack, &http.Client{Timeout: 10 * time.Second}),
		producer,
		cfg.Refresh.Mode,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, database)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, database *db.DB) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, database, httprouter.RouterConfig{
		SigningSecret: cfg.Slack.SigningSecret,
		AdminAPIKey:   cfg.AdminAPIKey,
		OAuthEnabled:  cfg.Slack.OAuthEnabled(),
		SecureCookies: cfg.IsProduction(),
	})

	return router
}

const banner = `
 ____  _____ _____ ____   ___    ____  _____ ______     _______ ____
|  _ \| ____|_   _|  _ \ / _ \  / ___|| ____|  _ \ \   / / ____|  _ \
| |_) |  _|   | | | |_) | | | | \___ \|  _| | |_) \ \ / /|  _| | |_) |
|  _ <| |___  | | |  _ <| |_| |  ___) | |___|  _ < \ V / | |___|  _ <
|_| \_\_____| |_| |_| \_\\___/  |____/|_____|_| \_\ \_/  |_____|_| \_\
`
