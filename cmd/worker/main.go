package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/denwilliams/slack-retro/common/id"
	"github.com/denwilliams/slack-retro/common/logger"
	"github.com/denwilliams/slack-retro/common/otel"
	"github.com/denwilliams/slack-retro/core/config"
	"github.com/denwilliams/slack-retro/core/db"
	"github.com/denwilliams/slack-retro/internal/queue"
	"github.com/denwilliams/slack-retro/internal/service"
	"github.com/denwilliams/slack-retro/internal/service/chat"
	"github.com/denwilliams/slack-retro/internal/store"
	"github.com/denwilliams/slack-retro/internal/worker"
)

const maxAttempts = 3

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "retro worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Refresh.RedisGroup,
		"consumer_name", cfg.Refresh.RedisConsumer)

	// Different node ID than the server so ids never collide.
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

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
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Refresh.RedisStream)

	consumer, err := queue.NewRedisConsumer(ctx, redisClient, queue.ConsumerConfig{
		Stream:       cfg.Refresh.RedisStream,
		Group:        cfg.Refresh.RedisGroup,
		Consumer:     cfg.Refresh.RedisConsumer,
		DLQStream:    cfg.Refresh.RedisDLQStream,
		BatchSize:    10,
		Block:        5 * time.Second,
		MaxAttempts:  maxAttempts,
		RequeueDelay: time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	stores := store.NewStores(database.Queries())
	fallback := chat.NewSlackPlatform(chat.NewSlackClient(cfg.Slack.BotToken))
	platforms := chat.NewInstallationResolver(fallback, stores.Installations(), chat.NewSlackClient)

	// The worker only renders; it never enqueues, so refreshes here are inline.
	services := service.NewServices(
		stores,
		service.NewTxRunner(database),
		platforms,
		nil,
		nil,
		config.RefreshModeSync,
	)

	w := worker.New(consumer, services.Home(), worker.Config{MaxAttempts: maxAttempts})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:    cfg.Refresh.RedisStream,
		Group:     cfg.Refresh.RedisGroup,
		Consumer:  cfg.Refresh.RedisConsumer + "-reclaimer",
		MinIdle:   2 * time.Minute,
		Interval:  30 * time.Second,
		BatchSize: 10,
	}, consumer, w.HandleMessage)

	errCh := make(chan error, 2)
	go func() {
		errCh <- w.Run(ctx)
	}()
	go func() {
		reclaimer.Run(ctx)
		errCh <- nil
	}()

	slog.InfoContext(ctx, "worker initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	reclaimer.Stop()
	w.Stop()

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "shutdown timeout exceeded")
	case err := <-errCh:
		if err != nil {
			slog.ErrorContext(ctx, "worker error during shutdown", "error", err)
		}
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

const banner = `
 ____  _____ _____ ____   ___   __        _____  ____  _  _______ ____
|  _ \| ____|_   _|  _ \ / _ \  \ \      / / _ \|  _ \| |/ / ____|  _ \
| |_) |  _|   | | | |_) | | | |  \ \ /\ / / | | | |_) | ' /|  _| | |_) |
|  _ <| |___  | | |  _ <| |_| |   \ V  V /| |_| |  _ <| . \| |___|  _ <
|_| \_\_____| |_| |_| \_\\___/     \_/\_/  \___/|_| \_\_|\_\_____|_| \_\
`
