package service

import (
	"context"
	"log/slog"

	"github.com/denwilliams/slack-retro/common/logger"
	"github.com/denwilliams/slack-retro/core/config"
	"github.com/denwilliams/slack-retro/internal/domain"
	"github.com/denwilliams/slack-retro/internal/queue"
)

// Refresher applies a refresh intent. Failures are logged, never returned, so a
// failed render cannot fail the mutation that asked for it.
type Refresher interface {
	Refresh(ctx context.Context, intent domain.RefreshIntent)
}

func NewRefresher(mode config.RefreshMode, home HomeService, producer queue.Producer) Refresher {
	switch mode {
	case config.RefreshModeAsync:
		return NewAsyncRefresher(home)
	case config.RefreshModeQueue:
		return NewQueueRefresher(producer)
	default:
		return NewSyncRefresher(home)
	}
}

type syncRefresher struct {
	home HomeService
}

func NewSyncRefresher(home HomeService) Refresher {
	return &syncRefresher{home: home}
}

func (r *syncRefresher) Refresh(ctx context.Context, intent domain.RefreshIntent) {
	if !intent.Requested() {
		return
	}
	if err := r.home.Publish(ctx, intent.TeamID, intent.UserID); err != nil {
		slog.ErrorContext(ctx, "home refresh failed", "error", err)
	}
}

type asyncRefresher struct {
	home HomeService
}

// NewAsyncRefresher publishes in a goroutine detached from the request's cancellation.
func NewAsyncRefresher(home HomeService) Refresher {
	return &asyncRefresher{home: home}
}

func (r *asyncRefresher) Refresh(ctx context.Context, intent domain.RefreshIntent) {
	if !intent.Requested() {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(ctx, "panic in async home refresh", "panic", rec)
			}
		}()
		if err := r.home.Publish(ctx, intent.TeamID, intent.UserID); err != nil {
			slog.ErrorContext(ctx, "async home refresh failed", "error", err)
		}
	}()
}

type queueRefresher struct {
	producer queue.Producer
}

// NewQueueRefresher hands the refresh to the worker through the refresh stream.
func NewQueueRefresher(producer queue.Producer) Refresher {
	return &queueRefresher{producer: producer}
}

func (r *queueRefresher) Refresh(ctx context.Context, intent domain.RefreshIntent) {
	if !intent.Requested() {
		return
	}

	msg := queue.RefreshMessage{TeamID: intent.TeamID, UserID: intent.UserID}
	sc := logger.StartSpan(ctx, "refresh.enqueue")
	defer sc.End()
	if traceID := sc.TraceID(); traceID != "" {
		msg.TraceID = &traceID
	}

	if err := r.producer.Enqueue(sc.Context(), msg); err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "enqueueing home refresh failed", "error", err)
	}
}
