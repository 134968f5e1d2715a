package worker

import (
	"context"

	"github.com/denwilliams/slack-retro/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// Publisher renders and publishes one user's home tab. service.HomeService satisfies it.
type Publisher interface {
	Publish(ctx context.Context, teamID, userID string) error
}
