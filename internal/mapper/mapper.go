package mapper

import (
	"context"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/denwilliams/slack-retro/internal/domain"
)

// EventMapper turns decoded platform payloads into domain events.
// A nil event with a nil error means the payload is valid but nothing handles it.
type EventMapper interface {
	MapCallback(ctx context.Context, event slackevents.EventsAPIEvent) (domain.Event, error)
	MapInteraction(ctx context.Context, callback slack.InteractionCallback) (domain.Event, error)
}
