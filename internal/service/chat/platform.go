package chat

import (
	"context"

	"github.com/slack-go/slack"
)

// UnknownUserName is shown when a user's profile has neither a real name nor a handle.
const UnknownUserName = "Unknown"

// Platform is the outbound surface of the chat workspace. Calls are not retried.
type Platform interface {
	PublishHomeView(ctx context.Context, userID string, view slack.HomeTabViewRequest) error
	OpenModal(ctx context.Context, triggerID string, view slack.ModalViewRequest) error
	LookupUserName(ctx context.Context, userID string) (string, error)
}

// Resolver returns the Platform to use for a workspace.
type Resolver interface {
	ForTeam(ctx context.Context, teamID string) (Platform, error)
}
