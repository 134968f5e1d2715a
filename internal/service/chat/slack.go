package chat

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// SlackAPI is the subset of *slack.Client the platform calls.
type SlackAPI interface {
	PublishViewContext(ctx context.Context, userID string, view slack.HomeTabViewRequest, hash string) (*slack.ViewResponse, error)
	OpenViewContext(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error)
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
}

type slackPlatform struct {
	api SlackAPI
}

func NewSlackPlatform(api SlackAPI) Platform {
	return &slackPlatform{api: api}
}

func (p *slackPlatform) PublishHomeView(ctx context.Context, userID string, view slack.HomeTabViewRequest) error {
	if _, err := p.api.PublishViewContext(ctx, userID, view, ""); err != nil {
		return fmt.Errorf("publishing home view: %w", err)
	}
	return nil
}

func (p *slackPlatform) OpenModal(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	if _, err := p.api.OpenViewContext(ctx, triggerID, view); err != nil {
		return fmt.Errorf("opening modal %s: %w", view.CallbackID, err)
	}
	return nil
}

// LookupUserName prefers the real name, then the handle.
func (p *slackPlatform) LookupUserName(ctx context.Context, userID string) (string, error) {
	user, err := p.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("looking up user %s: %w", userID, err)
	}
	switch {
	case user.RealName != "":
		return user.RealName, nil
	case user.Name != "":
		return user.Name, nil
	}
	return UnknownUserName, nil
}
