package chat_test

import (
	"context"

	"github.com/slack-go/slack"

	"github.com/denwilliams/slack-retro/internal/model"
)

type mockSlackAPI struct {
	publishFn  func(ctx context.Context, userID string, view slack.HomeTabViewRequest, hash string) (*slack.ViewResponse, error)
	openFn     func(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error)
	userInfoFn func(ctx context.Context, user string) (*slack.User, error)
}

func (m *mockSlackAPI) PublishViewContext(ctx context.Context, userID string, view slack.HomeTabViewRequest, hash string) (*slack.ViewResponse, error) {
	if m.publishFn != nil {
		return m.publishFn(ctx, userID, view, hash)
	}
	return &slack.ViewResponse{}, nil
}

func (m *mockSlackAPI) OpenViewContext(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error) {
	if m.openFn != nil {
		return m.openFn(ctx, triggerID, view)
	}
	return &slack.ViewResponse{}, nil
}

func (m *mockSlackAPI) GetUserInfoContext(ctx context.Context, user string) (*slack.User, error) {
	if m.userInfoFn != nil {
		return m.userInfoFn(ctx, user)
	}
	return &slack.User{ID: user}, nil
}

type mockInstallationLookup struct {
	getByTeamFn func(ctx context.Context, teamID string) (*model.Installation, error)
	calls       int
}

func (m *mockInstallationLookup) GetByTeam(ctx context.Context, teamID string) (*model.Installation, error) {
	m.calls++
	if m.getByTeamFn != nil {
		return m.getByTeamFn(ctx, teamID)
	}
	return nil, nil
}
