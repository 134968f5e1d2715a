package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/denwilliams/slack-retro/internal/model"
	"github.com/denwilliams/slack-retro/internal/service/chat"
	"github.com/denwilliams/slack-retro/internal/store"
)

type InstallationService interface {
	// AuthorizeURL starts the OAuth flow; state must be echoed back to the callback.
	AuthorizeURL(state string) (string, error)
	// Install completes the OAuth flow for code and stores the workspace's bot token.
	Install(ctx context.Context, code string) (*model.Installation, error)
}

type installationService struct {
	installations store.InstallationStore
	oauth         chat.OAuthExchanger
}

func NewInstallationService(installations store.InstallationStore, oauth chat.OAuthExchanger) InstallationService {
	return &installationService{installations: installations, oauth: oauth}
}

func (s *installationService) AuthorizeURL(state string) (string, error) {
	if state == "" {
		return "", fmt.Errorf("missing oauth state")
	}
	return s.oauth.AuthorizeURL(state)
}

func (s *installationService) Install(ctx context.Context, code string) (*model.Installation, error) {
	if code == "" {
		return nil, fmt.Errorf("missing oauth code")
	}

	grant, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	installation, err := s.installations.Upsert(ctx, grant.TeamID, grant.AccessToken, grant.BotUserID)
	if err != nil {
		return nil, fmt.Errorf("saving installation: %w", err)
	}

	slog.InfoContext(ctx, "workspace installed", "team_id", installation.TeamID, "bot_user_id", installation.BotUserID)
	return installation, nil
}
