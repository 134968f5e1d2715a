package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/slack-go/slack"

	"github.com/denwilliams/slack-retro/internal/model"
	"github.com/denwilliams/slack-retro/internal/store"
)

// InstallationLookup finds the bot token stored for a workspace by the OAuth install flow.
type InstallationLookup interface {
	GetByTeam(ctx context.Context, teamID string) (*model.Installation, error)
}

// ClientFactory builds a Slack API client for a bot token.
type ClientFactory func(token string) SlackAPI

func NewSlackClient(token string) SlackAPI {
	return slack.New(token)
}

type cachedPlatform struct {
	token    string
	platform Platform
}

type installationResolver struct {
	fallback      Platform
	installations InstallationLookup
	newClient     ClientFactory

	mu    sync.Mutex
	cache map[string]cachedPlatform
}

// NewInstallationResolver serves installed workspaces with their own token and everything
// else with fallback, the client built from the configured bot token. Clients are built
// once per token and reused.
func NewInstallationResolver(fallback Platform, installations InstallationLookup, newClient ClientFactory) Resolver {
	if newClient == nil {
		newClient = NewSlackClient
	}
	return &installationResolver{
		fallback:      fallback,
		installations: installations,
		newClient:     newClient,
		cache:         make(map[string]cachedPlatform),
	}
}

func (r *installationResolver) ForTeam(ctx context.Context, teamID string) (Platform, error) {
	if r.installations == nil || teamID == "" {
		return r.fallback, nil
	}

	installation, err := r.installations.GetByTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return r.fallback, nil
		}
		return nil, fmt.Errorf("loading installation for team %s: %w", teamID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[teamID]; ok && cached.token == installation.AccessToken {
		return cached.platform, nil
	}

	platform := NewSlackPlatform(r.newClient(installation.AccessToken))
	r.cache[teamID] = cachedPlatform{token: installation.AccessToken, platform: platform}
	slog.DebugContext(ctx, "built slack client for installation", "team_id", teamID)
	return platform, nil
}

// StaticResolver always returns the same platform.
type StaticResolver struct {
	Platform Platform
}

func (r StaticResolver) ForTeam(context.Context, string) (Platform, error) {
	return r.Platform, nil
}
