package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/slack-go/slack"

	"github.com/denwilliams/slack-retro/core/config"
)

var ErrOAuthDisabled = errors.New("oauth install flow is not configured")

// OAuthGrant is what an install hands back for a workspace.
type OAuthGrant struct {
	TeamID      string
	AccessToken string
	BotUserID   string
}

const slackAuthorizeURL = "https://slack.com/oauth/v2/authorize"

type OAuthExchanger interface {
	// AuthorizeURL is where "Add to Slack" sends the installer. state comes back on the callback.
	AuthorizeURL(state string) (string, error)
	Exchange(ctx context.Context, code string) (OAuthGrant, error)
}

type slackOAuth struct {
	cfg        config.SlackConfig
	httpClient *http.Client
}

func NewSlackOAuth(cfg config.SlackConfig, httpClient *http.Client) OAuthExchanger {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &slackOAuth{cfg: cfg, httpClient: httpClient}
}

func (o *slackOAuth) AuthorizeURL(state string) (string, error) {
	if !o.cfg.OAuthEnabled() {
		return "", ErrOAuthDisabled
	}

	query := url.Values{}
	query.Set("client_id", o.cfg.ClientID)
	query.Set("scope", o.cfg.Scopes)
	query.Set("state", state)
	if o.cfg.RedirectURI != "" {
		query.Set("redirect_uri", o.cfg.RedirectURI)
	}
	return slackAuthorizeURL + "?" + query.Encode(), nil
}

func (o *slackOAuth) Exchange(ctx context.Context, code string) (OAuthGrant, error) {
	if !o.cfg.OAuthEnabled() {
		return OAuthGrant{}, ErrOAuthDisabled
	}

	resp, err := slack.GetOAuthV2ResponseContext(ctx, o.httpClient, o.cfg.ClientID, o.cfg.ClientSecret, code, o.cfg.RedirectURI)
	if err != nil {
		return OAuthGrant{}, fmt.Errorf("exchanging oauth code: %w", err)
	}
	if resp.Team.ID == "" || resp.AccessToken == "" {
		return OAuthGrant{}, fmt.Errorf("oauth response missing team or token")
	}

	return OAuthGrant{
		TeamID:      resp.Team.ID,
		AccessToken: resp.AccessToken,
		BotUserID:   resp.BotUserID,
	}, nil
}
