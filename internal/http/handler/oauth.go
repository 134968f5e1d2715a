package handler

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/denwilliams/slack-retro/internal/service"
	"github.com/denwilliams/slack-retro/internal/service/chat"
)

const (
	installStateCookieName = "retro_install_state"
	installStateMaxAge     = 600
)

type OAuthHandler struct {
	installations service.InstallationService
	secureCookies bool
}

func NewOAuthHandler(installations service.InstallationService, secureCookies bool) *OAuthHandler {
	return &OAuthHandler{installations: installations, secureCookies: secureCookies}
}

// Install starts the "Add to Slack" flow. The state is kept in a short-lived cookie
// and must come back unchanged on the callback.
func (h *OAuthHandler) Install(c *gin.Context) {
	ctx := c.Request.Context()

	state, err := generateState()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start installation"})
		return
	}

	authURL, err := h.installations.AuthorizeURL(state)
	if err != nil {
		if errors.Is(err, chat.ErrOAuthDisabled) {
			c.JSON(http.StatusNotFound, gin.H{"error": "oauth install is not configured"})
			return
		}
		slog.ErrorContext(ctx, "failed to build authorize url", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start installation"})
		return
	}

	c.SetCookie(installStateCookieName, state, installStateMaxAge, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// Callback finishes the "Add to Slack" flow.
func (h *OAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	if slackErr := c.Query("error"); slackErr != "" {
		h.clearStateCookie(c)
		slog.WarnContext(ctx, "slack install cancelled", "reason", slackErr)
		c.JSON(http.StatusBadRequest, gin.H{"error": "installation cancelled"})
		return
	}

	state := c.Query("state")
	storedState, err := c.Cookie(installStateCookieName)
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(state), []byte(storedState)) != 1 {
		slog.WarnContext(ctx, "install state mismatch", "has_cookie", err == nil)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state"})
		return
	}
	h.clearStateCookie(c)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}

	installation, err := h.installations.Install(ctx, code)
	if err != nil {
		if errors.Is(err, chat.ErrOAuthDisabled) {
			c.JSON(http.StatusNotFound, gin.H{"error": "oauth install is not configured"})
			return
		}
		slog.ErrorContext(ctx, "slack install failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "installation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"team_id": installation.TeamID,
		"message": "Retro bot installed. Open the app's Home tab in Slack to start.",
	})
}

func (h *OAuthHandler) clearStateCookie(c *gin.Context) {
	c.SetCookie(installStateCookieName, "", -1, "/", "", h.secureCookies, true)
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
