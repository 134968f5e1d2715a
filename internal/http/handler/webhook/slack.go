package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/denwilliams/slack-retro/common/logger"
	"github.com/denwilliams/slack-retro/internal/domain"
	"github.com/denwilliams/slack-retro/internal/mapper"
	"github.com/denwilliams/slack-retro/internal/service"
)

var ErrMalformedEnvelope = errors.New("malformed slack envelope")

const (
	envelopeURLVerification = "url_verification"
	envelopeEventCallback   = "event_callback"
)

type SlackWebhookHandler struct {
	mapper     mapper.EventMapper
	dispatcher service.Dispatcher
}

func NewSlackWebhookHandler(mapper mapper.EventMapper, dispatcher service.Dispatcher) *SlackWebhookHandler {
	return &SlackWebhookHandler{
		mapper:     mapper,
		dispatcher: dispatcher,
	}
}

// HandleEvent accepts both Events API callbacks (JSON) and interactivity
// payloads (form field "payload"). Signature checks happen in middleware.
func (h *SlackWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{Component: "retro.webhook.slack"})

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	raw, err := envelopePayload(c.ContentType(), body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to decode slack envelope", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var head struct {
		Type      string `json:"type"`
		Challenge string `json:"challenge"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		slog.ErrorContext(ctx, "failed to decode slack envelope", "error", fmt.Errorf("%w: %v", ErrMalformedEnvelope, err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if head.Type == envelopeURLVerification {
		c.JSON(http.StatusOK, gin.H{"challenge": head.Challenge})
		return
	}

	event, err := h.toEvent(ctx, head.Type, raw)
	if err != nil {
		slog.ErrorContext(ctx, "failed to decode slack envelope", "error", err, "envelope_type", head.Type)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if event == nil {
		slog.DebugContext(ctx, "ignoring unhandled slack envelope", "envelope_type", head.Type)
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	// Users only ever see the next home refresh, so a failed dispatch is logged and still acknowledged.
	if err := h.dispatcher.Dispatch(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to handle slack event",
			"error", err,
			"event_kind", event.Kind(),
			"team_id", event.Source().TeamID)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *SlackWebhookHandler) toEvent(ctx context.Context, envelopeType string, raw []byte) (domain.Event, error) {
	if envelopeType == envelopeEventCallback {
		outer, err := slackevents.ParseEvent(json.RawMessage(raw), slackevents.OptionNoVerifyToken())
		if err != nil {
			// slackevents also errors on inner event types it has no struct for.
			slog.DebugContext(ctx, "unsupported slack callback event", "error", err)
			return nil, nil
		}
		return h.mapper.MapCallback(ctx, outer)
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal(raw, &callback); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return h.mapper.MapInteraction(ctx, callback)
}

// envelopePayload returns the JSON document carried by the request body.
func envelopePayload(contentType string, body []byte) ([]byte, error) {
	if !strings.Contains(contentType, "application/x-www-form-urlencoded") {
		return body, nil
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	payload := form.Get("payload")
	if payload == "" {
		return nil, fmt.Errorf("%w: no payload field in form data", ErrMalformedEnvelope)
	}
	return []byte(payload), nil
}
