package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
)

// Slack bodies are small; anything larger is not from Slack.
const maxSlackBodyBytes = 1 << 20

// VerifySlackSignature rejects requests whose X-Slack-Signature is not the v0
// HMAC-SHA256 of "v0:<timestamp>:<body>" under signingSecret, or whose timestamp
// is more than five minutes old. The body is restored for the next handler.
func VerifySlackSignature(signingSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSlackBodyBytes))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		verifier, err := slack.NewSecretsVerifier(c.Request.Header, signingSecret)
		if err != nil {
			slog.WarnContext(ctx, "rejecting slack request", "reason", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}
		if _, err := verifier.Write(body); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}
		if err := verifier.Ensure(); err != nil {
			slog.WarnContext(ctx, "rejecting slack request", "reason", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}

		c.Next()
	}
}
