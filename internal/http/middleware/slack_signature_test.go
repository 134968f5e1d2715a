package middleware_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/denwilliams/slack-retro/internal/http/middleware"
)

const signingSecret = "8f742231b10e8888abcd99yyyzzz85a5"

func sign(secret, timestamp, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("v0:" + timestamp + ":" + body))
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

var _ = Describe("VerifySlackSignature", func() {
	var (
		router   *gin.Engine
		seenBody string
		reached  bool
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		seenBody, reached = "", false
		router.POST("/slack/events", middleware.VerifySlackSignature(signingSecret), func(c *gin.Context) {
			reached = true
			body, _ := io.ReadAll(c.Request.Body)
			seenBody = string(body)
			c.Status(http.StatusOK)
		})
	})

	send := func(body, timestamp, signature string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body))
		if timestamp != "" {
			req.Header.Set("X-Slack-Request-Timestamp", timestamp)
		}
		if signature != "" {
			req.Header.Set("X-Slack-Signature", signature)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	now := func() string { return strconv.FormatInt(time.Now().Unix(), 10) }

	It("passes a correctly signed request and restores the body", func() {
		body := `{"type":"event_callback"}`
		ts := now()

		w := send(body, ts, sign(signingSecret, ts, body))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(reached).To(BeTrue())
		Expect(seenBody).To(Equal(body))
	})

	DescribeTable("rejects requests that do not match byte for byte",
		func(tamper func(body, ts string) (string, string, string)) {
			body := `payload=%7B%22type%22%3A%22block_actions%22%7D`
			ts := now()

			w := send(tamper(body, ts))
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Body.String()).To(ContainSubstring("Invalid signature"))
			Expect(reached).To(BeFalse())
		},
		Entry("tampered body", func(body, ts string) (string, string, string) {
			return body + "x", ts, sign(signingSecret, ts, body)
		}),
		Entry("tampered timestamp", func(body, ts string) (string, string, string) {
			n, _ := strconv.ParseInt(ts, 10, 64)
			return body, strconv.FormatInt(n-1, 10), sign(signingSecret, ts, body)
		}),
		Entry("wrong secret", func(body, ts string) (string, string, string) {
			return body, ts, sign("other-secret", ts, body)
		}),
		Entry("flipped signature character", func(body, ts string) (string, string, string) {
			sig := []byte(sign(signingSecret, ts, body))
			if sig[len(sig)-1] == '0' {
				sig[len(sig)-1] = '1'
			} else {
				sig[len(sig)-1] = '0'
			}
			return body, ts, string(sig)
		}),
		Entry("missing signature", func(body, ts string) (string, string, string) {
			return body, ts, ""
		}),
		Entry("missing timestamp", func(body, ts string) (string, string, string) {
			return body, "", sign(signingSecret, ts, body)
		}),
	)

	It("rejects a replayed request older than five minutes", func() {
		body := `{"type":"event_callback"}`
		ts := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)

		w := send(body, ts, sign(signingSecret, ts, body))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(reached).To(BeFalse())
	})
})
