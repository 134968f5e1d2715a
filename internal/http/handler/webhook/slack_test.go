package webhook_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/denwilliams/slack-retro/internal/domain"
	"github.com/denwilliams/slack-retro/internal/http/handler/webhook"
	"github.com/denwilliams/slack-retro/internal/mapper"
)

type mockDispatcher struct {
	dispatchFn func(ctx context.Context, event domain.Event) error
	events     []domain.Event
}

func (m *mockDispatcher) Dispatch(ctx context.Context, event domain.Event) error {
	m.events = append(m.events, event)
	if m.dispatchFn != nil {
		return m.dispatchFn(ctx, event)
	}
	return nil
}

const appHomeOpened = `{
	"type": "event_callback",
	"team_id": "T1",
	"api_app_id": "A1",
	"event": {"type": "app_home_opened", "user": "U1", "channel": "D1", "tab": "home"}
}`

const finishClicked = `{
	"type": "block_actions",
	"team": {"id": "T1", "domain": "acme"},
	"user": {"id": "U1", "name": "al", "team_id": "T1"},
	"trigger_id": "trig",
	"actions": [{"type": "button", "action_id": "finish_retro", "block_id": "b1", "value": "finish"}]
}`

var _ = Describe("SlackWebhookHandler", func() {
	var (
		router     *gin.Engine
		dispatcher *mockDispatcher
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		dispatcher = &mockDispatcher{}
		h := webhook.NewSlackWebhookHandler(mapper.NewSlackEventMapper(), dispatcher)
		router.POST("/slack/events", h.HandleEvent)
	})

	postJSON := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	postForm := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder) map[string]any {
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return resp
	}

	It("echoes the url verification challenge without dispatching", func() {
		w := postJSON(`{"type":"url_verification","token":"t","challenge":"3eZbrw1aBm2rZgRNFdxV2595E9CY3gmdALWMmHkvFXO7tYXAYM8P"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)).To(Equal(map[string]any{"challenge": "3eZbrw1aBm2rZgRNFdxV2595E9CY3gmdALWMmHkvFXO7tYXAYM8P"}))
		Expect(dispatcher.events).To(BeEmpty())
	})

	It("dispatches a JSON event callback", func() {
		w := postJSON(appHomeOpened)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)).To(Equal(map[string]any{"ok": true}))
		Expect(dispatcher.events).To(Equal([]domain.Event{
			domain.AppHomeOpened{Actor: domain.Actor{TeamID: "T1", UserID: "U1"}},
		}))
	})

	It("dispatches a form-encoded interaction payload", func() {
		w := postForm(url.Values{"payload": {finishClicked}})

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(dispatcher.events).To(HaveLen(1))
		action, ok := dispatcher.events[0].(domain.BlockAction)
		Expect(ok).To(BeTrue())
		Expect(action.Action.Kind).To(Equal(domain.ActionFinishRetro))
		Expect(action.TriggerID).To(Equal("trig"))
	})

	It("acknowledges callback events it has no handler for", func() {
		w := postJSON(`{"type":"event_callback","team_id":"T1","event":{"type":"reaction_added","user":"U1"}}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(dispatcher.events).To(BeEmpty())
	})

	It("still acknowledges when dispatch fails", func() {
		dispatcher.dispatchFn = func(context.Context, domain.Event) error {
			return errors.New("db down")
		}

		w := postJSON(appHomeOpened)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)).To(Equal(map[string]any{"ok": true}))
	})

	DescribeTable("rejects malformed envelopes with 500",
		func(send func() *httptest.ResponseRecorder) {
			w := send()
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(decode(w)).To(Equal(map[string]any{"error": "Internal server error"}))
			Expect(dispatcher.events).To(BeEmpty())
		},
		Entry("unparseable JSON", func() *httptest.ResponseRecorder {
			return postJSON(`{"type":`)
		}),
		Entry("form without payload", func() *httptest.ResponseRecorder {
			return postForm(url.Values{"other": {"x"}})
		}),
		Entry("form payload that is not JSON", func() *httptest.ResponseRecorder {
			return postForm(url.Values{"payload": {"not json"}})
		}),
	)
})
