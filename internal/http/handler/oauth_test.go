package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/denwilliams/slack-retro/internal/http/handler"
	"github.com/denwilliams/slack-retro/internal/model"
	"github.com/denwilliams/slack-retro/internal/service/chat"
)

const stateCookie = "retro_install_state"

var _ = Describe("OAuthHandler", func() {
	var (
		router *gin.Engine
		svc    *mockInstallationService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockInstallationService{}
		h := handler.NewOAuthHandler(svc, false)
		router.GET("/slack/oauth/install", h.Install)
		router.GET("/slack/oauth/callback", h.Callback)
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	callback := func(query, cookieState string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/slack/oauth/callback"+query, nil)
		if cookieState != "" {
			req.AddCookie(&http.Cookie{Name: stateCookie, Value: cookieState})
		}
		return serve(req)
	}

	Describe("Install", func() {
		It("redirects to slack with a state that matches the cookie", func() {
			w := serve(httptest.NewRequest(http.MethodGet, "/slack/oauth/install", nil))
			Expect(w.Code).To(Equal(http.StatusTemporaryRedirect))

			location, err := url.Parse(w.Header().Get("Location"))
			Expect(err).NotTo(HaveOccurred())
			state := location.Query().Get("state")
			Expect(state).NotTo(BeEmpty())

			var cookie *http.Cookie
			for _, c := range w.Result().Cookies() {
				if c.Name == stateCookie {
					cookie = c
				}
			}
			Expect(cookie).NotTo(BeNil())
			Expect(cookie.Value).To(Equal(state))
			Expect(cookie.HttpOnly).To(BeTrue())
		})

		It("issues a fresh state per install", func() {
			first := serve(httptest.NewRequest(http.MethodGet, "/slack/oauth/install", nil)).Header().Get("Location")
			second := serve(httptest.NewRequest(http.MethodGet, "/slack/oauth/install", nil)).Header().Get("Location")
			Expect(first).NotTo(Equal(second))
		})

		It("returns 404 when oauth is not configured", func() {
			svc.authorizeURLFn = func(string) (string, error) { return "", chat.ErrOAuthDisabled }
			w := serve(httptest.NewRequest(http.MethodGet, "/slack/oauth/install", nil))
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Callback", func() {
		It("installs with the returned code when the state matches", func() {
			var gotCode string
			svc.installFn = func(_ context.Context, code string) (*model.Installation, error) {
				gotCode = code
				return &model.Installation{TeamID: "T1"}, nil
			}

			w := callback("?code=abc&state=s1", "s1")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotCode).To(Equal("abc"))
			Expect(w.Body.String()).To(ContainSubstring(`"team_id":"T1"`))
		})

		DescribeTable("rejects a callback without a matching state",
			func(query, cookieState string) {
				called := false
				svc.installFn = func(context.Context, string) (*model.Installation, error) {
					called = true
					return &model.Installation{}, nil
				}

				w := callback(query, cookieState)
				Expect(w.Code).To(Equal(http.StatusBadRequest))
				Expect(w.Body.String()).To(ContainSubstring("invalid state"))
				Expect(called).To(BeFalse())
			},
			Entry("no cookie", "?code=abc&state=s1", ""),
			Entry("no state", "?code=abc", "s1"),
			Entry("different state", "?code=abc&state=forged", "s1"),
		)

		It("rejects a cancelled install", func() {
			Expect(callback("?error=access_denied", "").Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a missing code", func() {
			Expect(callback("?state=s1", "s1").Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 when oauth is not configured", func() {
			svc.installFn = func(context.Context, string) (*model.Installation, error) {
				return nil, chat.ErrOAuthDisabled
			}
			Expect(callback("?code=abc&state=s1", "s1").Code).To(Equal(http.StatusNotFound))
		})

		It("returns 502 when slack rejects the exchange", func() {
			svc.installFn = func(context.Context, string) (*model.Installation, error) {
				return nil, errors.New("invalid_code")
			}
			Expect(callback("?code=abc&state=s1", "s1").Code).To(Equal(http.StatusBadGateway))
		})
	})
})
