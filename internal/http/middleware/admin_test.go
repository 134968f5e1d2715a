package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/denwilliams/slack-retro/internal/http/middleware"
)

var _ = Describe("RequireAdminAPIKey", func() {
	serve := func(key string, headers map[string]string) int {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/api/db-health", middleware.RequireAdminAPIKey(key), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/db-health", nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	It("leaves routes open when no key is configured", func() {
		Expect(serve("", nil)).To(Equal(http.StatusOK))
	})

	It("accepts the key header", func() {
		Expect(serve("k1", map[string]string{"X-Admin-API-Key": "k1"})).To(Equal(http.StatusOK))
	})

	It("accepts a bearer token", func() {
		Expect(serve("k1", map[string]string{"Authorization": "Bearer k1"})).To(Equal(http.StatusOK))
	})

	It("rejects a wrong or missing key", func() {
		Expect(serve("k1", map[string]string{"X-Admin-API-Key": "k2"})).To(Equal(http.StatusUnauthorized))
		Expect(serve("k1", nil)).To(Equal(http.StatusUnauthorized))
	})
})
