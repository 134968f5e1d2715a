package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/denwilliams/slack-retro/internal/http/handler"
)

var _ = Describe("AdminHandler", func() {
	var (
		router *gin.Engine
		schema *mockSchemaManager
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		schema = &mockSchemaManager{}
		h := handler.NewAdminHandler(schema)
		router.POST("/api/init-db", h.InitDB)
		router.GET("/api/init-db", h.InitDBUsage)
		router.GET("/api/db-health", h.DBHealth)
	})

	serve := func(method, path string) (int, map[string]any) {
		req := httptest.NewRequest(method, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return w.Code, resp
	}

	Describe("InitDB", func() {
		It("creates the schema", func() {
			code, resp := serve(http.MethodPost, "/api/init-db")
			Expect(code).To(Equal(http.StatusOK))
			Expect(resp["success"]).To(BeTrue())
			Expect(schema.initRuns).To(Equal(1))
		})

		It("reports failures as 500", func() {
			schema.initFn = func(context.Context) error { return errors.New("permission denied") }

			code, resp := serve(http.MethodPost, "/api/init-db")
			Expect(code).To(Equal(http.StatusInternalServerError))
			Expect(resp["success"]).To(BeFalse())
		})

		It("explains itself on GET without touching the database", func() {
			code, resp := serve(http.MethodGet, "/api/init-db")
			Expect(code).To(Equal(http.StatusOK))
			Expect(resp["message"]).To(Equal("Use POST to initialize the database"))
			Expect(schema.initRuns).To(BeZero())
		})
	})

	Describe("DBHealth", func() {
		It("reports every table present", func() {
			schema.tables = map[string]bool{
				"installations": true, "retrospectives": true, "discussion_items": true, "action_items": true,
			}

			code, resp := serve(http.MethodGet, "/api/db-health")
			Expect(code).To(Equal(http.StatusOK))
			Expect(resp["success"]).To(BeTrue())
			Expect(resp["message"]).To(Equal("All tables exist"))
			Expect(resp["tables"]).To(HaveKeyWithValue("action_items", true))
		})

		It("points at init-db when a table is missing", func() {
			schema.tables = map[string]bool{
				"installations": true, "retrospectives": true, "discussion_items": false, "action_items": true,
			}

			_, resp := serve(http.MethodGet, "/api/db-health")
			Expect(resp["success"]).To(BeFalse())
			Expect(resp["message"]).To(Equal("Some tables are missing - run POST /api/init-db to initialize"))
			Expect(resp["tables"]).To(HaveKeyWithValue("discussion_items", false))
		})
	})
})
