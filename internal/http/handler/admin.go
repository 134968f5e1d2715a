package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SchemaManager is implemented by *db.DB.
type SchemaManager interface {
	InitSchema(ctx context.Context) error
	CheckTables(ctx context.Context) map[string]bool
}

type AdminHandler struct {
	schema SchemaManager
}

func NewAdminHandler(schema SchemaManager) *AdminHandler {
	return &AdminHandler{schema: schema}
}

func (h *AdminHandler) InitDB(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.schema.InitSchema(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to initialize database", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to initialize database",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database initialized successfully",
	})
}

func (h *AdminHandler) InitDBUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Use POST to initialize the database"})
}

func (h *AdminHandler) DBHealth(c *gin.Context) {
	tables := h.schema.CheckTables(c.Request.Context())

	allExist := true
	for _, ok := range tables {
		if !ok {
			allExist = false
			break
		}
	}

	message := "All tables exist"
	if !allExist {
		message = "Some tables are missing - run POST /api/init-db to initialize"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": allExist,
		"tables":  tables,
		"message": message,
	})
}
