package handler

import (
	"context"
	"net/http"

	"signup-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DatabaseChecker probes the database connection
type DatabaseChecker interface {
	CheckDatabase(ctx context.Context) error
}

// HealthHandler serves liveness and database probes
type HealthHandler struct {
	db  DatabaseChecker
	log *zap.Logger
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db DatabaseChecker, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// StatusResponse is the liveness payload
type StatusResponse struct {
	Status string `json:"status"`
}

// DBStatusResponse is the database probe payload
type DBStatusResponse struct {
	DB string `json:"db"`
}

// Health handles GET /health. It never touches the database.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// DBTest handles GET /_db-test
func (h *HealthHandler) DBTest(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.db.CheckDatabase(ctx); err != nil {
		logger.WithContext(ctx, h.log).Error("database test failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, DBStatusResponse{DB: "failed"})
		return
	}

	c.JSON(http.StatusOK, DBStatusResponse{DB: "connected"})
}
