package server

import (
	ginhandler "signup-service/internal/adapter/gin/handler"
	ginrouter "signup-service/internal/adapter/gin/router"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupGinHandler builds the Gin router with all middleware and routes
func SetupGinHandler(
	userHandler *ginhandler.UserHandler,
	healthHandler *ginhandler.HealthHandler,
	l *zap.Logger,
) *gin.Engine {
	router := ginrouter.SetupRouter(userHandler, healthHandler, l)

	l.Debug("Gin router configured", zap.Strings("routes", ginrouter.Routes))

	return router
}
