package router

import (
	"signup-service/internal/adapter/gin/handler"
	"signup-service/internal/adapter/gin/middleware"
	"signup-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Routes lists the registered endpoints, used for the startup banner
var Routes = []string{
	"GET /health",
	"GET /_db-test",
	"POST /api/signup",
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware, outermost first
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())
	router.Use(logger.RequestID())
	router.Use(middleware.Logger(log))

	router.GET("/health", healthHandler.Health)
	router.GET("/_db-test", healthHandler.DBTest)

	api := router.Group("/api")
	{
		api.POST("/signup", userHandler.Signup)
	}

	return router
}
