package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediagrab/api/handlers"
	"github.com/yourusername/mediagrab/api/middleware"
	"github.com/yourusername/mediagrab/internal/app"
	"github.com/yourusername/mediagrab/internal/domain"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// SetupRouter sets up the HTTP router
func SetupRouter(
	dispatcher *app.Dispatcher,
	history domain.HistoryRepository,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	healthHandler := handlers.NewHealthHandler(Version)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		dispatchHandler := handlers.NewDispatchHandler(dispatcher, log)
		v1.POST("/dispatch", dispatchHandler.Dispatch)
		v1.GET("/platforms", dispatchHandler.ListPlatforms)
		v1.GET("/formats", dispatchHandler.ListFormats)

		if history != nil {
			historyHandler := handlers.NewHistoryHandler(history, log)
			v1.GET("/history", historyHandler.List)
			v1.GET("/history/stats", historyHandler.Stats)
		}
	}

	return router
}
