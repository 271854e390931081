package http

import (
	"airline-sentiment-dashboard/internal/dashboard/service"
	"airline-sentiment-dashboard/internal/metrics"
	"airline-sentiment-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts every dashboard endpoint on e.
func RegisterRoutes(e *echo.Echo, orchestrator service.Orchestrator, hub *Hub, log *logger.Logger) {
	dashboardHandler := NewDashboardHandler(orchestrator, hub, log)
	filterHandler := NewFilterHandler(orchestrator.Filters(), log)

	e.GET("/healthz", dashboardHandler.Health)
	e.GET("/metrics", metrics.Handler())

	api := e.Group("/api/v1")
	dashboardHandler.RegisterRoutes(api.Group("/dashboard"))
	filterHandler.RegisterRoutes(api.Group("/filters"))
}
