package http

import (
	"net/http"

	"airline-sentiment-dashboard/internal/dashboard/dto"
	"airline-sentiment-dashboard/internal/dashboard/service"
	"airline-sentiment-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler exposes the published view model.
type DashboardHandler struct {
	orchestrator service.Orchestrator
	hub          *Hub
	logger       *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(orchestrator service.Orchestrator, hub *Hub, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{orchestrator: orchestrator, hub: hub, logger: logger}
}

// RegisterRoutes registers the dashboard routes to the Echo group.
func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetDashboard)
	g.POST("/reload", h.Reload)
	g.GET("/ws", h.Stream)
}

// GetDashboard returns the last published view model.
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.orchestrator.Current())
}

// Reload re-issues the current refresh path. The result arrives with a later publish.
func (h *DashboardHandler) Reload(c echo.Context) error {
	h.orchestrator.Reload()
	return c.JSON(http.StatusAccepted, echo.Map{"message": "Reload triggered"})
}

// Stream upgrades the connection and pushes one view model per publish.
func (h *DashboardHandler) Stream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket connection", logger.ErrorField(err))
		return nil
	}
	h.hub.Register(conn, h.orchestrator.Current())
	return nil
}

// Health reports liveness along with the latest cycle.
func (h *DashboardHandler) Health(c echo.Context) error {
	vm := h.orchestrator.Current()
	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:           "ok",
		Cycle:            vm.Cycle,
		Loading:          vm.Loading,
		ConnectedClients: h.hub.ConnectedClients(),
		LastBroadcastSeq: h.hub.LastBroadcastSeq(),
	})
}
