package http

import (
	"errors"
	"net/http"

	"airline-sentiment-dashboard/internal/dashboard/dto"
	"airline-sentiment-dashboard/internal/dashboard/service"
	"airline-sentiment-dashboard/internal/entity"
	"airline-sentiment-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// FilterHandler handles HTTP requests for the filter selection.
type FilterHandler struct {
	filters *service.FilterState
	logger  *logger.Logger
}

// NewFilterHandler creates a new FilterHandler.
func NewFilterHandler(filters *service.FilterState, logger *logger.Logger) *FilterHandler {
	return &FilterHandler{filters: filters, logger: logger}
}

// RegisterRoutes registers the filter routes to the Echo group.
func (h *FilterHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetSelection)
	g.PUT("/airline", h.SetAirline)
	g.PUT("/sentiment", h.SetSentiment)
	g.DELETE("", h.Clear)
}

func (h *FilterHandler) GetSelection(c echo.Context) error {
	return c.JSON(http.StatusOK, h.filters.Selection())
}

// SetAirline selects an airline; an empty value clears it.
func (h *FilterHandler) SetAirline(c echo.Context) error {
	var req dto.SetAirlineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	h.filters.SetAirline(req.Airline)
	return c.JSON(http.StatusOK, h.filters.Selection())
}

// SetSentiment selects a sentiment; an empty value clears it.
func (h *FilterHandler) SetSentiment(c echo.Context) error {
	var req dto.SetSentimentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	if err := h.filters.SetSentiment(req.Sentiment); err != nil {
		if errors.Is(err, entity.ErrInvalidSentiment) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Failed to set sentiment filter", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to set sentiment filter"})
	}
	return c.JSON(http.StatusOK, h.filters.Selection())
}

// Clear resets both filters.
func (h *FilterHandler) Clear(c echo.Context) error {
	h.filters.Clear()
	return c.JSON(http.StatusOK, h.filters.Selection())
}
