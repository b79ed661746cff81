package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-seat-monitor/internal/detection"
	"github.com/iliyamo/library-seat-monitor/internal/repository"
	queue_publisher "github.com/iliyamo/library-seat-monitor/internal/service"
	"github.com/iliyamo/library-seat-monitor/internal/simulator"
	"github.com/iliyamo/library-seat-monitor/internal/viewport"
)

// HealthHandler reports liveness along with a few loop counters.
type HealthHandler struct {
	Seats     *repository.SeatRepo
	Sim       *simulator.Simulator
	Feed      *detection.Feed
	Viewports *viewport.Registry
	Events    *queue_publisher.Publisher
}

// Health answers load balancers and monitoring probes.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":           "ok",
		"seats":            h.Seats.Len(),
		"ticks":            h.Sim.Ticks(),
		"detection_active": h.Feed.Active(),
		"viewports":        h.Viewports.Len(),
		"events":           h.Events.Stats(),
	})
}
