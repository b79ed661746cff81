package router // package router registers the HTTP routes of the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-seat-monitor/internal/handler"
)

// RegisterRoutes registers routes that sit outside the versioned API.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Health)
}

// RegisterPublic registers the read-only dashboard endpoints. Seat reads
// pass through cache, which may be a no-op middleware.
func RegisterPublic(e *echo.Echo, s *handler.SeatHandler, a *handler.AnalyticsHandler, d *handler.DetectionHandler, cache echo.MiddlewareFunc) {
	seats := e.Group("/v1", cache)
	seats.GET("/floors", s.ListFloors)
	seats.GET("/seats", s.ListSeats)
	seats.GET("/seats/:id", s.GetSeat)
	seats.GET("/seats/:id/position", s.GetSeatPosition)
	seats.GET("/stats", s.GetStats)

	e.GET("/v1/analytics", a.Report)
	e.GET("/v1/analytics/charts", a.Charts)

	e.GET("/v1/detection", d.Get)
	e.POST("/v1/detection/start", d.Start)
	e.POST("/v1/detection/stop", d.Stop)
}

// RegisterAuth registers the staff login endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
}
