package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-seat-monitor/internal/handler"
	"github.com/iliyamo/library-seat-monitor/internal/middleware"
	"github.com/iliyamo/library-seat-monitor/internal/model"
)

// RegisterStaff registers STAFF-scoped endpoints under /v1/admin.
// All routes require a valid JWT and the STAFF role.
func RegisterStaff(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStaff),
	)

	// ---- Simulator ----
	g.POST("/simulator/tick", h.Tick)
	g.POST("/simulator/reset", h.Reset)

	// ---- Seats ----
	g.PUT("/seats/:id/status", h.SetSeatStatus)
}
