package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-seat-monitor/internal/handler"
)

// RegisterViewports registers the pan/zoom session endpoints. Sessions
// are anonymous; the uuid in the path is the only handle. moves wraps the
// drag and pinch move streams only.
func RegisterViewports(e *echo.Echo, h *handler.ViewportHandler, moves ...echo.MiddlewareFunc) {
	g := e.Group("/v1/viewports")
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)

	// ---- Zoom ----
	g.POST("/:id/zoom", h.Zoom)
	g.POST("/:id/wheel", h.Wheel)
	g.POST("/:id/dblclick", h.DoubleClick)
	g.POST("/:id/zoom-in", h.ZoomIn)
	g.POST("/:id/zoom-out", h.ZoomOut)
	g.POST("/:id/reset", h.Reset)
	g.POST("/:id/resize", h.Resize)

	// ---- Gestures ----
	g.POST("/:id/drag/start", h.DragStart)
	g.POST("/:id/drag/move", h.DragMove, moves...)
	g.POST("/:id/drag/end", h.DragEnd)
	g.POST("/:id/pinch/start", h.PinchStart)
	g.POST("/:id/pinch/move", h.PinchMove, moves...)
	g.POST("/:id/pinch/end", h.PinchEnd)
}
