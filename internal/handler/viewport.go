package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/library-seat-monitor/internal/viewport"
)

// ViewportHandler drives per-client pan/zoom sessions.
type ViewportHandler struct {
	Registry *viewport.Registry
	Log      *zap.Logger
}

type sizeReq struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// pointReq is a pointer position. Omitted coordinates mean the container
// centre.
type pointReq struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func (p pointReq) point(c *viewport.Controller) viewport.Point {
	size := c.Container()
	pt := viewport.Point{X: size.Width / 2, Y: size.Height / 2}
	if p.X != nil {
		pt.X = *p.X
	}
	if p.Y != nil {
		pt.Y = *p.Y
	}
	return pt
}

type zoomReq struct {
	pointReq
	Delta float64 `json:"delta"`
}

type wheelReq struct {
	pointReq
	DeltaY float64 `json:"delta_y"`
}

type pinchReq struct {
	Points []viewport.Point `json:"points"`
}

type viewportResp struct {
	viewport.Snapshot
	Changed bool `json:"changed"`
}

func (h *ViewportHandler) respond(c echo.Context, snap viewport.Snapshot, changed bool, err error) error {
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, viewportResp{Snapshot: snap, Changed: changed})
}

// Create opens a session for the posted container size.
func (h *ViewportHandler) Create(c echo.Context) error {
	var req sizeReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	snap, err := h.Registry.Create(viewport.Size{Width: req.Width, Height: req.Height})
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, snap)
}

// Get returns a session's state.
func (h *ViewportHandler) Get(c echo.Context) error {
	snap, err := h.Registry.Get(c.Param("id"))
	return h.respond(c, snap, false, err)
}

// Delete closes a session.
func (h *ViewportHandler) Delete(c echo.Context) error {
	if err := h.Registry.Delete(c.Param("id")); err != nil {
		return fail(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Zoom applies a zoom delta about a point.
func (h *ViewportHandler) Zoom(c echo.Context) error {
	var req zoomReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	var changed bool
	snap, err := h.Registry.Do(c.Param("id"), func(v *viewport.Controller) (err error) {
		changed, err = v.ZoomToPoint(req.Delta, req.point(v))
		return err
	})
	return h.respond(c, snap, changed, err)
}

// Wheel applies a mouse wheel step about the pointer.
func (h *ViewportHandler) Wheel(c echo.Context) error {
	var req wheelReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	var changed bool
	snap, err := h.Registry.Do(c.Param("id"), func(v *viewport.Controller) (err error) {
		changed, err = v.Wheel(req.DeltaY, req.point(v))
		return err
	})
	return h.respond(c, snap, changed, err)
}

// DoubleClick zooms in two steps about the pointer.
func (h *ViewportHandler) DoubleClick(c echo.Context) error {
	var req pointReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	var changed bool
	snap, err := h.Registry.Do(c.Param("id"), func(v *viewport.Controller) (err error) {
		changed, err = v.DoubleClick(req.point(v))
		return err
	})
	return h.respond(c, snap, changed, err)
}

// ZoomIn is the "+" button.
func (h *ViewportHandler) ZoomIn(c echo.Context) error {
	var changed bool
	snap, err := h.Registry.Do(c.Param("id"), func(v *viewport.Controller) error {
		changed = v.ZoomIn()
		return nil
	})
	return h.respond(c, snap, changed, err)
}

// ZoomOut is the "-" button.
func (h *ViewportHandler) ZoomOut(c echo.Context) error {
	var changed bool
	snap, err := h.Registry.Do(c.Param("id"), func(v *viewport.Controller) error {
		changed = v.ZoomOut()
		return nil
	})
	return h.respond(c, snap, changed, err)
}

// Reset restores the initial zoom and pan.
func (h *ViewportHandler) Reset(c echo.Context) error {
	var changed bool
	snap, err := h.Registry.Do(c.Param("id"), func(v *viewport.Controller) error {
		before := v.State()
		v.Reset()
		changed = v.State() != before
		return nil
	})
	return h.respond(c, snap, changed, err)
}

// Resize reports a new container size.
func (h *ViewportHandler) Resize(c echo.Context) error {
	var req sizeReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	snap, err := h.Registry.Do(c.Param("id"), func(v *viewport.Controller) error {
		return v.Resize(viewport.Size{Width: req.Width, Height: req.Height})
	})
	return h.respond(c, snap, err == nil, err)
}

// DragStart begins a one-pointer pan.
func (h *ViewportHandler) DragStart(c echo.Context) error {
	var req pointReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	snap, err := h.Registry.Do(c.Param("id"), func(v *viewport.Controller) error {
		return v.BeginDrag(req.point(v))
	})
	return h.respond(c, snap, false, err)
}

// DragMove pans to follow the pointer.
func (h *ViewportHandler) DragMove(c echo.Context) error {
	var req pointReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	snap, err := h.Registry.Do(c.Param("id"), func(v *viewport.Controller) error {
		return v.DragTo(req.point(v))
	})
	return h.respond(c, snap, err == nil, err)
}

// DragEnd finishes the pan.
func (h *ViewportHandler) DragEnd(c echo.Context) error {
	snap, err := h.Registry.Do(c.Param("id"), func(v *viewport.Controller) error {
		v.EndDrag()
		return nil
	})
	return h.respond(c, snap, false, err)
}

func bindPinch(c echo.Context, want int) ([]viewport.Point, error) {
	var req pinchReq
	if err := c.Bind(&req); err != nil {
		return nil, viewport.ErrInvalidArg
	}
	if want >= 0 && len(req.Points) != want {
		return nil, viewport.ErrInvalidArg
	}
	return req.Points, nil
}

// PinchStart begins a two-finger gesture.
func (h *ViewportHandler) PinchStart(c echo.Context) error {
	pts, err := bindPinch(c, 2)
	if err != nil {
		return badRequest(c, "exactly two points required")
	}
	snap, err := h.Registry.Do(c.Param("id"), func(v *viewport.Controller) error {
		return v.BeginPinch(pts[0], pts[1])
	})
	return h.respond(c, snap, false, err)
}

// PinchMove updates the two finger positions.
func (h *ViewportHandler) PinchMove(c echo.Context) error {
	pts, err := bindPinch(c, 2)
	if err != nil {
		return badRequest(c, "exactly two points required")
	}
	snap, err := h.Registry.Do(c.Param("id"), func(v *viewport.Controller) error {
		return v.MovePinch(pts[0], pts[1])
	})
	return h.respond(c, snap, err == nil, err)
}

// PinchEnd reports the fingers still down (zero, one or two).
func (h *ViewportHandler) PinchEnd(c echo.Context) error {
	var pts []viewport.Point
	if c.Request().ContentLength != 0 {
		var err error
		if pts, err = bindPinch(c, -1); err != nil || len(pts) > 2 {
			return badRequest(c, "at most two points allowed")
		}
	}
	snap, err := h.Registry.Do(c.Param("id"), func(v *viewport.Controller) error {
		return v.EndPinch(pts...)
	})
	return h.respond(c, snap, false, err)
}
