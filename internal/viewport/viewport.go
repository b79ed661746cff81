// Package viewport keeps the pan/zoom transform of the floor map. Zoom
// gestures are anchored so the content pixel under the pointer (or the
// pinch midpoint) stays put, and pan is clamped so the scaled map can
// never be dragged entirely out of its container.
package viewport

import (
	"errors"
	"fmt"
	"math"

	"github.com/iliyamo/library-seat-monitor/internal/config"
)

var (
	ErrNoGesture   = errors.New("no gesture in progress")
	ErrInvalidSize = errors.New("container size must be positive")
	ErrInvalidArg  = errors.New("coordinates must be finite")
)

// Point is a position in container coordinates (pixels from the
// container's top-left corner).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) finite() bool { return finite(p.X) && finite(p.Y) }

// Size is a container size in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s Size) valid() bool { return finite(s.Width) && finite(s.Height) && s.Width > 0 && s.Height > 0 }

// State is the affine transform applied to the map layer.
type State struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"pan_x"`
	PanY float64 `json:"pan_y"`
}

type gesture int

const (
	gestureNone gesture = iota
	gestureDrag
	gesturePinch
)

// Controller owns one viewport's state and in-flight gesture. It is not
// safe for concurrent use; Registry serialises access.
type Controller struct {
	cfg       config.ViewportConfig
	state     State
	container Size

	mode gesture

	// drag: pan = pointer - dragOrigin
	dragOrigin Point

	// pinch: values captured at gesture start
	pinchAnchor   Point
	pinchDistance float64
	pinchZoom     float64
	pinchPanX     float64
	pinchPanY     float64
}

// NewController starts at the configured initial zoom with no pan.
func NewController(cfg config.ViewportConfig, container Size) (*Controller, error) {
	if !container.valid() {
		return nil, ErrInvalidSize
	}
	c := &Controller{cfg: cfg, container: container}
	c.Reset()
	return c, nil
}

// State returns the current transform.
func (c *Controller) State() State { return c.state }

// Container returns the current container size.
func (c *Controller) Container() Size { return c.container }

func (c *Controller) clampZoom(z float64) float64 {
	return math.Min(math.Max(z, c.cfg.MinZoom), c.cfg.MaxZoom)
}

// Bounds returns the pan magnitude allowed on each axis at the current
// zoom: half the overflow of the scaled map, in unscaled units.
func (c *Controller) Bounds() (maxPanX, maxPanY float64) {
	z := c.state.Zoom
	scaledW := c.container.Width * c.cfg.MapScale * z
	scaledH := c.container.Height * c.cfg.MapScale * z
	maxPanX = math.Max(0, (scaledW-c.container.Width)/(2*z))
	maxPanY = math.Max(0, (scaledH-c.container.Height)/(2*z))
	return maxPanX, maxPanY
}

// Update clamps pan into the current bounds.
func (c *Controller) Update() {
	mx, my := c.Bounds()
	c.state.PanX = math.Max(-mx, math.Min(mx, c.state.PanX))
	c.state.PanY = math.Max(-my, math.Min(my, c.state.PanY))
}

// ZoomToPoint changes zoom by delta keeping anchor stationary. It
// reports false, leaving the state untouched, when the clamped zoom
// equals the current one.
func (c *Controller) ZoomToPoint(delta float64, anchor Point) (bool, error) {
	if !finite(delta) || !anchor.finite() {
		return false, ErrInvalidArg
	}
	oldZoom := c.state.Zoom
	newZoom := c.clampZoom(oldZoom + delta)
	if newZoom == oldZoom {
		return false, nil
	}
	factor := newZoom / oldZoom
	c.state.PanX = anchor.X - (anchor.X-c.state.PanX)*factor
	c.state.PanY = anchor.Y - (anchor.Y-c.state.PanY)*factor
	c.state.Zoom = newZoom
	c.Update()
	return true, nil
}

func (c *Controller) center() Point {
	return Point{X: c.container.Width / 2, Y: c.container.Height / 2}
}

// ZoomIn zooms one step about the container centre.
func (c *Controller) ZoomIn() bool {
	ok, _ := c.ZoomToPoint(c.cfg.ZoomStep, c.center())
	return ok
}

// ZoomOut zooms out one step about the container centre.
func (c *Controller) ZoomOut() bool {
	ok, _ := c.ZoomToPoint(-c.cfg.ZoomStep, c.center())
	return ok
}

// DoubleClick zooms in two steps about p.
func (c *Controller) DoubleClick(p Point) (bool, error) {
	return c.ZoomToPoint(2*c.cfg.ZoomStep, p)
}

// Wheel converts a wheel delta into a zoom proportional to the current
// zoom. Scrolling up (negative deltaY) zooms in.
func (c *Controller) Wheel(deltaY float64, p Point) (bool, error) {
	if !finite(deltaY) {
		return false, ErrInvalidArg
	}
	return c.ZoomToPoint(-deltaY*c.cfg.WheelSensitivity*c.state.Zoom, p)
}

// BeginDrag starts a one-pointer pan at p. It cancels any pinch.
func (c *Controller) BeginDrag(p Point) error {
	if !p.finite() {
		return ErrInvalidArg
	}
	c.mode = gestureDrag
	c.dragOrigin = Point{X: p.X - c.state.PanX, Y: p.Y - c.state.PanY}
	return nil
}

// DragTo moves the pan with the pointer.
func (c *Controller) DragTo(p Point) error {
	if c.mode != gestureDrag {
		return ErrNoGesture
	}
	if !p.finite() {
		return ErrInvalidArg
	}
	c.state.PanX = p.X - c.dragOrigin.X
	c.state.PanY = p.Y - c.dragOrigin.Y
	c.Update()
	return nil
}

// EndDrag finishes a drag. Ending with no drag in progress is a no-op.
func (c *Controller) EndDrag() {
	if c.mode == gestureDrag {
		c.mode = gestureNone
	}
}

// BeginPinch records the two-finger midpoint as the anchor together with
// the starting finger distance, zoom and pan.
func (c *Controller) BeginPinch(a, b Point) error {
	if !a.finite() || !b.finite() {
		return ErrInvalidArg
	}
	c.mode = gesturePinch
	c.pinchAnchor = Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	c.pinchDistance = math.Hypot(b.X-a.X, b.Y-a.Y)
	c.pinchZoom = c.state.Zoom
	c.pinchPanX = c.state.PanX
	c.pinchPanY = c.state.PanY
	return nil
}

// MovePinch scales the starting zoom by the ratio of the current finger
// distance to the starting one, anchored at the starting midpoint. If the
// gesture started with both fingers on the same spot it restarts from
// the current fingers instead.
func (c *Controller) MovePinch(a, b Point) error {
	if c.mode != gesturePinch {
		return ErrNoGesture
	}
	if !a.finite() || !b.finite() {
		return ErrInvalidArg
	}
	if c.pinchDistance == 0 {
		return c.BeginPinch(a, b)
	}
	distance := math.Hypot(b.X-a.X, b.Y-a.Y)
	newZoom := c.clampZoom(c.pinchZoom * distance / c.pinchDistance)
	factor := newZoom / c.pinchZoom
	c.state.PanX = c.pinchAnchor.X - (c.pinchAnchor.X-c.pinchPanX)*factor
	c.state.PanY = c.pinchAnchor.Y - (c.pinchAnchor.Y-c.pinchPanY)*factor
	c.state.Zoom = newZoom
	c.Update()
	return nil
}

// EndPinch handles fingers lifting. With one finger left the gesture
// becomes a drag from that finger; with two it restarts the pinch.
func (c *Controller) EndPinch(remaining ...Point) error {
	switch len(remaining) {
	case 0:
		c.mode = gestureNone
		return nil
	case 1:
		return c.BeginDrag(remaining[0])
	default:
		return c.BeginPinch(remaining[0], remaining[1])
	}
}

// Resize applies a new container size, e.g. after entering or leaving
// fullscreen or an orientation change, and re-clamps pan.
func (c *Controller) Resize(s Size) error {
	if !s.valid() {
		return ErrInvalidSize
	}
	c.container = s
	c.Update()
	return nil
}

// Reset returns to the initial zoom and centred pan.
func (c *Controller) Reset() {
	c.state = State{Zoom: c.cfg.InitialZoom}
	c.mode = gestureNone
	c.Update()
}

// Transform renders the state as a CSS transform.
func (c *Controller) Transform() string {
	return fmt.Sprintf("translate(%spx, %spx) scale(%s)",
		fmtNum(c.state.PanX), fmtNum(c.state.PanY), fmtNum(c.state.Zoom))
}

// ZoomPercent is the zoom indicator value.
func (c *Controller) ZoomPercent() int {
	return int(math.Round(c.state.Zoom * 100))
}

// CanZoomIn reports whether zoom is below the maximum.
func (c *Controller) CanZoomIn() bool { return c.state.Zoom < c.cfg.MaxZoom }

// CanZoomOut reports whether zoom is above the minimum.
func (c *Controller) CanZoomOut() bool { return c.state.Zoom > c.cfg.MinZoom }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func fmtNum(v float64) string {
	if v == 0 {
		return "0" // avoid "-0"
	}
	return fmt.Sprintf("%g", math.Round(v*1000)/1000)
}
