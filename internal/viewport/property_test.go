package viewport

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/iliyamo/library-seat-monitor/internal/config"
)

// TestZoomStaysClampedAndPanInBounds checks the bounds after any zoom.
func TestZoomStaysClampedAndPanInBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)
	cfg := config.DefaultViewportConfig()

	properties.Property("zoom within limits and pan within bounds", prop.ForAll(
		func(zoom, delta, ax, ay float64) bool {
			c, err := NewController(cfg, Size{Width: 1024, Height: 768})
			if err != nil {
				return false
			}
			c.state = State{Zoom: zoom}
			if _, err := c.ZoomToPoint(delta, Point{X: ax, Y: ay}); err != nil {
				return false
			}
			st := c.State()
			mx, my := c.Bounds()
			return st.Zoom >= cfg.MinZoom && st.Zoom <= cfg.MaxZoom &&
				math.Abs(st.PanX) <= mx+1e-9 && math.Abs(st.PanY) <= my+1e-9
		},
		gen.Float64Range(cfg.MinZoom, cfg.MaxZoom),
		gen.Float64Range(-5, 5),
		gen.Float64Range(0, 1024),
		gen.Float64Range(0, 768),
	))

	properties.TestingRun(t)
}

// TestZoomKeepsAnchorStationary checks that the content point under the
// anchor is the same before and after zooming when pan is unconstrained.
func TestZoomKeepsAnchorStationary(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)
	cfg := config.DefaultViewportConfig()
	cfg.MapScale = 1e6 // bounds wide enough to never clamp

	properties.Property("anchor content point unchanged", prop.ForAll(
		func(zoom, delta, panX, ax float64) bool {
			c, err := NewController(cfg, Size{Width: 1000, Height: 1000})
			if err != nil {
				return false
			}
			c.state = State{Zoom: zoom, PanX: panX}
			before := (ax - c.state.PanX) / c.state.Zoom
			if _, err := c.ZoomToPoint(delta, Point{X: ax, Y: ax}); err != nil {
				return false
			}
			after := (ax - c.state.PanX) / c.state.Zoom
			return math.Abs(before-after) < 1e-6
		},
		gen.Float64Range(cfg.MinZoom, cfg.MaxZoom),
		gen.Float64Range(-2, 2),
		gen.Float64Range(-300, 300),
		gen.Float64Range(0, 1000),
	))

	properties.Property("pinch anchor content point unchanged", prop.ForAll(
		func(zoom, spread, grow float64) bool {
			c, err := NewController(cfg, Size{Width: 1000, Height: 1000})
			if err != nil {
				return false
			}
			c.state = State{Zoom: zoom}
			mid := Point{X: 420, Y: 380}
			if err := c.BeginPinch(Point{X: mid.X - spread, Y: mid.Y}, Point{X: mid.X + spread, Y: mid.Y}); err != nil {
				return false
			}
			before := (mid.X - c.state.PanX) / c.state.Zoom
			s := spread * grow
			if err := c.MovePinch(Point{X: mid.X - s, Y: mid.Y}, Point{X: mid.X + s, Y: mid.Y}); err != nil {
				return false
			}
			after := (mid.X - c.state.PanX) / c.state.Zoom
			return math.Abs(before-after) < 1e-6 && c.state.Zoom >= cfg.MinZoom && c.state.Zoom <= cfg.MaxZoom
		},
		gen.Float64Range(cfg.MinZoom, cfg.MaxZoom),
		gen.Float64Range(1, 300),
		gen.Float64Range(0.1, 5),
	))

	properties.TestingRun(t)
}
