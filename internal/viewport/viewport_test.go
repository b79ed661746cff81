package viewport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/library-seat-monitor/internal/config"
)

const eps = 1e-9

func newController(t *testing.T, zoom float64) *Controller {
	t.Helper()
	c, err := NewController(config.DefaultViewportConfig(), Size{Width: 800, Height: 600})
	require.NoError(t, err)
	c.state = State{Zoom: zoom}
	return c
}

func TestNewController_StartsAtInitialZoom(t *testing.T) {
	c, err := NewController(config.DefaultViewportConfig(), Size{Width: 800, Height: 600})
	require.NoError(t, err)
	assert.Equal(t, State{Zoom: 0.8}, c.State())
	assert.Equal(t, "translate(0px, 0px) scale(0.8)", c.Transform())
	assert.Equal(t, 80, c.ZoomPercent())

	_, err = NewController(config.DefaultViewportConfig(), Size{Width: 0, Height: 600})
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestZoomToPoint_AnchorsAtPointer(t *testing.T) {
	c := newController(t, 1)

	changed, err := c.ZoomToPoint(1, Point{X: 100, Y: 100})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.InDelta(t, 2, c.State().Zoom, eps)
	assert.InDelta(t, -100, c.State().PanX, eps)
	assert.InDelta(t, -100, c.State().PanY, eps)
}

func TestZoomToPoint_ZeroDeltaIsNoop(t *testing.T) {
	c := newController(t, 1.3)
	c.state.PanX, c.state.PanY = 12, -7
	before := c.State()

	changed, err := c.ZoomToPoint(0, Point{X: 250, Y: 80})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, c.State())
}

func TestZoomToPoint_AtBoundIsNoop(t *testing.T) {
	c := newController(t, 4)
	before := c.State()

	changed, err := c.ZoomToPoint(0.5, Point{X: 10, Y: 10})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, c.State())
	assert.False(t, c.CanZoomIn())
	assert.True(t, c.CanZoomOut())
}

func TestZoomToPoint_ClampsZoom(t *testing.T) {
	c := newController(t, 1)
	_, err := c.ZoomToPoint(100, Point{X: 400, Y: 300})
	require.NoError(t, err)
	assert.Equal(t, 4.0, c.State().Zoom)

	_, err = c.ZoomToPoint(-100, Point{X: 400, Y: 300})
	require.NoError(t, err)
	assert.Equal(t, 0.25, c.State().Zoom)
	assert.False(t, c.CanZoomOut())
}

func TestZoomToPoint_RejectsNonFinite(t *testing.T) {
	c := newController(t, 1)
	_, err := c.ZoomToPoint(math.NaN(), Point{})
	assert.ErrorIs(t, err, ErrInvalidArg)
	assert.Equal(t, 1.0, c.State().Zoom)
}

func TestUpdate_ClampsPan(t *testing.T) {
	c := newController(t, 1)
	mx, my := c.Bounds()
	assert.InDelta(t, 200, mx, eps) // (800*1.5 - 800) / 2
	assert.InDelta(t, 150, my, eps)

	c.state.PanX, c.state.PanY = 1000, -1000
	c.Update()
	assert.InDelta(t, 200, c.State().PanX, eps)
	assert.InDelta(t, -150, c.State().PanY, eps)

	// zoomed out far enough the map fits, so no pan is allowed
	c.state = State{Zoom: 0.5, PanX: 30, PanY: 30}
	c.Update()
	assert.Zero(t, c.State().PanX)
	assert.Zero(t, c.State().PanY)
}

func TestZoomInOut_AboutCentre(t *testing.T) {
	c := newController(t, 1)
	assert.True(t, c.ZoomIn())
	assert.InDelta(t, 1.15, c.State().Zoom, eps)
	// centre anchor: pan = 400 - 400*1.15
	assert.InDelta(t, -60, c.State().PanX, eps)
	assert.True(t, c.ZoomOut())
	assert.InDelta(t, 1, c.State().Zoom, eps)
	assert.InDelta(t, 0, c.State().PanX, 1e-6)
}

func TestWheelAndDoubleClick(t *testing.T) {
	c := newController(t, 1)
	changed, err := c.Wheel(-100, Point{X: 400, Y: 300})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.InDelta(t, 1.2, c.State().Zoom, eps)

	changed, err = c.DoubleClick(Point{X: 400, Y: 300})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.InDelta(t, 1.5, c.State().Zoom, eps)
}

func TestDrag(t *testing.T) {
	c := newController(t, 1)
	assert.ErrorIs(t, c.DragTo(Point{X: 1, Y: 1}), ErrNoGesture)

	require.NoError(t, c.BeginDrag(Point{X: 10, Y: 10}))
	require.NoError(t, c.DragTo(Point{X: 60, Y: 30}))
	assert.InDelta(t, 50, c.State().PanX, eps)
	assert.InDelta(t, 20, c.State().PanY, eps)

	// dragging far is stopped at the bounds
	require.NoError(t, c.DragTo(Point{X: 5000, Y: 5000}))
	assert.InDelta(t, 200, c.State().PanX, eps)
	assert.InDelta(t, 150, c.State().PanY, eps)

	c.EndDrag()
	assert.ErrorIs(t, c.DragTo(Point{X: 1, Y: 1}), ErrNoGesture)
}

func TestPinch_ScalesFromGestureStart(t *testing.T) {
	c := newController(t, 1)
	assert.ErrorIs(t, c.MovePinch(Point{}, Point{X: 1}), ErrNoGesture)

	require.NoError(t, c.BeginPinch(Point{X: 300, Y: 300}, Point{X: 500, Y: 300}))
	require.NoError(t, c.MovePinch(Point{X: 250, Y: 300}, Point{X: 550, Y: 300}))
	assert.InDelta(t, 1.5, c.State().Zoom, eps)

	// ratio is measured against the start distance, not the last move
	require.NoError(t, c.MovePinch(Point{X: 200, Y: 300}, Point{X: 600, Y: 300}))
	assert.InDelta(t, 2, c.State().Zoom, eps)
	assert.InDelta(t, -400, c.State().PanX, eps) // 400 - (400-0)*2
	assert.InDelta(t, -300, c.State().PanY, eps) // 300 - (300-0)*2
}

func TestPinch_ZeroStartDistanceRestarts(t *testing.T) {
	c := newController(t, 1)
	require.NoError(t, c.BeginPinch(Point{X: 100, Y: 100}, Point{X: 100, Y: 100}))
	require.NoError(t, c.MovePinch(Point{X: 100, Y: 100}, Point{X: 200, Y: 100}))
	assert.Equal(t, 1.0, c.State().Zoom)

	require.NoError(t, c.MovePinch(Point{X: 50, Y: 100}, Point{X: 250, Y: 100}))
	assert.InDelta(t, 2, c.State().Zoom, eps)
}

func TestEndPinch_FallsBackToDrag(t *testing.T) {
	c := newController(t, 1)
	require.NoError(t, c.BeginPinch(Point{X: 300, Y: 300}, Point{X: 500, Y: 300}))
	require.NoError(t, c.EndPinch(Point{X: 300, Y: 300}))

	require.NoError(t, c.DragTo(Point{X: 320, Y: 290}))
	assert.InDelta(t, 20, c.State().PanX, eps)
	assert.InDelta(t, -10, c.State().PanY, eps)

	require.NoError(t, c.EndPinch())
	assert.ErrorIs(t, c.DragTo(Point{}), ErrNoGesture)
}

func TestResize_ReclampsPan(t *testing.T) {
	c := newController(t, 1)
	c.state.PanX, c.state.PanY = 200, 150

	require.NoError(t, c.Resize(Size{Width: 400, Height: 200}))
	assert.InDelta(t, 100, c.State().PanX, eps)
	assert.InDelta(t, 50, c.State().PanY, eps)

	assert.ErrorIs(t, c.Resize(Size{Width: -1, Height: 10}), ErrInvalidSize)
}

func TestReset(t *testing.T) {
	c := newController(t, 3)
	c.state.PanX = 40
	c.Reset()
	assert.Equal(t, State{Zoom: 0.8}, c.State())
}
