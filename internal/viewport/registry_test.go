package viewport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/library-seat-monitor/internal/config"
	"github.com/iliyamo/library-seat-monitor/internal/timeutil"
)

func TestRegistry_Lifecycle(t *testing.T) {
	clock := timeutil.NewMockClock(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	r := NewRegistry(config.DefaultViewportConfig(), clock, nil)

	snap, err := r.Create(Size{Width: 800, Height: 600})
	require.NoError(t, err)
	require.NotEmpty(t, snap.ID)
	assert.Equal(t, 80, snap.ZoomPercent)
	assert.Equal(t, 1, r.Len())

	snap, err = r.Do(snap.ID, func(c *Controller) error {
		_, err := c.ZoomToPoint(0.2, Point{X: 400, Y: 300})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 100, snap.ZoomPercent)

	got, err := r.Get(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	require.NoError(t, r.Delete(snap.ID))
	_, err = r.Get(snap.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, r.Delete(snap.ID), ErrSessionNotFound)
}

func TestRegistry_DoReturnsGestureErrors(t *testing.T) {
	r := NewRegistry(config.DefaultViewportConfig(), nil, nil)
	snap, err := r.Create(Size{Width: 800, Height: 600})
	require.NoError(t, err)

	_, err = r.Do(snap.ID, func(c *Controller) error { return c.DragTo(Point{X: 1, Y: 1}) })
	assert.ErrorIs(t, err, ErrNoGesture)
}

func TestRegistry_SweepAndLimit(t *testing.T) {
	cfg := config.DefaultViewportConfig()
	cfg.SessionTTL = time.Minute
	cfg.MaxSessions = 2
	clock := timeutil.NewMockClock(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	r := NewRegistry(cfg, clock, nil)

	a, err := r.Create(Size{Width: 100, Height: 100})
	require.NoError(t, err)
	clock.Advance(45 * time.Second)
	b, err := r.Create(Size{Width: 100, Height: 100})
	require.NoError(t, err)

	_, err = r.Create(Size{Width: 100, Height: 100})
	assert.ErrorIs(t, err, ErrTooManySessions)

	clock.Advance(30 * time.Second)
	assert.Equal(t, 1, r.Sweep())
	_, err = r.Get(a.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Get(b.ID)
	assert.NoError(t, err)
}
