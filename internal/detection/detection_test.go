package detection

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/library-seat-monitor/internal/config"
	"github.com/iliyamo/library-seat-monitor/internal/model"
	"github.com/iliyamo/library-seat-monitor/internal/repository"
	"github.com/iliyamo/library-seat-monitor/internal/timeutil"
)

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func hoggingSeats(n int, base int) []model.Seat {
	seats := make([]model.Seat, 0, n*2)
	for i := 0; i < n; i++ {
		seats = append(seats,
			model.Seat{ID: model.SeatID("LG1", model.ZoneQuiet, i*2+1), Floor: "LG1", Zone: model.ZoneQuiet, Status: model.StatusAvailable},
			model.Seat{ID: model.SeatID("LG1", model.ZoneGroup, i*2+2), Floor: "LG1", Zone: model.ZoneGroup, Status: model.StatusHogging, OccupiedTime: base + i},
		)
	}
	return seats
}

func newTestFeed(seats []model.Seat) (*Feed, *repository.SeatRepo, *timeutil.MockClock) {
	repo := repository.NewSeatRepo(seats)
	clock := timeutil.NewMockClock(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	cfg := config.DetectionConfig{RefreshInterval: 2 * time.Second, MaxItems: 5}
	rng := &lockedRand{r: rand.New(rand.NewPCG(1, 1))}
	return NewFeed(cfg, repo, rng, clock, nil), repo, clock
}

func TestComputeStats(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil))
	got := ComputeStats([]model.Seat{{OccupiedTime: 20}, {OccupiedTime: 21}, {OccupiedTime: 25}})
	assert.Equal(t, Stats{Detections: 3, AvgHoggingMinutes: 22}, got)
}

func TestFeed_StartRefreshesAndCapsItems(t *testing.T) {
	f, _, clock := newTestFeed(hoggingSeats(8, 20))
	defer f.Stop()

	require.True(t, f.Start(context.Background()))
	snap := f.Snapshot()
	assert.True(t, snap.Active)
	require.NotNil(t, snap.StartedAt)
	assert.Equal(t, clock.Now(), *snap.StartedAt)
	assert.Equal(t, uint64(1), snap.Refreshes)
	require.Len(t, snap.Items, 5)
	assert.Equal(t, Stats{Detections: 8, AvgHoggingMinutes: 23}, snap.Stats)

	ids := map[string]bool{}
	for i, d := range snap.Items {
		assert.Equal(t, model.SeatID("LG1", model.ZoneGroup, i*2+2), d.SeatID)
		assert.Equal(t, 20+i, d.OccupiedMinutes)
		assert.GreaterOrEqual(t, d.LastSeenMinutes, 1)
		assert.LessOrEqual(t, d.LastSeenMinutes, 5)
		_, err := uuid.Parse(d.ID)
		assert.NoError(t, err)
		assert.False(t, ids[d.ID])
		ids[d.ID] = true
	}
}

func TestFeed_RefreshesOnTicker(t *testing.T) {
	f, repo, clock := newTestFeed(hoggingSeats(2, 30))
	defer f.Stop()
	require.True(t, f.Start(context.Background()))
	first := f.Snapshot().Items
	require.Len(t, first, 2)

	_, _, err := repo.SetStatus(context.Background(), first[0].SeatID, model.StatusAvailable, clock.Now())
	require.NoError(t, err)

	require.Eventually(t, func() bool { return clock.ActiveTickers() == 1 }, time.Second, 5*time.Millisecond)
	clock.Advance(2 * time.Second)
	require.Eventually(t, func() bool { return f.Snapshot().Refreshes == 2 }, time.Second, 5*time.Millisecond)

	snap := f.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, first[1].SeatID, snap.Items[0].SeatID)
	assert.NotEqual(t, first[1].ID, snap.Items[0].ID)
	assert.Equal(t, 1, snap.Stats.Detections)
}

func TestFeed_StopClearsAndIsIdempotent(t *testing.T) {
	f, _, clock := newTestFeed(hoggingSeats(3, 16))

	assert.False(t, f.Stop())
	require.True(t, f.Start(context.Background()))
	assert.False(t, f.Start(context.Background()))
	require.Eventually(t, func() bool { return clock.ActiveTickers() == 1 }, time.Second, 5*time.Millisecond)

	require.True(t, f.Stop())
	snap := f.Snapshot()
	assert.False(t, snap.Active)
	assert.Nil(t, snap.StartedAt)
	assert.Empty(t, snap.Items)
	assert.Equal(t, Stats{}, snap.Stats)
	assert.Zero(t, clock.ActiveTickers())
	assert.False(t, f.Active())
}

func TestFeed_NoHoggingSeats(t *testing.T) {
	f, _, _ := newTestFeed([]model.Seat{{ID: "x", Status: model.StatusOccupied, OccupiedTime: 50}})
	defer f.Stop()
	require.True(t, f.Start(context.Background()))
	snap := f.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, Stats{}, snap.Stats)
}
