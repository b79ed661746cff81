package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/library-seat-monitor/internal/model"
)

func fixture() []model.Seat {
	return []model.Seat{
		{ID: "1-F-Q-1", Floor: "1/F", Zone: model.ZoneQuiet, Status: model.StatusAvailable},
		{ID: "1-F-Q-2", Floor: "1/F", Zone: model.ZoneQuiet, Status: model.StatusHogging, OccupiedTime: 40},
		{ID: "1-F-G-3", Floor: "1/F", Zone: model.ZoneGroup, Status: model.StatusOccupied, OccupiedTime: 12},
		{ID: "G-F-Q-4", Floor: "G/F", Zone: model.ZoneQuiet, Status: model.StatusHogging, OccupiedTime: 18},
		{ID: "G-F-Q-5", Floor: "G/F", Zone: model.ZoneQuiet, Status: model.StatusReserved},
	}
}

func TestSeatRepo_ListFilters(t *testing.T) {
	r := NewSeatRepo(fixture())
	ctx := context.Background()

	all, err := r.List(ctx, SeatFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	quiet, err := r.List(ctx, SeatFilter{Floor: "1/F", Zone: model.ZoneQuiet})
	require.NoError(t, err)
	assert.Len(t, quiet, 2)

	hog, err := r.List(ctx, SeatFilter{Status: model.StatusHogging})
	require.NoError(t, err)
	require.Len(t, hog, 2)
	assert.Equal(t, "1-F-Q-2", hog[0].ID)

	// returned seats are copies
	all[0].Status = model.StatusReserved
	s, err := r.GetByID(ctx, "1-F-Q-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, s.Status)
}

func TestSeatRepo_GetByIDAndIndex(t *testing.T) {
	r := NewSeatRepo(fixture())
	ctx := context.Background()

	_, err := r.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrSeatNotFound)

	idx, total, err := r.IndexInZone(ctx, "G-F-Q-5")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, total)

	_, _, err = r.IndexInZone(ctx, "missing")
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestSeatRepo_StatsAndHogging(t *testing.T) {
	r := NewSeatRepo(fixture())
	ctx := context.Background()

	st, err := r.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SeatStats{Total: 5, Available: 1, Occupied: 1, Hogging: 2, Reserved: 1}, st)

	one, err := r.Hogging(ctx, 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "1-F-Q-2", one[0].ID)

	all, err := r.Hogging(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSeatRepo_SetStatus(t *testing.T) {
	r := NewSeatRepo(fixture())
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		id       string
		to       model.Status
		wantPrev model.Status
		wantTime int
	}{
		{"1-F-Q-1", model.StatusOccupied, model.StatusAvailable, 0},
		{"1-F-G-3", model.StatusHogging, model.StatusOccupied, 12},
		{"1-F-Q-2", model.StatusAvailable, model.StatusHogging, 0},
		{"G-F-Q-4", model.StatusReserved, model.StatusHogging, 0},
	}
	for _, tt := range tests {
		s, prev, err := r.SetStatus(ctx, tt.id, tt.to, now)
		require.NoError(t, err, tt.id)
		assert.Equal(t, tt.wantPrev, prev, tt.id)
		assert.Equal(t, tt.to, s.Status, tt.id)
		assert.Equal(t, tt.wantTime, s.OccupiedTime, tt.id)
		assert.Equal(t, now, s.LastUpdate, tt.id)
	}

	_, _, err := r.SetStatus(ctx, "missing", model.StatusAvailable, now)
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestSeatRepo_MutateAndReplace(t *testing.T) {
	r := NewSeatRepo(fixture())
	ctx := context.Background()

	require.NoError(t, r.Mutate(ctx, func(s *model.Seat) { s.OccupiedTime++ }))
	s, _ := r.GetByID(ctx, "1-F-Q-2")
	assert.Equal(t, 41, s.OccupiedTime)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, r.Mutate(cancelled, func(*model.Seat) {}), context.Canceled)
	_, err := r.List(cancelled, SeatFilter{})
	assert.ErrorIs(t, err, context.Canceled)

	r.Replace([]model.Seat{{ID: "LG1-C-1", Floor: "LG1", Zone: model.ZoneComputer}})
	assert.Equal(t, 1, r.Len())
	_, err = r.GetByID(ctx, "1-F-Q-1")
	assert.ErrorIs(t, err, ErrSeatNotFound)
}
