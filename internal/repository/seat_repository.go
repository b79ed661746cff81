package repository // repository holds the in-memory seat collection

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/library-seat-monitor/internal/model"
)

// SeatFilter narrows List results. Empty fields match everything.
type SeatFilter struct {
	Floor  string
	Zone   model.Zone
	Status model.Status
}

func (f SeatFilter) match(s *model.Seat) bool {
	if f.Floor != "" && s.Floor != f.Floor {
		return false
	}
	if f.Zone != "" && s.Zone != f.Zone {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	return true
}

// SeatRepo owns the fixed seat collection. Seats are mutated in place;
// none are added or removed after construction except by Replace, which
// swaps the whole set for a freshly generated one of the same shape.
type SeatRepo struct {
	mu    sync.RWMutex
	seats []model.Seat
	index map[string]int
}

// NewSeatRepo constructs a SeatRepo that takes ownership of seats.
func NewSeatRepo(seats []model.Seat) *SeatRepo {
	r := &SeatRepo{}
	r.load(seats)
	return r
}

func (r *SeatRepo) load(seats []model.Seat) {
	r.seats = seats
	r.index = make(map[string]int, len(seats))
	for i, s := range seats {
		r.index[s.ID] = i
	}
}

// Replace swaps in a new seat set (simulation reset).
func (r *SeatRepo) Replace(seats []model.Seat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.load(seats)
}

// Len returns the number of seats.
func (r *SeatRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.seats)
}

// List returns copies of the seats matching f in collection order.
func (r *SeatRepo) List(ctx context.Context, f SeatFilter) ([]model.Seat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Seat, 0, len(r.seats))
	for i := range r.seats {
		if f.match(&r.seats[i]) {
			out = append(out, r.seats[i])
		}
	}
	return out, nil
}

// GetByID returns a copy of the seat with the given id.
func (r *SeatRepo) GetByID(ctx context.Context, id string) (*model.Seat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return nil, ErrSeatNotFound
	}
	s := r.seats[i]
	return &s, nil
}

// IndexInZone returns the position of the seat among the seats sharing
// its floor and zone, along with that group's size.
func (r *SeatRepo) IndexInZone(ctx context.Context, id string) (index, total int, err error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return 0, 0, ErrSeatNotFound
	}
	target := r.seats[i]
	index = -1
	for j := range r.seats {
		s := &r.seats[j]
		if s.Floor != target.Floor || s.Zone != target.Zone {
			continue
		}
		if j == i {
			index = total
		}
		total++
	}
	return index, total, nil
}

// Stats counts seats per status.
func (r *SeatRepo) Stats(ctx context.Context) (model.SeatStats, error) {
	var st model.SeatStats
	if err := ctx.Err(); err != nil {
		return st, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.seats {
		st.Add(r.seats[i].Status)
	}
	return st, nil
}

// Hogging returns up to limit hogging seats in collection order.
// A limit <= 0 returns all of them.
func (r *SeatRepo) Hogging(ctx context.Context, limit int) ([]model.Seat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Seat
	for i := range r.seats {
		if r.seats[i].Status != model.StatusHogging {
			continue
		}
		out = append(out, r.seats[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Mutate calls fn for every seat under the write lock. fn may change the
// seat in place but must not retain the pointer. ctx is checked once up
// front; a pass that has started always visits every seat.
func (r *SeatRepo) Mutate(ctx context.Context, fn func(s *model.Seat)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.seats {
		fn(&r.seats[i])
	}
	return nil
}

// SetStatus forces a seat into status. The occupied-time counter is
// cleared when leaving available or entering an untimed status.
func (r *SeatRepo) SetStatus(ctx context.Context, id string, status model.Status, now time.Time) (*model.Seat, model.Status, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return nil, "", ErrSeatNotFound
	}
	s := &r.seats[i]
	prev := s.Status
	if !status.Timed() || prev == model.StatusAvailable {
		s.OccupiedTime = 0
	}
	s.Status = status
	s.LastUpdate = now
	out := *s
	return &out, prev, nil
}
