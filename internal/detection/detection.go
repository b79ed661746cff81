// Package detection simulates the camera panel: while switched on it
// periodically lists hogging seats as "person detected, no activity"
// findings and keeps summary statistics. No video is analysed.
package detection

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/library-seat-monitor/internal/config"
	"github.com/iliyamo/library-seat-monitor/internal/model"
	"github.com/iliyamo/library-seat-monitor/internal/repository"
	"github.com/iliyamo/library-seat-monitor/internal/timeutil"
)

// Rand supplies the fabricated "last seen" ages.
type Rand interface {
	IntN(n int) int
}

// Detection is one flagged seat.
type Detection struct {
	ID              string     `json:"id"`
	SeatID          string     `json:"seat_id"`
	Floor           string     `json:"floor"`
	Zone            model.Zone `json:"zone"`
	OccupiedMinutes int        `json:"occupied_minutes"`
	LastSeenMinutes int        `json:"last_seen_minutes"`
	DetectedAt      time.Time  `json:"detected_at"`
}

// Stats summarises hogging across the whole building.
type Stats struct {
	Detections        int `json:"detections"`
	AvgHoggingMinutes int `json:"avg_hogging_minutes"`
}

// Snapshot is the panel state returned to clients.
type Snapshot struct {
	Active    bool        `json:"active"`
	StartedAt *time.Time  `json:"started_at,omitempty"`
	Refreshes uint64      `json:"refreshes"`
	Items     []Detection `json:"items"`
	Stats     Stats       `json:"stats"`
}

// ComputeStats counts hogging seats and floors their mean occupied time.
func ComputeStats(hogging []model.Seat) Stats {
	if len(hogging) == 0 {
		return Stats{}
	}
	sum := 0
	for _, s := range hogging {
		sum += s.OccupiedTime
	}
	return Stats{Detections: len(hogging), AvgHoggingMinutes: sum / len(hogging)}
}

// Feed is the switchable detection loop.
type Feed struct {
	cfg   config.DetectionConfig
	repo  *repository.SeatRepo
	clock timeutil.Clock
	log   *zap.Logger

	mu        sync.Mutex
	rng       Rand
	cancel    context.CancelFunc
	done      chan struct{} // identifies the current run
	startedAt time.Time
	refreshes uint64
	items     []Detection
	stats     Stats
}

// NewFeed constructs a stopped Feed.
func NewFeed(cfg config.DetectionConfig, repo *repository.SeatRepo, rng Rand, clock timeutil.Clock, log *zap.Logger) *Feed {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{cfg: cfg, repo: repo, rng: rng, clock: clock, log: log.Named("detection")}
}

// Active reports whether the feed is switched on.
func (f *Feed) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancel != nil
}

// Start switches the feed on, refreshes once straight away and then on
// every RefreshInterval. It returns false if the feed was already on.
func (f *Feed) Start(parent context.Context) bool {
	f.mu.Lock()
	if f.cancel != nil {
		f.mu.Unlock()
		return false
	}
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	f.cancel, f.done = cancel, done
	f.startedAt = f.clock.Now()
	f.refreshes = 0
	f.items, f.stats = nil, Stats{}
	f.mu.Unlock()

	f.log.Info("detection started", zap.Duration("interval", f.cfg.RefreshInterval))
	f.refresh(ctx, done)
	go f.loop(ctx, done)
	return true
}

// Stop switches the feed off, waits for the loop to exit and clears the
// list. It returns false if the feed was already off.
func (f *Feed) Stop() bool {
	f.mu.Lock()
	cancel, done := f.cancel, f.done
	if cancel == nil {
		f.mu.Unlock()
		return false
	}
	f.cancel, f.done = nil, nil
	f.startedAt = time.Time{}
	f.items, f.stats = nil, Stats{}
	f.mu.Unlock()

	cancel()
	<-done
	f.log.Info("detection stopped")
	return true
}

func (f *Feed) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := f.clock.NewTicker(f.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			f.refresh(ctx, done)
		}
	}
}

// refresh rebuilds the list for the run identified by token. Results of a
// run that has since been stopped are dropped.
func (f *Feed) refresh(ctx context.Context, token chan struct{}) {
	hogging, err := f.repo.Hogging(ctx, 0)
	if err != nil {
		if ctx.Err() == nil {
			f.log.Warn("detection refresh failed", zap.Error(err))
		}
		return
	}
	now := f.clock.Now()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done != token {
		return
	}
	n := min(len(hogging), f.cfg.MaxItems)
	items := make([]Detection, 0, n)
	for _, s := range hogging[:n] {
		items = append(items, Detection{
			ID:              uuid.NewString(),
			SeatID:          s.ID,
			Floor:           s.Floor,
			Zone:            s.Zone,
			OccupiedMinutes: s.OccupiedTime,
			LastSeenMinutes: f.rng.IntN(5) + 1,
			DetectedAt:      now,
		})
	}
	f.items = items
	f.stats = ComputeStats(hogging)
	f.refreshes++
}

// Snapshot returns a copy of the panel state.
func (f *Feed) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := Snapshot{
		Active:    f.cancel != nil,
		Refreshes: f.refreshes,
		Items:     append([]Detection{}, f.items...),
		Stats:     f.stats,
	}
	if snap.Active {
		started := f.startedAt
		snap.StartedAt = &started
	}
	return snap
}
