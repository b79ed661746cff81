// Package simulator advances seat statuses on a fixed tick, modelling
// occupancy, hogging and reservation churn with a small probabilistic
// state machine.
package simulator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/iliyamo/library-seat-monitor/internal/config"
	"github.com/iliyamo/library-seat-monitor/internal/model"
	"github.com/iliyamo/library-seat-monitor/internal/queue"
	"github.com/iliyamo/library-seat-monitor/internal/repository"
	"github.com/iliyamo/library-seat-monitor/internal/timeutil"
)

// Publisher receives seat events. Implementations must not block for long;
// the simulator publishes after releasing the seat lock.
type Publisher interface {
	PublishSeatEvent(ctx context.Context, ev queue.SeatEvent) error
}

// TickResult summarises one pass over the seats.
type TickResult struct {
	Tick    uint64            `json:"tick"`
	Visited int               `json:"visited"`
	Changes []queue.SeatEvent `json:"changes"`
}

// Simulator owns the random source and drives the seat repository.
type Simulator struct {
	cfg   config.SimulationConfig
	repo  *repository.SeatRepo
	pub   Publisher
	clock timeutil.Clock
	log   *zap.Logger

	mu  sync.Mutex // guards rng and serialises ticks
	rng Rand

	ticks atomic.Uint64
}

// New constructs a Simulator. pub may be nil.
func New(cfg config.SimulationConfig, repo *repository.SeatRepo, rng Rand, pub Publisher, clock timeutil.Clock, log *zap.Logger) *Simulator {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulator{cfg: cfg, repo: repo, rng: rng, pub: pub, clock: clock, log: log.Named("simulator")}
}

// Ticks returns how many ticks have completed.
func (s *Simulator) Ticks() uint64 { return s.ticks.Load() }

// Config returns the dynamics the simulator was built with.
func (s *Simulator) Config() config.SimulationConfig { return s.cfg }

// Tick visits every seat once. Each seat is picked with UpdateChance; a
// picked seat gets its transition applied and its LastUpdate stamped.
func (s *Simulator) Tick(ctx context.Context) (TickResult, error) {
	now := s.clock.Now()
	var res TickResult

	s.mu.Lock()
	err := s.repo.Mutate(ctx, func(seat *model.Seat) {
		if s.rng.Float64() >= s.cfg.UpdateChance {
			return
		}
		res.Visited++
		from := seat.Status
		changed := Apply(s.cfg, seat, s.rng)
		seat.LastUpdate = now
		if changed {
			res.Changes = append(res.Changes, queue.NewSeatEvent(*seat, from, "simulator"))
		}
	})
	s.mu.Unlock()
	if err != nil {
		return res, err
	}
	res.Tick = s.ticks.Add(1)

	s.publish(ctx, res.Changes)
	s.log.Debug("tick",
		zap.Uint64("tick", res.Tick),
		zap.Int("visited", res.Visited),
		zap.Int("changed", len(res.Changes)))
	return res, nil
}

func (s *Simulator) publish(ctx context.Context, events []queue.SeatEvent) {
	if s.pub == nil {
		return
	}
	// Changes already applied must go out even if the caller has gone away.
	ctx = context.WithoutCancel(ctx)
	for _, ev := range events {
		if err := s.pub.PublishSeatEvent(ctx, ev); err != nil {
			s.log.Warn("publish seat event failed", zap.String("seat_id", ev.SeatID), zap.Error(err))
		}
	}
}

// Run ticks every TickInterval until ctx is cancelled.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := s.clock.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()
	s.log.Info("simulator started",
		zap.Duration("interval", s.cfg.TickInterval),
		zap.Int("seats", s.repo.Len()))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("simulator stopped", zap.Uint64("ticks", s.Ticks()))
			return nil
		case <-ticker.C():
			if _, err := s.Tick(ctx); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					continue
				}
				s.log.Error("tick failed", zap.Error(err))
			}
		}
	}
}

// Reset regenerates the whole seat set from the simulator's random source.
// The per-zone count is taken from the current store so the layout keeps
// its shape; SeatsPerZone is only used when the store is empty.
func (s *Simulator) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	perZone := s.repo.Len() / (len(model.Floors) * len(model.Zones))
	if perZone <= 0 {
		perZone = s.cfg.SeatsPerZone
	}
	s.mu.Lock()
	seats := GenerateSeats(perZone, s.rng, s.clock.Now())
	s.mu.Unlock()
	s.repo.Replace(seats)
	s.log.Info("seats regenerated", zap.Int("seats", len(seats)))
	return nil
}

// SetStatus is the staff override: force a seat into status and publish
// the change.
func (s *Simulator) SetStatus(ctx context.Context, id string, status model.Status) (*model.Seat, error) {
	seat, from, err := s.repo.SetStatus(ctx, id, status, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if from != seat.Status {
		s.publish(ctx, []queue.SeatEvent{queue.NewSeatEvent(*seat, from, "staff")})
	}
	return seat, nil
}
