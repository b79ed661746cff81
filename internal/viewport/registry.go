package viewport

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/library-seat-monitor/internal/config"
	"github.com/iliyamo/library-seat-monitor/internal/timeutil"
)

var (
	ErrSessionNotFound = errors.New("viewport session not found")
	ErrTooManySessions = errors.New("too many viewport sessions")
)

// Snapshot is the client-facing view of a session.
type Snapshot struct {
	ID          string  `json:"id"`
	State       State   `json:"state"`
	Container   Size    `json:"container"`
	MaxPanX     float64 `json:"max_pan_x"`
	MaxPanY     float64 `json:"max_pan_y"`
	Transform   string  `json:"transform"`
	ZoomPercent int     `json:"zoom_percent"`
	CanZoomIn   bool    `json:"can_zoom_in"`
	CanZoomOut  bool    `json:"can_zoom_out"`
}

type session struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Registry holds one Controller per client session. Sessions idle for
// longer than the configured TTL are dropped by Sweep.
type Registry struct {
	cfg   config.ViewportConfig
	clock timeutil.Clock
	log   *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewRegistry constructs an empty Registry.
func NewRegistry(cfg config.ViewportConfig, clock timeutil.Clock, log *zap.Logger) *Registry {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{cfg: cfg, clock: clock, log: log.Named("viewport"), sessions: make(map[string]*session)}
}

func snapshot(id string, c *Controller) Snapshot {
	mx, my := c.Bounds()
	return Snapshot{
		ID:          id,
		State:       c.State(),
		Container:   c.Container(),
		MaxPanX:     mx,
		MaxPanY:     my,
		Transform:   c.Transform(),
		ZoomPercent: c.ZoomPercent(),
		CanZoomIn:   c.CanZoomIn(),
		CanZoomOut:  c.CanZoomOut(),
	}
}

// Create opens a session for a container of the given size.
func (r *Registry) Create(container Size) (Snapshot, error) {
	ctrl, err := NewController(r.cfg, container)
	if err != nil {
		return Snapshot{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cfg.MaxSessions > 0 && len(r.sessions) >= r.cfg.MaxSessions {
		return Snapshot{}, ErrTooManySessions
	}
	id := uuid.NewString()
	r.sessions[id] = &session{ctrl: ctrl, lastSeen: r.clock.Now()}
	return snapshot(id, ctrl), nil
}

// Get returns the current snapshot of a session.
func (r *Registry) Get(id string) (Snapshot, error) {
	return r.Do(id, func(*Controller) error { return nil })
}

// Do runs fn against the session's controller under the registry lock
// and returns the resulting snapshot. If fn fails the snapshot still
// reflects whatever state the controller is in.
func (r *Registry) Do(id string, fn func(c *Controller) error) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	s.lastSeen = r.clock.Now()
	err := fn(s.ctrl)
	return snapshot(id, s.ctrl), err
}

// Delete closes a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how
// many were removed.
func (r *Registry) Sweep() int {
	now := r.clock.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.cfg.SessionTTL {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps idle sessions every minute until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	ticker := r.clock.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if n := r.Sweep(); n > 0 {
				r.log.Debug("swept idle viewport sessions", zap.Int("removed", n))
			}
		}
	}
}
