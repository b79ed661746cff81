// Package queue_publisher publishes seat events to RabbitMQ. Publishing is
// asynchronous: events are buffered and a single goroutine owns the broker
// connection, so a slow or missing broker never stalls the simulator.
// Failures are logged and the event is dropped.
package queue_publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/library-seat-monitor/internal/config"
	q "github.com/iliyamo/library-seat-monitor/internal/queue"
)

// ErrBufferFull is returned when the publish buffer has no room.
var ErrBufferFull = errors.New("event buffer full")

const redialDelay = 5 * time.Second

// Publisher buffers SeatEvents and sends them on Run's goroutine.
type Publisher struct {
	cfg    config.MessagingConfig
	log    *zap.Logger
	events chan q.SeatEvent

	conn    *amqp.Connection
	ch      *amqp.Channel
	retryAt time.Time

	published atomic.Uint64
	dropped   atomic.Uint64
}

// Stats reports publisher counters.
type Stats struct {
	Enabled   bool   `json:"enabled"`
	Queue     string `json:"queue,omitempty"`
	Buffered  int    `json:"buffered"`
	Published uint64 `json:"published"`
	Dropped   uint64 `json:"dropped"`
}

// NewPublisher constructs a Publisher. When messaging is disabled every
// publish is a no-op.
func NewPublisher(cfg config.MessagingConfig, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Publisher{cfg: cfg, log: log.Named("publisher")}
	if cfg.Enabled {
		p.events = make(chan q.SeatEvent, cfg.BufferSize)
	}
	return p
}

// PublishSeatEvent enqueues ev without blocking.
func (p *Publisher) PublishSeatEvent(_ context.Context, ev q.SeatEvent) error {
	if p.events == nil {
		return nil
	}
	select {
	case p.events <- ev:
		return nil
	default:
		p.dropped.Add(1)
		return ErrBufferFull
	}
}

// Stats returns a snapshot of the counters.
func (p *Publisher) Stats() Stats {
	return Stats{
		Enabled:   p.events != nil,
		Queue:     p.cfg.Queue,
		Buffered:  len(p.events),
		Published: p.published.Load(),
		Dropped:   p.dropped.Load(),
	}
}

// Run drains the buffer until ctx is cancelled, then closes the broker
// connection. It returns immediately when messaging is disabled.
func (p *Publisher) Run(ctx context.Context) {
	if p.events == nil {
		return
	}
	defer p.close()
	p.log.Info("seat event publisher started", zap.String("queue", p.cfg.Queue))
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-p.events:
			if err := p.send(ctx, ev); err != nil {
				p.dropped.Add(1)
				p.log.Warn("publish failed", zap.String("seat_id", ev.SeatID), zap.Error(err))
				continue
			}
			p.published.Add(1)
		}
	}
}

func (p *Publisher) send(ctx context.Context, ev q.SeatEvent) error {
	if err := p.ensureChannel(); err != nil {
		return err
	}
	pub, err := newPublishing(ev)
	if err != nil {
		return err
	}
	if err := p.ch.PublishWithContext(ctx,
		"",          // default exchange
		p.cfg.Queue, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		pub,
	); err != nil {
		p.close()
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// ensureChannel dials lazily and waits redialDelay between failed attempts.
func (p *Publisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.close()
	if time.Now().Before(p.retryAt) {
		return errors.New("broker unavailable")
	}
	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		p.retryAt = time.Now().Add(redialDelay)
		return fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		p.retryAt = time.Now().Add(redialDelay)
		return fmt.Errorf("channel open: %w", err)
	}
	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.cfg.Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		p.retryAt = time.Now().Add(redialDelay)
		return fmt.Errorf("queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	p.log.Info("connected to broker", zap.String("queue", p.cfg.Queue))
	return nil
}

func (p *Publisher) close() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func newPublishing(ev q.SeatEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.ChangedAt,
		Type:         "seat.status_changed",
		Body:         body,
	}, nil
}
