package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
)

const (
	publisherDialTimeout = 2 * time.Second
	publisherRedialDelay = 30 * time.Second
)

// ErrBrokerUnavailable is returned without dialing while the publisher waits
// out the delay after a failed connection attempt.
var ErrBrokerUnavailable = errors.New("broker unavailable")

// Publisher sends reservation events to a durable queue. The connection is
// opened lazily and reopened after a failed publish. Dials are bounded by
// publisherDialTimeout and not retried for publisherRedialDelay after a failure.
type Publisher struct {
	url    string
	queue  string
	logger *slog.Logger
	dial   func(url string) (*amqp.Connection, error)
	now    func() time.Time

	mu          sync.Mutex
	conn        *amqp.Connection
	ch          *amqp.Channel
	redialAfter time.Time
}

func dialWithTimeout(url string) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(publisherDialTimeout),
	})
}

func NewPublisher(url, queue string, logger *slog.Logger) *Publisher {
	if queue == "" {
		queue = ReservationEventsQueue
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{url: url, queue: queue, logger: logger, dial: dialWithTimeout, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, event domain.ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Type),
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.reset()
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *Publisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.reset()

	now := p.now()
	if now.Before(p.redialAfter) {
		return ErrBrokerUnavailable
	}
	conn, err := p.dial(p.url)
	if err != nil {
		p.redialAfter = now.Add(publisherRedialDelay)
		p.logger.Warn("event broker unreachable", "queue", p.queue, "retry_after", p.redialAfter, "error", err)
		return fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("channel open: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("queue declare: %w", err)
	}

	p.conn, p.ch = conn, ch
	p.logger.Info("event publisher connected", "queue", p.queue)
	return nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
}
