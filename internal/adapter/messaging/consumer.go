package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/core/services"
)

// Coordinator is the part of the booking service driven by payment events.
type Coordinator interface {
	ConfirmReservation(ctx context.Context, token, externalRef string) (*services.ConfirmResult, error)
	VoidReservation(ctx context.Context, externalRef string) (*services.VoidResult, error)
}

type Outcome int

const (
	// Ack removes the message: it was applied, or it can never be applied.
	Ack Outcome = iota
	// Requeue hands the message back to the broker for another attempt.
	Requeue
)

type Consumer struct {
	url         string
	queue       string
	coordinator Coordinator
	logger      *slog.Logger
	prefetch    int
}

func NewConsumer(url, queue string, coordinator Coordinator, logger *slog.Logger) *Consumer {
	if queue == "" {
		queue = PaymentEventsQueue
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{url: url, queue: queue, coordinator: coordinator, logger: logger, prefetch: 50}
}

// Run consumes until ctx is cancelled, reconnecting with exponential backoff.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("payment consumer: dial failed", "error", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("payment consumer: loop ended, reconnecting", "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		c.logger.Warn("payment consumer: set QoS failed", "error", err)
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	c.logger.Info("payment consumer started", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if c.HandleMessage(ctx, d.Body) == Requeue {
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage applies one payment event and decides its fate. Only storage
// failures are retried; anything else would fail the same way again.
func (c *Consumer) HandleMessage(ctx context.Context, body []byte) Outcome {
	var ev PaymentEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		c.logger.Error("payment consumer: malformed message dropped", "error", err)
		return Ack
	}

	var err error
	switch ev.Type {
	case EventPaymentSucceeded:
		var result *services.ConfirmResult
		result, err = c.coordinator.ConfirmReservation(ctx, ev.Token, ev.ExternalRef)
		if err == nil {
			c.logger.Info("payment applied", "external_ref", ev.ExternalRef, "outcome", result.Outcome, "hold_lost", result.HoldLost)
		}
	case EventOrderCancelled, EventOrderRefunded, EventOrderDeleted:
		var result *services.VoidResult
		result, err = c.coordinator.VoidReservation(ctx, ev.ExternalRef)
		if err == nil {
			c.logger.Info("order void applied", "type", ev.Type, "external_ref", ev.ExternalRef, "removed", result.Removed)
		}
	default:
		c.logger.Warn("payment consumer: unknown event type ignored", "type", ev.Type)
		return Ack
	}

	if err == nil {
		return Ack
	}
	if domain.IsPersistence(err) {
		c.logger.Error("payment consumer: storage failure, requeueing", "type", ev.Type, "external_ref", ev.ExternalRef, "error", err)
		return Requeue
	}
	c.logger.Error("payment consumer: event rejected", "type", ev.Type, "external_ref", ev.ExternalRef, "error", err)
	return Ack
}
