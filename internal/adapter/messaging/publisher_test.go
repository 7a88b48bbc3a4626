package messaging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_WaitsBeforeRedialing(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	dials := 0
	p := NewPublisher("amqp://broker.invalid", "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	p.now = func() time.Time { return now }
	p.dial = func(string) (*amqp.Connection, error) {
		dials++
		return nil, errors.New("connection refused")
	}
	event := domain.ReservationEvent{Type: domain.EventReservationConfirmed, ResourceID: "desk-1", ExternalRef: "order-1"}

	err := p.Publish(context.Background(), event)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBrokerUnavailable)
	assert.Equal(t, 1, dials)

	err = p.Publish(context.Background(), event)
	assert.ErrorIs(t, err, ErrBrokerUnavailable)
	assert.Equal(t, 1, dials, "no dial while the broker is known to be down")

	now = now.Add(publisherRedialDelay)
	err = p.Publish(context.Background(), event)
	require.Error(t, err)
	assert.Equal(t, 2, dials)
}
