package messaging_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/srgjo27/cowork_booking/internal/adapter/messaging"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type coordinatorMock struct {
	mock.Mock
}

func (m *coordinatorMock) ConfirmReservation(ctx context.Context, token, externalRef string) (*services.ConfirmResult, error) {
	args := m.Called(ctx, token, externalRef)
	result, _ := args.Get(0).(*services.ConfirmResult)
	return result, args.Error(1)
}

func (m *coordinatorMock) VoidReservation(ctx context.Context, externalRef string) (*services.VoidResult, error) {
	args := m.Called(ctx, externalRef)
	result, _ := args.Get(0).(*services.VoidResult)
	return result, args.Error(1)
}

func newConsumer(c messaging.Coordinator) *messaging.Consumer {
	return messaging.NewConsumer("amqp://unused", "", c, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleMessage_PaymentSucceeded(t *testing.T) {
	coord := &coordinatorMock{}
	ctx := context.Background()
	coord.On("ConfirmReservation", ctx, "tok", "order-1").
		Return(&services.ConfirmResult{Outcome: services.ConfirmCreated}, nil)

	outcome := newConsumer(coord).HandleMessage(ctx, []byte(`{"type":"payment.succeeded","token":"tok","external_ref":"order-1"}`))

	assert.Equal(t, messaging.Ack, outcome)
	coord.AssertExpectations(t)
}

func TestHandleMessage_VoidEvents(t *testing.T) {
	for _, typ := range []string{messaging.EventOrderCancelled, messaging.EventOrderRefunded, messaging.EventOrderDeleted} {
		t.Run(typ, func(t *testing.T) {
			coord := &coordinatorMock{}
			ctx := context.Background()
			coord.On("VoidReservation", ctx, "order-2").Return(&services.VoidResult{Removed: 1}, nil)

			outcome := newConsumer(coord).HandleMessage(ctx, []byte(`{"type":"`+typ+`","external_ref":"order-2"}`))

			assert.Equal(t, messaging.Ack, outcome)
			coord.AssertExpectations(t)
		})
	}
}

func TestHandleMessage_StorageFailureIsRequeued(t *testing.T) {
	coord := &coordinatorMock{}
	ctx := context.Background()
	coord.On("VoidReservation", ctx, "order-3").
		Return(nil, domain.NewPersistenceError("markers.mark", errors.New("connection refused")))

	outcome := newConsumer(coord).HandleMessage(ctx, []byte(`{"type":"order.refunded","external_ref":"order-3"}`))

	assert.Equal(t, messaging.Requeue, outcome)
}

func TestHandleMessage_PermanentFailuresAreAcked(t *testing.T) {
	coord := &coordinatorMock{}
	ctx := context.Background()
	coord.On("ConfirmReservation", ctx, "gone", "order-4").
		Return(nil, &domain.HoldNotFoundError{Token: "gone"})
	consumer := newConsumer(coord)

	assert.Equal(t, messaging.Ack, consumer.HandleMessage(ctx, []byte(`{"type":"payment.succeeded","token":"gone","external_ref":"order-4"}`)))
	assert.Equal(t, messaging.Ack, consumer.HandleMessage(ctx, []byte(`not json`)))
	assert.Equal(t, messaging.Ack, consumer.HandleMessage(ctx, []byte(`{"type":"order.shipped"}`)))
	coord.AssertExpectations(t)
}
