// Package messaging connects the engine to RabbitMQ: payment and order
// events come in on one queue, reservation events go out on another.
package messaging

const (
	PaymentEventsQueue     = "payment.events"
	ReservationEventsQueue = "reservation.events"
)

const (
	EventPaymentSucceeded = "payment.succeeded"
	EventOrderCancelled   = "order.cancelled"
	EventOrderRefunded    = "order.refunded"
	EventOrderDeleted     = "order.deleted"
)

// PaymentEvent is published by the checkout system when an order changes state.
type PaymentEvent struct {
	Type        string `json:"type"`
	Token       string `json:"token"`
	ExternalRef string `json:"external_ref"`
}
