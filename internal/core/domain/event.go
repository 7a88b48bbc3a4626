package domain

import "time"

type EventType string

const (
	EventReservationConfirmed EventType = "reservation.confirmed"
	EventReservationVoided    EventType = "reservation.voided"
)

type ReservationEvent struct {
	Type        EventType `json:"type"`
	ResourceID  string    `json:"resource_id"`
	ExternalRef string    `json:"external_ref"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewReservationEvent(t EventType, r ConfirmedReservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:        t,
		ResourceID:  r.ResourceID,
		ExternalRef: r.ExternalRef,
		Start:       FormatDate(r.Start),
		End:         FormatDate(r.End),
		OccurredAt:  at.UTC(),
	}
}
