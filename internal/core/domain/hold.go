package domain

import "time"

type HoldKind string

const (
	HoldPriority HoldKind = "priority"
	HoldFlexible HoldKind = "flexible"
)

// PriorityThreshold is the TTL from which a hold is reported as priority.
const PriorityThreshold = 15 * time.Minute

// ProvisionalHold reserves one concurrent slot on a resource while the
// customer goes through checkout.
type ProvisionalHold struct {
	Token      string    `json:"token"`
	ResourceID string    `json:"resource_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	UnitsHeld  int       `json:"units_held"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsLive reports whether the hold still counts against capacity at now.
func (h *ProvisionalHold) IsLive(now time.Time) bool {
	return h.ExpiresAt.After(now)
}

func (h *ProvisionalHold) Covers(date time.Time) bool {
	return covers(h.Start, h.End, date)
}

func (h *ProvisionalHold) TTL() time.Duration {
	return h.ExpiresAt.Sub(h.CreatedAt)
}

func (h *ProvisionalHold) Kind() HoldKind {
	return KindForTTL(h.TTL())
}

func (h *ProvisionalHold) Units() int {
	if h.UnitsHeld < 1 {
		return 1
	}
	return h.UnitsHeld
}

func KindForTTL(ttl time.Duration) HoldKind {
	if ttl >= PriorityThreshold {
		return HoldPriority
	}
	return HoldFlexible
}
