package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrResourceNotFound   = errors.New("resource not found")
	ErrMissingExternalRef = errors.New("external reference is required")
	ErrMissingToken       = errors.New("hold token is required")
	ErrSweepInProgress    = errors.New("maintenance sweep already running")
)

// InvalidRangeError rejects malformed input: reversed ranges, bad dates,
// unusable quantities.
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return "invalid range: " + e.Reason
}

// LeadTimeError is returned when a booking would start today or earlier.
type LeadTimeError struct {
	Start         time.Time
	EarliestStart time.Time
}

func (e *LeadTimeError) Error() string {
	return fmt.Sprintf("start %s is too early, earliest bookable day is %s",
		FormatDate(e.Start), FormatDate(e.EarliestStart))
}

// CapacityExceededError carries the first day of the range that cannot be booked.
type CapacityExceededError struct {
	ResourceID string
	Date       time.Time
	Blackout   bool
	Reason     string
}

func (e *CapacityExceededError) Error() string {
	if e.Blackout {
		msg := fmt.Sprintf("resource %s is closed on %s", e.ResourceID, FormatDate(e.Date))
		if e.Reason != "" {
			msg += " (" + e.Reason + ")"
		}
		return msg
	}
	return fmt.Sprintf("resource %s is fully booked on %s", e.ResourceID, FormatDate(e.Date))
}

type HoldNotFoundError struct {
	Token string
}

func (e *HoldNotFoundError) Error() string {
	return fmt.Sprintf("hold %s not found or expired", e.Token)
}

// PersistenceError wraps a storage failure. Callers are expected to retry the
// whole operation; nothing in the engine retries on its own.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps err unless it is nil or already a PersistenceError.
func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// ReconciliationMismatch describes a disagreement between the ledger and the
// order system. It is reported, never repaired automatically.
type ReconciliationMismatch struct {
	ResourceID  string `json:"resource_id"`
	ExternalRef string `json:"external_ref"`
	Detail      string `json:"detail"`
}

func (m ReconciliationMismatch) Error() string {
	return fmt.Sprintf("reconciliation mismatch on %s for %s: %s", m.ResourceID, m.ExternalRef, m.Detail)
}

func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
