// Package service implements the booking lifecycle engine: state
// transitions, inventory movements, check-in tokens and cancellation
// policy. Services own transaction boundaries; repositories only run
// statements inside a transaction the service opened.
package service

import (
	"fmt"
	"time"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/config"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
)

// CancellationPolicy computes the refund owed when a booking is cancelled.
// Thresholds are hours remaining until check-in, measured at the moment of
// cancellation.
type CancellationPolicy struct {
	FullHours float64 // at or above this -> 100%
	HalfHours float64 // at or above this -> 50%
}

// NewCancellationPolicy builds a policy from configuration.
func NewCancellationPolicy(cfg config.RefundPolicy) CancellationPolicy {
	return CancellationPolicy{FullHours: cfg.FullHours, HalfHours: cfg.HalfHours}
}

// RefundPercent returns the refund percentage for a cancellation happening
// at now. Exactly hitting a threshold counts as the better tier. A check-in
// date already in the past yields 0.
func (p CancellationPolicy) RefundPercent(b *model.Booking, now time.Time) uint8 {
	h := b.HoursUntilCheckIn(now)
	switch {
	case h >= p.FullHours:
		return 100
	case h >= p.HalfHours:
		return 50
	default:
		return 0
	}
}

// ApplyOverride lets staff replace the computed refund with an explicit
// percentage, in either direction. The override is clamped to [0,100].
// Customers may never override.
func ApplyOverride(actorRole string, computed uint8, override *int) (uint8, error) {
	if override == nil {
		return computed, nil
	}
	if !model.StaffRole(actorRole) {
		return 0, fmt.Errorf("%w: refund override requires a staff role", model.ErrValidation)
	}
	v := *override
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return uint8(v), nil
}

// RefundAmountCents converts a percentage into cents, rounding down.
func RefundAmountCents(totalCents int64, percent uint8) int64 {
	return totalCents * int64(percent) / 100
}
