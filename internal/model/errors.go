// Package model holds the domain types of the booking engine together with
// the pure guard logic that protects them.  Nothing in this package touches
// the database; repositories and services enforce the same rules against
// persistent state using the sentinel errors declared here.
package model

import "errors"

// ErrInvalidTransition is returned when a booking state change is requested
// that the transition graph does not permit (for example checking in a
// booking that was never confirmed).
var ErrInvalidTransition = errors.New("invalid booking transition")

// ErrInsufficientAvailability is returned when a reservation would push
// reserved_count past total_rooms for at least one day of the requested
// range.  The wrapping error names the first failing day and room type.
var ErrInsufficientAvailability = errors.New("insufficient availability")

// ErrValidation covers malformed input: inverted date ranges, stays outside
// the configured night bounds, zero quantities and the like.
var ErrValidation = errors.New("validation failed")

// ErrTokenNotYetValid is returned when a check-in token is presented before
// its validity window opens.  The token is fine; the guest is early.
var ErrTokenNotYetValid = errors.New("check-in token not yet valid")

// ErrTokenExpired is returned when a check-in token is presented after its
// expiry window (plus the configured grace period) has passed.
var ErrTokenExpired = errors.New("check-in token expired")

// ErrTokenRevoked is returned when a presented token has been revoked or was
// already fully used.
var ErrTokenRevoked = errors.New("check-in token revoked")

// ErrTokenUsageExceeded is returned when a token has reached its usage cap.
var ErrTokenUsageExceeded = errors.New("check-in token usage exceeded")

// ErrTokenContextMismatch is returned when a token is presented against a
// hotel or booking it was not issued for.  This is always a hard failure;
// callers must never retry it.
var ErrTokenContextMismatch = errors.New("check-in token context mismatch")

// ErrTransactionConflict signals a transient lock conflict (deadlock or lock
// wait timeout).  It is the only error class callers should retry, with
// backoff.
var ErrTransactionConflict = errors.New("transaction conflict")
