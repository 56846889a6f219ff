// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. Domain
// guard failures (invalid transitions, capacity, token checks) live in
// the model package; the sentinels here cover persistence outcomes.
package repository

import (
	"errors"
	"strings"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
)

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrBookingNotFound is returned when a booking lookup matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrHotelNotFound is returned when a hotel or room type lookup matches
// no row.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrTokenNotFound is returned when a check-in token lookup matches no row.
var ErrTokenNotFound = errors.New("check-in token not found")

// ErrActiveTokenExists is returned when issuing a check-in token for a
// booking that already has an ACTIVE one. The caller must revoke the
// existing token first.
var ErrActiveTokenExists = errors.New("an active check-in token already exists for this booking")

// ErrNoFreeRoom is returned when check-in cannot find an unoccupied room
// of the requested type.
var ErrNoFreeRoom = errors.New("no free room of requested type")

// ErrDuplicateReference is returned when a freshly generated booking
// reference collides with an existing one. The caller retries with a new
// reference.
var ErrDuplicateReference = errors.New("booking reference already taken")

// ErrEmailExists is returned on user registration when the email is taken.
var ErrEmailExists = errors.New("email already exists")

// TranslateMySQL maps driver-level failure codes onto domain sentinels.
// Deadlocks (1213) and lock wait timeouts (1205) become the retryable
// model.ErrTransactionConflict; everything else passes through unchanged.
func TranslateMySQL(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "1213") || strings.Contains(msg, "1205") {
		return model.ErrTransactionConflict
	}
	return err
}

// isDuplicate reports whether err is a MySQL unique-key violation (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
