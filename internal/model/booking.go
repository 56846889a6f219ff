package model

import (
	"fmt"
	"time"
)

// BookingStatus enumerates the lifecycle states of a booking.  The values
// are stored verbatim in the bookings.status column.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCheckedIn BookingStatus = "CHECKED_IN"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusNoShow    BookingStatus = "NO_SHOW"
)

// transitions is the complete booking transition graph.  A transition is
// legal iff the target status appears in the set keyed by the source
// status.  Terminal states have no outgoing edges.
var transitions = map[BookingStatus]map[BookingStatus]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusRejected:  true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCheckedIn: true,
		StatusCancelled: true,
		StatusNoShow:    true,
	},
	StatusCheckedIn: {
		StatusCompleted: true,
	},
}

// CanTransition reports whether the transition graph permits moving a
// booking from one status to another.
func CanTransition(from, to BookingStatus) bool {
	return transitions[from][to]
}

// IsTerminal reports whether a status has no outgoing transitions.
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Valid reports whether s is one of the recognised booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCheckedIn,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// BookingRoom is one room-type line on a booking.  AssignedRoomIDs stays
// empty until check-in binds concrete rooms, one per unit of Quantity; it
// is only ever populated on bookings in CHECKED_IN or COMPLETED and the
// rows survive checkout as the record of which rooms the stay held.
type BookingRoom struct {
	ID              uint64   // booking_rooms.id
	BookingID       uint64   // booking_rooms.booking_id
	RoomTypeID      uint64   // booking_rooms.room_type_id
	Quantity        int      // booking_rooms.quantity
	PriceCents      int64    // booking_rooms.price_cents (per room per night)
	AssignedRoomIDs []uint64 // booking_room_assignments.room_id, one per unit
}

// StatusHistoryEntry is one append-only audit row recording a committed
// booking transition.  History rows are never updated or deleted.
type StatusHistoryEntry struct {
	ID         uint64        // booking_status_history.id
	BookingID  uint64        // booking_status_history.booking_id
	FromStatus BookingStatus // booking_status_history.from_status
	ToStatus   BookingStatus // booking_status_history.to_status
	Reason     string        // booking_status_history.reason
	ActorID    uint64        // booking_status_history.actor_id
	CreatedAt  time.Time     // booking_status_history.created_at
}

// Booking is the aggregate root of the engine.  All mutation goes through
// BookingService transitions; the struct itself carries no behaviour beyond
// derived accessors so that it can be loaded and stored by the repository
// without surprises.
type Booking struct {
	ID            uint64        // bookings.id
	Reference     string        // bookings.reference_code (human-facing)
	HotelID       uint64        // bookings.hotel_id
	CustomerID    uint64        // bookings.customer_id
	CheckInDate   time.Time     // bookings.check_in_date (date, UTC midnight)
	CheckOutDate  time.Time     // bookings.check_out_date (exclusive)
	Status        BookingStatus // bookings.status
	Rooms         []BookingRoom
	TotalCents    int64      // bookings.total_cents
	RefundPercent *uint8     // bookings.refund_percent (nullable, set on cancellation)
	CancelledAt   *time.Time // bookings.cancelled_at (nullable)
	CreatedAt     time.Time  // bookings.created_at
	UpdatedAt     time.Time  // bookings.updated_at
}

// Stay returns the booked date range (check-out day exclusive).
func (b *Booking) Stay() DateRange {
	return DateRange{From: b.CheckInDate, To: b.CheckOutDate}
}

// HoursUntilCheckIn returns the signed number of hours between now and the
// stay's check-in instant.  Negative once check-in has passed.  The
// cancellation policy consumes this value.
func (b *Booking) HoursUntilCheckIn(now time.Time) float64 {
	return b.CheckInDate.Sub(now).Hours()
}

// StayRules bounds a requested stay.  The values come from configuration;
// the zero value disables the corresponding bound checks and is only
// meant for tests.
type StayRules struct {
	MinNights       int // minimum stay length
	MaxNights       int // maximum stay length
	MaxRoomsPerType int // per-booking cap on rooms of a single type
}

// ValidateStay applies the creation/modification guards: dates must be
// ordered, the stay length must fall inside the configured bounds, and
// every requested room-type line must carry a sane quantity.  All failures
// wrap ErrValidation.
func ValidateStay(stay DateRange, rooms []BookingRoom, rules StayRules) error {
	if !stay.From.Before(stay.To) {
		return fmt.Errorf("%w: check-in must precede check-out", ErrValidation)
	}
	nights := stay.Nights()
	if rules.MinNights > 0 && nights < rules.MinNights {
		return fmt.Errorf("%w: stay of %d nights below minimum %d", ErrValidation, nights, rules.MinNights)
	}
	if rules.MaxNights > 0 && nights > rules.MaxNights {
		return fmt.Errorf("%w: stay of %d nights above maximum %d", ErrValidation, nights, rules.MaxNights)
	}
	if len(rooms) == 0 {
		return fmt.Errorf("%w: at least one room type required", ErrValidation)
	}
	seen := make(map[uint64]bool, len(rooms))
	for _, r := range rooms {
		if r.RoomTypeID == 0 {
			return fmt.Errorf("%w: invalid room type id 0", ErrValidation)
		}
		if seen[r.RoomTypeID] {
			return fmt.Errorf("%w: duplicate room type %d", ErrValidation, r.RoomTypeID)
		}
		seen[r.RoomTypeID] = true
		if r.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive for room type %d", ErrValidation, r.RoomTypeID)
		}
		if rules.MaxRoomsPerType > 0 && r.Quantity > rules.MaxRoomsPerType {
			return fmt.Errorf("%w: quantity %d above per-booking maximum %d", ErrValidation, r.Quantity, rules.MaxRoomsPerType)
		}
	}
	return nil
}

// GuardTransition checks the transition graph for the requested move and
// returns ErrInvalidTransition (wrapped with both statuses) when the edge
// does not exist.  It is called by every BookingService transition before
// any state is touched.
func GuardTransition(from, to BookingStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
