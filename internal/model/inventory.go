package model

import (
	"fmt"
	"time"
)

// DateRange is a half-open [From, To) span of calendar days in UTC.  The
// check-out day is excluded: a one-night stay occupies exactly one cell.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Nights returns the number of nights covered by the range.
func (r DateRange) Nights() int {
	return int(r.To.Sub(r.From).Hours() / 24)
}

// Days expands the range into its individual days, truncated to UTC
// midnight.  An inverted range yields an empty slice.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := dateOnly(r.From); d.Before(dateOnly(r.To)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Overlaps reports whether two half-open ranges share at least one day.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.From.Before(o.To) && o.From.Before(r.To)
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// InventoryCell tracks how many rooms of one type are sold for one hotel on
// one calendar day.  ReservedCount is the only mutable field; availability
// is always derived and never stored, so it cannot drift.
//
// The Reserve/Release methods implement the same compare-and-increment
// guard that InventoryRepo applies in SQL.  They exist so the invariant can
// be unit-tested without a database and so in-memory callers share one
// definition of "full".
type InventoryCell struct {
	HotelID       uint64    // inventory_cells.hotel_id
	RoomTypeID    uint64    // inventory_cells.room_type_id
	Day           time.Time // inventory_cells.day (date, UTC)
	TotalRooms    int       // inventory_cells.total_rooms
	ReservedCount int       // inventory_cells.reserved_count
}

// Available returns the derived free-room count for the day.
func (c *InventoryCell) Available() int {
	return c.TotalRooms - c.ReservedCount
}

// Reserve applies a guarded increment: it fails without mutating when the
// quantity is non-positive or the cell lacks capacity.
func (c *InventoryCell) Reserve(qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: reserve quantity must be positive", ErrValidation)
	}
	if c.ReservedCount+qty > c.TotalRooms {
		return fmt.Errorf("%w: room type %d on %s (%d requested, %d free)",
			ErrInsufficientAvailability, c.RoomTypeID, c.Day.Format("2006-01-02"), qty, c.Available())
	}
	c.ReservedCount += qty
	return nil
}

// Release applies a guarded decrement.  Driving the count below zero means
// the caller released a hold it never took, which is a bug on their side;
// the cell refuses the mutation instead of going negative.
func (c *InventoryCell) Release(qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: release quantity must be positive", ErrValidation)
	}
	if c.ReservedCount-qty < 0 {
		return fmt.Errorf("%w: release of %d would drive reserved count %d negative",
			ErrValidation, qty, c.ReservedCount)
	}
	c.ReservedCount -= qty
	return nil
}

// AvailabilitySnapshot is the read-only view returned by availability
// queries.  Browsing reads may be served from cache with bounded staleness;
// reserve/release decisions never consult a snapshot.
type AvailabilitySnapshot struct {
	HotelID    uint64            `json:"hotel_id"`
	RoomTypeID uint64            `json:"room_type_id"`
	Days       []DayAvailability `json:"days"`
}

// DayAvailability is one day inside an AvailabilitySnapshot.
type DayAvailability struct {
	Day       string `json:"day"` // YYYY-MM-DD
	Total     int    `json:"total"`
	Reserved  int    `json:"reserved"`
	Available int    `json:"available"`
}
