// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published to the booking.lifecycle queue.
const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingRejected  = "booking.rejected"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCheckedIn = "booking.checked_in"
	EventBookingCompleted = "booking.completed"
	EventBookingNoShow    = "booking.no_show"
)

// BookingLifecycleEvent is published whenever a booking crosses a state
// boundary. It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type BookingLifecycleEvent struct {
	Event         string `json:"event"`
	BookingID     uint64 `json:"booking_id"`
	Reference     string `json:"reference"`
	CustomerID    uint64 `json:"customer_id"`
	HotelID       uint64 `json:"hotel_id"`
	HotelName     string `json:"hotel_name"`
	CheckInDate   string `json:"check_in_date"`
	CheckOutDate  string `json:"check_out_date"`
	RoomCount     int    `json:"room_count"`
	TotalCents    int64  `json:"total_cents"`
	RefundPercent *uint8 `json:"refund_percent,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
