package handler

import (
	"testing"
	"time"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
)

// A multi-room line carries one assignment per unit; the view must surface
// every physical room the booking holds, not just the first.
func TestViewOfCarriesEveryAssignedRoom(t *testing.T) {
	b := &model.Booking{
		ID:           42,
		Reference:    "BK-7QX2M9FD",
		HotelID:      7,
		CustomerID:   9,
		CheckInDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		Status:       model.StatusCheckedIn,
		Rooms: []model.BookingRoom{
			{RoomTypeID: 1, Quantity: 3, PriceCents: 12000, AssignedRoomIDs: []uint64{101, 102, 103}},
			{RoomTypeID: 2, Quantity: 1, PriceCents: 20000, AssignedRoomIDs: []uint64{201}},
		},
	}

	v := viewOf(b)
	if len(v.Rooms) != 2 {
		t.Fatalf("expected 2 room lines, got %d", len(v.Rooms))
	}
	if got := v.Rooms[0].AssignedRoomIDs; len(got) != 3 || got[0] != 101 || got[1] != 102 || got[2] != 103 {
		t.Errorf("line 0 assignments = %v, want [101 102 103]", got)
	}
	if got := v.Rooms[1].AssignedRoomIDs; len(got) != 1 || got[0] != 201 {
		t.Errorf("line 1 assignments = %v, want [201]", got)
	}
}

func TestViewOfPendingBookingHasNoAssignments(t *testing.T) {
	b := &model.Booking{
		ID:     1,
		Status: model.StatusPending,
		Rooms:  []model.BookingRoom{{RoomTypeID: 1, Quantity: 2, PriceCents: 10000}},
	}
	v := viewOf(b)
	if len(v.Rooms[0].AssignedRoomIDs) != 0 {
		t.Errorf("pending booking must have no assignments, got %v", v.Rooms[0].AssignedRoomIDs)
	}
}
