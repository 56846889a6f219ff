package model

import (
	"errors"
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCheckedIn, false},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusRejected, false},
		{StatusConfirmed, StatusPending, false},
		{StatusCheckedIn, StatusCompleted, true},
		{StatusCheckedIn, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusRejected, StatusPending, false},
		{StatusNoShow, StatusCheckedIn, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []BookingStatus{StatusRejected, StatusCompleted, StatusCancelled, StatusNoShow}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	live := []BookingStatus{StatusPending, StatusConfirmed, StatusCheckedIn}
	for _, s := range live {
		if s.IsTerminal() {
			t.Errorf("expected %s to have outgoing transitions", s)
		}
	}
}

func TestGuardTransition(t *testing.T) {
	if err := GuardTransition(StatusPending, StatusConfirmed); err != nil {
		t.Fatalf("expected legal transition, got: %v", err)
	}
	err := GuardTransition(StatusCompleted, StatusPending)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got: %v", err)
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateStay(t *testing.T) {
	rules := StayRules{MinNights: 1, MaxNights: 30, MaxRoomsPerType: 5}
	oneRoom := []BookingRoom{{RoomTypeID: 1, Quantity: 1}}

	cases := []struct {
		name  string
		stay  DateRange
		rooms []BookingRoom
		ok    bool
	}{
		{"one night", DateRange{day(2026, 9, 1), day(2026, 9, 2)}, oneRoom, true},
		{"max stay", DateRange{day(2026, 9, 1), day(2026, 10, 1)}, oneRoom, true},
		{"inverted range", DateRange{day(2026, 9, 2), day(2026, 9, 1)}, oneRoom, false},
		{"zero nights", DateRange{day(2026, 9, 1), day(2026, 9, 1)}, oneRoom, false},
		{"too long", DateRange{day(2026, 9, 1), day(2026, 10, 2)}, oneRoom, false},
		{"no rooms", DateRange{day(2026, 9, 1), day(2026, 9, 2)}, nil, false},
		{"zero quantity", DateRange{day(2026, 9, 1), day(2026, 9, 2)},
			[]BookingRoom{{RoomTypeID: 1, Quantity: 0}}, false},
		{"too many rooms", DateRange{day(2026, 9, 1), day(2026, 9, 2)},
			[]BookingRoom{{RoomTypeID: 1, Quantity: 6}}, false},
		{"room type zero", DateRange{day(2026, 9, 1), day(2026, 9, 2)},
			[]BookingRoom{{RoomTypeID: 0, Quantity: 1}}, false},
		{"duplicate room type", DateRange{day(2026, 9, 1), day(2026, 9, 2)},
			[]BookingRoom{{RoomTypeID: 1, Quantity: 1}, {RoomTypeID: 1, Quantity: 2}}, false},
		{"two distinct types", DateRange{day(2026, 9, 1), day(2026, 9, 2)},
			[]BookingRoom{{RoomTypeID: 1, Quantity: 2}, {RoomTypeID: 2, Quantity: 1}}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateStay(c.stay, c.rooms, rules)
			if c.ok && err != nil {
				t.Fatalf("expected valid stay, got: %v", err)
			}
			if !c.ok {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation, got: %v", err)
				}
			}
		})
	}
}

func TestValidateStayZeroRulesDisableBounds(t *testing.T) {
	stay := DateRange{day(2026, 9, 1), day(2027, 9, 1)}
	rooms := []BookingRoom{{RoomTypeID: 1, Quantity: 40}}
	if err := ValidateStay(stay, rooms, StayRules{}); err != nil {
		t.Fatalf("zero rules should not bound the stay, got: %v", err)
	}
}

func TestHoursUntilCheckIn(t *testing.T) {
	b := &Booking{CheckInDate: day(2026, 9, 10)}
	now := day(2026, 9, 8) // 48 hours before
	if h := b.HoursUntilCheckIn(now); h != 48 {
		t.Errorf("expected 48 hours, got %v", h)
	}
	after := day(2026, 9, 11)
	if h := b.HoursUntilCheckIn(after); h != -24 {
		t.Errorf("expected -24 hours, got %v", h)
	}
}
