package model

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDateRangeNights(t *testing.T) {
	cases := []struct {
		from, to time.Time
		want     int
	}{
		{day(2026, 9, 1), day(2026, 9, 2), 1},
		{day(2026, 9, 1), day(2026, 9, 8), 7},
		{day(2026, 9, 1), day(2026, 9, 1), 0},
		{day(2026, 9, 2), day(2026, 9, 1), -1},
	}
	for _, c := range cases {
		if got := (DateRange{From: c.from, To: c.to}).Nights(); got != c.want {
			t.Errorf("Nights(%s, %s) = %d, want %d",
				c.from.Format("2006-01-02"), c.to.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestDateRangeDaysExcludesCheckOut(t *testing.T) {
	r := DateRange{From: day(2026, 9, 1), To: day(2026, 9, 4)}
	days := r.Days()
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if !days[len(days)-1].Equal(day(2026, 9, 3)) {
		t.Errorf("last day should be the night before check-out, got %s", days[len(days)-1])
	}

	if got := (DateRange{From: day(2026, 9, 4), To: day(2026, 9, 1)}).Days(); len(got) != 0 {
		t.Errorf("inverted range should yield no days, got %d", len(got))
	}
}

func TestDateRangeOverlaps(t *testing.T) {
	a := DateRange{From: day(2026, 9, 1), To: day(2026, 9, 5)}
	cases := []struct {
		name string
		b    DateRange
		want bool
	}{
		{"identical", a, true},
		{"contained", DateRange{day(2026, 9, 2), day(2026, 9, 3)}, true},
		{"partial", DateRange{day(2026, 9, 4), day(2026, 9, 8)}, true},
		{"back to back", DateRange{day(2026, 9, 5), day(2026, 9, 8)}, false},
		{"disjoint", DateRange{day(2026, 9, 10), day(2026, 9, 12)}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := a.Overlaps(c.b); got != c.want {
				t.Errorf("Overlaps = %v, want %v", got, c.want)
			}
		})
	}
}

func TestInventoryCellReserve(t *testing.T) {
	cell := &InventoryCell{RoomTypeID: 1, Day: day(2026, 9, 1), TotalRooms: 3}

	if err := cell.Reserve(2); err != nil {
		t.Fatalf("expected reserve to succeed, got: %v", err)
	}
	if cell.Available() != 1 {
		t.Fatalf("expected 1 room available, got %d", cell.Available())
	}

	err := cell.Reserve(2)
	if !errors.Is(err, ErrInsufficientAvailability) {
		t.Fatalf("expected ErrInsufficientAvailability, got: %v", err)
	}
	if cell.ReservedCount != 2 {
		t.Errorf("failed reserve must not mutate, reserved = %d", cell.ReservedCount)
	}

	if err := cell.Reserve(1); err != nil {
		t.Fatalf("last room should still be reservable, got: %v", err)
	}
	if cell.Available() != 0 {
		t.Errorf("expected cell full, available = %d", cell.Available())
	}

	if err := cell.Reserve(0); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for zero quantity, got: %v", err)
	}
}

func TestInventoryCellRelease(t *testing.T) {
	cell := &InventoryCell{TotalRooms: 3, ReservedCount: 2}

	if err := cell.Release(2); err != nil {
		t.Fatalf("expected release to succeed, got: %v", err)
	}
	if cell.ReservedCount != 0 {
		t.Fatalf("expected 0 reserved, got %d", cell.ReservedCount)
	}

	err := cell.Release(1)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("over-release must fail with ErrValidation, got: %v", err)
	}
	if cell.ReservedCount != 0 {
		t.Errorf("failed release must not mutate, reserved = %d", cell.ReservedCount)
	}
}

// Many goroutines race for a single remaining room. Exactly one reserve may
// win; the rest must observe ErrInsufficientAvailability.
func TestInventoryCellLastRoomRace(t *testing.T) {
	cell := &InventoryCell{TotalRooms: 5, ReservedCount: 4}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.Lock()
			err := cell.Reserve(1)
			mu.Unlock()
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else if !errors.Is(err, ErrInsufficientAvailability) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly one winner for the last room, got %d", wins)
	}
	if cell.ReservedCount != cell.TotalRooms {
		t.Errorf("reserved count %d must equal total %d", cell.ReservedCount, cell.TotalRooms)
	}
}

func TestInventoryCellReserveReleaseRoundTrip(t *testing.T) {
	cell := &InventoryCell{TotalRooms: 10}
	for i := 0; i < 4; i++ {
		if err := cell.Reserve(2); err != nil {
			t.Fatalf("reserve %d failed: %v", i, err)
		}
	}
	for i := 0; i < 4; i++ {
		if err := cell.Release(2); err != nil {
			t.Fatalf("release %d failed: %v", i, err)
		}
	}
	if cell.ReservedCount != 0 {
		t.Errorf("round trip should leave reserved at 0, got %d", cell.ReservedCount)
	}
}
