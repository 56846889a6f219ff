package service

import (
	"errors"
	"testing"
	"time"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
)

func TestRefundPercent(t *testing.T) {
	policy := CancellationPolicy{FullHours: 48, HalfHours: 12}
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	b := &model.Booking{CheckInDate: checkIn}

	cases := []struct {
		name string
		now  time.Time
		want uint8
	}{
		{"72h before", checkIn.Add(-72 * time.Hour), 100},
		{"exactly 48h", checkIn.Add(-48 * time.Hour), 100},
		{"just under 48h", checkIn.Add(-48*time.Hour + time.Minute), 50},
		{"24h before", checkIn.Add(-24 * time.Hour), 50},
		{"exactly 12h", checkIn.Add(-12 * time.Hour), 50},
		{"just under 12h", checkIn.Add(-12*time.Hour + time.Minute), 0},
		{"6h before", checkIn.Add(-6 * time.Hour), 0},
		{"after check-in", checkIn.Add(3 * time.Hour), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := policy.RefundPercent(b, c.now); got != c.want {
				t.Errorf("RefundPercent at %s = %d, want %d", c.name, got, c.want)
			}
		})
	}
}

func TestApplyOverride(t *testing.T) {
	iptr := func(v int) *int { return &v }

	cases := []struct {
		name     string
		role     string
		computed uint8
		override *int
		want     uint8
		wantErr  bool
	}{
		{"no override passes computed through", model.RoleCustomer, 50, nil, 50, false},
		{"staff raises", model.RoleStaff, 0, iptr(75), 75, false},
		{"staff lowers", model.RoleStaff, 100, iptr(25), 25, false},
		{"admin overrides", model.RoleAdmin, 50, iptr(100), 100, false},
		{"clamped above", model.RoleStaff, 50, iptr(150), 100, false},
		{"clamped below", model.RoleStaff, 50, iptr(-10), 0, false},
		{"customer may not override", model.RoleCustomer, 50, iptr(100), 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ApplyOverride(c.role, c.computed, c.override)
			if c.wantErr {
				if !errors.Is(err, model.ErrValidation) {
					t.Fatalf("expected ErrValidation, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Errorf("ApplyOverride = %d, want %d", got, c.want)
			}
		})
	}
}

func TestRefundAmountCents(t *testing.T) {
	cases := []struct {
		total   int64
		percent uint8
		want    int64
	}{
		{30000, 100, 30000},
		{30000, 50, 15000},
		{30000, 0, 0},
		{9999, 50, 4999}, // rounds down
		{0, 100, 0},
	}
	for _, c := range cases {
		if got := RefundAmountCents(c.total, c.percent); got != c.want {
			t.Errorf("RefundAmountCents(%d, %d) = %d, want %d", c.total, c.percent, got, c.want)
		}
	}
}
