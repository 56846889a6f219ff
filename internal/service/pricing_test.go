package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
)

type failingOracle struct {
	err error
}

func (o failingOracle) NightlyRateCents(context.Context, uint64, uint64) (int64, error) {
	return 0, o.err
}

func TestFixedRateOracle(t *testing.T) {
	cents, err := FixedRateOracle{Cents: 12500}.NightlyRateCents(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cents != 12500 {
		t.Errorf("expected 12500, got %d", cents)
	}

	_, err = FixedRateOracle{}.NightlyRateCents(context.Background(), 1, 1)
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("zero rate should be rejected, got: %v", err)
	}
}

func TestFallbackOracleDegradesOnOutage(t *testing.T) {
	o := FallbackOracle{
		Primary:      failingOracle{err: fmt.Errorf("rate backend unreachable")},
		DefaultCents: 10000,
	}
	cents, err := o.NightlyRateCents(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("outage must degrade, not fail: %v", err)
	}
	if cents != 10000 {
		t.Errorf("expected default rate 10000, got %d", cents)
	}
}

func TestFallbackOraclePropagatesValidation(t *testing.T) {
	o := FallbackOracle{
		Primary:      failingOracle{err: fmt.Errorf("%w: unknown room type", model.ErrValidation)},
		DefaultCents: 10000,
	}
	_, err := o.NightlyRateCents(context.Background(), 1, 2)
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("validation failures must not degrade, got: %v", err)
	}
}

func TestFallbackOraclePassesThroughPrimary(t *testing.T) {
	o := FallbackOracle{Primary: FixedRateOracle{Cents: 8000}, DefaultCents: 10000}
	cents, err := o.NightlyRateCents(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cents != 8000 {
		t.Errorf("expected primary rate 8000, got %d", cents)
	}
}
