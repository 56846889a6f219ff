package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/repository"
)

// PricingOracle quotes a nightly rate in cents for one room of a given type.
// The booking engine treats the quote as opaque: it multiplies by nights and
// quantity and stores the result on the booking line.
type PricingOracle interface {
	NightlyRateCents(ctx context.Context, hotelID, roomTypeID uint64) (int64, error)
}

// RateTableOracle reads the base rate stored on the room type row. It is the
// default oracle; deployments with dynamic pricing substitute their own.
type RateTableOracle struct {
	hotels *repository.HotelRepo
}

// NewRateTableOracle builds an oracle backed by the room type catalogue.
func NewRateTableOracle(hotels *repository.HotelRepo) *RateTableOracle {
	return &RateTableOracle{hotels: hotels}
}

// NightlyRateCents returns the base rate for the room type, or a validation
// error when the type does not belong to the hotel.
func (o *RateTableOracle) NightlyRateCents(ctx context.Context, hotelID, roomTypeID uint64) (int64, error) {
	rt, err := o.hotels.GetRoomType(ctx, hotelID, roomTypeID)
	if err != nil {
		return 0, err
	}
	return rt.BaseRateCents, nil
}

// FixedRateOracle quotes one flat rate for every room type. Used in tests
// and as a fallback when no rate table is loaded.
type FixedRateOracle struct {
	Cents int64
}

func (o FixedRateOracle) NightlyRateCents(context.Context, uint64, uint64) (int64, error) {
	if o.Cents <= 0 {
		return 0, fmt.Errorf("%w: nightly rate must be positive", model.ErrValidation)
	}
	return o.Cents, nil
}

// FallbackOracle consults a primary oracle and degrades to a flat default
// rate when the primary fails for any reason other than validation. A
// pricing outage must never block a booking transition; the room type's
// existence is verified separately before pricing is consulted.
type FallbackOracle struct {
	Primary      PricingOracle
	DefaultCents int64
}

func (o FallbackOracle) NightlyRateCents(ctx context.Context, hotelID, roomTypeID uint64) (int64, error) {
	cents, err := o.Primary.NightlyRateCents(ctx, hotelID, roomTypeID)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			return 0, err
		}
		log.Printf("pricing oracle failed for hotel=%d room_type=%d, using default rate: %v", hotelID, roomTypeID, err)
		return o.DefaultCents, nil
	}
	return cents, nil
}
