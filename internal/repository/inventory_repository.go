package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
)

// InventoryRepo is the persistence side of the inventory ledger.  One row
// in inventory_cells exists per (hotel, room type, day); reserved_count is
// the only column ever mutated and every mutation is a guarded UPDATE that
// refuses to overshoot total_rooms or undershoot zero.  All mutating
// methods run inside a caller-owned transaction so that the ledger commits
// or rolls back together with the booking transition that drives it.
type InventoryRepo struct {
	db *sql.DB
}

// NewInventoryRepo returns an InventoryRepo bound to the given database.
func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *InventoryRepo) DB() *sql.DB { return r.db }

// RoomTypeQuantity pairs a room type with a requested room count.  Reserve
// and Release accept slices of these so multi-type bookings move through
// the ledger as one all-or-nothing unit.
type RoomTypeQuantity struct {
	RoomTypeID uint64
	Quantity   int
}

// sortQuantities returns a copy ordered by ascending room type ID.  All
// callers touch cells in this canonical order, which keeps lock acquisition
// consistent across concurrent multi-type bookings and avoids deadlocks.
func sortQuantities(quantities []RoomTypeQuantity) []RoomTypeQuantity {
	out := make([]RoomTypeQuantity, len(quantities))
	copy(out, quantities)
	sort.Slice(out, func(i, j int) bool { return out[i].RoomTypeID < out[j].RoomTypeID })
	return out
}

// ensureCellTx lazily creates the inventory cell for one hotel/type/day,
// seeding total_rooms from the room type's physical capacity.  The INSERT
// ignores duplicate-key failures so concurrent seeders are harmless.
func (r *InventoryRepo) ensureCellTx(ctx context.Context, tx *sql.Tx, hotelID, roomTypeID uint64, day time.Time) error {
	const q = `INSERT INTO inventory_cells (hotel_id, room_type_id, day, total_rooms, reserved_count)
	           SELECT rt.hotel_id, rt.id, ?, rt.total_rooms, 0
	           FROM room_types rt
	           WHERE rt.id = ? AND rt.hotel_id = ?`
	_, err := tx.ExecContext(ctx, q, day.Format("2006-01-02"), roomTypeID, hotelID)
	if err != nil && !isDuplicate(err) {
		return err
	}
	return nil
}

// ReserveTx atomically decrements availability for every requested room
// type on every day of the range.  It succeeds only if every single day
// has capacity; on the first failing day it returns
// model.ErrInsufficientAvailability naming the day and room type, and the
// caller's rollback undoes any increments already applied.
func (r *InventoryRepo) ReserveTx(ctx context.Context, tx *sql.Tx, hotelID uint64, quantities []RoomTypeQuantity, stay model.DateRange) error {
	days := stay.Days()
	if len(days) == 0 {
		return fmt.Errorf("%w: empty date range", model.ErrValidation)
	}
	const q = `UPDATE inventory_cells
	           SET reserved_count = reserved_count + ?
	           WHERE hotel_id = ? AND room_type_id = ? AND day = ?
	             AND reserved_count + ? <= total_rooms`
	for _, rq := range sortQuantities(quantities) {
		if rq.Quantity <= 0 {
			return fmt.Errorf("%w: reserve quantity must be positive", model.ErrValidation)
		}
		for _, day := range days {
			if err := r.ensureCellTx(ctx, tx, hotelID, rq.RoomTypeID, day); err != nil {
				return TranslateMySQL(err)
			}
			res, err := tx.ExecContext(ctx, q, rq.Quantity, hotelID, rq.RoomTypeID, day.Format("2006-01-02"), rq.Quantity)
			if err != nil {
				return TranslateMySQL(err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: room type %d on %s", model.ErrInsufficientAvailability,
					rq.RoomTypeID, day.Format("2006-01-02"))
			}
		}
	}
	return nil
}

// ReleaseTx atomically returns previously reserved rooms to the pool.
// Releasing a hold that was never taken would drive reserved_count
// negative; the guard refuses the update and the error surfaces, because
// double-release is a caller bug rather than a condition the ledger hides.
func (r *InventoryRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, hotelID uint64, quantities []RoomTypeQuantity, stay model.DateRange) error {
	const q = `UPDATE inventory_cells
	           SET reserved_count = reserved_count - ?
	           WHERE hotel_id = ? AND room_type_id = ? AND day = ?
	             AND reserved_count - ? >= 0`
	for _, rq := range sortQuantities(quantities) {
		if rq.Quantity <= 0 {
			return fmt.Errorf("%w: release quantity must be positive", model.ErrValidation)
		}
		for _, day := range stay.Days() {
			res, err := tx.ExecContext(ctx, q, rq.Quantity, hotelID, rq.RoomTypeID, day.Format("2006-01-02"), rq.Quantity)
			if err != nil {
				return TranslateMySQL(err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: release of %d for room type %d on %s does not match a held reservation",
					model.ErrValidation, rq.Quantity, rq.RoomTypeID, day.Format("2006-01-02"))
			}
		}
	}
	return nil
}

// HoldsTx re-reads the reserved counts for the given range inside the
// caller's transaction.  Validate(approve) uses this as its defensive
// re-check that the reservation taken at creation still fits capacity.
func (r *InventoryRepo) HoldsTx(ctx context.Context, tx *sql.Tx, hotelID uint64, quantities []RoomTypeQuantity, stay model.DateRange) error {
	const q = `SELECT total_rooms, reserved_count FROM inventory_cells
	           WHERE hotel_id = ? AND room_type_id = ? AND day = ?`
	for _, rq := range sortQuantities(quantities) {
		for _, day := range stay.Days() {
			var total, reserved int
			err := tx.QueryRowContext(ctx, q, hotelID, rq.RoomTypeID, day.Format("2006-01-02")).Scan(&total, &reserved)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: no ledger cell for room type %d on %s",
					model.ErrInsufficientAvailability, rq.RoomTypeID, day.Format("2006-01-02"))
			}
			if err != nil {
				return TranslateMySQL(err)
			}
			if reserved > total {
				return fmt.Errorf("%w: room type %d on %s over capacity (%d/%d)",
					model.ErrInsufficientAvailability, rq.RoomTypeID, day.Format("2006-01-02"), reserved, total)
			}
		}
	}
	return nil
}

// Snapshot returns the availability view for one hotel and a set of room
// types over a date range.  Days with no cell row yet fall back to the
// room type's physical capacity with zero reserved.  This read is advisory
// (browsing); reserve/release never consult it.
func (r *InventoryRepo) Snapshot(ctx context.Context, hotelID uint64, roomTypeIDs []uint64, stay model.DateRange) ([]model.AvailabilitySnapshot, error) {
	days := stay.Days()
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: empty date range", model.ErrValidation)
	}
	snaps := make([]model.AvailabilitySnapshot, 0, len(roomTypeIDs))
	const capQ = `SELECT total_rooms FROM room_types WHERE id = ? AND hotel_id = ?`
	const cellQ = `SELECT total_rooms, reserved_count FROM inventory_cells
	               WHERE hotel_id = ? AND room_type_id = ? AND day = ?`
	for _, rtID := range roomTypeIDs {
		var capacity int
		err := r.db.QueryRowContext(ctx, capQ, rtID, hotelID).Scan(&capacity)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: room type %d", ErrHotelNotFound, rtID)
		}
		if err != nil {
			return nil, err
		}
		snap := model.AvailabilitySnapshot{HotelID: hotelID, RoomTypeID: rtID}
		for _, day := range days {
			total, reserved := capacity, 0
			err := r.db.QueryRowContext(ctx, cellQ, hotelID, rtID, day.Format("2006-01-02")).Scan(&total, &reserved)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, err
			}
			snap.Days = append(snap.Days, model.DayAvailability{
				Day:       day.Format("2006-01-02"),
				Total:     total,
				Reserved:  reserved,
				Available: total - reserved,
			})
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}
