package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
)

// RoomRepo provides access to physical rooms.  Rooms only participate in
// the lifecycle at check-in (a free room of the booked type is assigned)
// and check-out (the room returns to the pool).  Occupancy is tracked as
// the holding booking's id so check-out can release every room the booking
// held with one statement.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// Create inserts a room.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	const q = `INSERT INTO rooms (hotel_id, room_type_id, number, occupied_by, is_active)
	           VALUES (?, ?, ?, NULL, 1)`
	res, err := r.db.ExecContext(ctx, q, room.HotelID, room.RoomTypeID, room.Number)
	if err != nil {
		return TranslateMySQL(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	return nil
}

// FreeRoomsByTypeForUpdateTx returns up to limit free, active rooms of one
// type, locked with FOR UPDATE so two concurrent check-ins cannot pick the
// same physical room.
func (r *RoomRepo) FreeRoomsByTypeForUpdateTx(ctx context.Context, tx *sql.Tx, hotelID, roomTypeID uint64, limit int) ([]model.Room, error) {
	const q = `SELECT id, hotel_id, room_type_id, number, occupied_by, is_active, created_at, updated_at
	           FROM rooms
	           WHERE hotel_id = ? AND room_type_id = ? AND occupied_by IS NULL AND is_active = 1
	           ORDER BY id LIMIT ? FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, hotelID, roomTypeID, limit)
	if err != nil {
		return nil, TranslateMySQL(err)
	}
	defer rows.Close()
	var out []model.Room
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.HotelID, &rm.RoomTypeID, &rm.Number, &rm.OccupiedBy,
			&rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// OccupyTx marks one room as held by a booking inside the caller's
// transaction.  The IS NULL guard protects against assigning a room that
// another transaction grabbed between select and update.
func (r *RoomRepo) OccupyTx(ctx context.Context, tx *sql.Tx, roomID, bookingID uint64) error {
	const q = `UPDATE rooms SET occupied_by = ? WHERE id = ? AND occupied_by IS NULL`
	res, err := tx.ExecContext(ctx, q, bookingID, roomID)
	if err != nil {
		return TranslateMySQL(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoFreeRoom
	}
	return nil
}

// ReleaseByBookingTx frees every room the booking holds and returns how
// many were released.
func (r *RoomRepo) ReleaseByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (int64, error) {
	const q = `UPDATE rooms SET occupied_by = NULL WHERE occupied_by = ?`
	res, err := tx.ExecContext(ctx, q, bookingID)
	if err != nil {
		return 0, TranslateMySQL(err)
	}
	return res.RowsAffected()
}

// GetByID loads one room.
func (r *RoomRepo) GetByID(ctx context.Context, roomID uint64) (*model.Room, error) {
	const q = `SELECT id, hotel_id, room_type_id, number, occupied_by, is_active, created_at, updated_at
	           FROM rooms WHERE id = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, roomID).Scan(&rm.ID, &rm.HotelID, &rm.RoomTypeID, &rm.Number,
		&rm.OccupiedBy, &rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// ListByHotel returns all rooms of a hotel ordered by number.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Room, error) {
	const q = `SELECT id, hotel_id, room_type_id, number, occupied_by, is_active, created_at, updated_at
	           FROM rooms WHERE hotel_id = ? ORDER BY number`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Room
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.HotelID, &rm.RoomTypeID, &rm.Number, &rm.OccupiedBy,
			&rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}
