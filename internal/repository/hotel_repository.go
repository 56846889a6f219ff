package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
)

// HotelRepo provides access to hotels and their room types.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo returns a HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// CreateHotel inserts a hotel and populates its generated ID.
func (r *HotelRepo) CreateHotel(ctx context.Context, h *model.Hotel) error {
	const q = `INSERT INTO hotels (name, timezone, is_active) VALUES (?, ?, 1)`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.Timezone)
	if err != nil {
		return TranslateMySQL(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// GetHotel loads one hotel by ID.
func (r *HotelRepo) GetHotel(ctx context.Context, hotelID uint64) (*model.Hotel, error) {
	const q = `SELECT id, name, timezone, is_active, created_at, updated_at FROM hotels WHERE id = ?`
	var h model.Hotel
	err := r.db.QueryRowContext(ctx, q, hotelID).Scan(&h.ID, &h.Name, &h.Timezone, &h.IsActive,
		&h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListHotels returns all active hotels ordered by name.
func (r *HotelRepo) ListHotels(ctx context.Context) ([]model.Hotel, error) {
	const q = `SELECT id, name, timezone, is_active, created_at, updated_at
	           FROM hotels WHERE is_active = 1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Hotel
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Timezone, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// CreateRoomType inserts a room type and populates its generated ID.
func (r *HotelRepo) CreateRoomType(ctx context.Context, rt *model.RoomType) error {
	const q = `INSERT INTO room_types (hotel_id, name, total_rooms, base_rate_cents) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rt.HotelID, rt.Name, rt.TotalRooms, rt.BaseRateCents)
	if err != nil {
		return TranslateMySQL(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	return nil
}

// GetRoomType loads one room type scoped to its hotel.
func (r *HotelRepo) GetRoomType(ctx context.Context, hotelID, roomTypeID uint64) (*model.RoomType, error) {
	const q = `SELECT id, hotel_id, name, total_rooms, base_rate_cents, created_at, updated_at
	           FROM room_types WHERE id = ? AND hotel_id = ?`
	var rt model.RoomType
	err := r.db.QueryRowContext(ctx, q, roomTypeID, hotelID).Scan(&rt.ID, &rt.HotelID, &rt.Name,
		&rt.TotalRooms, &rt.BaseRateCents, &rt.CreatedAt, &rt.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// ListRoomTypes returns a hotel's room types ordered by name.
func (r *HotelRepo) ListRoomTypes(ctx context.Context, hotelID uint64) ([]model.RoomType, error) {
	const q = `SELECT id, hotel_id, name, total_rooms, base_rate_cents, created_at, updated_at
	           FROM room_types WHERE hotel_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.RoomType
	for rows.Next() {
		var rt model.RoomType
		if err := rows.Scan(&rt.ID, &rt.HotelID, &rt.Name, &rt.TotalRooms, &rt.BaseRateCents,
			&rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
