package model

import "time"

// Hotel represents one property managed by the system.  This struct
// corresponds to a row in the `hotels` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique hotel name.
//  Timezone  – IANA timezone name used to render local dates.
//  IsActive  – whether the hotel accepts new bookings.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hotel struct {
	ID        uint64    // hotels.id
	Name      string    // hotels.name
	Timezone  string    // hotels.timezone
	IsActive  bool      // hotels.is_active
	CreatedAt time.Time // hotels.created_at
	UpdatedAt time.Time // hotels.updated_at
}

// RoomType describes a sellable category of rooms inside a hotel.  The
// TotalRooms figure seeds inventory cells lazily the first time a day is
// reserved; BaseRateCents backs the rate-table pricing oracle.
//
// Fields:
//  ID            – primary key identifier.
//  HotelID       – owning hotel.
//  Name          – unique name per hotel (e.g. "Double", "Suite").
//  TotalRooms    – physical capacity of this category.
//  BaseRateCents – default nightly rate in cents.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type RoomType struct {
	ID            uint64    // room_types.id
	HotelID       uint64    // room_types.hotel_id
	Name          string    // room_types.name
	TotalRooms    int       // room_types.total_rooms
	BaseRateCents int64     // room_types.base_rate_cents
	CreatedAt     time.Time // room_types.created_at
	UpdatedAt     time.Time // room_types.updated_at
}

// Room is a concrete, numbered room.  Rooms only matter at check-in, when
// room-type holds are converted into assignments of physical rooms.
//
// Fields:
//  ID         – primary key identifier.
//  HotelID    – owning hotel.
//  RoomTypeID – category of the room.
//  Number     – room number label, unique per hotel.
//  OccupiedBy – booking currently holding the room, nil when free.
//  IsActive   – inactive rooms are never assigned (maintenance).
type Room struct {
	ID         uint64    // rooms.id
	HotelID    uint64    // rooms.hotel_id
	RoomTypeID uint64    // rooms.room_type_id
	Number     string    // rooms.number
	OccupiedBy *uint64   // rooms.occupied_by (nullable booking id)
	IsActive   bool      // rooms.is_active
	CreatedAt  time.Time // rooms.created_at
	UpdatedAt  time.Time // rooms.updated_at
}

// Free reports whether the room can be assigned at check-in.
func (r *Room) Free() bool { return r.OccupiedBy == nil && r.IsActive }
