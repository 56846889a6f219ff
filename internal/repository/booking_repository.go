package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
)

// BookingRepo provides persistence for bookings, their room lines and the
// append-only status history.  Mutating methods operate inside a
// caller-owned transaction; transitions on the same booking serialise on
// the row lock taken by GetForUpdateTx.  All timestamps are UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a booking plus its room lines and populates the
// generated IDs on the passed aggregate.  The caller commits or rolls back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (reference_code, hotel_id, customer_id, check_in_date, check_out_date, status, total_cents)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.Reference, b.HotelID, b.CustomerID,
		b.CheckInDate.Format("2006-01-02"), b.CheckOutDate.Format("2006-01-02"),
		string(b.Status), b.TotalCents)
	if isDuplicate(err) {
		// reference_code is the only unique key on bookings
		return ErrDuplicateReference
	}
	if err != nil {
		return TranslateMySQL(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const lineQ = `INSERT INTO booking_rooms (booking_id, room_type_id, quantity, price_cents) VALUES `
	if len(b.Rooms) > 0 {
		query := lineQ
		args := make([]interface{}, 0, len(b.Rooms)*4)
		for i := range b.Rooms {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?)"
			b.Rooms[i].BookingID = b.ID
			args = append(args, b.ID, b.Rooms[i].RoomTypeID, b.Rooms[i].Quantity, b.Rooms[i].PriceCents)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return TranslateMySQL(err)
		}
	}
	return nil
}

// scanBooking reads the fixed booking columns from a row scanner.
func scanBooking(scan func(dest ...interface{}) error) (*model.Booking, error) {
	var (
		b           model.Booking
		status      string
		checkIn     time.Time
		checkOut    time.Time
		refund      sql.NullInt16
		cancelledAt sql.NullTime
	)
	err := scan(&b.ID, &b.Reference, &b.HotelID, &b.CustomerID, &checkIn, &checkOut,
		&status, &b.TotalCents, &refund, &cancelledAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	b.CheckInDate = checkIn.UTC()
	b.CheckOutDate = checkOut.UTC()
	if refund.Valid {
		p := uint8(refund.Int16)
		b.RefundPercent = &p
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time.UTC()
		b.CancelledAt = &t
	}
	return &b, nil
}

const bookingCols = `id, reference_code, hotel_id, customer_id, check_in_date, check_out_date,
	status, total_cents, refund_percent, cancelled_at, created_at, updated_at`

// GetForUpdateTx loads a booking and its room lines inside the caller's
// transaction, locking the booking row with SELECT ... FOR UPDATE.  Every
// transition starts here: the row lock is what serialises concurrent
// operations on the same aggregate.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (*model.Booking, error) {
	q := `SELECT ` + bookingCols + ` FROM bookings WHERE id = ? FOR UPDATE`
	b, err := scanBooking(tx.QueryRowContext(ctx, q, bookingID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, TranslateMySQL(err)
	}
	if err := r.loadRooms(ctx, tx, b); err != nil {
		return nil, TranslateMySQL(err)
	}
	return b, nil
}

// GetByID loads a booking and its room lines without locking.  Used for
// reads outside transitions.
func (r *BookingRepo) GetByID(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	q := `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, bookingID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadRooms(ctx, r.db, b); err != nil {
		return nil, err
	}
	return b, nil
}

// queryer abstracts *sql.DB and *sql.Tx for shared read helpers.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (r *BookingRepo) loadRooms(ctx context.Context, q queryer, b *model.Booking) error {
	const roomsQ = `SELECT id, booking_id, room_type_id, quantity, price_cents
	                FROM booking_rooms WHERE booking_id = ? ORDER BY room_type_id`
	rows, err := q.QueryContext(ctx, roomsQ, b.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	b.Rooms = b.Rooms[:0]
	for rows.Next() {
		var br model.BookingRoom
		if err := rows.Scan(&br.ID, &br.BookingID, &br.RoomTypeID, &br.Quantity, &br.PriceCents); err != nil {
			return err
		}
		b.Rooms = append(b.Rooms, br)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return r.loadAssignments(ctx, q, b)
}

// loadAssignments attaches the persisted room assignments to their lines.
// Bookings that never reached check-in simply have none.
func (r *BookingRepo) loadAssignments(ctx context.Context, q queryer, b *model.Booking) error {
	const assignQ = `SELECT booking_room_id, room_id FROM booking_room_assignments
	                 WHERE booking_id = ? ORDER BY room_id`
	rows, err := q.QueryContext(ctx, assignQ, b.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	byLine := make(map[uint64][]uint64)
	for rows.Next() {
		var lineID, roomID uint64
		if err := rows.Scan(&lineID, &roomID); err != nil {
			return err
		}
		byLine[lineID] = append(byLine[lineID], roomID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range b.Rooms {
		b.Rooms[i].AssignedRoomIDs = byLine[b.Rooms[i].ID]
	}
	return nil
}

// UpdateStatusTx moves the booking to a new status and maintains the
// cancellation columns when the target is CANCELLED.  The transition must
// already have been guarded; this method only persists it.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, bookingID uint64, to model.BookingStatus, refundPercent *uint8) error {
	if to == model.StatusCancelled {
		var refund interface{}
		if refundPercent != nil {
			refund = *refundPercent
		}
		const q = `UPDATE bookings SET status = ?, refund_percent = ?, cancelled_at = UTC_TIMESTAMP() WHERE id = ?`
		_, err := tx.ExecContext(ctx, q, string(to), refund, bookingID)
		return TranslateMySQL(err)
	}
	const q = `UPDATE bookings SET status = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, string(to), bookingID)
	return TranslateMySQL(err)
}

// AppendHistoryTx records one committed transition in the append-only
// audit trail.  History rows are never updated or deleted.
func (r *BookingRepo) AppendHistoryTx(ctx context.Context, tx *sql.Tx, e model.StatusHistoryEntry) error {
	const q = `INSERT INTO booking_status_history (booking_id, from_status, to_status, reason, actor_id)
	           VALUES (?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, e.BookingID, string(e.FromStatus), string(e.ToStatus), e.Reason, e.ActorID)
	return TranslateMySQL(err)
}

// History returns the full audit trail of a booking, oldest first.
func (r *BookingRepo) History(ctx context.Context, bookingID uint64) ([]model.StatusHistoryEntry, error) {
	const q = `SELECT id, booking_id, from_status, to_status, reason, actor_id, created_at
	           FROM booking_status_history WHERE booking_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []model.StatusHistoryEntry
	for rows.Next() {
		var (
			e        model.StatusHistoryEntry
			from, to string
		)
		if err := rows.Scan(&e.ID, &e.BookingID, &from, &to, &e.Reason, &e.ActorID, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.FromStatus = model.BookingStatus(from)
		e.ToStatus = model.BookingStatus(to)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReplaceRoomsTx swaps the room lines of a PENDING booking during
// modification.  Assigned room IDs are impossible at this stage so the
// lines are simply deleted and re-inserted.
func (r *BookingRepo) ReplaceRoomsTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_rooms WHERE booking_id = ?`, b.ID); err != nil {
		return TranslateMySQL(err)
	}
	if len(b.Rooms) == 0 {
		return nil
	}
	query := `INSERT INTO booking_rooms (booking_id, room_type_id, quantity, price_cents) VALUES `
	args := make([]interface{}, 0, len(b.Rooms)*4)
	for i := range b.Rooms {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		b.Rooms[i].BookingID = b.ID
		args = append(args, b.ID, b.Rooms[i].RoomTypeID, b.Rooms[i].Quantity, b.Rooms[i].PriceCents)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return TranslateMySQL(err)
}

// UpdateStayTx persists new dates and total after a modification.
func (r *BookingRepo) UpdateStayTx(ctx context.Context, tx *sql.Tx, bookingID uint64, stay model.DateRange, totalCents int64) error {
	const q = `UPDATE bookings SET check_in_date = ?, check_out_date = ?, total_cents = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, stay.From.Format("2006-01-02"), stay.To.Format("2006-01-02"), totalCents, bookingID)
	return TranslateMySQL(err)
}

// AssignRoomsTx records the physical rooms chosen for one booking line at
// check-in, one row per room.  The rows are the durable record of which
// rooms the stay held and are kept after checkout.
func (r *BookingRepo) AssignRoomsTx(ctx context.Context, tx *sql.Tx, bookingID, lineID uint64, roomIDs []uint64) error {
	if len(roomIDs) == 0 {
		return nil
	}
	query := `INSERT INTO booking_room_assignments (booking_id, booking_room_id, room_id) VALUES `
	args := make([]interface{}, 0, len(roomIDs)*3)
	for i, roomID := range roomIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, bookingID, lineID, roomID)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return TranslateMySQL(err)
}

// ListByCustomer returns the customer's bookings, newest first.
func (r *BookingRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]model.Booking, error) {
	q := `SELECT ` + bookingCols + ` FROM bookings WHERE customer_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadRooms(ctx, r.db, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ListByHotelAndStatus returns a hotel's bookings filtered by status,
// newest first.  Staff dashboards use this for the validation queue.
func (r *BookingRepo) ListByHotelAndStatus(ctx context.Context, hotelID uint64, status model.BookingStatus) ([]model.Booking, error) {
	q := `SELECT ` + bookingCols + ` FROM bookings WHERE hotel_id = ? AND status = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, hotelID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadRooms(ctx, r.db, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
