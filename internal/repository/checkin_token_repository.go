package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
)

// CheckInTokenRepo persists check-in tokens and their append-only usage
// log.  A partial unique key on (booking_id, active_flag) enforces the
// at-most-one-ACTIVE-token invariant at the storage layer as well; the
// service checks it explicitly first to return a typed error.
type CheckInTokenRepo struct {
	db *sql.DB
}

// NewCheckInTokenRepo returns a repo bound to the given database.
func NewCheckInTokenRepo(db *sql.DB) *CheckInTokenRepo { return &CheckInTokenRepo{db: db} }

// DB exposes the underlying handle so services can open transactions.
func (r *CheckInTokenRepo) DB() *sql.DB { return r.db }

const tokenCols = `id, booking_id, hotel_id, customer_id, status, issued_at, not_before, expires_at,
	max_usage, current_usage, issued_ip, device_hint`

func scanToken(scan func(dest ...interface{}) error) (*model.CheckInToken, error) {
	var (
		t      model.CheckInToken
		status string
	)
	err := scan(&t.ID, &t.BookingID, &t.HotelID, &t.CustomerID, &status, &t.IssuedAt,
		&t.NotBefore, &t.ExpiresAt, &t.MaxUsage, &t.CurrentUsage, &t.IssuedIP, &t.DeviceHint)
	if err != nil {
		return nil, err
	}
	t.Status = model.TokenStatus(status)
	t.IssuedAt = t.IssuedAt.UTC()
	t.NotBefore = t.NotBefore.UTC()
	t.ExpiresAt = t.ExpiresAt.UTC()
	return &t, nil
}

// CreateTx inserts a freshly issued token.  active_flag mirrors the ACTIVE
// status for the unique key; a duplicate means another ACTIVE token won a
// race and the caller receives ErrActiveTokenExists.
func (r *CheckInTokenRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *model.CheckInToken) error {
	const q = `INSERT INTO checkin_tokens
	           (id, booking_id, hotel_id, customer_id, status, active_flag, issued_at, not_before,
	            expires_at, max_usage, current_usage, issued_ip, device_hint)
	           VALUES (?, ?, ?, ?, ?, 1, ?, ?, ?, ?, 0, ?, ?)`
	_, err := tx.ExecContext(ctx, q, t.ID, t.BookingID, t.HotelID, t.CustomerID, string(t.Status),
		t.IssuedAt.UTC().Format("2006-01-02 15:04:05"), t.NotBefore.UTC().Format("2006-01-02 15:04:05"),
		t.ExpiresAt.UTC().Format("2006-01-02 15:04:05"), t.MaxUsage, t.IssuedIP, t.DeviceHint)
	if isDuplicate(err) {
		return ErrActiveTokenExists
	}
	return TranslateMySQL(err)
}

// GetForUpdateTx loads a token by ID inside the caller's transaction,
// locking the row.  Use/Revoke start here so token mutations serialise.
func (r *CheckInTokenRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, tokenID string) (*model.CheckInToken, error) {
	q := `SELECT ` + tokenCols + ` FROM checkin_tokens WHERE id = ? FOR UPDATE`
	t, err := scanToken(tx.QueryRowContext(ctx, q, tokenID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, TranslateMySQL(err)
	}
	return t, nil
}

// GetByID loads a token without locking, for validation reads.
func (r *CheckInTokenRepo) GetByID(ctx context.Context, tokenID string) (*model.CheckInToken, error) {
	q := `SELECT ` + tokenCols + ` FROM checkin_tokens WHERE id = ?`
	t, err := scanToken(r.db.QueryRowContext(ctx, q, tokenID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	return t, err
}

// ActiveByBookingForUpdateTx returns the booking's ACTIVE token, locked,
// or ErrTokenNotFound when none exists.
func (r *CheckInTokenRepo) ActiveByBookingForUpdateTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (*model.CheckInToken, error) {
	q := `SELECT ` + tokenCols + ` FROM checkin_tokens WHERE booking_id = ? AND status = 'ACTIVE' FOR UPDATE`
	t, err := scanToken(tx.QueryRowContext(ctx, q, bookingID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, TranslateMySQL(err)
	}
	return t, nil
}

// UpdateStatusTx moves a token out of ACTIVE.  The transition must already
// have been guarded with model.CanTransitionToken; active_flag is cleared
// so a replacement token can be issued.
func (r *CheckInTokenRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, tokenID string, to model.TokenStatus) error {
	const q = `UPDATE checkin_tokens SET status = ?, active_flag = NULL WHERE id = ? AND status = 'ACTIVE'`
	res, err := tx.ExecContext(ctx, q, string(to), tokenID)
	if err != nil {
		return TranslateMySQL(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// ConsumeTx increments current_usage by one and, when the cap is reached,
// flips the token to USED in the same statement.  It is the only write
// path for the usage counter.
func (r *CheckInTokenRepo) ConsumeTx(ctx context.Context, tx *sql.Tx, tokenID string, maxUsage int) error {
	const q = `UPDATE checkin_tokens
	           SET current_usage = current_usage + 1,
	               status = IF(current_usage + 1 >= ?, 'USED', status),
	               active_flag = IF(current_usage + 1 >= ?, NULL, active_flag)
	           WHERE id = ? AND status = 'ACTIVE' AND current_usage < max_usage`
	res, err := tx.ExecContext(ctx, q, maxUsage, maxUsage, tokenID)
	if err != nil {
		return TranslateMySQL(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrTokenUsageExceeded
	}
	return nil
}

// AppendUsageTx records one usage-log entry.  The log is append-only.
func (r *CheckInTokenRepo) AppendUsageTx(ctx context.Context, tx *sql.Tx, e model.TokenUsageEntry) error {
	const q = `INSERT INTO checkin_token_usage (token_id, actor_id, outcome) VALUES (?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, e.TokenID, e.ActorID, e.Outcome)
	return TranslateMySQL(err)
}

// UsageLog returns a token's usage entries, oldest first.
func (r *CheckInTokenRepo) UsageLog(ctx context.Context, tokenID string) ([]model.TokenUsageEntry, error) {
	const q = `SELECT id, token_id, actor_id, outcome, used_at FROM checkin_token_usage
	           WHERE token_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, tokenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.TokenUsageEntry
	for rows.Next() {
		var e model.TokenUsageEntry
		if err := rows.Scan(&e.ID, &e.TokenID, &e.ActorID, &e.Outcome, &e.UsedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ExpireLapsedTx flips every ACTIVE token whose expiry (plus grace) has
// passed to EXPIRED and returns how many were updated.  Run periodically;
// validation does not depend on it because EvaluateToken checks expiry
// itself.
func (r *CheckInTokenRepo) ExpireLapsedTx(ctx context.Context, tx *sql.Tx, now time.Time, grace time.Duration) (int64, error) {
	const q = `UPDATE checkin_tokens SET status = 'EXPIRED', active_flag = NULL
	           WHERE status = 'ACTIVE' AND expires_at <= ?`
	cutoff := now.Add(-grace).UTC().Format("2006-01-02 15:04:05")
	res, err := tx.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, TranslateMySQL(err)
	}
	return res.RowsAffected()
}
