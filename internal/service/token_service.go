package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/config"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/repository"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/utils"
)

// TokenService issues and validates check-in tokens. The guest holds a
// signed JWT; the database row it points at is the authoritative state.
// All state mutation happens inside a single transaction with the token row
// locked, so concurrent scans of the same token serialize.
type TokenService struct {
	tokens   *repository.CheckInTokenRepo
	bookings *repository.BookingRepo
	secret   string
	policy   config.TokenPolicy
}

// NewTokenService wires the token service.
func NewTokenService(tokens *repository.CheckInTokenRepo, bookings *repository.BookingRepo, secret string, policy config.TokenPolicy) *TokenService {
	return &TokenService{tokens: tokens, bookings: bookings, secret: secret, policy: policy}
}

// IssuedToken is what the guest receives: the signed credential plus the
// row identity for support tooling.
type IssuedToken struct {
	TokenID   string    `json:"token_id"`
	JWT       string    `json:"token"`
	NotBefore time.Time `json:"not_before"`
	ExpiresAt time.Time `json:"expires_at"`
	MaxUsage  int       `json:"max_usage"`
}

// ValidationResult reports a successful validation. Warning is non-empty
// when the token was accepted inside the post-expiry grace window.
type ValidationResult struct {
	Token   *model.CheckInToken `json:"-"`
	TokenID string              `json:"token_id"`
	Warning string              `json:"warning,omitempty"`
}

// Issue creates a check-in token for a CONFIRMED booking. At most one
// ACTIVE token may exist per booking and issuance refuses while one does;
// a guest who lost their credential revokes the old token first and then
// requests a new one. The token window is anchored to the stay's check-in
// date.
func (s *TokenService) Issue(ctx context.Context, bookingID, actorID uint64, sec model.SecurityContext) (*IssuedToken, error) {
	tx, err := s.tokens.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorID != b.CustomerID {
		return nil, repository.ErrForbidden
	}

	out, err := s.IssueTx(ctx, tx, b, sec)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, repository.TranslateMySQL(err)
	}
	committed = true
	return out, nil
}

// guardIssuance enforces the at-most-one-ACTIVE rule at issuance time.  A
// live token is never replaced implicitly; the caller must revoke it first.
func guardIssuance(existing *model.CheckInToken) error {
	if existing != nil && existing.Status == model.TokenActive {
		return repository.ErrActiveTokenExists
	}
	return nil
}

// IssueTx issues a token inside the caller's transaction. It refuses with
// ErrActiveTokenExists while an ACTIVE token exists for the booking. The
// booking row must already be locked by the caller. Used both by Issue and
// by the approve transition, which issues the first token atomically with
// confirmation.
func (s *TokenService) IssueTx(ctx context.Context, tx *sql.Tx, b *model.Booking, sec model.SecurityContext) (*IssuedToken, error) {
	if b.Status != model.StatusConfirmed {
		return nil, fmt.Errorf("%w: booking %d is %s, token issuance requires CONFIRMED", model.ErrInvalidTransition, b.ID, b.Status)
	}

	old, err := s.tokens.ActiveByBookingForUpdateTx(ctx, tx, b.ID)
	if err != nil && !errors.Is(err, repository.ErrTokenNotFound) {
		return nil, err
	}
	if err := guardIssuance(old); err != nil {
		return nil, err
	}

	t := &model.CheckInToken{
		ID:         uuid.NewString(),
		BookingID:  b.ID,
		HotelID:    b.HotelID,
		CustomerID: b.CustomerID,
		Status:     model.TokenActive,
		IssuedAt:   time.Now().UTC(),
		NotBefore:  b.CheckInDate.Add(-s.policy.OpensBeforeCheckIn),
		ExpiresAt:  b.CheckInDate.Add(s.policy.ValidUntilAfter),
		MaxUsage:   s.policy.MaxUsage,
		IssuedIP:   sec.IssuedIP,
		DeviceHint: sec.DeviceHint,
	}
	if err := s.tokens.CreateTx(ctx, tx, t); err != nil {
		return nil, err
	}

	raw, err := utils.NewCheckInJWT(s.secret, utils.CheckInClaims{
		TokenID:    t.ID,
		BookingID:  t.BookingID,
		HotelID:    t.HotelID,
		CustomerID: t.CustomerID,
		ExpiresAt:  t.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}
	return &IssuedToken{TokenID: t.ID, JWT: raw, NotBefore: t.NotBefore, ExpiresAt: t.ExpiresAt, MaxUsage: t.MaxUsage}, nil
}

// RevokeActiveForBookingTx revokes the booking's ACTIVE token, if any,
// inside the caller's transaction. Cancellation and no-show call this so a
// dead booking cannot retain a live credential.
func (s *TokenService) RevokeActiveForBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
	t, err := s.tokens.ActiveByBookingForUpdateTx(ctx, tx, bookingID)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.tokens.UpdateStatusTx(ctx, tx, t.ID, model.TokenRevoked)
}

// Validate checks a presented credential without consuming a use. The
// signature is verified first; the stored row then answers status, expiry,
// scope and usage questions in that order.
func (s *TokenService) Validate(ctx context.Context, rawJWT string, presented model.TokenContext) (*ValidationResult, error) {
	claims, err := utils.ParseCheckInJWT(s.secret, rawJWT)
	if err != nil {
		return nil, err
	}
	t, err := s.tokens.GetByID(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	// Claims must agree with the stored row; disagreement means the
	// credential was minted against different state.
	if t.BookingID != claims.BookingID || t.HotelID != claims.HotelID {
		return nil, model.ErrTokenContextMismatch
	}
	warn, err := model.EvaluateToken(t, presented, time.Now().UTC(), s.policy.Grace)
	if err != nil {
		return nil, err
	}
	return &ValidationResult{Token: t, TokenID: t.ID, Warning: warn}, nil
}

// ConsumeTx validates and burns one use of a token inside the caller's
// transaction. The check-in transition calls this so the token spend and
// the booking status change commit atomically. The token row is locked
// before evaluation, so two concurrent scans of the last permitted use
// cannot both succeed.
func (s *TokenService) ConsumeTx(ctx context.Context, tx *sql.Tx, rawJWT string, presented model.TokenContext, actorID uint64) (*ValidationResult, error) {
	claims, err := utils.ParseCheckInJWT(s.secret, rawJWT)
	if err != nil {
		return nil, err
	}
	t, err := s.tokens.GetForUpdateTx(ctx, tx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if t.BookingID != claims.BookingID || t.HotelID != claims.HotelID {
		return nil, model.ErrTokenContextMismatch
	}
	warn, err := model.EvaluateToken(t, presented, time.Now().UTC(), s.policy.Grace)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.ConsumeTx(ctx, tx, t.ID, t.MaxUsage); err != nil {
		return nil, err
	}
	outcome := "ACCEPTED"
	if warn != "" {
		outcome = warn
	}
	if err := s.tokens.AppendUsageTx(ctx, tx, model.TokenUsageEntry{
		TokenID: t.ID,
		ActorID: actorID,
		Outcome: outcome,
		UsedAt:  time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	return &ValidationResult{Token: t, TokenID: t.ID, Warning: warn}, nil
}

// Revoke moves an ACTIVE token to REVOKED. Customers may revoke their own
// token; staff may revoke any. Revoking an already-REVOKED token is a
// no-op; USED and EXPIRED tokens cannot be revoked.
func (s *TokenService) Revoke(ctx context.Context, tokenID string, actorID uint64, actorRole string) error {
	tx, err := s.tokens.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	t, err := s.tokens.GetForUpdateTx(ctx, tx, tokenID)
	if err != nil {
		return err
	}
	if !model.StaffRole(actorRole) && actorID != t.CustomerID {
		return repository.ErrForbidden
	}
	switch t.Status {
	case model.TokenActive:
	case model.TokenRevoked:
		// already revoked, nothing to do
		return nil
	case model.TokenUsed:
		return model.ErrTokenUsageExceeded
	case model.TokenExpired:
		return model.ErrTokenExpired
	}
	if err := s.tokens.UpdateStatusTx(ctx, tx, tokenID, model.TokenRevoked); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return repository.TranslateMySQL(err)
	}
	committed = true
	return nil
}

// UsageLog returns the audit trail of a token.
func (s *TokenService) UsageLog(ctx context.Context, tokenID string) ([]model.TokenUsageEntry, error) {
	return s.tokens.UsageLog(ctx, tokenID)
}

// ExpireLapsed sweeps ACTIVE tokens whose expiry plus grace has passed and
// marks them EXPIRED. Intended to run periodically in the background.
func (s *TokenService) ExpireLapsed(ctx context.Context) (int64, error) {
	tx, err := s.tokens.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	n, err := s.tokens.ExpireLapsedTx(ctx, tx, time.Now().UTC(), s.policy.Grace)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, repository.TranslateMySQL(err)
	}
	committed = true
	if n > 0 {
		log.Printf("token sweep: expired %d lapsed check-in tokens", n)
	}
	return n, nil
}

// StartExpirySweeper runs ExpireLapsed on the given interval until the
// context is cancelled.
func (s *TokenService) StartExpirySweeper(ctx context.Context, every time.Duration) {
	go func() {
		tick := time.NewTicker(every)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				if _, err := s.ExpireLapsed(ctx); err != nil {
					log.Printf("token sweep failed: %v", err)
				}
			}
		}
	}()
}
