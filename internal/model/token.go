package model

import (
	"fmt"
	"time"
)

// TokenStatus enumerates check-in token states.  ACTIVE is the only
// non-terminal state; transitions are monotonic and nothing ever leaves
// USED, EXPIRED or REVOKED.
type TokenStatus string

const (
	TokenActive  TokenStatus = "ACTIVE"
	TokenUsed    TokenStatus = "USED"
	TokenExpired TokenStatus = "EXPIRED"
	TokenRevoked TokenStatus = "REVOKED"
)

// CanTransitionToken reports whether a token status change is legal.
func CanTransitionToken(from, to TokenStatus) bool {
	if from != TokenActive {
		return false
	}
	switch to {
	case TokenUsed, TokenExpired, TokenRevoked:
		return true
	}
	return false
}

// SecurityContext records where a token was issued from.  It is stored for
// audit alongside the token and never participates in validation.
type SecurityContext struct {
	IssuedIP   string `json:"issued_ip,omitempty"`
	DeviceHint string `json:"device_hint,omitempty"`
	RiskScore  int    `json:"risk_score,omitempty"`
}

// TokenUsageEntry is one append-only row in a token's usage log.
type TokenUsageEntry struct {
	ID      uint64    // checkin_token_usage.id
	TokenID string    // checkin_token_usage.token_id
	ActorID uint64    // checkin_token_usage.actor_id
	Outcome string    // checkin_token_usage.outcome (ACCEPTED / warning text)
	UsedAt  time.Time // checkin_token_usage.used_at
}

// CheckInToken is the credential that authorises a check-in without manual
// lookup.  The signed JWT handed to the guest carries the token ID plus the
// hotel/booking/customer binding; this row is the authoritative state the
// signature is checked against.  Exactly zero or one ACTIVE token exists
// per booking at any time.
type CheckInToken struct {
	ID           string      // checkin_tokens.id (uuid)
	BookingID    uint64      // checkin_tokens.booking_id
	HotelID      uint64      // checkin_tokens.hotel_id
	CustomerID   uint64      // checkin_tokens.customer_id
	Status       TokenStatus // checkin_tokens.status
	IssuedAt     time.Time   // checkin_tokens.issued_at
	NotBefore    time.Time   // checkin_tokens.not_before (validity window opens)
	ExpiresAt    time.Time   // checkin_tokens.expires_at
	MaxUsage     int         // checkin_tokens.max_usage
	CurrentUsage int         // checkin_tokens.current_usage
	IssuedIP     string      // checkin_tokens.issued_ip
	DeviceHint   string      // checkin_tokens.device_hint
}

// TokenContext is the presentation context a token is validated against.
// Both fields must match the token's own binding; a mismatch is a hard
// failure regardless of any other token state.
type TokenContext struct {
	HotelID   uint64
	BookingID uint64
}

// GraceWarning is the non-fatal result returned when a token is presented
// inside the post-expiry grace window.
const GraceWarning = "token past expiry, accepted within grace period"

// EvaluateToken runs the validation checks in their mandated order: status,
// validity window (not-before, then expiry with grace tolerated as a
// warning), hotel/booking scope, usage cap.  Signature verification happens
// before this function is reached.  The first failing check wins and
// nothing is mutated.
func EvaluateToken(t *CheckInToken, ctx TokenContext, now time.Time, grace time.Duration) (warn string, err error) {
	switch t.Status {
	case TokenActive:
		// fall through to the remaining checks
	case TokenRevoked:
		return "", ErrTokenRevoked
	case TokenUsed:
		return "", ErrTokenUsageExceeded
	case TokenExpired:
		return "", ErrTokenExpired
	default:
		return "", fmt.Errorf("%w: unknown token status %q", ErrValidation, t.Status)
	}
	if now.Before(t.NotBefore) {
		return "", ErrTokenNotYetValid
	}
	if !now.Before(t.ExpiresAt) {
		if grace > 0 && now.Before(t.ExpiresAt.Add(grace)) {
			warn = GraceWarning
		} else {
			return "", ErrTokenExpired
		}
	}
	if ctx.HotelID != t.HotelID || ctx.BookingID != t.BookingID {
		return "", ErrTokenContextMismatch
	}
	if t.CurrentUsage >= t.MaxUsage {
		return "", ErrTokenUsageExceeded
	}
	return warn, nil
}
