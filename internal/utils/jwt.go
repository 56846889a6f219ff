package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"   // secure random number generation
	"crypto/sha256" // SHA-256 hashing for refresh tokens
	"encoding/hex"  // hex encoding and decoding functions
	"errors"
	"fmt"
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are short-lived and sent in the Authorization header when
// calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// RefreshToken represents a long-lived token used to obtain new access
// tokens.  In the database only a SHA-256 hash of the raw string is stored.
type RefreshToken struct {
	Raw string    // raw token string returned to the client
	Exp time.Time // UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  The JWT
// includes standard claims: subject (sub), role, expiration (exp) and
// issued at (iat).
func NewAccessToken(secret string, userID uint64, role string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken returns a cryptographically secure random token (raw)
// and its expiration time.
func NewRefreshToken(ttlDays int) (RefreshToken, error) {
	raw, err := randomHex(48) // 48 bytes -> 96 hex chars
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
	}, nil
}

// HashRefreshRaw returns the SHA-256 hash of the raw refresh token as a
// hex string.  Storing only the hash prevents attackers from using stolen
// database entries to refresh sessions.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// CheckInClaims is the payload embedded in a signed check-in credential.
// The signature proves the guest received the token from this system; the
// database row referenced by TokenID remains the authoritative state
// (status, usage count) the claims are checked against.
type CheckInClaims struct {
	TokenID    string // jti: check-in token row ID
	BookingID  uint64 // bid: booking the token authorises
	HotelID    uint64 // hid: hotel scope
	CustomerID uint64 // sub: guest the booking belongs to
	ExpiresAt  time.Time
}

// ErrBadCheckInToken is returned when a presented check-in credential
// fails signature or structural checks before any state is consulted.
var ErrBadCheckInToken = errors.New("malformed or improperly signed check-in token")

// NewCheckInJWT signs an HS256 credential carrying the check-in claims.
// Expiry is embedded so offline scanners can pre-filter, but the service
// re-checks it against the stored row during validation.
func NewCheckInJWT(secret string, c CheckInClaims) (string, error) {
	claims := jwt.MapClaims{
		"jti": c.TokenID,
		"bid": c.BookingID,
		"hid": c.HotelID,
		"sub": c.CustomerID,
		"exp": c.ExpiresAt.UTC().Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseCheckInJWT verifies the signature of a check-in credential and
// extracts its claims.  Expiry validation is deliberately disabled here:
// the token service evaluates expiry itself so it can honour the grace
// window and return the proper typed error.
func ParseCheckInJWT(secret, raw string) (CheckInClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadCheckInToken
		}
		return []byte(secret), nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !tok.Valid {
		return CheckInClaims{}, ErrBadCheckInToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return CheckInClaims{}, ErrBadCheckInToken
	}
	out := CheckInClaims{}
	if jti, ok := claims["jti"].(string); ok && jti != "" {
		out.TokenID = jti
	} else {
		return CheckInClaims{}, fmt.Errorf("%w: missing jti", ErrBadCheckInToken)
	}
	out.BookingID = claimUint(claims, "bid")
	out.HotelID = claimUint(claims, "hid")
	out.CustomerID = claimUint(claims, "sub")
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	if out.BookingID == 0 || out.HotelID == 0 {
		return CheckInClaims{}, fmt.Errorf("%w: missing scope claims", ErrBadCheckInToken)
	}
	return out, nil
}

// claimUint reads a numeric claim, tolerating the float64 representation
// produced by JSON decoding.
func claimUint(claims jwt.MapClaims, key string) uint64 {
	switch v := claims[key].(type) {
	case float64:
		return uint64(v)
	case uint64:
		return v
	case int64:
		return uint64(v)
	}
	return 0
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
