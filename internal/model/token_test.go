package model

import (
	"errors"
	"testing"
	"time"
)

func activeToken(now time.Time) *CheckInToken {
	return &CheckInToken{
		ID:         "tok-1",
		BookingID:  42,
		HotelID:    7,
		CustomerID: 9,
		Status:     TokenActive,
		IssuedAt:   now.Add(-time.Hour),
		NotBefore:  now.Add(-30 * time.Minute),
		ExpiresAt:  now.Add(2 * time.Hour),
		MaxUsage:   3,
	}
}

func TestEvaluateTokenHappyPath(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	tok := activeToken(now)
	ctx := TokenContext{HotelID: 7, BookingID: 42}

	warn, err := EvaluateToken(tok, ctx, now, 15*time.Minute)
	if err != nil {
		t.Fatalf("expected valid token, got: %v", err)
	}
	if warn != "" {
		t.Errorf("expected no warning, got %q", warn)
	}
}

func TestEvaluateTokenTerminalStates(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	ctx := TokenContext{HotelID: 7, BookingID: 42}

	cases := []struct {
		status TokenStatus
		want   error
	}{
		{TokenRevoked, ErrTokenRevoked},
		{TokenUsed, ErrTokenUsageExceeded},
		{TokenExpired, ErrTokenExpired},
	}
	for _, c := range cases {
		tok := activeToken(now)
		tok.Status = c.status
		_, err := EvaluateToken(tok, ctx, now, 15*time.Minute)
		if !errors.Is(err, c.want) {
			t.Errorf("status %s: expected %v, got %v", c.status, c.want, err)
		}
	}
}

// A token issued at confirmation must not validate before its window
// opens, no matter how far ahead the stay lies.
func TestEvaluateTokenBeforeWindowOpens(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	ctx := TokenContext{HotelID: 7, BookingID: 42}

	tok := activeToken(now)
	tok.NotBefore = now.Add(60 * 24 * time.Hour)
	tok.ExpiresAt = tok.NotBefore.Add(26 * time.Hour)
	_, err := EvaluateToken(tok, ctx, now, 15*time.Minute)
	if !errors.Is(err, ErrTokenNotYetValid) {
		t.Fatalf("expected ErrTokenNotYetValid long before the window, got: %v", err)
	}

	tok = activeToken(now)
	tok.NotBefore = now.Add(time.Minute)
	_, err = EvaluateToken(tok, ctx, now, 15*time.Minute)
	if !errors.Is(err, ErrTokenNotYetValid) {
		t.Fatalf("expected ErrTokenNotYetValid just before the window, got: %v", err)
	}

	// The instant the window opens counts as inside it.
	tok = activeToken(now)
	tok.NotBefore = now
	if _, err := EvaluateToken(tok, ctx, now, 15*time.Minute); err != nil {
		t.Fatalf("window opening instant should pass, got: %v", err)
	}
}

func TestEvaluateTokenGraceWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	grace := 15 * time.Minute

	tok := activeToken(now)
	tok.ExpiresAt = now.Add(-5 * time.Minute)
	warn, err := EvaluateToken(tok, TokenContext{HotelID: 7, BookingID: 42}, now, grace)
	if err != nil {
		t.Fatalf("inside grace window should pass, got: %v", err)
	}
	if warn != GraceWarning {
		t.Errorf("expected grace warning, got %q", warn)
	}

	tok = activeToken(now)
	tok.ExpiresAt = now.Add(-20 * time.Minute)
	_, err = EvaluateToken(tok, TokenContext{HotelID: 7, BookingID: 42}, now, grace)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("beyond grace should expire, got: %v", err)
	}

	tok = activeToken(now)
	tok.ExpiresAt = now.Add(-5 * time.Minute)
	_, err = EvaluateToken(tok, TokenContext{HotelID: 7, BookingID: 42}, now, 0)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("zero grace should expire immediately, got: %v", err)
	}
}

func TestEvaluateTokenScopeMismatch(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		ctx  TokenContext
	}{
		{"wrong hotel", TokenContext{HotelID: 8, BookingID: 42}},
		{"wrong booking", TokenContext{HotelID: 7, BookingID: 43}},
		{"both wrong", TokenContext{HotelID: 8, BookingID: 43}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := EvaluateToken(activeToken(now), c.ctx, now, 0)
			if !errors.Is(err, ErrTokenContextMismatch) {
				t.Fatalf("expected ErrTokenContextMismatch, got: %v", err)
			}
		})
	}
}

// A scoping mismatch must fail hard even inside the grace window.
func TestEvaluateTokenScopeBeatsGrace(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	tok := activeToken(now)
	tok.ExpiresAt = now.Add(-5 * time.Minute)
	_, err := EvaluateToken(tok, TokenContext{HotelID: 99, BookingID: 42}, now, 15*time.Minute)
	if !errors.Is(err, ErrTokenContextMismatch) {
		t.Fatalf("expected ErrTokenContextMismatch, got: %v", err)
	}
}

func TestEvaluateTokenUsageCap(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	ctx := TokenContext{HotelID: 7, BookingID: 42}

	tok := activeToken(now)
	tok.CurrentUsage = 2
	if _, err := EvaluateToken(tok, ctx, now, 0); err != nil {
		t.Fatalf("one use remaining should pass, got: %v", err)
	}

	tok.CurrentUsage = 3
	_, err := EvaluateToken(tok, ctx, now, 0)
	if !errors.Is(err, ErrTokenUsageExceeded) {
		t.Fatalf("expected ErrTokenUsageExceeded at cap, got: %v", err)
	}
}

func TestCanTransitionToken(t *testing.T) {
	cases := []struct {
		from, to TokenStatus
		want     bool
	}{
		{TokenActive, TokenUsed, true},
		{TokenActive, TokenExpired, true},
		{TokenActive, TokenRevoked, true},
		{TokenActive, TokenActive, false},
		{TokenUsed, TokenActive, false},
		{TokenExpired, TokenRevoked, false},
		{TokenRevoked, TokenUsed, false},
	}
	for _, c := range cases {
		if got := CanTransitionToken(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionToken(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
