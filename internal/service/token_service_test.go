package service

import (
	"errors"
	"testing"
	"time"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/repository"
)

// Issuing while an ACTIVE token exists must refuse; the old credential is
// never revoked implicitly. Reissue is an explicit revoke-then-issue.
func TestGuardIssuanceRefusesActiveToken(t *testing.T) {
	existing := &model.CheckInToken{
		ID:        "tok-1",
		BookingID: 42,
		Status:    model.TokenActive,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	err := guardIssuance(existing)
	if !errors.Is(err, repository.ErrActiveTokenExists) {
		t.Fatalf("expected ErrActiveTokenExists, got: %v", err)
	}
}

func TestGuardIssuanceAllowsWhenNoLiveToken(t *testing.T) {
	if err := guardIssuance(nil); err != nil {
		t.Fatalf("no prior token should allow issuance, got: %v", err)
	}
	for _, status := range []model.TokenStatus{model.TokenRevoked, model.TokenUsed, model.TokenExpired} {
		tok := &model.CheckInToken{ID: "tok-1", BookingID: 42, Status: status}
		if err := guardIssuance(tok); err != nil {
			t.Errorf("terminal token (%s) should not block issuance, got: %v", status, err)
		}
	}
}
