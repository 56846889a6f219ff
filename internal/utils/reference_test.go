package utils

import (
	"strings"
	"testing"
)

func TestNewBookingReferenceFormat(t *testing.T) {
	ref, err := NewBookingReference()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(ref, "BK-") {
		t.Errorf("expected BK- prefix, got %q", ref)
	}
	if len(ref) != 11 {
		t.Errorf("expected 11 characters, got %d (%q)", len(ref), ref)
	}
	for _, c := range ref[3:] {
		if !strings.ContainsRune(referenceAlphabet, c) {
			t.Errorf("character %q outside the reference alphabet", c)
		}
	}
}

func TestNewBookingReferenceVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		ref, err := NewBookingReference()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[ref] = true
	}
	if len(seen) < 2 {
		t.Error("references should vary between calls")
	}
}
