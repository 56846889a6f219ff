package utils

import (
	"crypto/rand"
	"strings"
)

// referenceAlphabet omits easily confused characters (0/O, 1/I/L) so
// reference codes survive being read over the phone.
const referenceAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// NewBookingReference returns a human-facing code such as "BK-7QX2M9FD".
// Collisions are handled by the unique key on bookings.reference_code and
// a retry at the call site.
func NewBookingReference() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("BK-")
	for _, c := range buf {
		b.WriteByte(referenceAlphabet[int(c)%len(referenceAlphabet)])
	}
	return b.String(), nil
}
