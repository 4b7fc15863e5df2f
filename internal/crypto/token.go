package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	sessionTokenRandomBytes = 55
	timeSignatureLength     = 18

	SessionTokenLength = timeSignatureLength + 2*sessionTokenRandomBytes
)

// GenerateSessionToken returns a sortable time signature followed by 110 hex
// characters of secure randomness.
func GenerateSessionToken() (string, error) {
	return GenerateSessionTokenAt(time.Now())
}

func GenerateSessionTokenAt(now time.Time) (string, error) {
	b := make([]byte, sessionTokenRandomBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read secure random source: %w", err)
	}

	return TimeSignature(now) + hex.EncodeToString(b), nil
}

// TimeSignature renders t as an ISO-8601 UTC instant with the separators
// stripped, e.g. 2024-03-01T12:30:45.123Z becomes 20240301123045123Z.
func TimeSignature(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s%03dZ", t.Format("20060102150405"), t.Nanosecond()/int(time.Millisecond))
}
