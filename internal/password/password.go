package password

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/scrypt"
)

const defaultCost = 12

// Legacy hashes are hex(salt) + hex(scrypt(password, hex(salt))), N=16384 r=8 p=1.
const (
	legacySaltLength = 32
	legacyHashLength = 128
	legacyKeyLength  = 64
)

var ErrMismatch = errors.New("password does not match")

// Hash returns a bcrypt hash of the plain-text password.
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), defaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a stored hash with a plain-text candidate.
// Returns nil on success or an error if they do not match.
func Verify(hash, plain string) error {
	if IsLegacy(hash) {
		return verifyLegacy(hash, plain)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}

// IsLegacy reports whether hash was produced by the scrypt scheme that
// predates bcrypt. Such hashes should be replaced on the next login.
func IsLegacy(hash string) bool {
	if strings.HasPrefix(hash, "$2") || len(hash) != legacySaltLength+legacyHashLength {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}

func verifyLegacy(stored, plain string) error {
	salt := stored[:legacySaltLength]
	want, err := hex.DecodeString(stored[legacySaltLength:])
	if err != nil {
		return ErrMismatch
	}

	got, err := scrypt.Key([]byte(plain), []byte(salt), 16384, 8, 1, legacyKeyLength)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}
