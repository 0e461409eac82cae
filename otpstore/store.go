// Package otpstore keeps short-lived one-time passcodes keyed by email.
package otpstore

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// ErrNotFound is returned when no live entry exists for a key.
var ErrNotFound = errors.New("otp not found")

// Entry is one issued passcode.
type Entry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
	Verified  bool      `json:"verified"`
}

// Expired reports whether the entry is past its expiry at now.
func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Store persists entries until they expire.
type Store interface {
	Put(ctx context.Context, key string, entry Entry) error
	Get(ctx context.Context, key string) (Entry, error)
	Delete(ctx context.Context, key string) error
}

// GenerateCode returns a zero-padded numeric code drawn from crypto/rand.
func GenerateCode(digits int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}

// NormalizeKey lower-cases and trims an email so lookups are case-insensitive.
func NormalizeKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
