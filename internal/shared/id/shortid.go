// Package id generates Stripe-style short identifiers used as the public
// IDs of plans and subscriptions.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for entity types.
const (
	PrefixPlan         = "plan"
	PrefixSubscription = "sub"
)

// Generate creates a cryptographically random Base62 ID of the given
// length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates a prefixed ID in the format
// "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}

// MustGenerateWithPrefix creates a prefixed ID and panics on error.
func MustGenerateWithPrefix(prefix string, length int) string {
	id, err := GenerateWithPrefix(prefix, length)
	if err != nil {
		panic(err)
	}
	return id
}

// ValidatePrefix checks that sid carries the expected prefix and a
// non-empty random part.
func ValidatePrefix(sid, prefix string) error {
	want := prefix + "_"
	if len(sid) <= len(want) || sid[:len(want)] != want {
		return fmt.Errorf("invalid ID format: expected prefix %q", prefix)
	}
	return nil
}
