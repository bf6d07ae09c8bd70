// Package shortcode generates the fixed-length codes that back short
// redirect links.
package shortcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the fixed length of every generated code.
const Length = 6

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MaxAttempts bounds the create-retry loop on short-code collisions.
// 62^6 codes make a collision rare; hitting the bound means something is
// badly wrong with the store, not with the generator.
const MaxAttempts = 5

// Generate returns a random base62 code of Length characters.
// crypto/rand keeps codes unpredictable, so they cannot be enumerated.
func Generate() (string, error) {
	b := make([]byte, Length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("shortcode: random index: %w", err)
		}
		b[i] = charset[n.Int64()]
	}
	return string(b), nil
}
