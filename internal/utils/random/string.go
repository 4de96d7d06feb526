package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// String returns n characters drawn uniformly from [a-z0-9] using crypto/rand.
func String(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("length must be positive: %d", n)
	}
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		buf[i] = alphabet[idx.Int64()]
	}
	return string(buf), nil
}
