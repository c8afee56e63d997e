package token

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	idLength   = 20
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// newID generates a random alphanumeric token identifier. The id doubles as
// the bearer credential, so it comes from crypto/rand rather than a UUID.
func newID() (string, error) {
	max := big.NewInt(int64(len(idAlphabet)))
	buf := make([]byte, idLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate token id: %w", err)
		}
		buf[i] = idAlphabet[n.Int64()]
	}
	return string(buf), nil
}
