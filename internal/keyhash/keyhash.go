// Package keyhash computes the keyed password digest. The digest is
// parameterized by the process-wide secret and deterministic, so a login
// attempt can be checked by recomputing and comparing.
package keyhash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	iterations = 4096
	keyLength  = 32
)

// ErrEmptyPassword reports a password that is empty after trimming.
var ErrEmptyPassword = errors.New("keyhash: empty password")

// Sum returns the hex-encoded PBKDF2-HMAC-SHA256 digest of password keyed by
// secret.
func Sum(secret, password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	key := pbkdf2.Key([]byte(password), []byte(secret), iterations, keyLength, sha256.New)
	return hex.EncodeToString(key), nil
}

// Matches recomputes the digest for password and compares it to stored in
// constant time.
func Matches(secret, password, stored string) bool {
	sum, err := Sum(secret, password)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(sum), []byte(stored))
}
