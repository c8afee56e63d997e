package token

import "time"

// Token is an opaque bearer credential tying a session to a user's phone.
type Token struct {
	ID      string    `json:"id"`
	Phone   string    `json:"phone"`
	Expires time.Time `json:"expires"`
}

// ExpiredAt reports whether the token is past its TTL at the given instant.
func (t Token) ExpiredAt(now time.Time) bool {
	return !now.Before(t.Expires)
}
