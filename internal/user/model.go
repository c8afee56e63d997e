package user

// User represents a registered account, keyed by phone number.
type User struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Phone          string   `json:"phone"`
	HashedPassword string   `json:"hashedPassword,omitempty"`
	TOSAgreement   bool     `json:"tosAgreement"`
	Checks         []string `json:"checks"`
}

// Sanitized returns a copy safe to return to clients: the password digest is
// stripped and the checks list is never nil.
func (u User) Sanitized() User {
	u.HashedPassword = ""
	if u.Checks == nil {
		u.Checks = []string{}
	}
	return u
}
