package token

import (
	"context"
	"errors"
	"time"

	"github.com/pulsecheck/pulsecheck/internal/apperror"
	"github.com/pulsecheck/pulsecheck/internal/keyhash"
	"github.com/pulsecheck/pulsecheck/internal/metrics"
	"github.com/pulsecheck/pulsecheck/internal/store"
)

// Service issues and manages session tokens on top of the document store.
type Service struct {
	store  store.Store
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewService builds a token service. ttl is the fixed lifetime applied at
// issue and extension time.
func NewService(st store.Store, secret string, ttl time.Duration) *Service {
	return &Service{store: st, secret: secret, ttl: ttl, now: time.Now}
}

// storedCredentials is the slice of the user record the login path needs.
type storedCredentials struct {
	HashedPassword string `json:"hashedPassword"`
}

// Issue verifies the user's credentials and persists a fresh token expiring
// one TTL from now.
func (s *Service) Issue(ctx context.Context, phone, password string) (Token, error) {
	var creds storedCredentials
	if err := s.store.Read(ctx, store.CollectionUsers, phone, &creds); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Token{}, apperror.UnknownRecord("could not find the specified user")
		}
		return Token{}, apperror.IO("could not look up the specified user")
	}

	if !keyhash.Matches(s.secret, password, creds.HashedPassword) {
		return Token{}, apperror.New(400, apperror.CodeBadCredentials, "password did not match the specified user's stored password")
	}

	id, err := newID()
	if err != nil {
		return Token{}, apperror.IO("could not create the new token")
	}

	tok := Token{ID: id, Phone: phone, Expires: s.now().Add(s.ttl)}
	if err := s.store.Create(ctx, store.CollectionTokens, tok.ID, tok); err != nil {
		return Token{}, apperror.IO("could not create the new token")
	}

	metrics.TokensIssued.Inc()
	return tok, nil
}

// Get returns the token for id.
func (s *Service) Get(ctx context.Context, id string) (Token, error) {
	var tok Token
	if err := s.store.Read(ctx, store.CollectionTokens, id, &tok); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Token{}, apperror.NotFound("the specified token does not exist")
		}
		return Token{}, apperror.IO("could not read the specified token")
	}
	return tok, nil
}

// Extend resets the token's expiry to one TTL from now. An already-expired
// token is rejected without mutation.
func (s *Service) Extend(ctx context.Context, id string) (Token, error) {
	var tok Token
	if err := s.store.Read(ctx, store.CollectionTokens, id, &tok); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Token{}, apperror.UnknownRecord("the specified token does not exist")
		}
		return Token{}, apperror.IO("could not read the specified token")
	}

	if tok.ExpiredAt(s.now()) {
		return Token{}, apperror.Expired("the token has already expired, and cannot be extended")
	}

	tok.Expires = s.now().Add(s.ttl)
	if err := s.store.Update(ctx, store.CollectionTokens, tok.ID, tok); err != nil {
		return Token{}, apperror.IO("could not update the token's expiration")
	}
	return tok, nil
}

// Delete removes the token.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, store.CollectionTokens, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.UnknownRecord("could not find the specified token")
		}
		return apperror.IO("could not delete the specified token")
	}
	return nil
}

// Verify never errors. It returns true only when the token exists, belongs
// to phone, and has not expired.
func (s *Service) Verify(ctx context.Context, id, phone string) bool {
	if id == "" {
		return false
	}
	var tok Token
	if err := s.store.Read(ctx, store.CollectionTokens, id, &tok); err != nil {
		return false
	}
	return tok.Phone == phone && !tok.ExpiredAt(s.now())
}
