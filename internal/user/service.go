package user

import (
	"context"
	"errors"

	"github.com/pulsecheck/pulsecheck/internal/apperror"
	"github.com/pulsecheck/pulsecheck/internal/keyhash"
	"github.com/pulsecheck/pulsecheck/internal/store"
)

// TokenVerifier authorizes access to a phone-keyed resource.
type TokenVerifier interface {
	Verify(ctx context.Context, id, phone string) bool
}

// Service manages user account records.
type Service struct {
	store  store.Store
	tokens TokenVerifier
	secret string
}

// NewService builds a user service.
func NewService(st store.Store, tokens TokenVerifier, secret string) *Service {
	return &Service{store: st, tokens: tokens, secret: secret}
}

// CreateInput carries the validated signup fields.
type CreateInput struct {
	FirstName    string
	LastName     string
	Phone        string
	Password     string
	TOSAgreement bool
}

// Create registers a new user. Duplicate detection rides entirely on the
// store's exclusive create; there is deliberately no existence pre-check,
// so two racing signups resolve to one winner and one conflict.
func (s *Service) Create(ctx context.Context, input CreateInput) (User, error) {
	hash, err := keyhash.Sum(s.secret, input.Password)
	if err != nil {
		return User{}, apperror.Hashing()
	}

	u := User{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Phone:          input.Phone,
		HashedPassword: hash,
		TOSAgreement:   input.TOSAgreement,
		Checks:         []string{},
	}

	if err := s.store.Create(ctx, store.CollectionUsers, u.Phone, u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return User{}, apperror.Conflict("a user with that phone number already exists")
		}
		return User{}, apperror.IO("could not create the new user")
	}

	return u.Sanitized(), nil
}

// Get returns the user for phone, without the password digest. The caller's
// token must verify against the same phone.
func (s *Service) Get(ctx context.Context, phone, tokenID string) (User, error) {
	if !s.tokens.Verify(ctx, tokenID, phone) {
		return User{}, apperror.Forbidden()
	}

	var u User
	if err := s.store.Read(ctx, store.CollectionUsers, phone, &u); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return User{}, apperror.NotFound("the specified user does not exist")
		}
		return User{}, apperror.IO("could not read the specified user")
	}
	return u.Sanitized(), nil
}

// UpdateInput carries the optional profile fields; nil means "leave as is".
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Password  *string
}

func (in UpdateInput) empty() bool {
	return in.FirstName == nil && in.LastName == nil && in.Password == nil
}

// Update merges the provided fields into the stored record. The password, if
// present, is re-hashed. Concurrent updates to the same user are
// last-writer-wins by design.
func (s *Service) Update(ctx context.Context, phone, tokenID string, input UpdateInput) (User, error) {
	if input.empty() {
		return User{}, apperror.MissingFields("missing fields to update")
	}
	if !s.tokens.Verify(ctx, tokenID, phone) {
		return User{}, apperror.Forbidden()
	}

	var u User
	if err := s.store.Read(ctx, store.CollectionUsers, phone, &u); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return User{}, apperror.UnknownRecord("the specified user does not exist")
		}
		return User{}, apperror.IO("could not read the specified user")
	}

	if input.FirstName != nil {
		u.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		u.LastName = *input.LastName
	}
	if input.Password != nil {
		hash, err := keyhash.Sum(s.secret, *input.Password)
		if err != nil {
			return User{}, apperror.Hashing()
		}
		u.HashedPassword = hash
	}

	if err := s.store.Update(ctx, store.CollectionUsers, phone, u); err != nil {
		return User{}, apperror.IO("could not update the user")
	}
	return u.Sanitized(), nil
}

// Delete removes the user record. Tokens and checks owned by the user are
// left in place for operator reconciliation.
func (s *Service) Delete(ctx context.Context, phone, tokenID string) error {
	if !s.tokens.Verify(ctx, tokenID, phone) {
		return apperror.Forbidden()
	}

	if err := s.store.Delete(ctx, store.CollectionUsers, phone); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.UnknownRecord("could not find the specified user")
		}
		return apperror.IO("could not delete the specified user")
	}
	return nil
}
