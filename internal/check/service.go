package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pulsecheck/pulsecheck/internal/apperror"
	"github.com/pulsecheck/pulsecheck/internal/metrics"
	"github.com/pulsecheck/pulsecheck/internal/notification"
	"github.com/pulsecheck/pulsecheck/internal/store"
	"github.com/pulsecheck/pulsecheck/internal/token"
)

// TokenSource resolves a bearer token to its record.
type TokenSource interface {
	Get(ctx context.Context, id string) (token.Token, error)
	Verify(ctx context.Context, id, phone string) bool
}

// ownerRecord is the slice of the user record the check path reads and
// writes back.
type ownerRecord struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Phone          string   `json:"phone"`
	HashedPassword string   `json:"hashedPassword"`
	TOSAgreement   bool     `json:"tosAgreement"`
	Checks         []string `json:"checks"`
}

// Service registers uptime checks, enforcing the per-user quota and the
// back-reference from the owner to its checks.
type Service struct {
	store     store.Store
	tokens    TokenSource
	notifier  notification.Notifier
	maxChecks int
}

// NewService builds a check service with the configured quota.
func NewService(st store.Store, tokens TokenSource, notifier notification.Notifier, maxChecks int) *Service {
	return &Service{store: st, tokens: tokens, notifier: notifier, maxChecks: maxChecks}
}

// CreateInput carries the validated check fields.
type CreateInput struct {
	Protocol       string
	URL            string
	Method         string
	SuccessCodes   []int
	TimeoutSeconds int
}

// Create registers a check for the token's owner. The check is persisted
// first and the owner's back-reference second; if the second write fails the
// check is orphaned, which is surfaced as a distinct partial failure and
// reported to operators for reconciliation.
func (s *Service) Create(ctx context.Context, tokenID string, input CreateInput) (Check, error) {
	tok, err := s.tokens.Get(ctx, tokenID)
	if err != nil {
		return Check{}, apperror.Forbidden()
	}
	if !s.tokens.Verify(ctx, tokenID, tok.Phone) {
		return Check{}, apperror.Forbidden()
	}

	var owner ownerRecord
	if err := s.store.Read(ctx, store.CollectionUsers, tok.Phone, &owner); err != nil {
		return Check{}, apperror.Forbidden()
	}

	if len(owner.Checks) >= s.maxChecks {
		return Check{}, apperror.MaxChecksReached(s.maxChecks)
	}

	chk := Check{
		ID:             uuid.NewString(),
		UserPhone:      tok.Phone,
		Protocol:       input.Protocol,
		URL:            input.URL,
		Method:         input.Method,
		SuccessCodes:   input.SuccessCodes,
		TimeoutSeconds: input.TimeoutSeconds,
	}

	if err := s.store.Create(ctx, store.CollectionChecks, chk.ID, chk); err != nil {
		return Check{}, apperror.IO("could not create the new check")
	}

	owner.Checks = append(owner.Checks, chk.ID)
	if err := s.store.Update(ctx, store.CollectionUsers, tok.Phone, owner); err != nil {
		metrics.ChecksOrphaned.Inc()
		// Best effort; the partial-failure response carries the same facts.
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:    notification.KindOrphanedCheck,
			Subject: chk.ID,
			Body:    fmt.Sprintf("check %s persisted but not linked to user %s", chk.ID, tok.Phone),
		})
		return Check{}, apperror.PartialFailure("the check was created but could not be linked to the user")
	}

	metrics.ChecksCreated.Inc()
	return chk, nil
}

// Get returns the check for id, restricted to its owner's token.
func (s *Service) Get(ctx context.Context, id, tokenID string) (Check, error) {
	var chk Check
	if err := s.store.Read(ctx, store.CollectionChecks, id, &chk); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Check{}, apperror.NotFound("the specified check does not exist")
		}
		return Check{}, apperror.IO("could not read the specified check")
	}

	if !s.tokens.Verify(ctx, tokenID, chk.UserPhone) {
		return Check{}, apperror.Forbidden()
	}
	return chk, nil
}
