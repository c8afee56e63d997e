package check

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pulsecheck/pulsecheck/internal/apperror"
	"github.com/pulsecheck/pulsecheck/internal/keyhash"
	"github.com/pulsecheck/pulsecheck/internal/logging"
	"github.com/pulsecheck/pulsecheck/internal/notification"
	"github.com/pulsecheck/pulsecheck/internal/store"
	"github.com/pulsecheck/pulsecheck/internal/token"
)

const (
	testSecret = "test-secret"
	testPhone  = "15551234567"
)

func newFixture(t *testing.T, quota int) (*Service, string, store.Store) {
	t.Helper()
	st := store.NewMemory()
	ctx := context.Background()

	hash, err := keyhash.Sum(testSecret, "pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	owner := ownerRecord{
		FirstName:      "A",
		LastName:       "B",
		Phone:          testPhone,
		HashedPassword: hash,
		TOSAgreement:   true,
		Checks:         []string{},
	}
	if err := st.Create(ctx, store.CollectionUsers, testPhone, owner); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	tokens := token.NewService(st, testSecret, time.Hour)
	tok, err := tokens.Issue(ctx, testPhone, "pw")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	notifier := notification.NewLoggerNotifier(logging.Discard())
	return NewService(st, tokens, notifier, quota), tok.ID, st
}

func validInput() CreateInput {
	return CreateInput{
		Protocol:       "https",
		URL:            "example.com",
		Method:         "get",
		SuccessCodes:   []int{200, 201},
		TimeoutSeconds: 3,
	}
}

func TestCreatePersistsCheckAndBackReference(t *testing.T) {
	svc, tokenID, st := newFixture(t, 5)
	ctx := context.Background()

	chk, err := svc.Create(ctx, tokenID, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if chk.UserPhone != testPhone {
		t.Fatalf("expected owner %s, got %s", testPhone, chk.UserPhone)
	}
	if !st.Exists(ctx, store.CollectionChecks, chk.ID) {
		t.Fatal("check record must be persisted")
	}

	var owner ownerRecord
	if err := st.Read(ctx, store.CollectionUsers, testPhone, &owner); err != nil {
		t.Fatalf("read owner: %v", err)
	}
	if len(owner.Checks) != 1 || owner.Checks[0] != chk.ID {
		t.Fatalf("expected back-reference to %s, got %v", chk.ID, owner.Checks)
	}
}

func TestCreateEnforcesQuota(t *testing.T) {
	svc, tokenID, _ := newFixture(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(ctx, tokenID, validInput()); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	_, err := svc.Create(ctx, tokenID, validInput())
	appErr, ok := err.(*apperror.Error)
	if !ok || appErr.Code != apperror.CodeMaxChecks {
		t.Fatalf("expected quota error, got %v", err)
	}
}

func TestCreateRequiresValidToken(t *testing.T) {
	svc, _, _ := newFixture(t, 5)

	_, err := svc.Create(context.Background(), "nosuchtoken", validInput())
	appErr, ok := err.(*apperror.Error)
	if !ok || appErr.Code != apperror.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreateRejectsExpiredToken(t *testing.T) {
	svc, _, st := newFixture(t, 5)
	ctx := context.Background()

	expired := token.Token{ID: "expiredexpiredexpire", Phone: testPhone, Expires: time.Now().Add(-time.Minute)}
	if err := st.Create(ctx, store.CollectionTokens, expired.ID, expired); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	_, err := svc.Create(ctx, expired.ID, validInput())
	appErr, ok := err.(*apperror.Error)
	if !ok || appErr.Code != apperror.CodeForbidden {
		t.Fatalf("expected forbidden for expired token, got %v", err)
	}
}

// failingStore wraps a Store and fails user updates, simulating the gap
// between persisting a check and linking it to its owner.
type failingStore struct {
	store.Store
}

func (f *failingStore) Update(ctx context.Context, collection, key string, record any) error {
	if collection == store.CollectionUsers {
		return errors.New("disk full")
	}
	return f.Store.Update(ctx, collection, key, record)
}

func TestCreateSurfacesPartialFailure(t *testing.T) {
	_, tokenID, st := newFixture(t, 5)
	tokens := token.NewService(st, testSecret, time.Hour)
	notifier := notification.NewLoggerNotifier(logging.Discard())
	svc := NewService(&failingStore{Store: st}, tokens, notifier, 5)

	ctx := context.Background()
	_, err := svc.Create(ctx, tokenID, validInput())
	appErr, ok := err.(*apperror.Error)
	if !ok || appErr.Code != apperror.CodePartialFailure {
		t.Fatalf("expected partial failure, got %v", err)
	}
	if appErr.Status != 500 {
		t.Fatalf("expected status 500, got %d", appErr.Status)
	}

	// The orphaned check is on disk while the owner still references nothing.
	var owner ownerRecord
	if err := st.Read(ctx, store.CollectionUsers, testPhone, &owner); err != nil {
		t.Fatalf("read owner: %v", err)
	}
	if len(owner.Checks) != 0 {
		t.Fatalf("owner must not reference the orphaned check, got %v", owner.Checks)
	}
}

func TestGetRestrictedToOwner(t *testing.T) {
	svc, tokenID, st := newFixture(t, 5)
	ctx := context.Background()

	chk, err := svc.Create(ctx, tokenID, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(ctx, chk.ID, tokenID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != chk.ID {
		t.Fatalf("expected check %s, got %s", chk.ID, got.ID)
	}

	other := token.Token{ID: "otherotherotherother", Phone: "15557654321", Expires: time.Now().Add(time.Hour)}
	if err := st.Create(ctx, store.CollectionTokens, other.ID, other); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	_, err = svc.Get(ctx, chk.ID, other.ID)
	appErr, ok := err.(*apperror.Error)
	if !ok || appErr.Code != apperror.CodeForbidden {
		t.Fatalf("expected forbidden for another owner's token, got %v", err)
	}
}
