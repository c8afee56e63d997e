package keyhash

import "testing"

func TestSumIsDeterministic(t *testing.T) {
	a, err := Sum("secret", "password1")
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	b, err := Sum("secret", "password1")
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if a != b {
		t.Fatalf("digest not deterministic: %s != %s", a, b)
	}
}

func TestSumVariesWithSecret(t *testing.T) {
	a, _ := Sum("secret-a", "password1")
	b, _ := Sum("secret-b", "password1")
	if a == b {
		t.Fatal("expected different digests for different secrets")
	}
}

func TestSumRejectsEmptyPassword(t *testing.T) {
	if _, err := Sum("secret", "   "); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestMatches(t *testing.T) {
	stored, err := Sum("secret", "password1")
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if !Matches("secret", "password1", stored) {
		t.Fatal("expected match for correct password")
	}
	if Matches("secret", "password2", stored) {
		t.Fatal("expected mismatch for wrong password")
	}
	if Matches("other", "password1", stored) {
		t.Fatal("expected mismatch for wrong secret")
	}
}
