package auth

import (
	"errors"
	"testing"
	"time"

	"dogslife-quiz/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, now func() time.Time) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("wuff"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return NewServiceWithClock(string(hash), "test-secret", time.Hour, now)
}

func TestLoginAndVerify(t *testing.T) {
	svc := newTestService(t, time.Now)

	token, err := svc.Login("wuff")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %q", claims.Role)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(t, time.Now)
	if _, err := svc.Login("miau"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestVerifyRejectsExpiredAndForeignTokens(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	old := newTestService(t, func() time.Time { return issued })
	token, err := old.Login("wuff")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	current := newTestService(t, time.Now)
	if _, err := current.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}

	other := NewService(string(current.passwordHash), "another-secret", time.Hour)
	fresh, _ := current.Login("wuff")
	if _, err := other.Verify(fresh); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected token signed with another secret to be rejected, got %v", err)
	}
}

func TestDisabledWithoutHash(t *testing.T) {
	svc := NewService("", "secret", time.Hour)
	if svc.Enabled() {
		t.Fatalf("expected service to be disabled")
	}
	if _, err := svc.Login(""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("wuff")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("wuff")); err != nil {
		t.Fatalf("hash does not match: %v", err)
	}
	if _, err := HashPassword(""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
