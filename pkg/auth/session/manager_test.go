package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{"sub": "admin"}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()

	if _, err := m.Token(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession before login, got %v", err)
	}

	if err := m.Set("opaque-token-123"); err != nil {
		t.Fatalf("set: %v", err)
	}
	token, err := m.Token()
	if err != nil || token != "opaque-token-123" {
		t.Fatalf("unexpected token after set: %q %v", token, err)
	}
	if !m.Active() {
		t.Fatal("expected active session")
	}

	m.Clear()
	if m.Active() {
		t.Fatal("expected cleared session to be inactive")
	}
}

func TestManagerRejectsEmptyToken(t *testing.T) {
	m := NewManager()
	if err := m.Set("   "); err == nil {
		t.Fatal("expected blank token to be rejected")
	}
}

func TestManagerJWTExpiry(t *testing.T) {
	m := NewManager()
	if err := m.Set(signedToken(t, time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !m.Active() {
		t.Fatal("expected unexpired jwt session to be active")
	}

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := m.Token(); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestManagerJWTWithoutExpNeverExpires(t *testing.T) {
	m := NewManager()
	if err := m.Set(signedToken(t, time.Time{})); err != nil {
		t.Fatalf("set: %v", err)
	}
	m.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	if !m.Active() {
		t.Fatal("expected session without exp claim to stay active")
	}
}
