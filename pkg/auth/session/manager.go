package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")
)

// Manager owns the bearer token lifecycle for the process: set once on
// login, read by the API client on every request, cleared on logout. It
// replaces the old pattern of stashing the token in ambient shared storage.
type Manager struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

// NewManager returns an empty manager with no active session.
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// Set installs the bearer token issued by the backend. When the token is a
// JWT its exp claim is captured so expiry can be detected locally; opaque
// tokens are stored without one and never expire client-side.
func (m *Manager) Set(token string) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return errors.New("token is required")
	}

	var expiresAt time.Time
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(trimmed, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			expiresAt = exp.Time
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = trimmed
	m.expiresAt = expiresAt
	return nil
}

// Token returns the current bearer token, or an error when no session is
// active or the session has expired locally.
func (m *Manager) Token() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" {
		return "", ErrNoSession
	}
	if !m.expiresAt.IsZero() && !m.now().Before(m.expiresAt) {
		return "", ErrSessionExpired
	}
	return m.token, nil
}

// Active reports whether a usable session exists.
func (m *Manager) Active() bool {
	_, err := m.Token()
	return err == nil
}

// Clear drops the session. Safe to call when none is active.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.expiresAt = time.Time{}
}
