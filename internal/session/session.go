// Package session holds the single source of truth for "who is logged in".
// The in-memory state is backed by the durable store so a restarted client
// comes back authenticated; no refresh or proactive expiry logic exists —
// a 401 from any backend call clears the stored credentials reactively.
package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"thimar/internal/logger"
	"thimar/internal/models"
	"thimar/internal/store"
)

// Session is the injectable identity holder consumed by the API client,
// the wizard, and route guards.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *models.User
	store *store.Store
}

// New creates a session over the given store and restores any persisted
// credentials. A corrupt stored user record is discarded, not fatal.
func New(s *store.Store) (*Session, error) {
	sess := &Session{store: s}

	token, err := s.Get(store.KeyAuthToken)
	if err != nil {
		return nil, err
	}
	rawUser, err := s.Get(store.KeyUser)
	if err != nil {
		return nil, err
	}

	if token != "" && rawUser != "" {
		var user models.User
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			logger.Get().Warnw("discarding corrupt stored user record", "error", err)
			_ = s.Delete(store.KeyAuthToken)
			_ = s.Delete(store.KeyUser)
		} else {
			sess.token = token
			sess.user = &user
		}
	}

	return sess, nil
}

// Login stores the backend-issued token and user record in memory and in
// the durable store.
func (s *Session) Login(token string, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(store.KeyAuthToken, token); err != nil {
		return err
	}
	if err := s.store.Set(store.KeyUser, string(raw)); err != nil {
		return err
	}
	s.token = token
	u := *user
	s.user = &u
	return nil
}

// Logout clears the in-memory state and the durable store.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

// Clear drops stored credentials without treating it as a user action.
// Wired as the API client's 401 handler.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.clearLocked(); err != nil {
		logger.Get().Errorw("failed to clear stored credentials", "error", err)
	}
}

func (s *Session) clearLocked() error {
	s.token = ""
	s.user = nil
	if err := s.store.Delete(store.KeyAuthToken); err != nil {
		return err
	}
	return s.store.Delete(store.KeyUser)
}

// UpdateUser merges the given record into the current user without a backend
// round trip and re-persists it. A no-op when logged out.
func (s *Session) UpdateUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}
	u := *user
	s.user = &u

	raw, err := json.Marshal(s.user)
	if err != nil {
		logger.Get().Errorw("failed to serialize user record", "error", err)
		return
	}
	if err := s.store.Set(store.KeyUser, string(raw)); err != nil {
		logger.Get().Errorw("failed to persist user record", "error", err)
	}
}

// Token returns the stored bearer token, or "" when logged out.
// Satisfies api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil when logged out.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether both a token and a user record are present.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// TokenExpired inspects the stored token's exp claim without verifying the
// signature (verification is backend-owned). Informational only: expiry is
// still detected reactively via 401 responses. Tokens without a parseable
// exp claim are reported as not expired.
func (s *Session) TokenExpired() bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
