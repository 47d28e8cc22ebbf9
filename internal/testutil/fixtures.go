package testutil

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"thimar/internal/api"
	"thimar/internal/models"
	"thimar/internal/session"
	"thimar/internal/store"
)

// OpenTestStore opens a credential store backed by a per-test temp file.
func OpenTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "credentials.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close test store: %v", err)
		}
	})
	return s
}

// NewTestSession builds a session over a throwaway store.
func NewTestSession(t *testing.T) *session.Session {
	t.Helper()

	sess, err := session.New(OpenTestStore(t))
	if err != nil {
		t.Fatalf("failed to build test session: %v", err)
	}
	return sess
}

// LoggedInSession builds a session that is already authenticated as the
// given user with an opaque token.
func LoggedInSession(t *testing.T, user *models.User) *session.Session {
	t.Helper()

	sess := NewTestSession(t)
	if err := sess.Login("test-token", user); err != nil {
		t.Fatalf("failed to log in test session: %v", err)
	}
	return sess
}

// FakeBackend starts an httptest server running the given handler and
// returns an API client pointed at it. The client carries no token and no
// unauthorized hook unless a session is supplied.
func FakeBackend(t *testing.T, handler http.Handler, sess *session.Session) *api.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	if sess != nil {
		return api.NewClient(srv.URL, srv.Client(), sess, sess.Clear)
	}
	return api.NewClient(srv.URL, srv.Client(), nil, nil)
}
