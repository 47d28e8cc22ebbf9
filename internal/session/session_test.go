package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"thimar/internal/models"
	"thimar/internal/store"
)

func openTestStore(t *testing.T, path string) *store.Store {
	t.Helper()
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testUser() *models.User {
	return &models.User{
		ID:     7,
		Name:   "سارة",
		Phone:  "0501234567",
		Type:   models.UserTypeInvestor,
		Status: models.UserStatusActive,
	}
}

func TestLoginLogout(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "state.db"))
	sess, err := New(st)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	if sess.IsAuthenticated() {
		t.Fatal("fresh session should not be authenticated")
	}

	if err := sess.Login("tkn-1", testUser()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !sess.IsAuthenticated() {
		t.Fatal("expected authenticated after login")
	}
	if sess.Token() != "tkn-1" {
		t.Errorf("expected token tkn-1, got %q", sess.Token())
	}
	if u := sess.User(); u == nil || u.ID != 7 {
		t.Errorf("unexpected user: %+v", u)
	}

	if err := sess.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if sess.IsAuthenticated() {
		t.Error("expected unauthenticated after logout")
	}
	if sess.Token() != "" {
		t.Errorf("expected empty token after logout, got %q", sess.Token())
	}
}

func TestRestoreAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	st := openTestStore(t, path)
	sess, err := New(st)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := sess.Login("tkn-persist", testUser()); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// A new session over the same store restores the identity.
	restored, err := New(st)
	if err != nil {
		t.Fatalf("failed to restore session: %v", err)
	}
	if !restored.IsAuthenticated() {
		t.Fatal("expected restored session to be authenticated")
	}
	if restored.Token() != "tkn-persist" {
		t.Errorf("expected restored token, got %q", restored.Token())
	}
	if u := restored.User(); u == nil || u.Name != "سارة" {
		t.Errorf("unexpected restored user: %+v", u)
	}

	// After logout, a further restore is unauthenticated.
	if err := restored.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	again, err := New(st)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if again.IsAuthenticated() {
		t.Error("expected unauthenticated session after logout")
	}
}

func TestTokenWithoutUserIsUnauthenticated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	st := openTestStore(t, path)

	if err := st.Set(store.KeyAuthToken, "orphan-token"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	sess, err := New(st)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if sess.IsAuthenticated() {
		t.Error("token without user record must not count as authenticated")
	}
}

func TestClear(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "state.db"))
	sess, err := New(st)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := sess.Login("tkn-1", testUser()); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	sess.Clear()

	if sess.IsAuthenticated() {
		t.Error("expected unauthenticated after clear")
	}
	if v, _ := st.Get(store.KeyAuthToken); v != "" {
		t.Errorf("expected token removed from store, got %q", v)
	}
}

func TestUpdateUser(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "state.db"))
	sess, err := New(st)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := sess.Login("tkn-1", testUser()); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	updated := testUser()
	updated.Name = "سارة المحدثة"
	sess.UpdateUser(updated)

	if u := sess.User(); u == nil || u.Name != "سارة المحدثة" {
		t.Errorf("expected updated name, got %+v", u)
	}

	// The merge persists: a restored session sees the new record.
	restored, err := New(st)
	if err != nil {
		t.Fatalf("failed to restore session: %v", err)
	}
	if u := restored.User(); u == nil || u.Name != "سارة المحدثة" {
		t.Errorf("expected persisted updated user, got %+v", u)
	}
}

func TestUpdateUser_NoOpWhenLoggedOut(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "state.db"))
	sess, err := New(st)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	sess.UpdateUser(testUser())
	if sess.IsAuthenticated() {
		t.Error("update on a logged-out session must not authenticate it")
	}
}

func TestTokenExpired(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "state.db"))
	sess, err := New(st)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	signed := func(exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": exp.Unix(),
			"sub": "7",
		})
		s, err := token.SignedString([]byte("irrelevant"))
		if err != nil {
			t.Fatalf("failed to sign test token: %v", err)
		}
		return s
	}

	if err := sess.Login(signed(time.Now().Add(time.Hour)), testUser()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.TokenExpired() {
		t.Error("future-dated token reported expired")
	}

	if err := sess.Login(signed(time.Now().Add(-time.Hour)), testUser()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !sess.TokenExpired() {
		t.Error("past-dated token not reported expired")
	}

	// Opaque (non-JWT) tokens are reported as not expired.
	if err := sess.Login("opaque-token", testUser()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.TokenExpired() {
		t.Error("opaque token reported expired")
	}
}
