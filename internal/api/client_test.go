package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token() string { return s.token }

func TestGet_AttachesBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tkn-123" {
			t.Errorf("expected bearer header, got %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected Accept header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), &staticTokens{token: "tkn-123"}, nil)
	if _, err := c.Get(context.Background(), "investment/opportunities", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGet_NoTokenNoHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no Authorization header, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), &staticTokens{}, nil)
	if _, err := c.Get(context.Background(), "investment/cities", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGet_QueryEncoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "جدة" {
			t.Errorf("expected search=جدة, got %q", got)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("expected page=2, got %q", got)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), nil, nil)
	query := url.Values{}
	query.Set("search", "جدة")
	query.Set("page", "2")
	if _, err := c.Get(context.Background(), "investment/opportunities", query); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnauthorized_ClearsCredentialsOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Unauthenticated."})
	}))
	defer server.Close()

	cleared := 0
	c := NewClient(server.URL, server.Client(), &staticTokens{token: "stale"}, func() { cleared++ })

	_, err := c.Get(context.Background(), "auth/user", nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if StatusOf(err) != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", StatusOf(err))
	}
	if cleared != 1 {
		t.Errorf("expected credentials cleared exactly once, got %d", cleared)
	}
}

func TestValidationError_Decoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "The given data was invalid.",
			"errors": map[string][]string{
				"phone": {"The phone has already been taken."},
				"email": {"The email has already been taken."},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), nil, nil)
	_, err := c.Post(context.Background(), "investment/users", map[string]string{"phone": "0500000000"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !FieldError(err, "phone") {
		t.Error("expected phone field error")
	}
	if !FieldError(err, "email") {
		t.Error("expected email field error")
	}
	if FieldError(err, "name") {
		t.Error("did not expect name field error")
	}
}

func TestDelete_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not found"})
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), nil, nil)
	err := c.Delete(context.Background(), "investment/developers/99")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if StatusOf(err) != http.StatusNotFound {
		t.Errorf("expected 404, got %d", StatusOf(err))
	}
}

func TestPostIdempotent_SendsClientReference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Client-Reference"); got != "ref-1" {
			t.Errorf("expected client reference header, got %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), nil, nil)
	if _, err := c.PostIdempotent(context.Background(), "investment/user-investments", map[string]any{"amount": 1500}, "ref-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStatusOf_NonBackendError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", &http.Client{}, nil, nil)
	_, err := c.Get(context.Background(), "anything", nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if StatusOf(err) != 0 {
		t.Errorf("expected status 0 for transport error, got %d", StatusOf(err))
	}
}
