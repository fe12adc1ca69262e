package services

import (
	"errors"
	"net/url"
	"sync"
	"testing"

	"topspot/internal/models"
	"topspot/internal/shared"
)

// memStore is an in-memory TokenStore for tests in this package.
type memStore struct {
	mu     sync.Mutex
	tokens map[TokenKind]string
	setErr error
}

func newMemStore() *memStore {
	return &memStore{tokens: map[TokenKind]string{}}
}

func (m *memStore) Get(kind TokenKind) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[kind], nil
}

func (m *memStore) Set(kind TokenKind, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.tokens[kind] = value
	return nil
}

func (m *memStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = map[TokenKind]string{}
	return nil
}

func TestSession(t *testing.T) {
	t.Run("NewSession", func(t *testing.T) {
		t.Run("Logged Out With Empty Store", func(t *testing.T) {
			session, err := NewSession(newMemStore())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if session.LoggedIn() {
				t.Error("expected logged out with empty store")
			}
		})

		t.Run("Logged In With Both Tokens", func(t *testing.T) {
			store := newMemStore()
			store.Set(TokenAccess, "access")
			store.Set(TokenRefresh, "refresh")

			session, err := NewSession(store)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !session.LoggedIn() {
				t.Error("expected logged in with stored token pair")
			}
		})

		t.Run("Logged Out With Partial Pair", func(t *testing.T) {
			store := newMemStore()
			store.Set(TokenAccess, "access")

			session, err := NewSession(store)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if session.LoggedIn() {
				t.Error("a single token must not count as logged in")
			}
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("Stores Pair And Transitions", func(t *testing.T) {
			store := newMemStore()
			session, _ := NewSession(store)

			err := session.Login(models.TokenPair{AccessToken: "a", RefreshToken: "r"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !session.LoggedIn() {
				t.Error("expected logged in after login")
			}
			if got, _ := store.Get(TokenAccess); got != "a" {
				t.Errorf("expected stored access token, got %q", got)
			}
		})

		t.Run("Rejects Incomplete Pair", func(t *testing.T) {
			session, _ := NewSession(newMemStore())

			err := session.Login(models.TokenPair{AccessToken: "a"})
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if session.LoggedIn() {
				t.Error("failed login must not transition")
			}
		})
	})

	t.Run("Logout", func(t *testing.T) {
		store := newMemStore()
		session, _ := NewSession(store)
		session.Login(models.TokenPair{AccessToken: "a", RefreshToken: "r"})

		if err := session.Logout(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if session.LoggedIn() {
			t.Error("expected logged out after logout")
		}
		if got, _ := store.Get(TokenRefresh); got != "" {
			t.Errorf("expected tokens cleared, got %q", got)
		}
	})

	t.Run("ConsumeRedirect", func(t *testing.T) {
		t.Run("Both Tokens Log In And Strip Query", func(t *testing.T) {
			session, _ := NewSession(newMemStore())
			query := url.Values{
				"access_token":  {"a"},
				"refresh_token": {"r"},
				"tab":           {"tracks"},
			}

			outcome, stripped, err := session.ConsumeRedirect(query)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if outcome != RedirectLoggedIn {
				t.Errorf("expected RedirectLoggedIn, got %v", outcome)
			}
			if !session.LoggedIn() {
				t.Error("expected logged in after consuming tokens")
			}
			if stripped.Has("access_token") || stripped.Has("refresh_token") {
				t.Error("token parameters must be stripped")
			}
			if stripped.Get("tab") != "tracks" {
				t.Error("unrelated parameters must survive")
			}
		})

		t.Run("Single Token Is Ignored", func(t *testing.T) {
			session, _ := NewSession(newMemStore())
			query := url.Values{"access_token": {"a"}}

			outcome, got, err := session.ConsumeRedirect(query)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if outcome != RedirectNone {
				t.Errorf("expected RedirectNone, got %v", outcome)
			}
			if session.LoggedIn() {
				t.Error("a single token must not log in")
			}
			if !got.Has("access_token") {
				t.Error("query must be unchanged when nothing was consumed")
			}
		})

		t.Run("State Mismatch Does Not Transition", func(t *testing.T) {
			session, _ := NewSession(newMemStore())
			query := url.Values{"error": {RedirectErrStateMismatch}}

			outcome, _, err := session.ConsumeRedirect(query)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if outcome != RedirectStateMismatch {
				t.Errorf("expected RedirectStateMismatch, got %v", outcome)
			}
			if session.LoggedIn() {
				t.Error("error redirects must not log in")
			}
		})

		t.Run("Invalid Token Does Not Transition", func(t *testing.T) {
			session, _ := NewSession(newMemStore())
			query := url.Values{"error": {RedirectErrInvalidToken}}

			outcome, _, _ := session.ConsumeRedirect(query)
			if outcome != RedirectInvalidToken {
				t.Errorf("expected RedirectInvalidToken, got %v", outcome)
			}
		})

		t.Run("Unknown Error Value", func(t *testing.T) {
			session, _ := NewSession(newMemStore())
			query := url.Values{"error": {"access_denied"}}

			outcome, _, _ := session.ConsumeRedirect(query)
			if outcome != RedirectFailed {
				t.Errorf("expected RedirectFailed, got %v", outcome)
			}
		})

		t.Run("Error Wins Over Tokens", func(t *testing.T) {
			session, _ := NewSession(newMemStore())
			query := url.Values{
				"error":         {RedirectErrStateMismatch},
				"access_token":  {"a"},
				"refresh_token": {"r"},
			}

			outcome, _, _ := session.ConsumeRedirect(query)
			if outcome != RedirectStateMismatch {
				t.Errorf("expected RedirectStateMismatch, got %v", outcome)
			}
			if session.LoggedIn() {
				t.Error("tokens alongside an error must not be consumed")
			}
		})
	})
}
