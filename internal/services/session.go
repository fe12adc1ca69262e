package services

import (
	"fmt"
	"net/url"
	"sync"

	"topspot/internal/models"
	"topspot/internal/shared"
)

// Redirect query parameter names and error values set by the backend after
// the code exchange.
const (
	paramAccessToken  = "access_token"
	paramRefreshToken = "refresh_token"
	paramError        = "error"

	RedirectErrStateMismatch = "state_mismatch"
	RedirectErrInvalidToken  = "invalid_token"
)

// RedirectOutcome classifies the result of consuming the backend's
// post-callback redirect query.
type RedirectOutcome int

const (
	RedirectNone          RedirectOutcome = iota // query carried nothing relevant
	RedirectLoggedIn                             // tokens consumed, session now logged in
	RedirectStateMismatch                        // backend reported an OAuth state mismatch
	RedirectInvalidToken                         // backend reported a failed code exchange
	RedirectFailed                               // unrecognized error value in the query
)

// Session is the process-wide login-state controller.
//
// The state is always re-derivable from the token store: logged-in iff both
// tokens are present. Login and Logout are the only transitions.
type Session struct {
	mu       sync.Mutex
	store    TokenStore
	loggedIn bool
}

// NewSession derives the initial login state from the token store.
func NewSession(store TokenStore) (*Session, error) {
	access, err := store.Get(TokenAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to read access token: %w", err)
	}
	refresh, err := store.Get(TokenRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh token: %w", err)
	}

	return &Session{
		store:    store,
		loggedIn: access != "" && refresh != "",
	}, nil
}

// LoggedIn reports the current login state.
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// Login stores both tokens and transitions to logged-in.
func (s *Session) Login(pair models.TokenPair) error {
	if !pair.Complete() {
		return fmt.Errorf("%w: login requires both access and refresh tokens", shared.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(TokenAccess, pair.AccessToken); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if err := s.store.Set(TokenRefresh, pair.RefreshToken); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	s.loggedIn = true
	return nil
}

// Logout clears both tokens and transitions to logged-out.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}

	s.loggedIn = false
	return nil
}

// ConsumeRedirect applies the backend redirect contract to a query.
//
// When both token parameters are present they are stored, the session
// transitions to logged-in, and the returned query has the two parameters
// stripped. Error values never transition login state and leave the query
// unchanged.
func (s *Session) ConsumeRedirect(query url.Values) (RedirectOutcome, url.Values, error) {
	if query.Has(paramError) {
		switch query.Get(paramError) {
		case RedirectErrStateMismatch:
			return RedirectStateMismatch, query, nil
		case RedirectErrInvalidToken:
			return RedirectInvalidToken, query, nil
		default:
			return RedirectFailed, query, nil
		}
	}

	access := query.Get(paramAccessToken)
	refresh := query.Get(paramRefreshToken)
	if access == "" || refresh == "" {
		return RedirectNone, query, nil
	}

	if err := s.Login(models.TokenPair{AccessToken: access, RefreshToken: refresh}); err != nil {
		return RedirectNone, query, err
	}

	stripped := url.Values{}
	for key, values := range query {
		if key == paramAccessToken || key == paramRefreshToken {
			continue
		}
		stripped[key] = values
	}

	return RedirectLoggedIn, stripped, nil
}
