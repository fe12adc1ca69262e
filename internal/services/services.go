// package services implements the Spotify Web API client plus the token lifecycle around it
package services

import (
	"net/http"
)

// TokenKind names a persisted token slot in the [TokenStore].
type TokenKind string

const (
	TokenAccess  TokenKind = "access_token"
	TokenRefresh TokenKind = "refresh_token"
)

// TokenStore persists the OAuth token pair across process restarts.
//
// Get returns the empty string (and no error) when the kind is absent. The
// store performs no validation of token contents and no network calls.
type TokenStore interface {
	Get(kind TokenKind) (string, error)
	Set(kind TokenKind, value string) error
	Clear() error
}

// APIResponse is a raw HTTP response for the caller to interpret.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// OK reports whether the response carries a 2xx status.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
