package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"topspot/internal/shared"
)

// TokenRefresher exchanges the stored refresh token for a new access token
// via the companion backend, which holds the client secret.
//
// On success the stored access token is overwritten; the stored refresh token
// is overwritten only when the backend returned a new one (rotation is
// optional upstream). A failed refresh leaves both stored tokens untouched.
type TokenRefresher struct {
	backendURL string
	store      TokenStore
	httpClient *http.Client
}

// NewTokenRefresher creates a refresher against the backend refresh endpoint.
func NewTokenRefresher(backendURL string, store TokenStore, client *http.Client) *TokenRefresher {
	if client == nil {
		client = http.DefaultClient
	}

	return &TokenRefresher{
		backendURL: backendURL,
		store:      store,
		httpClient: client,
	}
}

// Refresh performs one refresh round trip.
func (t *TokenRefresher) Refresh(ctx context.Context) error {
	refreshToken, err := t.store.Get(TokenRefresh)
	if err != nil {
		return fmt.Errorf("%w: failed to read refresh token: %v", shared.ErrRefreshFailed, err)
	}
	if refreshToken == "" {
		return fmt.Errorf("%w: %v", shared.ErrRefreshFailed, shared.ErrNoRefreshToken)
	}

	endpoint := fmt.Sprintf("%s/spotify/refresh_token?refresh_token=%s", t.backendURL, url.QueryEscape(refreshToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrRefreshFailed, err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrRefreshFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: backend returned status %d", shared.ErrRefreshFailed, resp.StatusCode)
	}

	accessToken := gjson.GetBytes(body, "access_token")
	if accessToken.Type != gjson.String || accessToken.Str == "" {
		return fmt.Errorf("%w: refresh payload missing access_token", shared.ErrRefreshFailed)
	}

	if err := t.store.Set(TokenAccess, accessToken.Str); err != nil {
		return fmt.Errorf("%w: failed to store access token: %v", shared.ErrRefreshFailed, err)
	}

	if rotated := gjson.GetBytes(body, "refresh_token"); rotated.Type == gjson.String && rotated.Str != "" {
		if err := t.store.Set(TokenRefresh, rotated.Str); err != nil {
			return fmt.Errorf("%w: failed to store refresh token: %v", shared.ErrRefreshFailed, err)
		}
	}

	return nil
}
