package services

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

const defaultSpotifyBaseURL = "https://api.spotify.com/v1"

// AuthedClient issues authorized GET requests against the Spotify API.
//
// The current access token is read from the [TokenStore] on every call, so a
// request issued after a refresh picks up the new token. The client does not
// interpret status codes and holds no retry logic; both belong to the caller.
type AuthedClient struct {
	baseURL    string
	store      TokenStore
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewAuthedClient creates an authenticated Spotify API client.
//
// rps caps outgoing requests per second; zero or negative disables limiting.
func NewAuthedClient(baseURL string, store TokenStore, client *http.Client, rps float64) *AuthedClient {
	if baseURL == "" {
		baseURL = defaultSpotifyBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	return &AuthedClient{
		baseURL:    baseURL,
		store:      store,
		httpClient: client,
		limiter:    limiter,
	}
}

// Get performs an authorized GET request to the specified API path and
// returns the raw response.
func (c *AuthedClient) Get(ctx context.Context, path string) (*APIResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}
	}

	token, err := c.store.Get(TokenAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to read access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}
