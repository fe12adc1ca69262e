// Spotify API resource fetchers with refresh-once retry semantics
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"topspot/internal/models"
	"topspot/internal/shared"
)

// SpotifyService fetches the user's profile and top items.
//
// Every fetch runs the same two-attempt state machine: issue the request; on
// a 401 error envelope, refresh the tokens once and re-issue the request once
// more; any other failure, or any failure on the retried attempt, is terminal
// for that call. The retried request strictly follows completion of the
// refresh, and a second refresh is never attempted within one call.
type SpotifyService struct {
	client    *AuthedClient
	refresher *TokenRefresher
	logger    *log.Logger
}

// NewSpotifyService wires a service from the authed client and refresher.
func NewSpotifyService(client *AuthedClient, refresher *TokenRefresher, logger *log.Logger) *SpotifyService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &SpotifyService{
		client:    client,
		refresher: refresher,
		logger:    logger,
	}
}

// Profile retrieves the current authenticated user's profile.
func (s *SpotifyService) Profile(ctx context.Context) (*models.Profile, error) {
	body, err := s.getJSON(ctx, "/me")
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := unmarshalStrict(body, &profile); err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return &profile, nil
}

// TopArtists retrieves the user's top artists for one span, assigning MyRank
// by 1-based response position.
func (s *SpotifyService) TopArtists(ctx context.Context, span models.Span) (*models.SpanDataset[models.RankedArtist], error) {
	return topItems[models.RankedArtist](s, ctx, models.KindArtists, span)
}

// TopTracks retrieves the user's top tracks for one span, assigning MyRank
// by 1-based response position.
func (s *SpotifyService) TopTracks(ctx context.Context, span models.Span) (*models.SpanDataset[models.RankedTrack], error) {
	return topItems[models.RankedTrack](s, ctx, models.KindTracks, span)
}

// topPage is the upstream top-items page shape.
type topPage[T any] struct {
	models.Paging
	Items []T `json:"items"`
}

// topItems fetches and parses one span's top-items page for either item kind.
func topItems[T models.RankedItem[T]](s *SpotifyService, ctx context.Context, kind models.ItemKind, span models.Span) (*models.SpanDataset[T], error) {
	path := fmt.Sprintf("/me/top/%s?time_range=%s", kind, span)

	body, err := s.getJSON(ctx, path)
	if err != nil {
		return nil, err
	}

	var page topPage[T]
	if err := unmarshalStrict(body, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		return nil, fmt.Errorf("%w: top %s page missing items", shared.ErrSchema, kind)
	}

	dataset := &models.SpanDataset[T]{
		Span:   span,
		Paging: page.Paging,
		Items:  make([]T, len(page.Items)),
	}

	for i, item := range page.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		dataset.Items[i] = item.WithRank(i + 1)
	}

	return dataset, nil
}

// getJSON runs the two-attempt fetch state machine and returns the body of a
// successful response.
func (s *SpotifyService) getJSON(ctx context.Context, path string) ([]byte, error) {
	retried := false

	for {
		resp, err := s.client.Get(ctx, path)
		if err != nil {
			// Network-level failure, same terminal treatment as an HTTP error.
			return nil, fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
		}

		if resp.OK() {
			return resp.Body, nil
		}

		status, message, err := parseErrorEnvelope(resp.Body)
		if err != nil {
			return nil, err
		}

		if status == http.StatusUnauthorized && !retried {
			s.logger.Debug("access token rejected, refreshing", "path", path)
			if err := s.refresher.Refresh(ctx); err != nil {
				return nil, err
			}
			retried = true
			continue
		}

		return nil, fmt.Errorf("%w: %s (status %d)", shared.ErrFetchFailed, message, status)
	}
}

// parseErrorEnvelope extracts the upstream error envelope
// {"error": {"status": n, "message": s}}.
func parseErrorEnvelope(body []byte) (int, string, error) {
	if !gjson.ValidBytes(body) {
		return 0, "", fmt.Errorf("%w: error response is not valid JSON", shared.ErrSchema)
	}

	status := gjson.GetBytes(body, "error.status")
	message := gjson.GetBytes(body, "error.message")
	if status.Type != gjson.Number || message.Type != gjson.String {
		return 0, "", fmt.Errorf("%w: malformed error envelope", shared.ErrSchema)
	}

	return int(status.Int()), message.Str, nil
}

// unmarshalStrict decodes JSON, converting decode failures (wrong types,
// invalid JSON) into schema errors.
func unmarshalStrict(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSchema, err)
	}
	return nil
}
