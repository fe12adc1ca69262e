package models

import (
	"fmt"

	"topspot/internal/shared"
)

// Span represents a lookback window for top-items queries.
//
// Values are the upstream API time_range tokens.
type Span string

const (
	SpanLast4Weeks  Span = "short_term"
	SpanLast6Months Span = "medium_term"
	SpanLastYear    Span = "long_term"
)

// Spans returns all supported spans in fixed display order.
func Spans() []Span {
	return []Span{SpanLast4Weeks, SpanLast6Months, SpanLastYear}
}

// Label returns a human-readable name for the span.
func (s Span) Label() string {
	switch s {
	case SpanLast4Weeks:
		return "Last 4 weeks"
	case SpanLast6Months:
		return "Last 6 months"
	case SpanLastYear:
		return "Last year"
	default:
		return string(s)
	}
}

// ParseSpan converts a CLI flag value to a Span. Accepts the API tokens and
// the shorthand forms 4w, 6m, and 1y.
func ParseSpan(value string) (Span, error) {
	switch value {
	case "short_term", "4w", "last_4_weeks":
		return SpanLast4Weeks, nil
	case "medium_term", "6m", "last_6_months":
		return SpanLast6Months, nil
	case "long_term", "1y", "last_year":
		return SpanLastYear, nil
	default:
		return "", fmt.Errorf("%w: unknown span %q", shared.ErrInvalidArgument, value)
	}
}

// ItemKind selects which top-items resource to query.
type ItemKind string

const (
	KindArtists ItemKind = "artists"
	KindTracks  ItemKind = "tracks"
)

// SortKey selects the ordering applied by the sort engine.
type SortKey string

const (
	SortMyRank     SortKey = "my_rank"
	SortGlobalRank SortKey = "global_rank"
	SortFollowers  SortKey = "followers"
	SortDuration   SortKey = "duration"
)

// ParseSortKey converts a CLI flag value to a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	switch value {
	case "my_rank", "rank", "mine":
		return SortMyRank, nil
	case "global_rank", "popularity", "global":
		return SortGlobalRank, nil
	case "followers":
		return SortFollowers, nil
	case "duration":
		return SortDuration, nil
	default:
		return "", fmt.Errorf("%w: unknown sort key %q", shared.ErrInvalidArgument, value)
	}
}

// ValidFor reports whether the key applies to the given item kind.
func (k SortKey) ValidFor(kind ItemKind) bool {
	switch k {
	case SortMyRank, SortGlobalRank:
		return true
	case SortFollowers:
		return kind == KindArtists
	case SortDuration:
		return kind == KindTracks
	default:
		return false
	}
}

// SortKeysFor returns the sort keys valid for the given item kind, in cycle order.
func SortKeysFor(kind ItemKind) []SortKey {
	if kind == KindArtists {
		return []SortKey{SortMyRank, SortGlobalRank, SortFollowers}
	}
	return []SortKey{SortMyRank, SortGlobalRank, SortDuration}
}

// TokenPair holds the persisted OAuth tokens. Logged-in is defined as both
// tokens present; the pair is stored on login, rewritten on refresh, and
// cleared on logout.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Complete reports whether both tokens are present.
func (p TokenPair) Complete() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

// ExternalURLs holds upstream link targets for a resource.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Followers holds a follower count; Href is always null for Spotify today.
type Followers struct {
	Href  *string `json:"href"`
	Total int     `json:"total"`
}

// Image represents an image resource. Dimensions may be null upstream.
type Image struct {
	URL    string `json:"url"`
	Height *int   `json:"height"`
	Width  *int   `json:"width"`
}

// ExplicitContent holds the profile's explicit-content filter settings.
type ExplicitContent struct {
	FilterEnabled bool `json:"filter_enabled"`
	FilterLocked  bool `json:"filter_locked"`
}

// Profile is an immutable snapshot of the authenticated user's profile,
// replaced wholesale on each successful fetch.
type Profile struct {
	ID              string          `json:"id"`
	DisplayName     string          `json:"display_name"`
	Email           string          `json:"email"`
	Country         string          `json:"country"`
	Product         string          `json:"product"`
	Type            string          `json:"type"`
	URI             string          `json:"uri"`
	Href            string          `json:"href"`
	ExternalURLs    ExternalURLs    `json:"external_urls"`
	Followers       Followers       `json:"followers"`
	Images          []Image         `json:"images"`
	ExplicitContent ExplicitContent `json:"explicit_content"`
}

// Validate checks the fields the upstream contract guarantees.
func (p *Profile) Validate() error {
	if p.ID == "" || p.DisplayName == "" || p.URI == "" {
		return fmt.Errorf("%w: profile missing id, display_name, or uri", shared.ErrSchema)
	}
	return nil
}

// RankedItem constrains the top-items variants: each carries an ingestion
// rank and validates its own required fields.
type RankedItem[T any] interface {
	WithRank(int) T
	Validate() error
}

// RankedArtist is an upstream artist plus its ingestion rank.
type RankedArtist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Genres       []string     `json:"genres"`
	Href         string       `json:"href"`
	URI          string       `json:"uri"`
	Type         string       `json:"type"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Followers    Followers    `json:"followers"`
	Images       []Image      `json:"images"`
	Popularity   int          `json:"popularity"`
	MyRank       int          `json:"my_rank"`
}

// WithRank returns a copy of the artist with the ingestion rank set.
func (a RankedArtist) WithRank(n int) RankedArtist {
	a.MyRank = n
	return a
}

// Validate checks the fields the upstream contract guarantees.
func (a RankedArtist) Validate() error {
	if a.ID == "" || a.Name == "" {
		return fmt.Errorf("%w: artist missing id or name", shared.ErrSchema)
	}
	return nil
}

// TrackArtist is the slim artist object embedded in a track.
type TrackArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Album is the album object embedded in a track.
type Album struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ReleaseDate string  `json:"release_date"`
	Images      []Image `json:"images"`
	URI         string  `json:"uri"`
}

// RankedTrack is an upstream track plus its ingestion rank.
//
// Popularity and DurationMS are optional upstream; nil means absent, and the
// sort engine orders absent values last.
type RankedTrack struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Artists      []TrackArtist `json:"artists"`
	Album        Album         `json:"album"`
	DurationMS   *int          `json:"duration_ms"`
	Explicit     bool          `json:"explicit"`
	Popularity   *int          `json:"popularity"`
	URI          string        `json:"uri"`
	ExternalURLs ExternalURLs  `json:"external_urls"`
	MyRank       int           `json:"my_rank"`
}

// WithRank returns a copy of the track with the ingestion rank set.
func (t RankedTrack) WithRank(n int) RankedTrack {
	t.MyRank = n
	return t
}

// Validate checks the fields the upstream contract guarantees.
func (t RankedTrack) Validate() error {
	if t.ID == "" || t.Name == "" {
		return fmt.Errorf("%w: track missing id or name", shared.ErrSchema)
	}
	return nil
}

// ArtistNames joins the track's artist names for display.
func (t RankedTrack) ArtistNames() string {
	names := ""
	for i, a := range t.Artists {
		if i > 0 {
			names += ", "
		}
		names += a.Name
	}
	return names
}

// Paging is the upstream pagination envelope around a top-items page.
type Paging struct {
	Href     string  `json:"href"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Total    int     `json:"total"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// SpanDataset is one span's ranked items plus paging metadata. Items order
// reflects the currently active sort.
type SpanDataset[T any] struct {
	Span   Span   `json:"span"`
	Paging Paging `json:"paging"`
	Items  []T    `json:"items"`
}
