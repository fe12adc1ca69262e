package services

import (
	"context"
	"fmt"
	"strings"

	"topspot/internal/models"
	"topspot/internal/shared"
)

// AllTopArtists fetches top artists for all three spans.
//
// All three fetches must succeed; otherwise the call fails as a whole with
// [shared.ErrAggregateFetch] naming the failing span(s) and returns no
// partial result, so a caller never installs a mix of fresh and stale spans.
func (s *SpotifyService) AllTopArtists(ctx context.Context) ([]models.SpanDataset[models.RankedArtist], error) {
	return allSpans[models.RankedArtist](s, ctx, models.KindArtists)
}

// AllTopTracks fetches top tracks for all three spans with the same
// all-or-nothing policy as [SpotifyService.AllTopArtists].
func (s *SpotifyService) AllTopTracks(ctx context.Context) ([]models.SpanDataset[models.RankedTrack], error) {
	return allSpans[models.RankedTrack](s, ctx, models.KindTracks)
}

// allSpans issues one independent fetch per span, each with its own
// refresh-once retry policy, and merges nothing on failure.
func allSpans[T models.RankedItem[T]](s *SpotifyService, ctx context.Context, kind models.ItemKind) ([]models.SpanDataset[T], error) {
	spans := models.Spans()
	datasets := make([]models.SpanDataset[T], 0, len(spans))

	var failed []string
	for _, span := range spans {
		dataset, err := topItems[T](s, ctx, kind, span)
		if err != nil {
			s.logger.Warn("span fetch failed", "kind", kind, "span", span, "error", err)
			failed = append(failed, span.Label())
			continue
		}
		datasets = append(datasets, *dataset)
	}

	if len(failed) > 0 {
		return nil, fmt.Errorf("%w: top %s for %s", shared.ErrAggregateFetch, kind, strings.Join(failed, ", "))
	}

	return datasets, nil
}
