// Package models defines the domain types for the top-items client.
//
// # Spans and sort keys
//
// [Span] enumerates the three lookback windows Spotify supports for top-items
// queries, mapped 1:1 to the upstream time_range tokens. [SortKey] enumerates
// the orderings the sort engine applies over a cached dataset; MyRank and
// GlobalRank apply to both item kinds, Followers only to artists and Duration
// only to tracks.
//
// # Ranked items
//
// [RankedArtist] and [RankedTrack] are upstream API items extended with
// MyRank, the 1-based position the item held in the API's own ranking order
// when its span dataset was fetched. MyRank is assigned once at ingestion via
// WithRank and is never recomputed; re-sorting reorders the containing slice
// only.
//
// # Datasets
//
// [SpanDataset] pairs one span with its ranked items and paging metadata.
// The cache layer in internal/tasks holds exactly one dataset per span.
package models
