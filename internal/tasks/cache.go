package tasks

import (
	"fmt"
	"sync"

	"topspot/internal/models"
	"topspot/internal/shared"
)

// CacheManager owns the per-span cache for one item kind.
//
// Datasets are held in fixed span order (one slot per span). Install replaces
// the whole cache; SortBy and SetActive mutate it in place. The zero active
// span is [models.SpanLast4Weeks] and the zero active sort is
// [models.SortMyRank], matching ingestion order.
type CacheManager[T any] struct {
	mu         sync.Mutex
	kind       models.ItemKind
	sorter     func([]T, models.SortKey)
	datasets   map[models.Span]*models.SpanDataset[T]
	activeSpan models.Span
	activeSort models.SortKey
}

// NewArtistCache creates an empty cache manager for top artists.
func NewArtistCache() *CacheManager[models.RankedArtist] {
	return newCacheManager(models.KindArtists, SortArtists)
}

// NewTrackCache creates an empty cache manager for top tracks.
func NewTrackCache() *CacheManager[models.RankedTrack] {
	return newCacheManager(models.KindTracks, SortTracks)
}

func newCacheManager[T any](kind models.ItemKind, sorter func([]T, models.SortKey)) *CacheManager[T] {
	return &CacheManager[T]{
		kind:       kind,
		sorter:     sorter,
		datasets:   map[models.Span]*models.SpanDataset[T]{},
		activeSpan: models.SpanLast4Weeks,
		activeSort: models.SortMyRank,
	}
}

// Kind returns the item kind this cache holds.
func (c *CacheManager[T]) Kind() models.ItemKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

// Install replaces the whole cache with the given datasets.
//
// Duplicate spans are rejected so the one-dataset-per-span invariant holds.
// The active span and sort reset to their defaults.
func (c *CacheManager[T]) Install(datasets []models.SpanDataset[T]) error {
	fresh := map[models.Span]*models.SpanDataset[T]{}
	for _, dataset := range datasets {
		if _, exists := fresh[dataset.Span]; exists {
			return fmt.Errorf("%w: duplicate dataset for span %s", shared.ErrInvalidInput, dataset.Span)
		}
		ds := dataset
		fresh[dataset.Span] = &ds
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.datasets = fresh
	c.activeSpan = models.SpanLast4Weeks
	c.activeSort = models.SortMyRank

	return nil
}

// Empty reports whether the cache holds no datasets.
func (c *CacheManager[T]) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.datasets) == 0
}

// Active returns the active span's dataset, when present.
func (c *CacheManager[T]) Active() (models.SpanDataset[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dataset, ok := c.datasets[c.activeSpan]
	if !ok {
		return models.SpanDataset[T]{}, false
	}
	return *dataset, true
}

// ActiveSpan returns the current active span.
func (c *CacheManager[T]) ActiveSpan() models.Span {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeSpan
}

// ActiveSort returns the current active sort indicator.
func (c *CacheManager[T]) ActiveSort() models.SortKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeSort
}

// SetActive switches the active dataset pointer to the requested span
// without refetching or re-sorting; the newly active dataset keeps whatever
// order it last had. No-op returning false when the span is not cached.
func (c *CacheManager[T]) SetActive(span models.Span) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.datasets[span]; !ok {
		return false
	}

	c.activeSpan = span
	return true
}

// SortBy reorders the active dataset's items in place by the key, writes the
// dataset back to its span slot, and updates the active sort indicator.
// No-op returning false when the cache is empty, the active span is absent,
// or the key does not apply to this item kind.
func (c *CacheManager[T]) SortBy(key models.SortKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	dataset, ok := c.datasets[c.activeSpan]
	if !ok {
		return false
	}
	if !key.ValidFor(c.kind) {
		return false
	}

	c.sorter(dataset.Items, key)
	c.datasets[c.activeSpan] = dataset
	c.activeSort = key

	return true
}

// Clear discards all datasets, as on logout.
func (c *CacheManager[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.datasets = map[models.Span]*models.SpanDataset[T]{}
	c.activeSpan = models.SpanLast4Weeks
	c.activeSort = models.SortMyRank
}
