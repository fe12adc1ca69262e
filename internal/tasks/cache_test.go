package tasks

import (
	"errors"
	"testing"

	"topspot/internal/models"
	"topspot/internal/shared"
)

func artistDatasets() []models.SpanDataset[models.RankedArtist] {
	datasets := make([]models.SpanDataset[models.RankedArtist], 0, 3)
	for _, span := range models.Spans() {
		datasets = append(datasets, models.SpanDataset[models.RankedArtist]{
			Span: span,
			Items: []models.RankedArtist{
				artist("a", 1, 80, 100),
				artist("b", 2, 90, 50),
			},
		})
	}
	return datasets
}

func TestCacheManager(t *testing.T) {
	t.Run("Starts Empty", func(t *testing.T) {
		cache := NewArtistCache()

		if !cache.Empty() {
			t.Error("expected new cache to be empty")
		}
		if _, ok := cache.Active(); ok {
			t.Error("expected no active dataset in empty cache")
		}
		if cache.ActiveSpan() != models.SpanLast4Weeks {
			t.Errorf("expected default span, got %s", cache.ActiveSpan())
		}
		if cache.ActiveSort() != models.SortMyRank {
			t.Errorf("expected default sort, got %s", cache.ActiveSort())
		}
	})

	t.Run("Install", func(t *testing.T) {
		t.Run("Replaces All Datasets", func(t *testing.T) {
			cache := NewArtistCache()
			if err := cache.Install(artistDatasets()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if cache.Empty() {
				t.Error("expected cache to hold datasets")
			}
			dataset, ok := cache.Active()
			if !ok {
				t.Fatal("expected active dataset after install")
			}
			if dataset.Span != models.SpanLast4Weeks {
				t.Errorf("expected default active span, got %s", dataset.Span)
			}
			if len(dataset.Items) != 2 {
				t.Errorf("expected 2 items, got %d", len(dataset.Items))
			}
		})

		t.Run("Rejects Duplicate Spans", func(t *testing.T) {
			cache := NewArtistCache()
			datasets := []models.SpanDataset[models.RankedArtist]{
				{Span: models.SpanLastYear},
				{Span: models.SpanLastYear},
			}

			err := cache.Install(datasets)
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if !cache.Empty() {
				t.Error("failed install must not leave data behind")
			}
		})

		t.Run("Resets Active Span And Sort", func(t *testing.T) {
			cache := NewArtistCache()
			if err := cache.Install(artistDatasets()); err != nil {
				t.Fatal(err)
			}
			cache.SetActive(models.SpanLastYear)
			cache.SortBy(models.SortGlobalRank)

			if err := cache.Install(artistDatasets()); err != nil {
				t.Fatal(err)
			}
			if cache.ActiveSpan() != models.SpanLast4Weeks {
				t.Errorf("expected span reset, got %s", cache.ActiveSpan())
			}
			if cache.ActiveSort() != models.SortMyRank {
				t.Errorf("expected sort reset, got %s", cache.ActiveSort())
			}
		})
	})

	t.Run("SetActive", func(t *testing.T) {
		cache := NewArtistCache()
		if err := cache.Install(artistDatasets()); err != nil {
			t.Fatal(err)
		}

		t.Run("Switches Without Refetch", func(t *testing.T) {
			if !cache.SetActive(models.SpanLast6Months) {
				t.Fatal("expected switch to cached span to succeed")
			}
			dataset, ok := cache.Active()
			if !ok || dataset.Span != models.SpanLast6Months {
				t.Errorf("expected 6 month dataset, got %v", dataset.Span)
			}
		})

		t.Run("Noop For Missing Span", func(t *testing.T) {
			empty := NewArtistCache()
			if empty.SetActive(models.SpanLastYear) {
				t.Error("expected switch on empty cache to be a no-op")
			}
			if empty.ActiveSpan() != models.SpanLast4Weeks {
				t.Errorf("active span must not move, got %s", empty.ActiveSpan())
			}
		})

		t.Run("Idempotent", func(t *testing.T) {
			cache.SetActive(models.SpanLastYear)
			before, _ := cache.Active()
			cache.SetActive(models.SpanLastYear)
			after, _ := cache.Active()

			if before.Span != after.Span || len(before.Items) != len(after.Items) {
				t.Error("repeated switch changed the dataset")
			}
		})
	})

	t.Run("SortBy", func(t *testing.T) {
		t.Run("Reorders Active Dataset", func(t *testing.T) {
			cache := NewArtistCache()
			if err := cache.Install(artistDatasets()); err != nil {
				t.Fatal(err)
			}

			if !cache.SortBy(models.SortGlobalRank) {
				t.Fatal("expected sort to apply")
			}

			dataset, _ := cache.Active()
			if dataset.Items[0].ID != "b" {
				t.Errorf("expected most popular artist first, got %s", dataset.Items[0].ID)
			}
			if dataset.Items[0].MyRank != 2 {
				t.Errorf("expected rank to survive re-sorting, got %d", dataset.Items[0].MyRank)
			}
			if cache.ActiveSort() != models.SortGlobalRank {
				t.Errorf("expected sort indicator update, got %s", cache.ActiveSort())
			}
		})

		t.Run("Sorted Order Persists Across Span Switch", func(t *testing.T) {
			cache := NewArtistCache()
			if err := cache.Install(artistDatasets()); err != nil {
				t.Fatal(err)
			}

			cache.SortBy(models.SortGlobalRank)
			cache.SetActive(models.SpanLastYear)
			cache.SetActive(models.SpanLast4Weeks)

			dataset, _ := cache.Active()
			if dataset.Items[0].ID != "b" {
				t.Error("sorted order must persist in the span slot")
			}
		})

		t.Run("Noop On Empty Cache", func(t *testing.T) {
			cache := NewArtistCache()
			if cache.SortBy(models.SortMyRank) {
				t.Error("expected sort on empty cache to be a no-op")
			}
		})

		t.Run("Noop For Wrong Kind Key", func(t *testing.T) {
			cache := NewArtistCache()
			if err := cache.Install(artistDatasets()); err != nil {
				t.Fatal(err)
			}

			if cache.SortBy(models.SortDuration) {
				t.Error("duration must not apply to artists")
			}
			if cache.ActiveSort() != models.SortMyRank {
				t.Errorf("sort indicator must not move, got %s", cache.ActiveSort())
			}
		})

		t.Run("Idempotent", func(t *testing.T) {
			cache := NewArtistCache()
			if err := cache.Install(artistDatasets()); err != nil {
				t.Fatal(err)
			}

			cache.SortBy(models.SortFollowers)
			first, _ := cache.Active()
			cache.SortBy(models.SortFollowers)
			second, _ := cache.Active()

			for i := range first.Items {
				if first.Items[i].ID != second.Items[i].ID {
					t.Fatal("repeated sort changed the order")
				}
			}
		})
	})

	t.Run("Clear", func(t *testing.T) {
		cache := NewTrackCache()
		datasets := []models.SpanDataset[models.RankedTrack]{
			{Span: models.SpanLast4Weeks, Items: []models.RankedTrack{track("a", 1, nil, nil)}},
		}
		if err := cache.Install(datasets); err != nil {
			t.Fatal(err)
		}

		cache.Clear()
		if !cache.Empty() {
			t.Error("expected cache to be empty after clear")
		}
	})
}
