package tasks

import (
	"sort"

	"topspot/internal/models"
)

// SortArtists reorders items in place by the given key.
//
// MY_RANK sorts ascending; GLOBAL_RANK by popularity and FOLLOWERS by
// follower count, both descending. Unsupported keys leave the order
// untouched.
func SortArtists(items []models.RankedArtist, key models.SortKey) {
	switch key {
	case models.SortMyRank:
		sortAscending(items, func(a models.RankedArtist) int { return a.MyRank })
	case models.SortGlobalRank:
		sortDescending(items, func(a models.RankedArtist) (int, bool) { return a.Popularity, true })
	case models.SortFollowers:
		sortDescending(items, func(a models.RankedArtist) (int, bool) { return a.Followers.Total, true })
	}
}

// SortTracks reorders items in place by the given key.
//
// MY_RANK sorts ascending; GLOBAL_RANK by popularity and DURATION by track
// length, both descending with absent values last. There is no secondary
// tie-break; ties keep their current relative order.
func SortTracks(items []models.RankedTrack, key models.SortKey) {
	switch key {
	case models.SortMyRank:
		sortAscending(items, func(t models.RankedTrack) int { return t.MyRank })
	case models.SortGlobalRank:
		sortDescending(items, func(t models.RankedTrack) (int, bool) {
			if t.Popularity == nil {
				return 0, false
			}
			return *t.Popularity, true
		})
	case models.SortDuration:
		sortDescending(items, func(t models.RankedTrack) (int, bool) {
			if t.DurationMS == nil {
				return 0, false
			}
			return *t.DurationMS, true
		})
	}
}

func sortAscending[T any](items []T, value func(T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		return value(items[i]) < value(items[j])
	})
}

// sortDescending orders by value descending; items whose value is absent sort
// after all items with a value, keeping their relative order.
func sortDescending[T any](items []T, value func(T) (int, bool)) {
	sort.SliceStable(items, func(i, j int) bool {
		vi, oki := value(items[i])
		vj, okj := value(items[j])

		if oki && !okj {
			return true
		}
		if !oki {
			return false
		}
		return vi > vj
	})
}
