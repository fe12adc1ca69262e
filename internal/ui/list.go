package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"topspot/internal/models"
	"topspot/internal/shared"
)

var (
	_ list.Item = artistItem{}
	_ list.Item = trackItem{}
)

// artistItem wraps [models.RankedArtist] to implement [list.Item].
type artistItem struct {
	artist models.RankedArtist
}

func (i artistItem) FilterValue() string { return i.artist.Name }
func (i artistItem) Title() string {
	return fmt.Sprintf("%d. %s", i.artist.MyRank, i.artist.Name)
}
func (i artistItem) Description() string {
	desc := fmt.Sprintf("popularity %d • %d followers", i.artist.Popularity, i.artist.Followers.Total)
	if len(i.artist.Genres) > 0 {
		desc = fmt.Sprintf("%s • %s", desc, i.artist.Genres[0])
	}
	return desc
}

// trackItem wraps [models.RankedTrack] to implement [list.Item].
type trackItem struct {
	track models.RankedTrack
}

func (i trackItem) FilterValue() string { return i.track.Name }
func (i trackItem) Title() string {
	return fmt.Sprintf("%d. %s", i.track.MyRank, i.track.Name)
}
func (i trackItem) Description() string {
	desc := i.track.ArtistNames()
	if i.track.DurationMS != nil {
		desc = fmt.Sprintf("%s • %s", desc, shared.FormatDurationMS(*i.track.DurationMS))
	}
	if i.track.Popularity != nil {
		desc = fmt.Sprintf("%s • popularity %d", desc, *i.track.Popularity)
	}
	return desc
}
