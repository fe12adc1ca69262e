// package formatter renders profile and top-items data as plain text and CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"topspot/internal/models"
	"topspot/internal/shared"
)

// FormatProfile renders a profile snapshot as plain text.
func FormatProfile(profile *models.Profile) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Name: %s\n", profile.DisplayName))
	if profile.Email != "" {
		buf.WriteString(fmt.Sprintf("Email: %s\n", profile.Email))
	}
	if profile.Country != "" {
		buf.WriteString(fmt.Sprintf("Country: %s\n", profile.Country))
	}
	if profile.Product != "" {
		buf.WriteString(fmt.Sprintf("Plan: %s\n", profile.Product))
	}
	buf.WriteString(fmt.Sprintf("Followers: %d\n", profile.Followers.Total))
	if profile.ExternalURLs.Spotify != "" {
		buf.WriteString(fmt.Sprintf("Profile: %s\n", profile.ExternalURLs.Spotify))
	}

	return buf.Bytes()
}

// FormatArtists renders one span's artists in their current order.
func FormatArtists(dataset models.SpanDataset[models.RankedArtist], sortedBy models.SortKey) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Top artists, %s (sorted by %s)\n\n", dataset.Span.Label(), sortedBy))

	for _, artist := range dataset.Items {
		buf.WriteString(fmt.Sprintf("%d. %s\n", artist.MyRank, artist.Name))
		buf.WriteString(fmt.Sprintf("   Popularity: %d  Followers: %d\n", artist.Popularity, artist.Followers.Total))
		if len(artist.Genres) > 0 {
			buf.WriteString(fmt.Sprintf("   Genres: %s\n", joinStrings(artist.Genres)))
		}
	}

	return buf.Bytes()
}

// FormatTracks renders one span's tracks in their current order.
func FormatTracks(dataset models.SpanDataset[models.RankedTrack], sortedBy models.SortKey) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Top tracks, %s (sorted by %s)\n\n", dataset.Span.Label(), sortedBy))

	for _, track := range dataset.Items {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", track.MyRank, track.ArtistNames(), track.Name))
		detail := ""
		if track.Popularity != nil {
			detail = fmt.Sprintf("   Popularity: %d", *track.Popularity)
		}
		if track.DurationMS != nil {
			detail += fmt.Sprintf("  Duration: %s", shared.FormatDurationMS(*track.DurationMS))
		}
		if detail != "" {
			buf.WriteString(detail + "\n")
		}
	}

	return buf.Bytes()
}

// ArtistsToCSV converts one span's artists to CSV with columns: MyRank, ID, Name, Popularity, Followers
func ArtistsToCSV(dataset models.SpanDataset[models.RankedArtist]) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"MyRank", "ID", "Name", "Popularity", "Followers"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, artist := range dataset.Items {
		record := []string{
			strconv.Itoa(artist.MyRank),
			artist.ID,
			artist.Name,
			strconv.Itoa(artist.Popularity),
			strconv.Itoa(artist.Followers.Total),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// TracksToCSV converts one span's tracks to CSV with columns: MyRank, ID, Name, Artists, Popularity, DurationMS
func TracksToCSV(dataset models.SpanDataset[models.RankedTrack]) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"MyRank", "ID", "Name", "Artists", "Popularity", "DurationMS"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range dataset.Items {
		popularity := ""
		if track.Popularity != nil {
			popularity = strconv.Itoa(*track.Popularity)
		}
		duration := ""
		if track.DurationMS != nil {
			duration = strconv.Itoa(*track.DurationMS)
		}

		record := []string{
			strconv.Itoa(track.MyRank),
			track.ID,
			track.Name,
			track.ArtistNames(),
			popularity,
			duration,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

func joinStrings(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}
