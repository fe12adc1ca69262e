package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"topspot/internal/formatter"
	"topspot/internal/models"
	"topspot/internal/shared"
	"topspot/internal/tasks"
)

// TopArtists fetches top artists for all spans and renders the requested one.
func (r *Runner) TopArtists(ctx context.Context, cmd *cli.Command) error {
	span, key, err := parseTopFlags(cmd, models.KindArtists)
	if err != nil {
		return err
	}

	if err := r.open(); err != nil {
		return err
	}

	if !r.session.LoggedIn() {
		r.writePlain("✗ Not logged in. Run 'topspot auth login' first.\n")
		return nil
	}

	datasets, err := r.spotify.AllTopArtists(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("save") {
		r.saveSnapshot(models.KindArtists, datasets)
	}

	cache := tasks.NewArtistCache()
	if err := cache.Install(datasets); err != nil {
		return err
	}
	cache.SetActive(span)
	cache.SortBy(key)

	dataset, ok := cache.Active()
	if !ok {
		r.writePlain("No data available.\n")
		return nil
	}

	if path := cmd.String("csv"); path != "" {
		data, err := formatter.ArtistsToCSV(dataset)
		if err != nil {
			return err
		}
		return r.writeFile(path, data)
	}

	if cmd.Bool("json") {
		return r.writeJSON(dataset, cmd.Bool("pretty"))
	}

	return r.writePlain("%s", formatter.FormatArtists(dataset, cache.ActiveSort()))
}

// TopTracks fetches top tracks for all spans and renders the requested one.
func (r *Runner) TopTracks(ctx context.Context, cmd *cli.Command) error {
	span, key, err := parseTopFlags(cmd, models.KindTracks)
	if err != nil {
		return err
	}

	if err := r.open(); err != nil {
		return err
	}

	if !r.session.LoggedIn() {
		r.writePlain("✗ Not logged in. Run 'topspot auth login' first.\n")
		return nil
	}

	datasets, err := r.spotify.AllTopTracks(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("save") {
		r.saveSnapshot(models.KindTracks, datasets)
	}

	cache := tasks.NewTrackCache()
	if err := cache.Install(datasets); err != nil {
		return err
	}
	cache.SetActive(span)
	cache.SortBy(key)

	dataset, ok := cache.Active()
	if !ok {
		r.writePlain("No data available.\n")
		return nil
	}

	if path := cmd.String("csv"); path != "" {
		data, err := formatter.TracksToCSV(dataset)
		if err != nil {
			return err
		}
		return r.writeFile(path, data)
	}

	if cmd.Bool("json") {
		return r.writeJSON(dataset, cmd.Bool("pretty"))
	}

	return r.writePlain("%s", formatter.FormatTracks(dataset, cache.ActiveSort()))
}

// parseTopFlags validates the --span and --sort flags for the given item kind.
func parseTopFlags(cmd *cli.Command, kind models.ItemKind) (models.Span, models.SortKey, error) {
	span, err := models.ParseSpan(cmd.String("span"))
	if err != nil {
		return "", "", err
	}

	key, err := models.ParseSortKey(cmd.String("sort"))
	if err != nil {
		return "", "", err
	}
	if !key.ValidFor(kind) {
		return "", "", fmt.Errorf("%w: sort %q does not apply to %s", shared.ErrInvalidArgument, key, kind)
	}

	return span, key, nil
}

// saveSnapshot persists the fetched spans; failure to save never fails the command.
func (r *Runner) saveSnapshot(kind models.ItemKind, datasets any) {
	payload, err := shared.MarshalJSON(datasets, false)
	if err != nil {
		r.logger.Warn("failed to marshal snapshot", "error", err)
		return
	}
	if err := r.snapshots.Save(kind, payload); err != nil {
		r.logger.Warn("failed to save snapshot", "kind", kind, "error", err)
		return
	}
	r.logger.Info("snapshot saved", "kind", kind)
}

func (r *Runner) writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return r.writePlain("✓ Written to %s\n", path)
}
