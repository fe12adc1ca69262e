package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"topspot/internal/models"
	"topspot/internal/shared"
)

// CacheShow prints a saved top-items snapshot.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	kind, err := parseKindFlag(cmd)
	if err != nil {
		return err
	}

	if err := r.open(); err != nil {
		return err
	}

	payload, fetchedAt, err := r.snapshots.Load(kind)
	if errors.Is(err, sql.ErrNoRows) {
		r.writePlain("No saved snapshot for %s.\n", kind)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	r.writePlain("Snapshot of %s saved at %s:\n\n", kind, fetchedAt.Format("2006-01-02 15:04:05"))

	if cmd.Bool("pretty") {
		var data any
		if err := json.Unmarshal(payload, &data); err != nil {
			return fmt.Errorf("stored snapshot is not valid JSON: %w", err)
		}
		return r.writeJSON(data, true)
	}

	return r.writePlain("%s\n", payload)
}

// CacheClear deletes a saved snapshot.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	kind, err := parseKindFlag(cmd)
	if err != nil {
		return err
	}

	if err := r.open(); err != nil {
		return err
	}

	if err := r.snapshots.Delete(kind); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	r.writePlain("✓ Snapshot cleared for %s\n", kind)
	return nil
}

func parseKindFlag(cmd *cli.Command) (models.ItemKind, error) {
	switch cmd.String("kind") {
	case string(models.KindArtists):
		return models.KindArtists, nil
	case string(models.KindTracks):
		return models.KindTracks, nil
	default:
		return "", fmt.Errorf("%w: kind must be artists or tracks", shared.ErrInvalidArgument)
	}
}
