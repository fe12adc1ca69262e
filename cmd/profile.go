package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"topspot/internal/formatter"
)

// Profile fetches and prints the signed-in listener's profile.
//
// A failed fetch is recoverable here: it is logged and rendered as an empty
// state rather than returned, matching how every other read surface treats
// missing data.
func (r *Runner) Profile(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if err := r.open(); err != nil {
		return err
	}

	if !r.session.LoggedIn() {
		r.writePlain("✗ Not logged in. Run 'topspot auth login' first.\n")
		return nil
	}

	profile, err := r.spotify.Profile(ctx)
	if err != nil {
		r.logger.Warn("profile fetch failed", "error", err)
		r.writePlain("No profile data available.\n")
		return nil
	}

	if useJSON {
		return r.writeJSON(profile, pretty)
	}

	r.writePlainHeader("Spotify Profile")
	return r.writePlain("%s", formatter.FormatProfile(profile))
}
