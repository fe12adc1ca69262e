// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Create config.toml and prompt for Spotify credentials",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "no-input",
						Usage: "Write the template without prompting for credentials",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles the OAuth login flow and session state.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authenticate with Spotify using OAuth2",
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show whether a token pair is stored",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Clear stored tokens",
				Action: r.AuthLogout,
			},
			{
				Name:   "refresh",
				Usage:  "Exchange the stored refresh token for a new access token",
				Action: r.AuthRefresh,
			},
		},
	}
}

// profileCommand fetches the signed-in listener's profile.
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Show the signed-in Spotify profile",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Profile,
	}
}

// topCommand fetches and renders top artists and tracks.
func topCommand(r *Runner) *cli.Command {
	spanFlag := &cli.StringFlag{
		Name:  "span",
		Usage: "Time span to display (4w, 6m, 1y)",
		Value: "4w",
	}
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}
	prettyFlag := &cli.BoolFlag{
		Name:  "pretty",
		Usage: "Pretty-print output",
	}
	saveFlag := &cli.BoolFlag{
		Name:  "save",
		Usage: "Save the fetched spans to the local database",
	}
	csvFlag := &cli.StringFlag{
		Name:  "csv",
		Usage: "Write the displayed span to a CSV file",
	}

	return &cli.Command{
		Name:  "top",
		Usage: "Your top artists and tracks",
		Commands: []*cli.Command{
			{
				Name:  "artists",
				Usage: "Show top artists for a time span",
				Flags: []cli.Flag{
					spanFlag,
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order (my_rank, global_rank)",
						Value: "my_rank",
					},
					jsonFlag, prettyFlag, saveFlag, csvFlag,
				},
				Action: r.TopArtists,
			},
			{
				Name:  "tracks",
				Usage: "Show top tracks for a time span",
				Flags: []cli.Flag{
					spanFlag,
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order (my_rank, followers, duration)",
						Value: "my_rank",
					},
					jsonFlag, prettyFlag, saveFlag, csvFlag,
				},
				Action: r.TopTracks,
			},
		},
	}
}

// cacheCommand inspects and clears locally saved snapshots.
func cacheCommand(r *Runner) *cli.Command {
	kindFlag := &cli.StringFlag{
		Name:     "kind",
		Usage:    "Snapshot kind (artists or tracks)",
		Required: true,
	}

	return &cli.Command{
		Name:  "cache",
		Usage: "Locally saved top-item snapshots",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print a saved snapshot",
				Flags:  []cli.Flag{kindFlag, &cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true}},
				Action: r.CacheShow,
			},
			{
				Name:   "clear",
				Usage:  "Delete a saved snapshot",
				Flags:  []cli.Flag{kindFlag},
				Action: r.CacheClear,
			},
		},
	}
}

// serveCommand runs the companion OAuth backend as a standalone server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the OAuth companion backend",
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for browsing top items.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing top items",
		Action:  r.TUI,
	}
}
