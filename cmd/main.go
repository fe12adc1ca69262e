package main

import (
	"context"
	"errors"
	"os"

	"topspot/internal/shared"

	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "topspot",
		Usage:    "Browse your Spotify profile and top artists & tracks",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrAggregateFetch) {
			logger.Errorf("could not load every time span: %v", err)
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
