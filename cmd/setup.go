package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"topspot/internal/shared"
)

// SetupConfig creates config.toml from the embedded template and prompts for
// Spotify application credentials.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	noInput := cmd.Bool("no-input")

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		r.logger.Info("existing config found", "path", configPath)
	}

	if noInput {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			if err := shared.CreateConfigFile(configPath); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
			r.writePlain("✓ Config template written to %s\n", configPath)
		}
		r.writePlain("Edit [credentials.spotify] before running 'topspot auth login'\n")
		return nil
	}

	clientID := config.Credentials.Spotify.ClientID
	clientSecret := config.Credentials.Spotify.ClientSecret

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Spotify client ID").
				Description("From your app at developer.spotify.com/dashboard").
				Value(&clientID),
			huh.NewInput().
				Title("Spotify client secret").
				EchoMode(huh.EchoModePassword).
				Value(&clientSecret),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("credential prompt failed: %w", err)
	}

	config.Credentials.Spotify.ClientID = clientID
	config.Credentials.Spotify.ClientSecret = clientSecret

	if err := config.Credentials.Spotify.Validate(); err != nil {
		return err
	}

	if err := shared.SaveConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.config = config
	r.writePlain("✓ Credentials saved to %s\n", configPath)
	r.writePlain("Run 'topspot auth login' to authorize.\n")

	return nil
}

// SetupDatabase initializes the database and runs migrations. With --rollback
// it reverts the most recent migration instead.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if cmd.Bool("rollback") {
		r.logger.Info("rolling back most recent migration")
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		r.writePlain("✓ Rolled back most recent migration\n")
		return nil
	}

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}
