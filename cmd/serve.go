package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"topspot/internal/server"
)

// Serve runs the companion OAuth backend as a long-lived server.
//
// Hosts /spotify/login, /spotify/callback, and /spotify/refresh_token for an
// external frontend configured via server.frontend_url.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.Credentials.Spotify.Validate(); err != nil {
		return err
	}

	oauth := r.config.Credentials.Spotify.OAuthConfig()
	handler := server.NewSpotifyAuthHandler(oauth, r.config.Server.FrontendURL, r.logger)

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(handler)

	httpServer := &http.Server{
		Addr:    r.config.Server.Addr(),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("backend listening at %v", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
		r.logger.Info("shutting down")
	case <-ctx.Done():
		r.logger.Info("context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
