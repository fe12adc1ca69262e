package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"topspot/internal/server"
	"topspot/internal/services"
	"topspot/internal/shared"
)

// AuthLogin runs the full OAuth2 authorization flow.
//
// Starts a temporary local server hosting both the companion backend and a
// redirect sink, opens the browser at the login endpoint, and waits for the
// post-exchange redirect to land in the sink.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.Credentials.Spotify.Validate(); err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	oauth := r.config.Credentials.Spotify.OAuthConfig()
	frontendURL := r.config.Server.FrontendURL

	handler := server.NewSpotifyAuthHandler(oauth, frontendURL, r.logger)
	sink := server.NewRedirectSink("/spotify")

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(handler)
	router.Handler(sink)

	serverAddr := r.config.Server.Addr()
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	loginURL := fmt.Sprintf("http://%s/spotify/login", serverAddr)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(loginURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", loginURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.RedirectResult

	select {
	case result = <-sink.Result():
		// Got the post-exchange redirect
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return fmt.Errorf("authorization failed: %w", result.Error())
	}

	outcome, _, err := r.session.ConsumeRedirect(result.Query)
	if err != nil {
		return fmt.Errorf("failed to store tokens: %w", err)
	}

	switch outcome {
	case services.RedirectLoggedIn:
		r.writePlainln("✓ Authorization successful")
		r.writePlain("You can now use: topspot top artists\n")
		return nil
	case services.RedirectStateMismatch:
		return fmt.Errorf("%w: state mismatch during authorization", shared.ErrNotAuthenticated)
	case services.RedirectInvalidToken:
		return fmt.Errorf("%w: code exchange failed", shared.ErrNotAuthenticated)
	default:
		return fmt.Errorf("%w: no tokens received", shared.ErrNotAuthenticated)
	}
}

// AuthStatus reports whether a stored token pair exists.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	if r.session.LoggedIn() {
		r.writePlain("✓ Logged in (token pair stored)\n")
	} else {
		r.writePlain("✗ Not logged in\n")
		r.writePlain("Run 'topspot auth login' to authorize.\n")
	}
	return nil
}

// AuthLogout clears both stored tokens.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	if err := r.session.Logout(); err != nil {
		return err
	}

	r.writePlain("✓ Logged out\n")
	return nil
}

// AuthRefresh forces a refresh of the access token via the companion backend.
//
// Requires a running backend ('topspot serve' or the temporary login server).
func (r *Runner) AuthRefresh(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	refresher := services.NewTokenRefresher(r.config.API.BackendBaseURL, r.tokens, r.httpClient)
	if err := refresher.Refresh(ctx); err != nil {
		return err
	}

	r.writePlain("✓ Access token refreshed\n")
	return nil
}
