package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"topspot/internal/models"
	"topspot/internal/services"
	"topspot/internal/shared"
	tu "topspot/internal/testing"
)

// testRunner builds a runner against a temp database and captured output.
func testRunner(t *testing.T, apiURL, backendURL string) (*Runner, *bytes.Buffer) {
	t.Helper()

	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "test.db")
	config.API.RateLimit = 0
	if apiURL != "" {
		config.API.SpotifyBaseURL = apiURL
	}
	if backendURL != "" {
		config.API.BackendBaseURL = backendURL
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(&tu.FWriter{}),
		Output: output,
	})
	t.Cleanup(func() { runner.Close() })

	return runner, output
}

// storeRunner builds a runner backed by an in-memory token store and the
// provided HTTP transport instead of live servers.
func storeRunner(t *testing.T, store *tu.MemoryTokenStore, transport http.RoundTripper) (*Runner, *bytes.Buffer) {
	t.Helper()

	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "test.db")
	config.API.RateLimit = 0

	httpClient := http.DefaultClient
	if transport != nil {
		httpClient = &http.Client{Transport: transport}
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:     config,
		Logger:     shared.NewLogger(&tu.FWriter{}),
		Output:     output,
		HTTPClient: httpClient,
		Tokens:     store,
	})
	t.Cleanup(func() { runner.Close() })

	return runner, output
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("Open", func(t *testing.T) {
		runner, _ := testRunner(t, "", "")

		if err := runner.open(); err != nil {
			t.Fatalf("expected open to succeed, got %v", err)
		}
		if runner.session == nil || runner.spotify == nil || runner.tokens == nil {
			t.Error("expected open to wire all services")
		}

		t.Run("Idempotent", func(t *testing.T) {
			db := runner.db
			if err := runner.open(); err != nil {
				t.Fatalf("second open must succeed: %v", err)
			}
			if runner.db != db {
				t.Error("second open must reuse the database handle")
			}
		})
	})

	t.Run("WriteJSON", func(t *testing.T) {
		runner, output := testRunner(t, "", "")

		if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"key":"value"`) {
			t.Errorf("unexpected output %q", output.String())
		}

		t.Run("Pretty", func(t *testing.T) {
			output.Reset()
			runner.writeJSON(map[string]string{"key": "value"}, true)
			if !strings.Contains(output.String(), "\n  ") {
				t.Error("expected indented output")
			}
		})
	})
}

func TestRunnerActions(t *testing.T) {
	ctx := context.Background()

	t.Run("Profile", func(t *testing.T) {
		t.Run("Requires Login", func(t *testing.T) {
			runner, output := testRunner(t, "", "")

			err := runner.Profile(ctx, profileCommand(runner))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Not logged in") {
				t.Errorf("expected login hint, got %q", output.String())
			}
		})

		t.Run("Fetch Failure Renders Empty State", func(t *testing.T) {
			api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error": {"status": 500, "message": "boom"}}`))
			}))
			defer api.Close()

			runner, output := testRunner(t, api.URL, "")
			if err := runner.open(); err != nil {
				t.Fatal(err)
			}
			runner.session.Login(models.TokenPair{AccessToken: "a", RefreshToken: "r"})

			err := runner.Profile(ctx, profileCommand(runner))
			if err != nil {
				t.Fatalf("fetch failures must be recovered, got %v", err)
			}
			if !strings.Contains(output.String(), "No profile data available.") {
				t.Errorf("expected empty state, got %q", output.String())
			}
		})

		t.Run("Network Failure Renders Empty State", func(t *testing.T) {
			store := tu.NewMemoryTokenStore()
			store.Set(services.TokenAccess, "a")
			store.Set(services.TokenRefresh, "r")

			transport := tu.NewMockRoundTripper(nil, errors.New("connection refused"))
			runner, output := storeRunner(t, store, transport)

			err := runner.Profile(ctx, profileCommand(runner))
			if err != nil {
				t.Fatalf("network failures must be recovered, got %v", err)
			}
			if !strings.Contains(output.String(), "No profile data available.") {
				t.Errorf("expected empty state, got %q", output.String())
			}
		})
	})

	t.Run("Auth Status", func(t *testing.T) {
		runner, output := testRunner(t, "", "")

		if err := runner.AuthStatus(ctx, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Not logged in") {
			t.Errorf("expected logged-out status, got %q", output.String())
		}

		t.Run("After Login", func(t *testing.T) {
			output.Reset()
			runner.session.Login(models.TokenPair{AccessToken: "a", RefreshToken: "r"})

			runner.AuthStatus(ctx, nil)
			if !strings.Contains(output.String(), "Logged in") {
				t.Errorf("expected logged-in status, got %q", output.String())
			}
		})

		t.Run("After Logout", func(t *testing.T) {
			output.Reset()
			if err := runner.AuthLogout(ctx, nil); err != nil {
				t.Fatalf("logout failed: %v", err)
			}

			output.Reset()
			runner.AuthStatus(ctx, nil)
			if !strings.Contains(output.String(), "Not logged in") {
				t.Errorf("expected logged-out status, got %q", output.String())
			}
		})
	})

	t.Run("Auth Refresh", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"access_token": "fresh"}`))
		}))
		defer backend.Close()

		runner, output := testRunner(t, "", backend.URL)
		if err := runner.open(); err != nil {
			t.Fatal(err)
		}
		runner.session.Login(models.TokenPair{AccessToken: "a", RefreshToken: "r"})

		if err := runner.AuthRefresh(ctx, nil); err != nil {
			t.Fatalf("expected refresh to succeed, got %v", err)
		}
		if !strings.Contains(output.String(), "refreshed") {
			t.Errorf("expected confirmation, got %q", output.String())
		}

		t.Run("Without Refresh Token", func(t *testing.T) {
			runner.session.Logout()
			err := runner.AuthRefresh(ctx, nil)
			if !errors.Is(err, shared.ErrRefreshFailed) {
				t.Errorf("expected ErrRefreshFailed, got %v", err)
			}
		})
	})

	t.Run("Token Store Failures", func(t *testing.T) {
		t.Run("Unreadable Store Fails Open", func(t *testing.T) {
			store := tu.NewMemoryTokenStore()
			store.GetErr = errors.New("store offline")
			runner, _ := storeRunner(t, store, nil)

			err := runner.AuthStatus(ctx, nil)
			if err == nil || !strings.Contains(err.Error(), "failed to restore session") {
				t.Errorf("expected a session restore error, got %v", err)
			}
		})

		t.Run("Failing Clear Surfaces From Logout", func(t *testing.T) {
			store := tu.NewMemoryTokenStore()
			store.Set(services.TokenAccess, "a")
			store.Set(services.TokenRefresh, "r")
			store.ClearErr = errors.New("store offline")
			runner, _ := storeRunner(t, store, nil)

			err := runner.AuthLogout(ctx, nil)
			if err == nil || !strings.Contains(err.Error(), "failed to clear tokens") {
				t.Errorf("expected a clear error, got %v", err)
			}
		})
	})
}
