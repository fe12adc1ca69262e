package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"topspot/internal/models"
	"topspot/internal/services"
	"topspot/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestTokenRepository(t *testing.T) {
	t.Run("Get Absent Kind Returns Empty", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTokenRepository(db)

		value, err := repo.Get(services.TokenAccess)
		if err != nil {
			t.Fatalf("absent token must not error, got %v", err)
		}
		if value != "" {
			t.Errorf("expected empty string, got %q", value)
		}
	})

	t.Run("Set And Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTokenRepository(db)

		if err := repo.Set(services.TokenAccess, "access_value"); err != nil {
			t.Fatalf("failed to set token: %v", err)
		}

		value, err := repo.Get(services.TokenAccess)
		if err != nil {
			t.Fatalf("failed to get token: %v", err)
		}
		if value != "access_value" {
			t.Errorf("expected access_value, got %q", value)
		}
	})

	t.Run("Set Overwrites", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTokenRepository(db)
		repo.Set(services.TokenRefresh, "first")
		repo.Set(services.TokenRefresh, "second")

		value, _ := repo.Get(services.TokenRefresh)
		if value != "second" {
			t.Errorf("expected overwrite, got %q", value)
		}
	})

	t.Run("Kinds Are Independent", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTokenRepository(db)
		repo.Set(services.TokenAccess, "a")
		repo.Set(services.TokenRefresh, "r")

		access, _ := repo.Get(services.TokenAccess)
		refresh, _ := repo.Get(services.TokenRefresh)
		if access != "a" || refresh != "r" {
			t.Errorf("expected independent slots, got %q and %q", access, refresh)
		}
	})

	t.Run("Clear Removes Both", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTokenRepository(db)
		repo.Set(services.TokenAccess, "a")
		repo.Set(services.TokenRefresh, "r")

		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear tokens: %v", err)
		}

		access, _ := repo.Get(services.TokenAccess)
		refresh, _ := repo.Get(services.TokenRefresh)
		if access != "" || refresh != "" {
			t.Error("expected both slots empty after clear")
		}
	})

	t.Run("Backs A Session", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTokenRepository(db)
		repo.Set(services.TokenAccess, "a")
		repo.Set(services.TokenRefresh, "r")

		session, err := services.NewSession(repo)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
		if !session.LoggedIn() {
			t.Error("expected session to restore logged-in state from the database")
		}
	})
}

func TestSnapshotRepository(t *testing.T) {
	t.Run("Load Without Snapshot", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)

		_, _, err := repo.Load(models.KindArtists)
		if !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("expected ErrNoRows, got %v", err)
		}
	})

	t.Run("Save And Load", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		payload := []byte(`[{"span": "short_term", "items": []}]`)

		if err := repo.Save(models.KindArtists, payload); err != nil {
			t.Fatalf("failed to save snapshot: %v", err)
		}

		loaded, fetchedAt, err := repo.Load(models.KindArtists)
		if err != nil {
			t.Fatalf("failed to load snapshot: %v", err)
		}
		if string(loaded) != string(payload) {
			t.Errorf("payload mismatch: %s", loaded)
		}
		if fetchedAt.IsZero() {
			t.Error("expected a fetch timestamp")
		}
	})

	t.Run("Save Overwrites Per Kind", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		repo.Save(models.KindTracks, []byte(`["old"]`))
		repo.Save(models.KindTracks, []byte(`["new"]`))
		repo.Save(models.KindArtists, []byte(`["artists"]`))

		payload, _, err := repo.Load(models.KindTracks)
		if err != nil {
			t.Fatalf("failed to load snapshot: %v", err)
		}
		if string(payload) != `["new"]` {
			t.Errorf("expected overwrite, got %s", payload)
		}

		other, _, err := repo.Load(models.KindArtists)
		if err != nil || string(other) != `["artists"]` {
			t.Errorf("kinds must not clobber each other, got %s (%v)", other, err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		repo.Save(models.KindArtists, []byte(`[]`))

		if err := repo.Delete(models.KindArtists); err != nil {
			t.Fatalf("failed to delete snapshot: %v", err)
		}
		if _, _, err := repo.Load(models.KindArtists); !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("expected ErrNoRows after delete, got %v", err)
		}
	})
}
