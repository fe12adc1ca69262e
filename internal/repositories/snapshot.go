package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"topspot/internal/models"
)

// SnapshotRepository records the most recent successful aggregate top-items
// fetch per item kind, as opaque JSON payloads.
//
// Snapshots are informational (inspect what the last fetch returned); they do
// not feed the live cache.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new [SnapshotRepository] with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores or overwrites the snapshot for the kind.
func (r *SnapshotRepository) Save(kind models.ItemKind, payload []byte) error {
	query := `
		INSERT INTO snapshots (kind, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`

	if _, err := r.db.Exec(query, string(kind), string(payload), time.Now()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Load returns the stored snapshot payload and fetch time for the kind.
func (r *SnapshotRepository) Load(kind models.ItemKind) ([]byte, time.Time, error) {
	var payload string
	var fetchedAt time.Time

	err := r.db.QueryRow("SELECT payload, fetched_at FROM snapshots WHERE kind = ?", string(kind)).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, fmt.Errorf("no snapshot stored for %s: %w", kind, sql.ErrNoRows)
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query snapshot: %w", err)
	}

	return []byte(payload), fetchedAt, nil
}

// Delete removes the snapshot for the kind, if any.
func (r *SnapshotRepository) Delete(kind models.ItemKind) error {
	if _, err := r.db.Exec("DELETE FROM snapshots WHERE kind = ?", string(kind)); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}
