package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"topspot/internal/services"
)

// TokenRepository implements [services.TokenStore] over the tokens table.
//
// One row per token kind; absent rows read as the empty string. Clear removes
// both rows so logged-in state (both present) can never survive a logout.
type TokenRepository struct {
	db *sql.DB
}

var _ services.TokenStore = (*TokenRepository)(nil)

// NewTokenRepository creates a new [TokenRepository] with the given database connection
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Get returns the stored value for the kind, or the empty string when absent.
func (r *TokenRepository) Get(kind services.TokenKind) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM tokens WHERE kind = ?", string(kind)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query token: %w", err)
	}

	return value, nil
}

// Set stores or overwrites the value for the kind.
func (r *TokenRepository) Set(kind services.TokenKind, value string) error {
	query := `
		INSERT INTO tokens (kind, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, string(kind), value, time.Now()); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	return nil
}

// Clear removes all stored tokens.
func (r *TokenRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM tokens"); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}

	return nil
}
