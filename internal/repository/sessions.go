package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresSessionRepository tracks issued session tokens so logout can
// revoke them and the cleaner can expire them.
type PostgresSessionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository
// using the provided *sql.DB.
func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{DB: db}
}

// Create records an issued token id for a user with its expiry (unix seconds).
func (r *PostgresSessionRepository) Create(ctx context.Context, tokenID, userID string, expiresAt int64) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (token_id, user_id, expires_at) VALUES ($1, $2, $3)
	`, tokenID, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Exists reports whether the token id is still active (present and not
// revoked). Expiry is checked by the JWT itself; the row only carries
// the timestamp for the background cleaner.
func (r *PostgresSessionRepository) Exists(ctx context.Context, tokenID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM sessions WHERE token_id = $1)`,
		tokenID,
	).Scan(&exists)
	return exists, err
}

// Delete revokes a token id. Deleting an absent row is not an error.
func (r *PostgresSessionRepository) Delete(ctx context.Context, tokenID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token_id = $1`, tokenID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
