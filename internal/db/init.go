package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL DEFAULT '',
    password_hash BYTEA NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    token_id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    expires_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS employees (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    position TEXT NOT NULL DEFAULT '',
    department TEXT NOT NULL DEFAULT '',
    salary DOUBLE PRECISION NOT NULL DEFAULT 0,
    hire_date TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    dob TEXT NOT NULL DEFAULT '',
    skill TEXT NOT NULL DEFAULT '',
    nationality TEXT NOT NULL DEFAULT ''
);
`

// InitPostgres opens a PostgreSQL connection, verifies it, and creates
// the schema if it does not exist yet. The employees table carries no
// unique constraint on email: uniqueness is enforced by the application
// layer, mirroring the schemaless document store this service models.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
