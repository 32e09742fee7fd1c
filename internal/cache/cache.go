// Package cache provides a durable memo of lowering results, keyed by the
// input program's content hash. Re-lowering an unchanged program is pure
// waste in an edit-compile loop; the driver consults this cache first.
package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Cache stores lowered programs in SQLite, addressed by ir.Hash of the
// input tree. Entries are immutable: the hash fully determines the output,
// so writes are idempotent and conflicts are silently ignored.
type Cache struct {
	db *sql.DB
}

// Open creates or opens a cache database at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the lowered program recorded for hash, if any.
func (c *Cache) Get(ctx context.Context, hash string) (string, bool, error) {
	var output string
	err := c.db.QueryRowContext(ctx,
		`SELECT output FROM lowered WHERE hash = ?`, hash).Scan(&output)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return output, true, nil
}

// Put records the lowered program for hash.
// Uses ON CONFLICT(hash) DO NOTHING for idempotency - the hash determines
// the output, so a duplicate write carries no new information.
func (c *Cache) Put(ctx context.Context, hash, output string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO lowered (hash, output)
		VALUES (?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, hash, output)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
