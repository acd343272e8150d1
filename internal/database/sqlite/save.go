package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/osse101/MagicGarden_Go/internal/domain"
)

const (
	driverName = "sqlite"
	dsnOptions = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

	schema = `
	CREATE TABLE IF NOT EXISTS save_documents (
		save_key   TEXT PRIMARY KEY,
		document   BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	);`
)

// SaveRepository stores save documents in a local SQLite database
type SaveRepository struct {
	db *sqlx.DB
}

// Open opens or creates the database at path and ensures the schema exists
func Open(path string) (*SaveRepository, error) {
	db, err := sqlx.Open(driverName, path+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single writer keeps WAL commits serialized
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SaveRepository{db: db}, nil
}

// Close closes the database connection
func (r *SaveRepository) Close() error {
	return r.db.Close()
}

func (r *SaveRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var document []byte
	err := r.db.GetContext(ctx, &document, `SELECT document FROM save_documents WHERE save_key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to get save document: %w", err)
	}
	return document, nil
}

func (r *SaveRepository) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO save_documents (save_key, document, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(save_key) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		if isFull(err) {
			return fmt.Errorf("%w: %v", domain.ErrQuotaExceeded, err)
		}
		return fmt.Errorf("failed to put save document: %w", err)
	}
	return nil
}

func (r *SaveRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM save_documents WHERE save_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete save document: %w", err)
	}
	return nil
}

func (r *SaveRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := r.db.SelectContext(ctx, &keys,
		`SELECT save_key FROM save_documents WHERE substr(save_key, 1, ?) = ? ORDER BY save_key`,
		len(prefix), prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list save documents: %w", err)
	}
	return keys, nil
}

// SQLITE_FULL surfaces as "database or disk is full"
func isFull(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_FULL") || strings.Contains(msg, "database or disk is full")
}
