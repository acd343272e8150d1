package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MagicGarden_Go/internal/domain"
)

// SaveRepository stores save documents in PostgreSQL
type SaveRepository struct {
	db *pgxpool.Pool
}

// NewSaveRepository creates a new save repository
func NewSaveRepository(db *pgxpool.Pool) *SaveRepository {
	return &SaveRepository{db: db}
}

// Get retrieves a document by key
func (r *SaveRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var document []byte
	err := r.db.QueryRow(ctx,
		`SELECT document FROM save_documents WHERE save_key = $1`, key,
	).Scan(&document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to get save document: %w", err)
	}
	return document, nil
}

// Put upserts a document
func (r *SaveRepository) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO save_documents (save_key, document)
		VALUES ($1, $2)
		ON CONFLICT (save_key) DO UPDATE
		SET document = EXCLUDED.document, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return translateWriteError(err)
	}
	return nil
}

// Delete removes a document
func (r *SaveRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM save_documents WHERE save_key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete save document: %w", err)
	}
	return nil
}

// Keys lists document keys sharing a prefix
func (r *SaveRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT save_key FROM save_documents WHERE starts_with(save_key, $1) ORDER BY save_key`, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list save documents: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan save keys: %w", err)
	}
	return keys, nil
}

func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeDiskFull, PgErrorCodeProgramLimitExceeded:
			return fmt.Errorf("%w: %s", domain.ErrQuotaExceeded, pgErr.Message)
		}
	}
	return fmt.Errorf("failed to put save document: %w", err)
}
