package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/MagicGarden_Go/internal/config"
	"github.com/osse101/MagicGarden_Go/internal/database"
	"github.com/osse101/MagicGarden_Go/internal/database/file"
	"github.com/osse101/MagicGarden_Go/internal/database/memory"
	"github.com/osse101/MagicGarden_Go/internal/database/postgres"
	"github.com/osse101/MagicGarden_Go/internal/database/sqlite"
	"github.com/osse101/MagicGarden_Go/internal/repository"
)

// SaveBackend is the opened save repository together with its lifecycle hooks
type SaveBackend struct {
	Name string
	Repo repository.SaveRepository

	ping  func(ctx context.Context) error
	close func() error
}

// Ping reports whether the backend answers
func (b *SaveBackend) Ping(ctx context.Context) error {
	if b.ping != nil {
		return b.ping(ctx)
	}
	_, err := b.Repo.Keys(ctx, "")
	return err
}

// Close releases connections and handles. Closing twice is safe.
func (b *SaveBackend) Close() error {
	if b.close == nil {
		return nil
	}
	closeFn := b.close
	b.close = nil
	if err := closeFn(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedCloseBackend, err)
	}
	slog.Info(LogMsgSaveBackendClosed, "backend", b.Name)
	return nil
}

// OpenSaveBackend opens the repository selected by SAVE_BACKEND. The PostgreSQL
// backend also applies pending schema migrations.
func OpenSaveBackend(ctx context.Context, cfg *config.Config) (*SaveBackend, error) {
	b := &SaveBackend{Name: cfg.SaveBackend}

	switch cfg.SaveBackend {
	case config.BackendMemory:
		b.Repo = memory.NewSaveRepository(cfg.MemoryQuotaBytes)

	case config.BackendFile:
		repo, err := file.NewSaveRepository(cfg.SaveDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenBackend, err)
		}
		b.Repo = repo

	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDir, err)
		}
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenBackend, err)
		}
		b.Repo = repo
		b.close = repo.Close

	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, database.PoolConfig{
			ConnString:  cfg.GetDBConnString(),
			MaxConns:    cfg.DBMaxConns,
			MaxIdleTime: cfg.DBMaxConnIdleTime,
			MaxLifetime: cfg.DBMaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenBackend, err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgMigrationsApplied)
		b.Repo = postgres.NewSaveRepository(pool)
		b.ping = pool.Ping
		b.close = func() error {
			pool.Close()
			return nil
		}

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownBackend, cfg.SaveBackend)
	}

	slog.Info(LogMsgSaveBackendOpened, "backend", b.Name)
	return b, nil
}
