package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/MagicGarden_Go/internal/scheduler"
	"github.com/osse101/MagicGarden_Go/internal/server"
	"github.com/osse101/MagicGarden_Go/internal/worker"
)

// Backupper writes a backup of the save
type Backupper interface {
	Backup(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil components are skipped.
type ShutdownComponents struct {
	Server         *server.Server
	Loop           *scheduler.Loop
	RolloverWorker *worker.RolloverWorker
	Scheduler      *scheduler.Scheduler
	Pool           *worker.Pool
	Store          Backupper
	Backend        *SaveBackend
}

// GracefulShutdown stops components in dependency order:
// 1. ops server
// 2. tick loop and rollover worker (nothing new touches the save)
// 3. scheduler and pool (queued maintenance drains)
// 4. final backup, then the backend closes
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Loop != nil {
		c.Loop.Stop()
	}

	if c.RolloverWorker != nil {
		if err := c.RolloverWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgWorkerShutdownFailed, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Pool != nil {
		c.Pool.Stop()
	}

	if c.Store != nil {
		if err := c.Store.Backup(ctx); err != nil {
			slog.Error(LogMsgFinalBackupFailed, "error", err)
		}
	}

	if c.Backend != nil {
		if err := c.Backend.Close(); err != nil {
			slog.Error(ErrMsgFailedCloseBackend, "error", err)
		}
	}

	slog.Info(LogMsgShutdownComplete)
}
