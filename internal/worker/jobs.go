package worker

import (
	"context"

	"github.com/osse101/MagicGarden_Go/internal/discovery"
	"github.com/osse101/MagicGarden_Go/internal/logger"
)

// Backupper copies the current save to its backup key
type Backupper interface {
	Backup(ctx context.Context) error
}

// DiscoveryChecker records newly satisfied discovery recipes
type DiscoveryChecker interface {
	CheckDiscoveries(ctx context.Context) ([]discovery.Match, error)
}

// BackupJob periodically snapshots the save slot
func BackupJob(b Backupper) Job {
	return JobFunc(func(ctx context.Context) error {
		if err := b.Backup(ctx); err != nil {
			return err
		}
		logger.FromContext(ctx).Debug(LogMsgBackupWritten)
		return nil
	})
}

// DiscoveryJob periodically looks for recipes formed by growth since the last check
func DiscoveryJob(c DiscoveryChecker) Job {
	return JobFunc(func(ctx context.Context) error {
		found, err := c.CheckDiscoveries(ctx)
		if err != nil {
			return err
		}
		if len(found) > 0 {
			logger.FromContext(ctx).Info(LogMsgDiscoveriesJobRan, "count", len(found))
		}
		return nil
	})
}
