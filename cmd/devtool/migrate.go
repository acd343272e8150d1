package main

import (
	"context"
	"fmt"

	"github.com/osse101/MagicGarden_Go/internal/config"
	"github.com/osse101/MagicGarden_Go/internal/database"
	"github.com/osse101/MagicGarden_Go/internal/database/postgres"
	"github.com/osse101/MagicGarden_Go/internal/logger"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply or list the PostgreSQL save schema migrations (up, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	subcmd := "up"
	if len(args) > 0 {
		subcmd = args[0]
	}
	if subcmd != "up" && subcmd != "status" {
		return fmt.Errorf("unknown subcommand: %s (want up or status)", subcmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := logger.NewTrace(context.Background())
	pool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:  cfg.GetDBConnString(),
		MaxConns:    cfg.DBMaxConns,
		MaxIdleTime: cfg.DBMaxConnIdleTime,
		MaxLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if subcmd == "up" {
		PrintHeader("Applying migrations...")
		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Migrations applied")
		return nil
	}

	statuses, err := postgres.MigrationStatus(ctx, pool)
	if err != nil {
		return err
	}
	PrintHeader("Migration status")
	for _, st := range statuses {
		fmt.Printf("  %05d  %-8s  %s\n", st.Source.Version, st.State, st.Source.Path)
	}
	return nil
}
