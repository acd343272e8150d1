package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/MagicGarden_Go/internal/bootstrap"
	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/config"
	"github.com/osse101/MagicGarden_Go/internal/game"
	"github.com/osse101/MagicGarden_Go/internal/logger"
	"github.com/osse101/MagicGarden_Go/internal/savestore"
	"github.com/osse101/MagicGarden_Go/internal/scheduler"
	"github.com/osse101/MagicGarden_Go/internal/server"
	"github.com/osse101/MagicGarden_Go/internal/worker"
)

const (
	shutdownTimeout = 15 * time.Second
	poolWorkers     = 2
	poolQueueSize   = 8
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "magic garden: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}

	initLogger(cfg)
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, cancel := context.WithCancel(logger.NewTrace(context.Background()))
	defer cancel()

	backend, err := bootstrap.OpenSaveBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	bus, err := bootstrap.InitializeEventSystem()
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clk := clock.NewRealClockIn(loc)
	store := savestore.New(backend.Repo, clk,
		savestore.WithBus(bus),
		savestore.WithCache(cfg.SaveCacheSize, cfg.SaveCacheTTL),
	).WithSlot(cfg.SaveSlot)

	g := game.New(store, cat, clk, bus,
		game.WithWaterCooldown(cfg.WaterCooldown),
		game.WithQuestChance(cfg.QuestChance),
	)

	report, err := g.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	slog.Info("Garden opened",
		"slot", store.Slot(),
		"offline", report.Offline,
		"stage_ups", report.StageUps,
		"new_day", report.Rollover != nil && report.Rollover.NewDay,
		"arrivals", len(report.Arrivals))

	loop := scheduler.NewLoop(cfg.TickInterval, clk, func(ctx context.Context, elapsed time.Duration) error {
		_, err := g.Tick(ctx, elapsed)
		return err
	})
	loop.Start(ctx)

	pool := worker.NewPool(poolWorkers, poolQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(cfg.BackupInterval, "backup", worker.BackupJob(store))
	sched.Schedule(cfg.DiscoveryEvery, "discovery", worker.DiscoveryJob(g))

	rollover := worker.NewRolloverWorker(g, clk)
	rollover.Start()

	var srv *server.Server
	if cfg.OpsAddr != "" {
		srv = server.NewServer(cfg.OpsAddr, nil, map[string]server.HealthCheck{
			"save": backend.Ping,
		})
		go func() {
			if err := srv.Start(); err != nil {
				slog.Error("Ops server failed", "error", err)
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	watchPauseSignals(ctx, loop)

	sig := <-stop
	slog.Info("Signal received", "signal", sig.String())
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:         srv,
		Loop:           loop,
		RolloverWorker: rollover,
		Scheduler:      sched,
		Pool:           pool,
		Store:          store,
		Backend:        backend,
	})
	return nil
}
