package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/MagicGarden_Go/internal/bootstrap"
	"github.com/osse101/MagicGarden_Go/internal/config"
	"github.com/osse101/MagicGarden_Go/internal/logger"
)

const doctorTimeout = 10 * time.Second

type DoctorCommand struct{}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Diagnose configuration, catalog and save backend"
}

func (c *DoctorCommand) Run(args []string) error {
	PrintHeader("Running Doctor...")

	cfg, err := config.Load()
	if err != nil {
		PrintError("Configuration invalid: %v", err)
		return fmt.Errorf("doctor found issues")
	}
	PrintSuccess("Configuration OK (backend %s, slot %s)", cfg.SaveBackend, cfg.SaveSlot)

	hasError := false

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		PrintError("Environment check failed: %v", err)
		hasError = true
	}
	for _, w := range warnings {
		PrintWarning("%s", w)
	}

	if _, err := bootstrap.LoadCatalog(cfg); err != nil {
		PrintError("Catalog check failed: %v", err)
		hasError = true
	} else {
		PrintSuccess("Catalog OK")
	}

	ctx, cancel := context.WithTimeout(logger.NewTrace(context.Background()), doctorTimeout)
	defer cancel()
	if err := checkBackend(ctx, cfg); err != nil {
		PrintError("Save backend check failed: %v", err)
		hasError = true
	} else {
		PrintSuccess("Save backend OK")
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}

	PrintSuccess("All systems operational!")
	return nil
}

func checkBackend(ctx context.Context, cfg *config.Config) error {
	backend, err := bootstrap.OpenSaveBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()
	return backend.Ping(ctx)
}
