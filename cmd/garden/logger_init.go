package main

import (
	"os"

	"github.com/osse101/MagicGarden_Go/internal/bootstrap"
	"github.com/osse101/MagicGarden_Go/internal/config"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	bootstrap.SetupLogger(cfg, os.Stdout)
}
