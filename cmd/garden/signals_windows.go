//go:build windows

package main

import (
	"context"

	"github.com/osse101/MagicGarden_Go/internal/scheduler"
)

// watchPauseSignals is a no-op: Windows has no user signals
func watchPauseSignals(context.Context, *scheduler.Loop) {}
