//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/MagicGarden_Go/internal/scheduler"
)

// watchPauseSignals pauses the loop on SIGUSR1 and resumes it on SIGUSR2
func watchPauseSignals(ctx context.Context, loop *scheduler.Loop) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGUSR1, syscall.SIGUSR2)

	go func() {
		defer signal.Stop(sigs)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigs:
				if sig == syscall.SIGUSR1 {
					loop.Pause()
				} else {
					loop.Resume()
				}
			}
		}
	}()
}
