package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/MagicGarden_Go/internal/event"
	"github.com/osse101/MagicGarden_Go/internal/metrics"
)

// InitializeEventSystem creates the notification bus and registers its subscribers.
// Subscribers run inside save updates and must not call back into the game.
func InitializeEventSystem() (*event.MemoryBus, error) {
	bus := event.NewMemoryBus()

	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered, "types", len(collector.Types()))

	slog.Info(LogMsgEventSystemInitialized)
	return bus, nil
}
