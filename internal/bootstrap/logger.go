package bootstrap

import (
	"io"
	"log/slog"

	"github.com/osse101/MagicGarden_Go/internal/config"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/logger"
)

// SetupLogger installs the default logger from configuration and logs the startup banner
func SetupLogger(cfg *config.Config, w io.Writer) {
	logCfg := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		domain.AppVersion,
		cfg.Environment,
		cfg.LogLevel == logger.LogLevelDebug,
	)
	logger.InitLoggerWithWriter(logCfg, w)

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "format", cfg.LogFormat)
	slog.Info(LogMsgStartingGarden,
		"environment", cfg.Environment,
		"version", domain.AppVersion)

	slog.Debug(LogMsgConfigurationLoaded,
		"save_backend", cfg.SaveBackend,
		"save_slot", cfg.SaveSlot,
		"tick_interval", cfg.TickInterval,
		"water_cooldown", cfg.WaterCooldown,
		"quest_chance", cfg.QuestChance,
		"ops_addr", cfg.OpsAddr)
}
