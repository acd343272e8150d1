package config

import "time"

// Save backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Defaults
const (
	DefaultEnvironment      = "dev"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultSaveBackend      = BackendFile
	DefaultSaveDir          = "saves"
	DefaultSaveSlot         = "main"
	DefaultSQLitePath       = "saves/garden.db"
	DefaultMemoryQuotaBytes = 5 * 1024 * 1024
	DefaultTickInterval     = time.Second
	DefaultWaterCooldown    = 500 * time.Millisecond
	DefaultQuestChance      = 0.1
	DefaultCatalogPath      = ""
	DefaultOpsAddr          = "127.0.0.1:9464"
	DefaultSaveCacheSize    = 8
	DefaultSaveCacheTTL     = 5 * time.Minute
	DefaultBackupInterval   = 10 * time.Minute
	DefaultDiscoveryEvery   = 30 * time.Second

	DefaultDBUser            = "postgres"
	DefaultDBPassword        = "postgres"
	DefaultDBHost            = "localhost"
	DefaultDBPort            = "5432"
	DefaultDBName            = "magicgarden"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
)

// ExpectedEnvSchemaVersion is the .env schema version this build understands
const ExpectedEnvSchemaVersion = "1.0"
