package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	LogFormat   string `validate:"oneof=json text"`

	SaveBackend      string        `validate:"oneof=memory file sqlite postgres"`
	SaveDir          string        `validate:"required_if=SaveBackend file"`
	SaveSlot         string        `validate:"required,max=64"`
	SQLitePath       string        `validate:"required_if=SaveBackend sqlite"`
	MemoryQuotaBytes int           `validate:"gte=0"`
	SaveCacheSize    int           `validate:"gte=1"`
	SaveCacheTTL     time.Duration `validate:"gt=0"`

	DBUser            string `validate:"required_if=SaveBackend postgres"`
	DBPassword        string
	DBHost            string `validate:"required_if=SaveBackend postgres"`
	DBPort            string `validate:"required_if=SaveBackend postgres"`
	DBName            string `validate:"required_if=SaveBackend postgres"`
	DBMaxConns        int    `validate:"gte=1"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	TickInterval   time.Duration `validate:"gt=0"`
	WaterCooldown  time.Duration `validate:"gte=0"`
	QuestChance    float64       `validate:"gte=0,lte=1"`
	CatalogPath    string
	Timezone       string
	OpsAddr        string
	BackupInterval time.Duration `validate:"gt=0"`
	DiscoveryEvery time.Duration `validate:"gt=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),

		SaveBackend:      getEnv("SAVE_BACKEND", DefaultSaveBackend),
		SaveDir:          getEnv("SAVE_DIR", DefaultSaveDir),
		SaveSlot:         getEnv("SAVE_SLOT", DefaultSaveSlot),
		SQLitePath:       getEnv("SQLITE_PATH", DefaultSQLitePath),
		MemoryQuotaBytes: getEnvAsInt("MEMORY_QUOTA_BYTES", DefaultMemoryQuotaBytes),
		SaveCacheSize:    getEnvAsInt("SAVE_CACHE_SIZE", DefaultSaveCacheSize),
		SaveCacheTTL:     getEnvAsDuration("SAVE_CACHE_TTL", DefaultSaveCacheTTL),

		DBUser:            getEnv("DB_USER", DefaultDBUser),
		DBPassword:        getEnv("DB_PASSWORD", DefaultDBPassword),
		DBHost:            getEnv("DB_HOST", DefaultDBHost),
		DBPort:            getEnv("DB_PORT", DefaultDBPort),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		TickInterval:   getEnvAsDuration("TICK_INTERVAL", DefaultTickInterval),
		WaterCooldown:  getEnvAsDuration("WATER_COOLDOWN", DefaultWaterCooldown),
		CatalogPath:    getEnv("CATALOG_PATH", DefaultCatalogPath),
		Timezone:       getEnv("GARDEN_TIMEZONE", ""),
		OpsAddr:        getEnv("OPS_ADDR", DefaultOpsAddr),
		BackupInterval: getEnvAsDuration("BACKUP_INTERVAL", DefaultBackupInterval),
		DiscoveryEvery: getEnvAsDuration("DISCOVERY_INTERVAL", DefaultDiscoveryEvery),
	}

	chance, err := getEnvAsFloat("QUEST_CHANCE", DefaultQuestChance)
	if err != nil {
		return nil, fmt.Errorf("invalid QUEST_CHANCE value: %w", err)
	}
	cfg.QuestChance = chance

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Location returns the zone the garden calendar follows. Empty means the host's zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown GARDEN_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt falls back to the default when the variable is unset or not an integer
func getEnvAsInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration falls back to the default when the variable is unset or unparseable
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvAsFloat returns an error for a set but malformed value
func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	return strconv.ParseFloat(value, 64)
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
