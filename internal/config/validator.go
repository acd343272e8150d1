package config

import (
	"fmt"
	"os"
	"strings"
)

// PostgresEnvVars must be set when saves go to PostgreSQL
var PostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// ValidateEnv checks the .env schema version and the variables the selected save
// backend cannot run without. An unset schema version is accepted, since the game
// runs with defaults and no .env at all.
func ValidateEnv() error {
	if schemaVersion := os.Getenv("ENV_SCHEMA_VERSION"); schemaVersion != "" && schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	if os.Getenv("SAVE_BACKEND") != BackendPostgres {
		return nil
	}

	var missing []string
	for _, envVar := range PostgresEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables for %s backend: %s", BackendPostgres, strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("ENV_SCHEMA_VERSION") == "" {
		warnings = append(warnings, fmt.Sprintf("ENV_SCHEMA_VERSION is not set - expected %s", ExpectedEnvSchemaVersion))
	}

	if os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if addr := os.Getenv("OPS_ADDR"); strings.HasPrefix(addr, ":") || strings.HasPrefix(addr, "0.0.0.0:") {
		warnings = append(warnings, "OPS_ADDR listens on all interfaces - metrics will be reachable from the network")
	}

	return warnings, nil
}
