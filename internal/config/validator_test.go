package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearValidatorEnv(t *testing.T) {
	t.Helper()
	for _, key := range append([]string{"ENV_SCHEMA_VERSION", "SAVE_BACKEND", "OPS_ADDR"}, PostgresEnvVars...) {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestValidateEnv_MissingVersionIsAccepted(t *testing.T) {
	clearValidatorEnv(t)

	require.NoError(t, ValidateEnv())

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "ENV_SCHEMA_VERSION")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_PostgresBackendRequiresDB(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("SAVE_BACKEND", BackendPostgres)
	t.Setenv("DB_USER", "gardener")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables")
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.NotContains(t, err.Error(), "DB_USER")
}

func TestValidateEnv_FileBackendNeedsNoDB(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("SAVE_BACKEND", BackendFile)

	assert.NoError(t, ValidateEnv())
}

func TestValidateEnvWithWarnings_InsecureValues(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("SAVE_BACKEND", BackendPostgres)
	for _, envVar := range PostgresEnvVars {
		t.Setenv(envVar, "test_value")
	}
	t.Setenv("DB_PASSWORD", "change_this_secure_password")
	t.Setenv("OPS_ADDR", ":9464")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err, "Should not error even with warnings")
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "OPS_ADDR")
}
