package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeProgramLimitExceeded is raised for rows beyond the configured size limits
	PgErrorCodeProgramLimitExceeded = "54000"
	// PgErrorCodeDiskFull is raised when the server runs out of disk
	PgErrorCodeDiskFull = "53100"
)

// Migration settings
const (
	migrationsDir     = "migrations"
	migrationsDialect = "postgres"
)

// Log Messages
const (
	LogMsgMigrationsApplied = "Save schema migrations applied"
)
