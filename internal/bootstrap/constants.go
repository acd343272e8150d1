package bootstrap

// =============================================================================
// Logger Configuration
// =============================================================================

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingGarden      = "Starting magic garden"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// =============================================================================
// Save Backend
// =============================================================================

// DirPermission is the permission for directories created for save files
const DirPermission = 0o755

const (
	LogMsgSaveBackendOpened = "Save backend opened"
	LogMsgSaveBackendClosed = "Save backend closed"
	LogMsgMigrationsApplied = "Database migrations applied"

	ErrMsgUnknownBackend     = "unknown save backend"
	ErrMsgFailedOpenBackend  = "failed to open save backend"
	ErrMsgFailedMigrate      = "failed to migrate save database"
	ErrMsgFailedCloseBackend = "failed to close save backend"
	ErrMsgFailedCreateDir    = "failed to create save directory"
)

// =============================================================================
// Catalog
// =============================================================================

const (
	LogMsgCatalogEmbedded   = "Using embedded catalog"
	LogMsgCatalogLoaded     = "Catalog loaded"
	ErrMsgFailedLoadCatalog = "failed to load catalog"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDown         = "Shutting down..."
	LogMsgShutdownComplete     = "Garden stopped"
	LogMsgServerForcedShutdown = "Ops server forced to shutdown"
	LogMsgWorkerShutdownFailed = "Rollover worker shutdown failed"
	LogMsgFinalBackupFailed    = "Final backup failed"
)
