package savestore

import "time"

// Key layout in the backing repository
const (
	KeyPrefixSave   = "save:"
	KeyPrefixBackup = "backup:"
	KeyPrefixCache  = "cache:"

	// DefaultSlot is the save slot used when none is configured
	DefaultSlot = "main"
)

// CacheSchemaVersion is the current version of the document cache schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "2.0"

// Cache defaults
const (
	DefaultCacheSize = 8
	DefaultCacheTTL  = 5 * time.Minute
)

// Export envelope keys
const (
	fieldAppName    = "appName"
	fieldAppVersion = "appVersion"
	fieldExportedAt = "exportedAt"
	fieldVersion    = "version"
)

// Legacy v1 formats
const (
	legacyVisitorDateLayout = "Mon Jan 02 2006"
)

// Log messages
const (
	LogMsgLoadFallback        = "Save document unreadable, starting a new game"
	LogMsgUnreadablePreserved = "Unreadable save document copied to backup"
	LogMsgPreserveFailed      = "Failed to copy unreadable save document to backup"
	LogMsgNoSaveFound         = "No save document found, starting a new game"
	LogMsgMigrated            = "Save document migrated"
	LogMsgMigratedPersist     = "Failed to persist migrated save document"
	LogMsgQuotaCleanup        = "Storage quota exceeded, clearing backups and caches before retry"
	LogMsgCleanupKeyFailed    = "Failed to remove key during quota cleanup"
	LogMsgSaveRetryFailed     = "Save failed after cleanup retry"
	LogMsgSaved               = "Save document written"
	LogMsgImported            = "Save document imported"
	LogMsgImportRejected      = "Save document import rejected"
	LogMsgBackupWritten       = "Save backup written"
	LogMsgCacheInvalidated    = "Save cache entry invalidated"
)
