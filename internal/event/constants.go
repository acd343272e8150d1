package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Stage change sources
const (
	SourceTick    = "tick"
	SourceOffline = "offline"
)

// Log message constants
const (
	// LogMsgEventPublishFailed is logged when a subscriber rejects a notification
	LogMsgEventPublishFailed = "Event handlers failed"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)
