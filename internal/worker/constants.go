package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	LogMsgWorkerJobFailed   = "Background job failed"
	LogMsgWorkerJobPanicked = "Background job panicked"
	LogMsgWorkerJobDone     = "Background job finished"
)

// ============================================================================
// Log Messages - Rollover Worker
// ============================================================================

// Log messages for the midnight rollover worker
const (
	LogMsgRolloverStarting  = "Midnight rollover starting"
	LogMsgRolloverCompleted = "Midnight rollover completed"
	LogMsgRolloverFailed    = "Midnight rollover failed"
	LogMsgRolloverStandby   = "Midnight rollover standing by"
	LogMsgRolloverApproach  = "Midnight rollover scheduled"
	LogMsgRolloverCancelled = "Cancelled pending midnight rollover"
	LogMsgShuttingDown      = "Shutting down rollover worker"
	LogMsgShutdownComplete  = "Rollover worker shutdown complete"
	LogMsgShutdownTimeout   = "Rollover worker shutdown timeout"
)

// ============================================================================
// Log Messages - Maintenance Jobs
// ============================================================================

const (
	LogMsgBackupWritten     = "Scheduled backup written"
	LogMsgDiscoveriesJobRan = "Scheduled discovery check found new discoveries"
)

// ============================================================================
// Rollover Scheduling
// ============================================================================

const (
	// standbyThreshold is the distance to midnight beyond which the worker only sets a
	// wake-up timer
	standbyThreshold = time.Hour

	// standbyLead is how long before midnight the standby timer wakes up
	standbyLead = 45 * time.Minute

	// earlyFireTolerance is how early a timer may fire and still run the rollover
	earlyFireTolerance = 10 * time.Second
)
