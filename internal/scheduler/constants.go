package scheduler

import "time"

// DefaultTickInterval is the pace of the host loop
const DefaultTickInterval = time.Second

// Log messages
const (
	LogMsgLoopStarted  = "Host loop started"
	LogMsgLoopStopped  = "Host loop stopped"
	LogMsgLoopPaused   = "Host loop paused"
	LogMsgLoopResumed  = "Host loop resumed"
	LogMsgTickFailed   = "Tick failed"
	LogMsgJobQueueFull = "Job queue full, skipping scheduled run"

	LogMsgJobScheduled       = "Background job scheduled"
	LogMsgJobIntervalInvalid = "Background job not scheduled, interval must be positive"
)
