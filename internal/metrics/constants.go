package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "garden_events_published_total"
)

// Garden metric names
const (
	MetricNamePlantsPlanted       = "garden_plants_planted_total"
	MetricNameStageChanges        = "garden_stage_changes_total"
	MetricNamePlantsWatered       = "garden_plants_watered_total"
	MetricNameResidentsArrived    = "garden_residents_arrived_total"
	MetricNameInteractions        = "garden_interactions_total"
	MetricNameFriendshipMilestone = "garden_friendship_milestones_total"
	MetricNameQuests              = "garden_quests_total"
	MetricNameDailyRollovers      = "garden_daily_rollovers_total"
	MetricNameLoginStreak         = "garden_login_streak_days"
	MetricNameBonusClaims         = "garden_bonus_claims_total"
	MetricNameDiscoveries         = "garden_discoveries_total"
	MetricNameSaveWrites          = "garden_save_writes_total"
	MetricNameSaveBytes           = "garden_save_document_bytes"
	MetricNameJobRuns             = "garden_background_jobs_total"
	MetricNameJobDuration         = "garden_background_job_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of game notifications published"
)

// Garden metric help text
const (
	HelpTextPlantsPlanted       = "Total number of seeds planted"
	HelpTextStageChanges        = "Total number of plant stage changes"
	HelpTextPlantsWatered       = "Total number of plants watered"
	HelpTextResidentsArrived    = "Total number of residents that moved in"
	HelpTextInteractions        = "Total number of applied friendship interactions"
	HelpTextFriendshipMilestone = "Total number of friendship milestones reached"
	HelpTextQuests              = "Total number of quest lifecycle transitions"
	HelpTextDailyRollovers      = "Total number of day rollovers"
	HelpTextLoginStreak         = "Current consecutive login streak"
	HelpTextBonusClaims         = "Total number of login bonus claims"
	HelpTextDiscoveries         = "Total number of first-time discoveries"
	HelpTextSaveWrites          = "Total number of save document writes"
	HelpTextSaveBytes           = "Size of the last written save document"
	HelpTextJobRuns             = "Total number of background job runs by outcome"
	HelpTextJobDuration         = "Background job run time in seconds"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelVariety   = "variety"
	LabelSource    = "source"
	LabelBatch     = "batch"
	LabelResident  = "resident"
	LabelAction    = "action"
	LabelLevel     = "level"
	LabelState     = "state"
	LabelDiscovery = "discovery"
	LabelRetried   = "retried"
	LabelSlot      = "slot"
	LabelJob       = "job"
	LabelResult    = "result"
)

// Background job result label values
const (
	JobResultOK      = "ok"
	JobResultError   = "error"
	JobResultPanic   = "panic"
	JobResultDropped = "dropped"
)

// Quest state label values
const (
	QuestStateGenerated   = "generated"
	QuestStateCompletable = "completable"
	QuestStateCompleted   = "completed"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets ranges from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// JobLatencyBuckets ranges from 1ms to 30s
var JobLatencyBuckets = []float64{.001, .01, .05, .1, .5, 1, 5, 10, 30}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
