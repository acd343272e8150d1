package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Garden Metrics
var (
	PlantsPlanted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantsPlanted,
			Help: HelpTextPlantsPlanted,
		},
		[]string{LabelVariety},
	)

	StageChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStageChanges,
			Help: HelpTextStageChanges,
		},
		[]string{LabelSource},
	)

	PlantsWatered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantsWatered,
			Help: HelpTextPlantsWatered,
		},
		[]string{LabelBatch},
	)

	ResidentsArrived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameResidentsArrived,
			Help: HelpTextResidentsArrived,
		},
		[]string{LabelResident},
	)

	Interactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameInteractions,
			Help: HelpTextInteractions,
		},
		[]string{LabelAction},
	)

	FriendshipMilestones = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFriendshipMilestone,
			Help: HelpTextFriendshipMilestone,
		},
		[]string{LabelLevel},
	)

	Quests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuests,
			Help: HelpTextQuests,
		},
		[]string{LabelState},
	)

	DailyRollovers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailyRollovers,
			Help: HelpTextDailyRollovers,
		},
	)

	LoginStreak = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameLoginStreak,
			Help: HelpTextLoginStreak,
		},
	)

	BonusClaims = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBonusClaims,
			Help: HelpTextBonusClaims,
		},
	)

	Discoveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDiscoveries,
			Help: HelpTextDiscoveries,
		},
		[]string{LabelDiscovery},
	)

	SaveWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSaveWrites,
			Help: HelpTextSaveWrites,
		},
		[]string{LabelRetried},
	)

	SaveBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameSaveBytes,
			Help: HelpTextSaveBytes,
		},
		[]string{LabelSlot},
	)
)

// Background Job Metrics
var (
	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobRuns,
			Help: HelpTextJobRuns,
		},
		[]string{LabelJob, LabelResult},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameJobDuration,
			Help:    HelpTextJobDuration,
			Buckets: JobLatencyBuckets,
		},
		[]string{LabelJob},
	)
)
