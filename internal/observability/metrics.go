package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics is the common shape every application service records.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// UserMetrics covers identity resolution and member sync.
type UserMetrics interface {
	OperationMetrics
	RecordIdentityResolution(ctx context.Context, kind string)
	RecordMembersSynced(ctx context.Context, created, updated int)
}

// WordleMetrics covers result ingestion and scraping.
type WordleMetrics interface {
	OperationMetrics
	RecordOutcomesRecorded(ctx context.Context, count int)
	RecordOutcomeFailures(ctx context.Context, count int)
	RecordScrapePage(ctx context.Context, messages int)
}

// LeaderboardMetrics covers ranking.
type LeaderboardMetrics interface {
	OperationMetrics
	RecordLeaderboardEntries(ctx context.Context, window string, entries int)
}

// PrometheusMetrics implements every module metrics interface on one registry.
type PrometheusMetrics struct {
	attempts         *prometheus.CounterVec
	successes        *prometheus.CounterVec
	failures         *prometheus.CounterVec
	durations        *prometheus.HistogramVec
	resolutions      *prometheus.CounterVec
	membersSynced    *prometheus.CounterVec
	outcomesRecorded prometheus.Counter
	outcomeFailures  prometheus.Counter
	scrapePages      prometheus.Counter
	scrapeMessages   prometheus.Counter
	leaderboardSize  *prometheus.GaugeVec
}

var (
	_ UserMetrics        = (*PrometheusMetrics)(nil)
	_ WordleMetrics      = (*PrometheusMetrics)(nil)
	_ LeaderboardMetrics = (*PrometheusMetrics)(nil)
)

// NewPrometheusMetrics registers the collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	const ns = "wordle_bot"

	m := &PrometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "operation_attempts_total", Help: "Service operations started.",
		}, []string{"service", "operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "operation_success_total", Help: "Service operations that succeeded.",
		}, []string{"service", "operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "operation_failure_total", Help: "Service operations that failed.",
		}, []string{"service", "operation"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns, Name: "operation_duration_seconds", Help: "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "identity_resolutions_total", Help: "Identity tokens resolved by outcome kind.",
		}, []string{"kind"}),
		membersSynced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "members_synced_total", Help: "Guild members written by member sync.",
		}, []string{"result"}),
		outcomesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "outcomes_recorded_total", Help: "Outcome rows upserted.",
		}),
		outcomeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "outcome_failures_total", Help: "Outcome rows that failed to upsert.",
		}),
		scrapePages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "scrape_pages_total", Help: "Channel history pages fetched.",
		}),
		scrapeMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "scrape_messages_total", Help: "Channel messages inspected while scraping.",
		}),
		leaderboardSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns, Name: "leaderboard_entries", Help: "Ranked entries in the last computed leaderboard.",
		}, []string{"window"}),
	}

	reg.MustRegister(
		m.attempts, m.successes, m.failures, m.durations,
		m.resolutions, m.membersSynced,
		m.outcomesRecorded, m.outcomeFailures, m.scrapePages, m.scrapeMessages,
		m.leaderboardSize,
	)
	return m
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(service, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(service, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(service, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.durations.WithLabelValues(service, operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordIdentityResolution(_ context.Context, kind string) {
	m.resolutions.WithLabelValues(kind).Inc()
}

func (m *PrometheusMetrics) RecordMembersSynced(_ context.Context, created, updated int) {
	m.membersSynced.WithLabelValues("created").Add(float64(created))
	m.membersSynced.WithLabelValues("updated").Add(float64(updated))
}

func (m *PrometheusMetrics) RecordOutcomesRecorded(_ context.Context, count int) {
	m.outcomesRecorded.Add(float64(count))
}

func (m *PrometheusMetrics) RecordOutcomeFailures(_ context.Context, count int) {
	m.outcomeFailures.Add(float64(count))
}

func (m *PrometheusMetrics) RecordScrapePage(_ context.Context, messages int) {
	m.scrapePages.Inc()
	m.scrapeMessages.Add(float64(messages))
}

func (m *PrometheusMetrics) RecordLeaderboardEntries(_ context.Context, window string, entries int) {
	m.leaderboardSize.WithLabelValues(window).Set(float64(entries))
}

// NoOpMetrics satisfies every metrics interface and records nothing.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoOpMetrics) RecordIdentityResolution(context.Context, string)                       {}
func (NoOpMetrics) RecordMembersSynced(context.Context, int, int)                          {}
func (NoOpMetrics) RecordOutcomesRecorded(context.Context, int)                            {}
func (NoOpMetrics) RecordOutcomeFailures(context.Context, int)                             {}
func (NoOpMetrics) RecordScrapePage(context.Context, int)                                  {}
func (NoOpMetrics) RecordLeaderboardEntries(context.Context, string, int)                  {}
