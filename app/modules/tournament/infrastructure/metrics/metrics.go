package tournamentmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TournamentMetrics records service and event activity for the tournament module.
type TournamentMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)

	// RecordScoreUpdate counts an applied update; cleared is true when the hole
	// was reset to "not entered".
	RecordScoreUpdate(ctx context.Context, group string, cleared bool)
	// RecordScoreRejected counts an update that did not apply, by reason.
	RecordScoreRejected(ctx context.Context, reason string)
	// RecordHolesEntered tracks how far a player has progressed.
	RecordHolesEntered(ctx context.Context, playerID string, holes int)
	RecordEventForwarded(ctx context.Context, topic string, success bool)
}

const namespace = "tournament"

// PrometheusMetrics is the Prometheus-backed TournamentMetrics.
type PrometheusMetrics struct {
	operationAttempts *prometheus.CounterVec
	operationSuccess  *prometheus.CounterVec
	operationFailure  *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	scoreUpdates      *prometheus.CounterVec
	scoreRejected     *prometheus.CounterVec
	holesEntered      *prometheus.GaugeVec
	eventsForwarded   *prometheus.CounterVec
}

// NewPrometheusMetrics registers the tournament collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		operationAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, []string{"operation"}),
		operationSuccess: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_success_total",
			Help:      "Service operations that completed successfully.",
		}, []string{"operation"}),
		operationFailure: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failure_total",
			Help:      "Service operations that returned an error or panicked.",
		}, []string{"operation"}),
		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		scoreUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_updates_total",
			Help:      "Hole scores recorded or cleared.",
		}, []string{"group", "cleared"}),
		scoreRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_rejected_total",
			Help:      "Score updates that were not applied.",
		}, []string{"reason"}),
		holesEntered: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "player_holes_entered",
			Help:      "Holes with a recorded score, per player.",
		}, []string{"player_id"}),
		eventsForwarded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_forwarded_total",
			Help:      "Score events forwarded to NATS.",
		}, []string{"topic", "success"}),
	}
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operationAttempts.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.operationSuccess.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.operationFailure.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordScoreUpdate(_ context.Context, group string, cleared bool) {
	m.scoreUpdates.WithLabelValues(group, boolLabel(cleared)).Inc()
}

func (m *PrometheusMetrics) RecordScoreRejected(_ context.Context, reason string) {
	m.scoreRejected.WithLabelValues(reason).Inc()
}

func (m *PrometheusMetrics) RecordHolesEntered(_ context.Context, playerID string, holes int) {
	m.holesEntered.WithLabelValues(playerID).Set(float64(holes))
}

func (m *PrometheusMetrics) RecordEventForwarded(_ context.Context, topic string, success bool) {
	m.eventsForwarded.WithLabelValues(topic, boolLabel(success)).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// NoOpMetrics discards everything. Used in tests and one-shot CLI commands.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordScoreUpdate(context.Context, string, bool)                {}
func (NoOpMetrics) RecordScoreRejected(context.Context, string)                    {}
func (NoOpMetrics) RecordHolesEntered(context.Context, string, int)                {}
func (NoOpMetrics) RecordEventForwarded(context.Context, string, bool)             {}
