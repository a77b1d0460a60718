package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	runsTotal     *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	accountsGauge prometheus.Gauge
	stageDuration *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		runsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashradar_pipeline_runs_total",
				Help: "Total number of pipeline runs by outcome",
			},
			[]string{"status"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashradar_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		accountsGauge: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "cashradar_ledger_accounts",
				Help: "Accounts in the most recently processed ledger",
			},
		),
		stageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cashradar_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}
}

// RecordRun records a completed pipeline run by outcome.
func (r *Recorder) RecordRun(status string) {
	r.runsTotal.WithLabelValues(status).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordAccounts records the account count of the latest ledger.
func (r *Recorder) RecordAccounts(n int) {
	r.accountsGauge.Set(float64(n))
}

// RecordStageDuration records a pipeline stage duration in seconds.
func (r *Recorder) RecordStageDuration(stage string, seconds float64) {
	r.stageDuration.WithLabelValues(stage).Observe(seconds)
}
