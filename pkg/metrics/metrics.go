package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records adjustment pipeline timings per adjuster.
type PipelineMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewPipelineMetrics registers the pipeline metrics on the provided
// registerer. A nil registerer yields a no-op recorder, which tests use.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "adjuster_duration_seconds",
		Help:    "Duration of each adjuster pass in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"adjuster"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "adjuster_config_errors",
		Help: "Configuration errors reported by adjusters.",
	}, []string{"adjuster"})
	reg.MustRegister(duration, failures)
	return &PipelineMetrics{duration: duration, failures: failures}
}

// ObserveDuration records one adjuster pass.
func (p *PipelineMetrics) ObserveDuration(adjuster string, d time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(adjuster)).Observe(d.Seconds())
}

// IncConfigError counts a non-fatal configuration error.
func (p *PipelineMetrics) IncConfigError(adjuster string) {
	if p == nil || p.failures == nil {
		return
	}
	p.failures.WithLabelValues(normalizeLabel(adjuster)).Inc()
}

// JobMetrics records metadata for scheduled jobs (the catalog generator).
type JobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	written  *prometheus.GaugeVec
}

// NewJobMetrics registers the worker job metrics on the provided registerer.
func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_duration_seconds",
		Help:    "Duration of worker jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_success",
		Help: "Successful worker job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_failure",
		Help: "Failed worker job executions.",
	}, []string{"job"})
	written := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catalog_entries_written",
		Help: "Catalog price rows written by the last generator run.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure, written)
	return &JobMetrics{duration: duration, success: success, failure: failure, written: written}
}

// ObserveDuration records the duration for the named job.
func (j *JobMetrics) ObserveDuration(job string, d time.Duration) {
	if j == nil || j.duration == nil {
		return
	}
	j.duration.WithLabelValues(normalizeLabel(job)).Observe(d.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (j *JobMetrics) IncSuccess(job string) {
	if j == nil || j.success == nil {
		return
	}
	j.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (j *JobMetrics) IncFailure(job string) {
	if j == nil || j.failure == nil {
		return
	}
	j.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

// SetEntriesWritten records how many snapshot rows the last run produced.
func (j *JobMetrics) SetEntriesWritten(job string, n int) {
	if j == nil || j.written == nil {
		return
	}
	j.written.WithLabelValues(normalizeLabel(job)).Set(float64(n))
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
