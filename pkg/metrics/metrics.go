// Package metrics collects per-run counters and timings on a private
// Prometheus registry and writes them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	DirectionEncode = "encode"
	DirectionDecode = "decode"

	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics holds all Prometheus collectors for a bytereel process.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	bytesTotal    *prometheus.CounterVec
	framesTotal   *prometheus.CounterVec
	jobsTotal     *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		bytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bytereel_bytes_total",
				Help: "Total number of original file bytes processed",
			},
			[]string{"direction"},
		),

		framesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bytereel_frames_total",
				Help: "Total number of frames packed or extracted",
			},
			[]string{"direction"},
		),

		jobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bytereel_jobs_total",
				Help: "Total number of encode and decode jobs, by status",
			},
			[]string{"direction", "status"},
		),

		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bytereel_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
			},
			[]string{"stage"},
		),
	}

	m.registry.MustRegister(m.bytesTotal, m.framesTotal, m.jobsTotal, m.stageDuration)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// AddBytes counts original file bytes for direction.
func (m *Metrics) AddBytes(direction string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.bytesTotal.WithLabelValues(direction).Add(float64(n))
}

// AddFrames counts frames for direction.
func (m *Metrics) AddFrames(direction string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.framesTotal.WithLabelValues(direction).Add(float64(n))
}

// RecordJob counts a finished job.
func (m *Metrics) RecordJob(direction string, err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.jobsTotal.WithLabelValues(direction, status).Inc()
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
