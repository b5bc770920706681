// Package metrics exposes Prometheus collectors for chat proxy calls, test
// runs and the HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every collector the service records.
//
// Usage:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	m.RecordLLMRequest("openai", "success", time.Since(start).Seconds())
type Metrics struct {
	// LLMRequestCounter counts proxy calls.
	// Labels: provider, status (success|error)
	LLMRequestCounter *prometheus.CounterVec

	// LLMRequestDuration measures proxy latency in seconds.
	// Labels: provider
	LLMRequestDuration *prometheus.HistogramVec

	// TestCaseCounter counts scored cases.
	// Labels: status (scored|error)
	TestCaseCounter *prometheus.CounterVec

	// TestRunCounter counts finished runs.
	// Labels: state (completed|cancelled)
	TestRunCounter *prometheus.CounterVec

	LastRunTextSimilarity  prometheus.Gauge
	LastRunKeywordCoverage prometheus.Gauge

	// HTTPRequestCounter counts API requests.
	// Labels: method, path, status_code
	HTTPRequestCounter *prometheus.CounterVec
}

// New creates every collector and registers it with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LLMRequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatprobe_llm_requests_total",
				Help: "Total number of chat proxy requests by provider and status",
			},
			[]string{"provider", "status"},
		),

		LLMRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatprobe_llm_request_duration_seconds",
				Help:    "Duration of chat proxy requests in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"provider"},
		),

		TestCaseCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatprobe_test_cases_total",
				Help: "Total number of test cases run by status",
			},
			[]string{"status"},
		),

		TestRunCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatprobe_test_runs_total",
				Help: "Total number of finished test runs by final state",
			},
			[]string{"state"},
		),

		LastRunTextSimilarity: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "chatprobe_last_run_text_similarity",
				Help: "Average text similarity of the last finished run",
			},
		),

		LastRunKeywordCoverage: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "chatprobe_last_run_keyword_coverage",
				Help: "Average keyword coverage of the last finished run",
			},
		),

		HTTPRequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatprobe_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
	}
}

// RecordLLMRequest records one proxy call.
func (m *Metrics) RecordLLMRequest(provider, status string, durationSeconds float64) {
	m.LLMRequestCounter.WithLabelValues(provider, status).Inc()
	m.LLMRequestDuration.WithLabelValues(provider).Observe(durationSeconds)
}

// RecordTestCase counts a single outcome.
func (m *Metrics) RecordTestCase(failed bool) {
	status := "scored"
	if failed {
		status = "error"
	}
	m.TestCaseCounter.WithLabelValues(status).Inc()
}

// RecordRun counts a finished run and sets the last-run gauges.
func (m *Metrics) RecordRun(state string, avgSimilarity, avgCoverage float64) {
	m.TestRunCounter.WithLabelValues(state).Inc()
	m.LastRunTextSimilarity.Set(avgSimilarity)
	m.LastRunKeywordCoverage.Set(avgCoverage)
}

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string) {
	m.HTTPRequestCounter.WithLabelValues(method, path, statusCode).Inc()
}
