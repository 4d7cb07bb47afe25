// Package metrics provides Prometheus metrics for the legacy MongoDB MCP
// server. It tracks tool-call counts, latencies, database command timings,
// policy rejections, and truncation rates.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "legacy_mongodb_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// DatabaseCommandsTotal counts MongoDB commands by command and status
	DatabaseCommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "database_commands_total",
		Help:      "Total MongoDB commands issued by command name and status",
	}, []string{"command", "status"})

	// DatabaseCommandLatency measures MongoDB command latency
	DatabaseCommandLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "database_command_latency_seconds",
		Help:      "MongoDB command latency by command name",
		Buckets:   prometheus.DefBuckets,
	}, []string{"command"})

	// PolicyRejections counts queries rejected by the safety policy layer
	PolicyRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "policy_rejections_total",
		Help:      "Queries rejected by the query-safety policy by reason",
	}, []string{"reason"})

	// ResponsesTruncated counts responses cut at the byte limit
	ResponsesTruncated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "responses_truncated_total",
		Help:      "Responses truncated due to the byte limit",
	})

	// DocumentsExported counts documents written by export_data
	DocumentsExported = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "documents_exported_total",
		Help:      "Documents written to export files",
	})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})
)

// RecordRequest records a completed request with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordDatabaseCommand records a MongoDB command with its duration and status
func RecordDatabaseCommand(command string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	DatabaseCommandsTotal.WithLabelValues(command, status).Inc()
	DatabaseCommandLatency.WithLabelValues(command).Observe(duration)
}
