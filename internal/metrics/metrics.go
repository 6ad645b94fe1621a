// Package metrics exposes Prometheus metrics for research runs, agent
// activity, and tool executions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	// Agent metrics
	AgentExecutionsTotal      *prometheus.CounterVec
	AgentExecutionDuration    *prometheus.HistogramVec
	AgentExecutionErrorsTotal *prometheus.CounterVec

	// Tool metrics
	ToolExecutionsTotal      *prometheus.CounterVec
	ToolExecutionDuration    *prometheus.HistogramVec
	ToolExecutionErrorsTotal *prometheus.CounterVec

	// Research run metrics
	ResearchRunsTotal     *prometheus.CounterVec
	ResearchRunDuration   prometheus.Histogram
	ReportsGeneratedTotal prometheus.Counter
}

// NewMetrics creates and registers all metrics
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		// Agent metrics
		AgentExecutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agent_executions_total",
				Help: "Total number of agent executions",
			},
			[]string{"agent", "status"},
		),
		AgentExecutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agent_execution_duration_seconds",
				Help:    "Duration of agent executions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"agent"},
		),
		AgentExecutionErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agent_execution_errors_total",
				Help: "Total number of agent execution errors",
			},
			[]string{"agent", "error_type"},
		),

		// Tool metrics
		ToolExecutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tool_executions_total",
				Help: "Total number of tool executions",
			},
			[]string{"tool_name", "status"},
		),
		ToolExecutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tool_execution_duration_seconds",
				Help:    "Duration of tool executions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool_name"},
		),
		ToolExecutionErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tool_execution_errors_total",
				Help: "Total number of tool execution errors",
			},
			[]string{"tool_name", "error_type"},
		),

		// Research run metrics
		ResearchRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "research_runs_total",
				Help: "Total number of research runs",
			},
			[]string{"status"},
		),
		ResearchRunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "research_run_duration_seconds",
				Help:    "Duration of research runs in seconds",
				Buckets: []float64{5, 15, 30, 60, 120, 300, 600},
			},
		),
		ReportsGeneratedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "reports_generated_total",
				Help: "Total number of investment advice reports generated",
			},
		),
	}

	// Register all metrics
	m.registerMetrics()

	return m
}

// registerMetrics registers all metrics with the registry
func (m *Metrics) registerMetrics() {
	// Agent metrics
	m.registry.MustRegister(m.AgentExecutionsTotal)
	m.registry.MustRegister(m.AgentExecutionDuration)
	m.registry.MustRegister(m.AgentExecutionErrorsTotal)

	// Tool metrics
	m.registry.MustRegister(m.ToolExecutionsTotal)
	m.registry.MustRegister(m.ToolExecutionDuration)
	m.registry.MustRegister(m.ToolExecutionErrorsTotal)

	// Research run metrics
	m.registry.MustRegister(m.ResearchRunsTotal)
	m.registry.MustRegister(m.ResearchRunDuration)
	m.registry.MustRegister(m.ReportsGeneratedTotal)
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
