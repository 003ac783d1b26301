package server

import (
	"time"

	// Packages
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
	prometheus "github.com/prometheus/client_golang/prometheus"
	promauto "github.com/prometheus/client_golang/prometheus/promauto"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

var (
	toolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_tool_calls_total",
		Help: "Total number of tool calls by tool and outcome",
	}, []string{"tool", "outcome"})

	toolLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assistant_tool_call_duration_seconds",
		Help:    "Tool call latency in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"tool"})
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func observe(name string, result schema.ToolResult, duration time.Duration) {
	outcome := outcomeOK
	if result.IsError() {
		outcome = outcomeError
	}
	toolCalls.WithLabelValues(name, outcome).Inc()
	toolLatency.WithLabelValues(name).Observe(duration.Seconds())
}
