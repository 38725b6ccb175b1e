// Package observability provides Prometheus metrics instrumentation for the
// support workflow.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	workflowRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "support_workflow_runs_total",
			Help: "Total number of workflow runs",
		},
		[]string{"agent", "status"}, // status: success, error, fallback
	)

	workflowDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "support_workflow_duration_seconds",
			Help:    "Workflow run duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"agent"},
	)

	conversationMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "support_conversation_messages_total",
			Help: "Total number of messages persisted to conversation history",
		},
		[]string{"role"},
	)
)

// RecordWorkflowRun records one completed workflow run. Call it after the run
// finishes, including fallback replies produced outside the graph.
func RecordWorkflowRun(agent string, status string, durationMS int) {
	workflowRunsTotal.WithLabelValues(agent, status).Inc()
	workflowDurationSeconds.WithLabelValues(agent).Observe(float64(durationMS) / 1000.0)
}

// RecordConversationMessage counts one persisted history message.
func RecordConversationMessage(role string) {
	conversationMessagesTotal.WithLabelValues(role).Inc()
}
