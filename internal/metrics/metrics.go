// Package metrics holds the Prometheus collectors of the assignment engine.
// The CLI has no HTTP listener, so collectors are exported as a node_exporter
// textfile at exit.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeOK labels a successful operation; failures use the error kind.
const OutcomeOK = "ok"

var (
	// AssignmentsTotal counts single assign/unassign calls by outcome.
	AssignmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadhunter_assignments_total",
			Help: "Lead assignment calls by outcome",
		},
		[]string{"outcome"},
	)

	// BulkAssignItems counts AssignMany items by outcome.
	BulkAssignItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadhunter_bulk_assign_items",
			Help: "Items processed by bulk assignment, by outcome",
		},
		[]string{"outcome"},
	)

	assignmentDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leadhunter_assignment_duration_seconds",
		Help:    "Duration of one assignment transaction",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms … ~2s
	})
)

// ObserveAssignment records one assign call.
func ObserveAssignment(outcome string, d time.Duration) {
	AssignmentsTotal.WithLabelValues(outcome).Inc()
	assignmentDuration.Observe(d.Seconds())
}

// ObserveBulkItem records one AssignMany item.
func ObserveBulkItem(outcome string) {
	BulkAssignItems.WithLabelValues(outcome).Inc()
}

// WriteTextfile dumps the default registry to path in the text exposition
// format. The write goes through a temp file and a rename.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
