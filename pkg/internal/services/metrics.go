package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	graphMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_graph_mutations_total",
		Help: "Follow, like, save and comment mutations by operation and outcome.",
	}, []string{"operation", "outcome"})

	feedDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quill_feed_assembly_seconds",
		Help:    "Time spent assembling a feed page.",
		Buckets: prometheus.DefBuckets,
	}, []string{"filter"})

	cascadeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_account_cascade_failures_total",
		Help: "Account deletion cascades that failed and were left for retry.",
	})

	orphanPurged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_orphan_rows_purged_total",
		Help: "Relation rows removed by the cleanup task because one side no longer exists.",
	}, []string{"table"})
)

func observeMutation(operation string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrStoreFailure):
		outcome = "failed"
	default:
		outcome = "rejected"
	}
	graphMutations.WithLabelValues(operation, outcome).Inc()
}
