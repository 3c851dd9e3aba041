// SPDX-License-Identifier: MIT

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initNetworkMetrics() {
	r.InsertsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxnet_inserts_total",
			Help: "Total number of cells placed",
		},
		[]string{"world", "kind"}, // node, connector
	)

	r.RemovalsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxnet_removals_total",
			Help: "Total number of cells removed",
		},
		[]string{"world", "kind"},
	)

	r.GroupsCreated = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxnet_groups_created_total",
			Help: "Groups created by an isolated insert",
		},
		[]string{"world"},
	)

	r.GroupMerges = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxnet_group_merges_total",
			Help: "Groups absorbed into another by an insert",
		},
		[]string{"world"},
	)

	r.GroupSplits = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxnet_group_splits_total",
			Help: "Groups split off by a removal",
		},
		[]string{"world"},
	)

	r.MutationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voxnet_mutation_duration_seconds",
			Help:    "Duration of graph mutations in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10), // 1µs .. ~0.26s
		},
		[]string{"world", "op"}, // insert, remove
	)

	r.GroupsLive = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "voxnet_groups",
			Help: "Number of live groups",
		},
		[]string{"world"},
	)
}
