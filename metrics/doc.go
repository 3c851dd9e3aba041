// SPDX-License-Identifier: MIT

// Package metrics exports Prometheus metrics for network mutations.
//
// A Registry owns a private prometheus.Registry. Registry.Observer returns a
// network.Observer bound to one world label, so a single Registry can serve
// every Graph of a world.Registry:
//
//	m := metrics.NewRegistry()
//	g := network.NewGraph[C, N](network.WithObserver(m.Observer("overworld")))
//
// Series:
//
//	voxnet_inserts_total{world,kind}
//	voxnet_removals_total{world,kind}
//	voxnet_groups_created_total{world}
//	voxnet_group_merges_total{world}
//	voxnet_group_splits_total{world}
//	voxnet_mutation_duration_seconds{world,op}
//	voxnet_groups{world}
package metrics
