// SPDX-License-Identifier: MIT

// Package voxnet tracks connectivity groups in a sparse 3-D voxel network
// of endpoints (nodes) and relays (connectors).
//
// Two cells belong to the same Group when they are face-adjacent; two
// connectors belong to the same Grid when they are adjacent and both open
// towards each other. Both partitions are maintained incrementally as
// cells are placed and removed: inserts merge, removals flood-fill only
// the affected region and split off what fell apart.
//
// Layout:
//
//	pos/           Pos, Dir, ordering and packed coordinates
//	connectivity/  Connectable, side masks (Bits) and the per-cell Cache
//	traverse/      BFS search and the flood-fill Divider
//	network/       Grid, Group and the Graph that owns them
//	voxelgrid/     full-rescan reference model and ASCII layer parsing
//	world/         goroutine-safe registry of one Graph per world
//	metrics/       Prometheus observer for Graph mutations
//	scenario/      YAML scenario replay and reports
//	cmd/voxnet     scenario replay CLI
//
// Quick start:
//
//	g := network.NewGraph[Pipe, Pump]()
//	_ = g.AddNode(pos.New(0, 0, 0), connectivity.NewCache(Pump{}))
//	_ = g.AddConnector(pos.New(1, 0, 0), connectivity.NewCache(Pipe{}))
//	gr, _ := g.GroupAt(pos.New(0, 0, 0))
//	fmt.Println(gr.CountBlocks(), gr.CountGrids()) // 2 1
package voxnet
