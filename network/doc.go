// SPDX-License-Identifier: MIT

// Package network is the connectivity-group engine: it keeps a sparse voxel
// network of endpoints (nodes) and connectors partitioned into Groups and,
// inside each Group, connectors partitioned into Grids, updating both
// incrementally on single-cell insertions and removals.
//
// What
//
//   - Group: a maximal set of cells connected by plain adjacency. Nodes
//     connect to anything next to them.
//   - Grid: a maximal set of connectors inside one Group joined by links
//     where both facing sides connect (connectivity.Connectable).
//   - Graph: the registry mapping positions to Groups. It decides which
//     Groups a new cell touches, merges them, and registers the Groups
//     produced by splits.
//
// Removal
//
//	A removal that cannot disconnect anything (the cell has at most one
//	occupied neighbour) is applied directly. Otherwise a breadth-first
//	colouring (traverse.Divider) partitions the remainder; the largest
//	colour stays in the original Group and every other colour is moved,
//	Grid by Grid, into a new Group. The same scheme applies to Grids.
//
// Determinism
//
//	Neighbours are probed in pos.Dirs order. Merge targets are the largest
//	candidate, first in direction order on ties. Enumerations (Blocks,
//	Grids, Positions, Graph.Groups) are sorted.
//
// Errors
//
//   - ErrPositionOccupied: insertion at a position that is already placed.
//   - ErrPositionNotFound: removal of a position that is not placed.
//   - ErrNotTouching:      connector insertion that touches nothing in the Group.
//   - ErrInvariant:        wrapped by panics on internal consistency failures.
//
// Precondition errors are returned before any index is touched. Invariant
// failures panic.
//
// Concurrency
//
//	Nothing in this package locks. Mutations and queries on one Graph must
//	not overlap; see package world for running independent Graphs in parallel.
package network
