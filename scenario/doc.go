// SPDX-License-Identifier: MIT

// Package scenario replays YAML-described placements onto a network.Graph
// and summarises the result.
//
// A scenario file looks like:
//
//	name: bridge
//	world: overworld
//	layers:          # optional, one block of rows per Y level, rows run along Z
//	  - ["N.N"]
//	steps:
//	  - {op: connector, at: [1, 0, 0], sides: [west, east]}
//	  - {op: remove, at: [1, 0, 0]}
//	expect:
//	  groups: 2
//	  grids: 0
//
// Layer characters follow voxelgrid.DefaultLegend. Steps run after the
// layers, in order. With verification on, every state is checked against
// a full flood-fill recount.
package scenario
