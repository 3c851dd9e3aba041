// SPDX-License-Identifier: MIT

// Package traverse provides breadth-first flood fills over a sparse voxel
// Node and the colouring Divider used to detect splits after a removal.
//
// What
//
//   - Search walks every position reachable from a root through Node.Linked,
//     in breadth-first order, skipping excluded and already-visited cells.
//   - Divider.Divide colours what remains of a Node after a position is
//     excluded: every uncoloured root starts a new colour class, classes are
//     emitted to a sink in discovery order, and the index of the largest
//     class (first one on ties) is returned so the caller can keep it in place.
//
// Determinism
//
//	Neighbours are expanded in pos.Dirs order and roots are consumed in the
//	order the caller adds them, so class order and content are reproducible.
//
// Complexity (V = cells reached, d = 6)
//
//   - Time:   O(V·d); each position is visited at most once per Divide call.
//   - Memory: O(V) for the queue, colour map and class sets.
//
// A Divider keeps its buffers between calls; it is not safe for concurrent use.
package traverse
