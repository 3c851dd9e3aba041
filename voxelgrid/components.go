// SPDX-License-Identifier: MIT

package voxelgrid

import (
	"golang.org/x/exp/slices"

	"github.com/katalvlaran/voxnet/pos"
)

// ConnectedComponents finds every maximal set of cells connected by plain
// adjacency. Each component is sorted, and components are ordered by their
// first position.
//
// Time:   O(V·d + V log V), d = 6.
// Memory: O(V) for visited flags and output.
func (vg *VoxelGrid) ConnectedComponents() [][]pos.Pos {
	return vg.components(
		func(pos.Pos) bool { return true },
		func(_ pos.Pos, _ pos.Dir, to pos.Pos) bool {
			_, ok := vg.cells[to]
			return ok
		},
	)
}

// ConnectorComponents finds every maximal set of connectors joined through
// facing connecting sides. Nodes are ignored. Ordering as ConnectedComponents.
func (vg *VoxelGrid) ConnectorComponents() [][]pos.Pos {
	return vg.components(
		func(p pos.Pos) bool { return vg.cells[p].Kind == Connector },
		vg.linked,
	)
}

func (vg *VoxelGrid) components(member func(pos.Pos) bool, linked func(pos.Pos, pos.Dir, pos.Pos) bool) [][]pos.Pos {
	seen := make(map[pos.Pos]bool, len(vg.cells))
	var comps [][]pos.Pos

	for _, start := range vg.Positions() {
		if seen[start] || !member(start) {
			continue
		}
		// BFS to collect component
		queue := []pos.Pos{start}
		seen[start] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, d := range pos.Dirs {
				v := u.Offset(d)
				if seen[v] || !linked(u, d, v) || !member(v) {
					continue
				}
				seen[v] = true
				queue = append(queue, v)
			}
		}
		comps = append(comps, pos.Sort(queue))
	}
	slices.SortFunc(comps, func(a, b []pos.Pos) int { return pos.Compare(a[0], b[0]) })
	return comps
}
