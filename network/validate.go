// SPDX-License-Identifier: MIT

package network

import (
	"fmt"

	"github.com/katalvlaran/voxnet/pos"
	"github.com/katalvlaran/voxnet/traverse"
)

// Validate re-derives every structural property of g from scratch and
// returns the first violation found, wrapped in ErrInvariant.
//
// Checked: the position index and the Groups agree; every Group is
// non-empty, connected and maximal; every Grid is non-empty, connected
// through compatible links, maximal within its Group and indexed under
// its own ID. Cost is O(total cells); use it in tests and diagnostics only.
func (g *Graph[C, N]) Validate() error {
	for p, id := range g.positions {
		gr, ok := g.groups[id]
		if !ok {
			return fmt.Errorf("%w: %s indexed to missing group %d", ErrInvariant, p, id)
		}
		if !gr.Contains(p) {
			return fmt.Errorf("%w: %s indexed to group %d which lacks it", ErrInvariant, p, id)
		}
	}
	for _, id := range g.GroupIDs() {
		gr := g.groups[id]
		if gr.CountBlocks() == 0 {
			return fmt.Errorf("%w: group %d is empty", ErrInvariant, id)
		}
		for _, p := range gr.Blocks() {
			if owner := g.positions[p]; owner != id {
				return fmt.Errorf("%w: %s in group %d but indexed to %d", ErrInvariant, p, id, owner)
			}
			for _, d := range pos.Dirs {
				side := p.Offset(d)
				if owner, ok := g.positions[side]; ok && owner != id {
					return fmt.Errorf("%w: adjacent %s and %s in groups %d and %d", ErrInvariant, p, side, id, owner)
				}
			}
		}
		if err := gr.validate(); err != nil {
			return fmt.Errorf("group %d: %w", id, err)
		}
	}
	return nil
}

// validate checks one Group's internal structure.
func (gr *Group[C, N]) validate() error {
	blocks := gr.Blocks()
	if reached := countReached(gr, blocks[0]); reached != len(blocks) {
		return fmt.Errorf("%w: %d of %d blocks reachable", ErrInvariant, reached, len(blocks))
	}
	for p := range gr.nodes {
		if _, dup := gr.connectors[p]; dup {
			return fmt.Errorf("%w: %s is both node and connector", ErrInvariant, p)
		}
	}

	indexed := 0
	for id, grid := range gr.grids {
		sample, ok := grid.SampleConnector()
		if !ok {
			return fmt.Errorf("%w: grid %s is empty", ErrInvariant, id)
		}
		if reached := countReached(grid, sample); reached != grid.CountConnectors() {
			return fmt.Errorf("%w: grid %s has %d of %d connectors linked", ErrInvariant, id, reached, grid.CountConnectors())
		}
		for p := range grid.connectors {
			if gr.connectors[p] != id {
				return fmt.Errorf("%w: %s in grid %s but indexed to %s", ErrInvariant, p, id, gr.connectors[p])
			}
			for _, d := range pos.Dirs {
				side := p.Offset(d)
				other, ok := gr.connectors[side]
				if !ok || other == id {
					continue
				}
				if grid.Connects(p, d) && gr.grids[other].Connects(side, d.Invert()) {
					return fmt.Errorf("%w: linked %s and %s in grids %s and %s", ErrInvariant, p, side, id, other)
				}
			}
		}
		indexed += grid.CountConnectors()
	}
	if indexed != len(gr.connectors) {
		return fmt.Errorf("%w: %d connectors indexed, %d held by grids", ErrInvariant, len(gr.connectors), indexed)
	}
	return nil
}

func countReached(n traverse.Node, root pos.Pos) int {
	reached := 0
	traverse.Search(n, root, make(map[pos.Pos]struct{}), func(pos.Pos) bool { return false }, func(pos.Pos) { reached++ })
	return reached
}
