// SPDX-License-Identifier: MIT

package network

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/katalvlaran/voxnet/connectivity"
	"github.com/katalvlaran/voxnet/pos"
	"github.com/katalvlaran/voxnet/traverse"
)

// Group is a maximal connected component of nodes and connectors.
//
// nodes holds the endpoints, connectors pairs each connector position with
// the Grid that owns it, and grids is the arena of those Grids.
// A Group is only created by SingleNode, SingleConnector or a split.
type Group[C, N connectivity.Connectable] struct {
	nodes      map[pos.Pos]*connectivity.Cache[N]
	connectors map[pos.Pos]GridID
	grids      map[GridID]*Grid[C]
	divider    *traverse.Divider
}

func newGroup[C, N connectivity.Connectable]() *Group[C, N] {
	gr := &Group[C, N]{
		nodes:      make(map[pos.Pos]*connectivity.Cache[N]),
		connectors: make(map[pos.Pos]GridID),
		grids:      make(map[GridID]*Grid[C]),
	}
	gr.divider = traverse.NewDivider(gr)
	return gr
}

// SingleNode returns a Group holding one endpoint.
func SingleNode[C, N connectivity.Connectable](at pos.Pos, node *connectivity.Cache[N]) *Group[C, N] {
	gr := newGroup[C, N]()
	gr.AddNode(at, node)
	return gr
}

// SingleConnector returns a Group holding one connector in its own Grid.
func SingleConnector[C, N connectivity.Connectable](at pos.Pos, connector *connectivity.Cache[C]) *Group[C, N] {
	gr := newGroup[C, N]()
	gr.addGrid(gr.newID(), SingleConnectorGrid(at, connector))
	return gr
}

// Contains reports whether p is a node or connector of the Group.
func (gr *Group[C, N]) Contains(p pos.Pos) bool {
	if _, ok := gr.nodes[p]; ok {
		return true
	}
	_, ok := gr.connectors[p]
	return ok
}

// Linked reports whether both positions are members. Groups are joined by
// adjacency alone; side compatibility only matters inside Grids.
func (gr *Group[C, N]) Linked(from pos.Pos, _ pos.Dir, to pos.Pos) bool {
	return gr.Contains(from) && gr.Contains(to)
}

// Connects is Contains: a member takes part on every side.
func (gr *Group[C, N]) Connects(p pos.Pos, _ pos.Dir) bool {
	return gr.Contains(p)
}

// CountBlocks returns the number of nodes plus connectors.
func (gr *Group[C, N]) CountBlocks() int {
	return len(gr.nodes) + len(gr.connectors)
}

// CountGrids returns the number of Grids.
func (gr *Group[C, N]) CountGrids() int {
	return len(gr.grids)
}

// Blocks returns every member position: nodes first, then connectors,
// each part sorted.
func (gr *Group[C, N]) Blocks() []pos.Pos {
	out := sortedKeys(gr.nodes)
	return append(out, sortedKeys(gr.connectors)...)
}

// Nodes returns a fresh map of endpoint position to endpoint value.
func (gr *Group[C, N]) Nodes() map[pos.Pos]N {
	out := make(map[pos.Pos]N, len(gr.nodes))
	for p, n := range gr.nodes {
		out[p] = n.Value()
	}
	return out
}

// NodeAt returns the endpoint at p.
func (gr *Group[C, N]) NodeAt(p pos.Pos) (N, bool) {
	n, ok := gr.nodes[p]
	if !ok {
		var zero N
		return zero, false
	}
	return n.Value(), true
}

// Grids returns the Grids ordered by their sample position.
func (gr *Group[C, N]) Grids() []*Grid[C] {
	out := make([]*Grid[C], 0, len(gr.grids))
	for _, g := range gr.grids {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b *Grid[C]) int {
		pa, _ := a.SampleConnector()
		pb, _ := b.SampleConnector()
		return pos.Compare(pa, pb)
	})
	return out
}

// GridAt returns the Grid holding the connector at p.
func (gr *Group[C, N]) GridAt(p pos.Pos) (*Grid[C], bool) {
	id, ok := gr.connectors[p]
	if !ok {
		return nil, false
	}
	return gr.grids[id], true
}

// AddNode inserts an endpoint. The caller guarantees that at is free and
// adjacent to the Group; nothing is validated here.
func (gr *Group[C, N]) AddNode(at pos.Pos, node *connectivity.Cache[N]) {
	gr.nodes[at] = node
}

// AddConnector inserts a connector, joining it to every neighbouring Grid
// it is compatible with. The largest such Grid (first in direction order
// on ties) receives the connector and absorbs the others.
//
// Returns ErrPositionOccupied if at is taken and ErrNotTouching if no
// neighbour of at belongs to the Group. Both are checked before mutating.
func (gr *Group[C, N]) AddConnector(at pos.Pos, connector *connectivity.Cache[C]) error {
	if gr.Contains(at) {
		return fmt.Errorf("%w: %s", ErrPositionOccupied, at)
	}

	var (
		linked    []GridID
		bestID    GridID
		best      *Grid[C]
		bestCount int
		neighbors int
	)
	for _, d := range pos.Dirs {
		side := at.Offset(d)
		id, ok := gr.connectors[side]
		if !ok {
			if _, isNode := gr.nodes[side]; isNode {
				neighbors++
			}
			continue
		}
		neighbors++

		grid := gr.grids[id]
		if !connector.Connects(d) || !grid.Connects(side, d.Invert()) {
			continue
		}
		if !slices.Contains(linked, id) {
			linked = append(linked, id)
		}
		if grid.CountConnectors() > bestCount {
			bestID, best, bestCount = id, grid, grid.CountConnectors()
		}
	}

	if neighbors == 0 {
		return fmt.Errorf("%w: %s", ErrNotTouching, at)
	}

	if len(linked) == 0 {
		gr.addGrid(gr.newID(), SingleConnectorGrid(at, connector))
		return nil
	}

	gr.connectors[at] = bestID
	best.AddConnector(at, connector)

	for _, id := range linked {
		if id == bestID {
			continue
		}
		grid := gr.grids[id]
		for p := range grid.connectors {
			gr.connectors[p] = bestID
		}
		best.MergeWith(at, grid)
		delete(gr.grids, id)
	}
	return nil
}

// Remove deletes the node or connector at at and returns it.
//
// If the remaining members fall apart, the largest fragment stays in gr and
// onSplit receives one new Group per other fragment. Grids are moved whole;
// only the Grid that held the removed connector is re-split.
//
// Returns ErrPositionNotFound, without mutating, if at is not a member.
func (gr *Group[C, N]) Remove(at pos.Pos, onSplit func(*Group[C, N])) (Entry[C, N], error) {
	if !gr.Contains(at) {
		return Entry[C, N]{}, fmt.Errorf("%w: %s", ErrPositionNotFound, at)
	}
	if gr.isExternal(at) {
		return gr.removeExternal(at), nil
	}

	// Colour the remainder first; the removed position is only excluded,
	// so Grid bookkeeping can be done afterwards.
	var classes []*traverse.Class
	best := gr.divider.Divide(
		func(exclude func(pos.Pos)) { exclude(at) },
		func(add func(pos.Pos)) {
			for _, d := range pos.Dirs {
				side := at.Offset(d)
				if gr.Linked(at, d, side) {
					add(side)
				}
			}
		},
		func(c *traverse.Class) { classes = append(classes, c) },
	)

	var (
		entry     Entry[C, N]
		fragments []*Grid[C]
		excluded  = make(map[pos.Pos]struct{})
	)
	if centerID, ok := gr.connectors[at]; ok {
		center := gr.grids[centerID]
		delete(gr.grids, centerID)
		for p := range center.connectors {
			delete(gr.connectors, p)
			excluded[p] = struct{}{}
		}
		removed := center.Remove(at, func(g *Grid[C]) { fragments = append(fragments, g) })
		if center.CountConnectors() > 0 {
			fragments = append(fragments, center)
		}
		entry = ConnectorEntry[C, N](removed)
	} else {
		node := gr.nodes[at]
		delete(gr.nodes, at)
		entry = NodeEntry[C](node.Value())
	}

	for i, class := range classes {
		target := gr
		if i != best {
			target = newGroup[C, N]()
			gr.moveClass(target, class, excluded, at)
		}

		remaining := fragments[:0]
		for _, g := range fragments {
			sample, _ := g.SampleConnector()
			if class.Contains(sample) {
				target.addGrid(target.newID(), g)
				continue
			}
			remaining = append(remaining, g)
		}
		fragments = remaining

		if i != best {
			onSplit(target)
		}
	}

	if len(fragments) != 0 {
		invariant("%d grid fragments of %s matched no colour", len(fragments), at)
	}
	return entry, nil
}

// moveClass transfers every member listed in class, except excluded
// positions, from gr into target. Grids move whole under their IDs.
func (gr *Group[C, N]) moveClass(target *Group[C, N], class *traverse.Class, excluded map[pos.Pos]struct{}, removed pos.Pos) {
	for _, p := range class.Positions() {
		if _, skip := excluded[p]; skip {
			continue
		}
		if _, moved := target.connectors[p]; moved {
			continue
		}

		id, isConnector := gr.connectors[p]
		if !isConnector {
			target.nodes[p] = gr.nodes[p]
			delete(gr.nodes, p)
			continue
		}

		grid := gr.grids[id]
		if grid.Contains(removed) {
			invariant("grid %s still contains removed position %s", id, removed)
		}
		delete(gr.grids, id)
		target.grids[id] = grid
		for q := range grid.connectors {
			delete(gr.connectors, q)
			target.connectors[q] = id
		}
	}
}

// removeExternal handles a removal that cannot split the Group.
func (gr *Group[C, N]) removeExternal(at pos.Pos) Entry[C, N] {
	if node, ok := gr.nodes[at]; ok {
		delete(gr.nodes, at)
		return NodeEntry[C](node.Value())
	}

	id := gr.connectors[at]
	delete(gr.connectors, at)
	grid := gr.grids[id]
	removed := grid.Remove(at, func(g *Grid[C]) {
		gr.addGrid(gr.newID(), g)
	})
	if grid.CountConnectors() == 0 {
		delete(gr.grids, id)
	}
	return ConnectorEntry[C, N](removed)
}

// isExternal reports whether removing p cannot disconnect the Group:
// the Group holds at most one block, or p has at most one occupied neighbour.
func (gr *Group[C, N]) isExternal(p pos.Pos) bool {
	if gr.CountBlocks() <= 1 {
		return true
	}
	neighbors := 0
	for _, d := range pos.Dirs {
		if gr.Contains(p.Offset(d)) {
			neighbors++
		}
	}
	return neighbors <= 1
}

// mergeWith absorbs every member of other, which must not be used again.
// Only Graph calls it. If at is a connector of gr, compatible Grids of other
// around at are merged into at's Grid; the remaining Grids keep their IDs.
func (gr *Group[C, N]) mergeWith(other *Group[C, N], at pos.Pos) {
	for id := range other.grids {
		if _, dup := gr.grids[id]; dup {
			invariant("duplicate grid id %s while merging groups", id)
		}
	}

	pairing, atConnector := gr.connectors[at]
	maps.Copy(gr.nodes, other.nodes)
	maps.Copy(gr.connectors, other.connectors)

	if atConnector {
		current := gr.grids[pairing]
		for _, d := range pos.Dirs {
			if !current.Connects(at, d) {
				continue
			}
			side := at.Offset(d)
			id, ok := other.connectors[side]
			if !ok {
				continue
			}
			grid, ok := other.grids[id]
			if !ok || !grid.Connects(side, d.Invert()) {
				continue
			}
			delete(other.grids, id)
			for p := range grid.connectors {
				gr.connectors[p] = pairing
			}
			current.MergeWith(at, grid)
		}
	}

	maps.Copy(gr.grids, other.grids)
	clear(other.nodes)
	clear(other.connectors)
	clear(other.grids)
}

// addGrid registers g under id and points its positions at it.
func (gr *Group[C, N]) addGrid(id GridID, g *Grid[C]) {
	gr.grids[id] = g
	for p := range g.connectors {
		gr.connectors[p] = id
	}
}

// newID draws a random GridID not used by this Group.
func (gr *Group[C, N]) newID() GridID {
	for {
		id := GridID(uuid.New())
		if _, taken := gr.grids[id]; !taken {
			return id
		}
	}
}
