// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/katalvlaran/voxnet/connectivity"
	"github.com/katalvlaran/voxnet/pos"
)

// Graph maps every placed position to the Group that owns it.
type Graph[C, N connectivity.Connectable] struct {
	positions map[pos.Pos]GroupID
	groups    map[GroupID]*Group[C, N]
	lastID    GroupID
	log       *zap.Logger
	observer  Observer
}

// NewGraph returns an empty Graph.
func NewGraph[C, N connectivity.Connectable](opts ...Option) *Graph[C, N] {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Graph[C, N]{
		positions: make(map[pos.Pos]GroupID),
		groups:    make(map[GroupID]*Group[C, N]),
		log:       o.Logger,
		observer:  o.Observer,
	}
}

// Contains reports whether p is placed.
func (g *Graph[C, N]) Contains(p pos.Pos) bool {
	_, ok := g.positions[p]
	return ok
}

// Len returns the number of placed positions.
func (g *Graph[C, N]) Len() int {
	return len(g.positions)
}

// CountGroups returns the number of live Groups.
func (g *Graph[C, N]) CountGroups() int {
	return len(g.groups)
}

// GroupIDAt returns the ID of the Group owning p.
func (g *Graph[C, N]) GroupIDAt(p pos.Pos) (GroupID, bool) {
	id, ok := g.positions[p]
	return id, ok
}

// GroupAt returns the Group owning p.
func (g *Graph[C, N]) GroupAt(p pos.Pos) (*Group[C, N], bool) {
	id, ok := g.positions[p]
	if !ok {
		return nil, false
	}
	return g.groups[id], true
}

// Group returns the Group registered under id.
func (g *Graph[C, N]) Group(id GroupID) (*Group[C, N], bool) {
	gr, ok := g.groups[id]
	return gr, ok
}

// GroupIDs returns the live Group IDs in ascending order.
func (g *Graph[C, N]) GroupIDs() []GroupID {
	ids := make([]GroupID, 0, len(g.groups))
	for id := range g.groups {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Groups returns the live Groups ordered by ID.
func (g *Graph[C, N]) Groups() []*Group[C, N] {
	ids := g.GroupIDs()
	out := make([]*Group[C, N], len(ids))
	for i, id := range ids {
		out[i] = g.groups[id]
	}
	return out
}

// AddNode places an endpoint at at.
// Returns ErrPositionOccupied if at is already placed.
func (g *Graph[C, N]) AddNode(at pos.Pos, node *connectivity.Cache[N]) error {
	if g.Contains(at) {
		return fmt.Errorf("%w: node at %s", ErrPositionOccupied, at)
	}
	start := time.Now()
	group, touched := g.attach(at, func() *Group[C, N] { return SingleNode[C](at, node) })
	if group != nil {
		group.AddNode(at, node)
	}
	g.observer.Inserted(KindNode, touched, time.Since(start))
	g.observer.Groups(len(g.groups))
	return nil
}

// AddConnector places a connector at at.
// Returns ErrPositionOccupied if at is already placed.
func (g *Graph[C, N]) AddConnector(at pos.Pos, connector *connectivity.Cache[C]) error {
	if g.Contains(at) {
		return fmt.Errorf("%w: connector at %s", ErrPositionOccupied, at)
	}
	start := time.Now()
	group, touched := g.attach(at, func() *Group[C, N] { return SingleConnector[C, N](at, connector) })
	if group != nil {
		if err := group.AddConnector(at, connector); err != nil {
			invariant("connector at %s rejected by its group: %v", at, err)
		}
	}
	g.observer.Inserted(KindConnector, touched, time.Since(start))
	g.observer.Groups(len(g.groups))
	return nil
}

// attach registers at with the Group it joins. With no neighbouring Group
// it creates one through single and returns nil; otherwise it returns the
// Group the caller must insert into, after merging every touched Group into
// the one with the most blocks (first in direction order on ties).
func (g *Graph[C, N]) attach(at pos.Pos, single func() *Group[C, N]) (*Group[C, N], int) {
	ids := g.neighborGroups(at)
	switch len(ids) {
	case 0:
		id := g.nextID()
		g.groups[id] = single()
		g.positions[at] = id
		g.log.Debug("group created", zap.Uint64("group", uint64(id)), zap.Stringer("pos", at))
		return nil, 0
	case 1:
		g.positions[at] = ids[0]
		return g.groups[ids[0]], 1
	}

	bestID := ids[0]
	for _, id := range ids[1:] {
		if g.groups[id].CountBlocks() > g.groups[bestID].CountBlocks() {
			bestID = id
		}
	}
	best := g.groups[bestID]
	for _, id := range ids {
		if id == bestID {
			continue
		}
		other := g.groups[id]
		delete(g.groups, id)
		for _, p := range other.Blocks() {
			g.positions[p] = bestID
		}
		best.mergeWith(other, at)
	}
	g.positions[at] = bestID
	g.log.Debug("groups merged",
		zap.Uint64("group", uint64(bestID)),
		zap.Int("merged", len(ids)-1),
		zap.Stringer("pos", at))
	return best, len(ids)
}

// RemoveAt removes whatever is placed at at and returns it.
// Groups split off by the removal are registered under fresh IDs; a Group
// left empty is dropped. Returns ErrPositionNotFound if at is not placed.
func (g *Graph[C, N]) RemoveAt(at pos.Pos) (Entry[C, N], error) {
	id, ok := g.positions[at]
	if !ok {
		return Entry[C, N]{}, fmt.Errorf("%w: %s", ErrPositionNotFound, at)
	}
	start := time.Now()
	group := g.groups[id]

	splits := 0
	entry, err := group.Remove(at, func(split *Group[C, N]) {
		nid := g.nextID()
		g.groups[nid] = split
		for _, p := range split.Blocks() {
			g.positions[p] = nid
		}
		splits++
	})
	if err != nil {
		invariant("position %s indexed to group %d it is not in: %v", at, id, err)
	}
	delete(g.positions, at)

	if splits > 0 {
		g.log.Debug("group split",
			zap.Uint64("group", uint64(id)),
			zap.Int("fragments", splits+1),
			zap.Stringer("pos", at))
	}
	if group.CountBlocks() == 0 {
		delete(g.groups, id)
		g.log.Debug("group dropped", zap.Uint64("group", uint64(id)), zap.Stringer("pos", at))
	}

	g.observer.Removed(entry.Kind, splits, time.Since(start))
	g.observer.Groups(len(g.groups))
	return entry, nil
}

// Refresh re-reads the sides of the cell at at after its entity changed.
// The cell is removed, its cache invalidated and the same cache placed
// again, so Groups and Grids are rebuilt as for a fresh insertion.
// Returns ErrPositionNotFound if at is not placed.
func (g *Graph[C, N]) Refresh(at pos.Pos) error {
	group, ok := g.GroupAt(at)
	if !ok {
		return fmt.Errorf("%w: refresh %s", ErrPositionNotFound, at)
	}
	if node, isNode := group.nodes[at]; isNode {
		if _, err := g.RemoveAt(at); err != nil {
			return err
		}
		node.Invalidate()
		return g.AddNode(at, node)
	}

	grid, _ := group.GridAt(at)
	connector := grid.connectors[at]
	if _, err := g.RemoveAt(at); err != nil {
		return err
	}
	connector.Invalidate()
	return g.AddConnector(at, connector)
}

// neighborGroups lists the distinct Groups adjacent to at, in direction order.
func (g *Graph[C, N]) neighborGroups(at pos.Pos) []GroupID {
	var ids []GroupID
	for _, d := range pos.Dirs {
		if id, ok := g.positions[at.Offset(d)]; ok && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (g *Graph[C, N]) nextID() GroupID {
	g.lastID++
	return g.lastID
}
