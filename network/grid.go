// SPDX-License-Identifier: MIT

package network

import (
	"golang.org/x/exp/maps"

	"github.com/katalvlaran/voxnet/connectivity"
	"github.com/katalvlaran/voxnet/pos"
	"github.com/katalvlaran/voxnet/traverse"
)

// Grid is a maximal set of mutually reachable, compatible connectors.
//
// Grids are owned by a Group. Values returned by Group.Grids may be read
// freely between mutations; the mutating methods exist for the owning Group
// and for standalone use, and must not be called on a Grid a Group owns.
type Grid[C connectivity.Connectable] struct {
	connectors map[pos.Pos]*connectivity.Cache[C]
	divider    *traverse.Divider
}

func newGrid[C connectivity.Connectable]() *Grid[C] {
	g := &Grid[C]{connectors: make(map[pos.Pos]*connectivity.Cache[C])}
	g.divider = traverse.NewDivider(g)
	return g
}

// SingleConnectorGrid returns a Grid holding exactly one connector.
func SingleConnectorGrid[C connectivity.Connectable](at pos.Pos, connector *connectivity.Cache[C]) *Grid[C] {
	g := newGrid[C]()
	g.connectors[at] = connector
	return g
}

// Contains reports whether a connector sits at p.
func (g *Grid[C]) Contains(p pos.Pos) bool {
	_, ok := g.connectors[p]
	return ok
}

// Connects reports whether the connector at p connects towards d.
func (g *Grid[C]) Connects(p pos.Pos, d pos.Dir) bool {
	c, ok := g.connectors[p]
	return ok && c.Connects(d)
}

// Linked reports whether the connectors at from and to face each other
// with connecting sides.
func (g *Grid[C]) Linked(from pos.Pos, towards pos.Dir, to pos.Pos) bool {
	a, okA := g.connectors[from]
	b, okB := g.connectors[to]
	return okA && okB && a.Connects(towards) && b.Connects(towards.Invert())
}

// CountConnectors returns the number of connectors.
func (g *Grid[C]) CountConnectors() int {
	return len(g.connectors)
}

// Connectors returns a fresh map of position to connector value.
func (g *Grid[C]) Connectors() map[pos.Pos]C {
	out := make(map[pos.Pos]C, len(g.connectors))
	for p, c := range g.connectors {
		out[p] = c.Value()
	}
	return out
}

// ConnectorAt returns the connector at p.
func (g *Grid[C]) ConnectorAt(p pos.Pos) (C, bool) {
	c, ok := g.connectors[p]
	if !ok {
		var zero C
		return zero, false
	}
	return c.Value(), true
}

// Positions returns the connector positions, sorted.
func (g *Grid[C]) Positions() []pos.Pos {
	return sortedKeys(g.connectors)
}

// SampleConnector returns a resident position, the smallest by pos.Compare.
// ok is false for an empty Grid.
func (g *Grid[C]) SampleConnector() (p pos.Pos, ok bool) {
	for q := range g.connectors {
		if !ok || pos.Compare(q, p) < 0 {
			p, ok = q, true
		}
	}
	return p, ok
}

// AddConnector inserts a connector. The caller guarantees it is linked to
// at least one connector already in the Grid.
func (g *Grid[C]) AddConnector(at pos.Pos, connector *connectivity.Cache[C]) {
	g.connectors[at] = connector
}

// MergeWith absorbs every connector of other, which is left empty.
// The caller guarantees the two Grids are linked at at.
func (g *Grid[C]) MergeWith(at pos.Pos, other *Grid[C]) {
	maps.Copy(g.connectors, other.connectors)
	clear(other.connectors)
}

// Remove deletes the connector at at and returns its value.
//
// If the remaining connectors fall apart, the largest fragment stays in g
// and onSplit receives a new Grid for each other fragment, once each.
// Removing a position the Grid does not hold panics with ErrInvariant.
func (g *Grid[C]) Remove(at pos.Pos, onSplit func(*Grid[C])) C {
	if !g.Contains(at) {
		invariant("grid remove of absent connector %s", at)
	}
	if g.isExternal(at) {
		return g.removeFinal(at)
	}

	var classes []*traverse.Class
	best := g.divider.Divide(
		func(exclude func(pos.Pos)) { exclude(at) },
		func(add func(pos.Pos)) {
			for _, d := range pos.Dirs {
				side := at.Offset(d)
				if g.Linked(at, d, side) {
					add(side)
				}
			}
		},
		func(c *traverse.Class) { classes = append(classes, c) },
	)

	for i, class := range classes {
		if i == best {
			continue
		}
		split := newGrid[C]()
		for _, p := range class.Positions() {
			split.connectors[p] = g.connectors[p]
			delete(g.connectors, p)
		}
		onSplit(split)
	}
	return g.removeFinal(at)
}

func (g *Grid[C]) removeFinal(at pos.Pos) C {
	c := g.connectors[at]
	delete(g.connectors, at)
	return c.Value()
}

// isExternal reports whether removing p cannot split the Grid: the Grid
// holds at most one connector, or p has at most one linked neighbour.
func (g *Grid[C]) isExternal(p pos.Pos) bool {
	if len(g.connectors) <= 1 {
		return true
	}
	linked := 0
	for _, d := range pos.Dirs {
		if g.Linked(p, d, p.Offset(d)) {
			linked++
		}
	}
	return linked <= 1
}
