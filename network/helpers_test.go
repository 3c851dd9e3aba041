// SPDX-License-Identifier: MIT

package network_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxnet/connectivity"
	"github.com/katalvlaran/voxnet/network"
	"github.com/katalvlaran/voxnet/pos"
)

// cable is a connector fixture with a fixed side mask.
type cable struct {
	name  string
	sides connectivity.Bits
}

func (c cable) Connects(d pos.Dir) bool { return c.sides.Has(d) }

// machine is an endpoint fixture.
type machine struct {
	name string
}

func (machine) Connects(pos.Dir) bool { return true }

type (
	testGraph = network.Graph[cable, machine]
	testGroup = network.Group[cable, machine]
)

// Common side masks used across tests.
var (
	allSides  = connectivity.All
	westEast  = connectivity.BitsOf(pos.West, pos.East)
	northSout = connectivity.BitsOf(pos.North, pos.South)
)

func p(x, y, z int32) pos.Pos { return pos.New(x, y, z) }

func wire(name string, sides connectivity.Bits) *connectivity.Cache[cable] {
	return connectivity.NewCache(cable{name: name, sides: sides})
}

func box(name string) *connectivity.Cache[machine] {
	return connectivity.NewCache(machine{name: name})
}

// lineGroup builds a Group of n all-sided connectors along +X from the origin.
func lineGroup(t *testing.T, n int32) *testGroup {
	t.Helper()
	gr := network.SingleConnector[cable, machine](p(0, 0, 0), wire("c0", allSides))
	for x := int32(1); x < n; x++ {
		require.NoError(t, gr.AddConnector(p(x, 0, 0), wire("c", allSides)))
	}
	return gr
}

// gridPartition lists each Grid's sorted positions, ordered by first position.
func gridPartition(gr *testGroup) [][]pos.Pos {
	var out [][]pos.Pos
	for _, g := range gr.Grids() {
		out = append(out, g.Positions())
	}
	return out
}

// graphPartition lists each Group's positions (sorted), ordered by first position.
func graphPartition(g *testGraph) [][]pos.Pos {
	var out [][]pos.Pos
	for _, gr := range g.Groups() {
		out = append(out, pos.Sort(gr.Blocks()))
	}
	sortByFirst(out)
	return out
}

// graphGrids lists every Grid of every Group, ordered by first position.
func graphGrids(g *testGraph) [][]pos.Pos {
	var out [][]pos.Pos
	for _, gr := range g.Groups() {
		out = append(out, gridPartition(gr)...)
	}
	sortByFirst(out)
	return out
}

func sortByFirst(parts [][]pos.Pos) {
	sort.Slice(parts, func(i, j int) bool { return pos.Compare(parts[i][0], parts[j][0]) < 0 })
}

// recorder is an Observer that keeps every notification.
type recorder struct {
	inserted []int
	removed  []int
	kinds    []network.Kind
	groups   int
}

func (r *recorder) Inserted(k network.Kind, touched int, _ time.Duration) {
	r.kinds = append(r.kinds, k)
	r.inserted = append(r.inserted, touched)
}

func (r *recorder) Removed(k network.Kind, splits int, _ time.Duration) {
	r.kinds = append(r.kinds, k)
	r.removed = append(r.removed, splits)
}

func (r *recorder) Groups(total int) { r.groups = total }
