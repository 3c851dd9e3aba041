// SPDX-License-Identifier: MIT

package network_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/voxnet/connectivity"
	"github.com/katalvlaran/voxnet/network"
	"github.com/katalvlaran/voxnet/pos"
	"github.com/katalvlaran/voxnet/voxelgrid"
)

func newGraph(t *testing.T, opts ...network.Option) *testGraph {
	t.Helper()
	return network.NewGraph[cable, machine](opts...)
}

func mustValid(t *testing.T, g *testGraph) {
	t.Helper()
	require.NoError(t, g.Validate())
}

func TestGraph_Empty(t *testing.T) {
	g := newGraph(t)
	assert.Zero(t, g.Len())
	assert.Zero(t, g.CountGroups())
	assert.Empty(t, g.GroupIDs())
	_, ok := g.GroupAt(p(0, 0, 0))
	assert.False(t, ok)
	mustValid(t, g)
}

func TestGraph_ConnectorJoinsNodes(t *testing.T) {
	g := newGraph(t)
	require.NoError(t, g.AddNode(p(0, 0, 0), box("left")))
	require.NoError(t, g.AddNode(p(2, 0, 0), box("right")))
	assert.Equal(t, 2, g.CountGroups())

	require.NoError(t, g.AddConnector(p(1, 0, 0), wire("w", allSides)))
	mustValid(t, g)

	require.Equal(t, 1, g.CountGroups())
	gr, ok := g.GroupAt(p(1, 0, 0))
	require.True(t, ok)
	assert.Equal(t, 3, gr.CountBlocks())
	assert.Len(t, gr.Nodes(), 2)
	assert.Equal(t, 1, gr.CountGrids())
}

func TestGraph_MergeKeepsLargest(t *testing.T) {
	g := newGraph(t)
	for x := int32(-1); x >= -3; x-- {
		require.NoError(t, g.AddNode(p(x, 0, 0), box("row")))
	}
	require.NoError(t, g.AddNode(p(0, 1, 0), box("top")))
	require.NoError(t, g.AddNode(p(0, 0, 1), box("side")))
	big, _ := g.GroupIDAt(p(-1, 0, 0))

	require.NoError(t, g.AddConnector(p(0, 0, 0), wire("hub", allSides)))
	mustValid(t, g)

	assert.Equal(t, []network.GroupID{big}, g.GroupIDs())
	for _, q := range []pos.Pos{p(0, 1, 0), p(0, 0, 1), p(0, 0, 0)} {
		id, _ := g.GroupIDAt(q)
		assert.Equal(t, big, id, "position %s", q)
	}
	assert.Equal(t, 6, g.Len())
}

func TestGraph_MergeTieFollowsDirections(t *testing.T) {
	g := newGraph(t)
	require.NoError(t, g.AddNode(p(1, 0, 0), box("east")))
	require.NoError(t, g.AddNode(p(0, 1, 0), box("up")))
	up, _ := g.GroupIDAt(p(0, 1, 0))

	require.NoError(t, g.AddConnector(p(0, 0, 0), wire("hub", allSides)))

	// Up precedes East in direction order, so the newer ID survives.
	assert.Equal(t, []network.GroupID{up}, g.GroupIDs())
}

func TestGraph_MergeJoinsGridsAcrossGroups(t *testing.T) {
	g := newGraph(t)
	require.NoError(t, g.AddConnector(p(0, 0, 0), wire("a", westEast)))
	require.NoError(t, g.AddConnector(p(2, 0, 0), wire("b", westEast)))
	require.NoError(t, g.AddConnector(p(1, 0, 0), wire("c", westEast)))
	mustValid(t, g)

	gr, _ := g.GroupAt(p(0, 0, 0))
	assert.Equal(t, [][]pos.Pos{{p(0, 0, 0), p(1, 0, 0), p(2, 0, 0)}}, gridPartition(gr))
}

func TestGraph_SplitRegistersFreshIDs(t *testing.T) {
	g := newGraph(t)
	for x := int32(0); x < 5; x++ {
		require.NoError(t, g.AddConnector(p(x, 0, 0), wire("c", allSides)))
	}
	orig, _ := g.GroupIDAt(p(0, 0, 0))

	e, err := g.RemoveAt(p(2, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, network.KindConnector, e.Kind)
	mustValid(t, g)

	require.Equal(t, 2, g.CountGroups())
	left, _ := g.GroupIDAt(p(1, 0, 0))
	right, _ := g.GroupIDAt(p(3, 0, 0))
	assert.Equal(t, orig, left)
	assert.Greater(t, right, orig)
	assert.False(t, g.Contains(p(2, 0, 0)))
}

func TestGraph_RemoveDropsEmptyGroup(t *testing.T) {
	g := newGraph(t)
	require.NoError(t, g.AddNode(p(0, 0, 0), box("m")))

	e, err := g.RemoveAt(p(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, network.KindNode, e.Kind)
	assert.Equal(t, "m", e.Node.name)
	assert.Zero(t, g.CountGroups())
	assert.Zero(t, g.Len())
	mustValid(t, g)
}

func TestGraph_Errors(t *testing.T) {
	g := newGraph(t)
	require.NoError(t, g.AddNode(p(0, 0, 0), box("m")))

	err := g.AddNode(p(0, 0, 0), box("again"))
	assert.True(t, errors.Is(err, network.ErrPositionOccupied))
	err = g.AddConnector(p(0, 0, 0), wire("w", allSides))
	assert.True(t, errors.Is(err, network.ErrPositionOccupied))
	_, err = g.RemoveAt(p(1, 0, 0))
	assert.True(t, errors.Is(err, network.ErrPositionNotFound))

	assert.Equal(t, 1, g.Len())
	mustValid(t, g)
}

func TestGraph_InsertRemoveInverse(t *testing.T) {
	g := newGraph(t)
	for x := int32(0); x < 3; x++ {
		require.NoError(t, g.AddConnector(p(x, 0, 0), wire("a", westEast)))
		require.NoError(t, g.AddConnector(p(x, 0, 2), wire("b", westEast)))
	}
	require.NoError(t, g.AddNode(p(1, 1, 1), box("m")))
	groups, grids := graphPartition(g), graphGrids(g)

	for _, c := range []struct {
		at    pos.Pos
		sides connectivity.Bits
	}{
		{p(1, 0, 1), allSides},
		{p(3, 0, 0), westEast},
		{p(1, 1, 0), northSout},
	} {
		require.NoError(t, g.AddConnector(c.at, wire("probe", c.sides)))
		mustValid(t, g)
		_, err := g.RemoveAt(c.at)
		require.NoError(t, err)
		mustValid(t, g)

		assert.Equal(t, groups, graphPartition(g), "groups after probing %s", c.at)
		assert.Equal(t, grids, graphGrids(g), "grids after probing %s", c.at)
	}
}

func TestGraph_Observer(t *testing.T) {
	rec := &recorder{}
	g := newGraph(t, network.WithObserver(rec))

	require.NoError(t, g.AddNode(p(0, 0, 0), box("a")))
	require.NoError(t, g.AddNode(p(2, 0, 0), box("b")))
	require.NoError(t, g.AddConnector(p(1, 0, 0), wire("w", allSides)))
	assert.Equal(t, 1, rec.groups)

	_, err := g.RemoveAt(p(1, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 2}, rec.inserted)
	assert.Equal(t, []int{1}, rec.removed)
	assert.Equal(t, []network.Kind{
		network.KindNode, network.KindNode, network.KindConnector, network.KindConnector,
	}, rec.kinds)
	assert.Equal(t, 2, rec.groups)

	// Rejected mutations are not observed.
	_ = g.AddNode(p(0, 0, 0), box("dup"))
	assert.Len(t, rec.inserted, 3)
}

func TestGraph_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := newGraph(t, network.WithLogger(zap.New(core)))

	require.NoError(t, g.AddNode(p(0, 0, 0), box("a")))
	require.NoError(t, g.AddNode(p(2, 0, 0), box("b")))
	require.NoError(t, g.AddConnector(p(1, 0, 0), wire("w", allSides)))
	_, err := g.RemoveAt(p(1, 0, 0))
	require.NoError(t, err)
	_, err = g.RemoveAt(p(2, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, 2, logs.FilterMessage("group created").Len())
	assert.Equal(t, 1, logs.FilterMessage("groups merged").Len())
	assert.Equal(t, 1, logs.FilterMessage("group split").Len())
	assert.Equal(t, 1, logs.FilterMessage("group dropped").Len())

	merged := logs.FilterMessage("groups merged").All()[0]
	assert.EqualValues(t, 1, merged.ContextMap()["merged"])
}

func TestGraph_NilOptionsIgnored(t *testing.T) {
	g := newGraph(t, network.WithLogger(nil), network.WithObserver(nil))
	require.NoError(t, g.AddNode(p(0, 0, 0), box("a")))
	_, err := g.RemoveAt(p(0, 0, 0))
	require.NoError(t, err)
}

// valve is a connector whose sides can be changed after placement.
type valve struct {
	sides connectivity.Bits
}

func (v *valve) Connects(d pos.Dir) bool { return v.sides.Has(d) }

func TestGraph_Refresh(t *testing.T) {
	g := network.NewGraph[*valve, machine]()
	vg := voxelgrid.New()
	place := func(at pos.Pos, v *valve) {
		t.Helper()
		require.NoError(t, g.AddConnector(at, connectivity.NewCache(v)))
		vg.Set(at, voxelgrid.Cell{Kind: voxelgrid.Connector, Sides: v.sides})
	}
	refresh := func(at pos.Pos, v *valve, sides connectivity.Bits) {
		t.Helper()
		v.sides = sides
		require.NoError(t, g.Refresh(at))
		vg.Set(at, voxelgrid.Cell{Kind: voxelgrid.Connector, Sides: sides})
		require.NoError(t, g.Validate())

		var grids [][]pos.Pos
		for _, gr := range g.Groups() {
			for _, grid := range gr.Grids() {
				grids = append(grids, grid.Positions())
			}
		}
		sortByFirst(grids)
		assert.Equal(t, vg.ConnectorComponents(), grids)
	}

	a := &valve{sides: connectivity.BitsOf(pos.East)}
	b := &valve{sides: connectivity.BitsOf(pos.West)}
	place(p(0, 0, 0), a)
	place(p(1, 0, 0), b)

	refresh(p(0, 0, 0), a, connectivity.None)
	gr, _ := g.GroupAt(p(0, 0, 0))
	assert.Equal(t, 2, gr.CountGrids())
	assert.Equal(t, 1, g.CountGroups(), "adjacency still holds the group")

	refresh(p(0, 0, 0), a, connectivity.BitsOf(pos.East))
	gr, _ = g.GroupAt(p(0, 0, 0))
	assert.Equal(t, 1, gr.CountGrids())

	// Turning the middle of a line breaks its grid in two.
	c := &valve{sides: connectivity.BitsOf(pos.West, pos.East)}
	d := &valve{sides: connectivity.BitsOf(pos.West)}
	b.sides = connectivity.BitsOf(pos.West, pos.East)
	require.NoError(t, g.Refresh(p(1, 0, 0)))
	vg.Set(p(1, 0, 0), voxelgrid.Cell{Kind: voxelgrid.Connector, Sides: b.sides})
	place(p(2, 0, 0), c)
	place(p(3, 0, 0), d)
	refresh(p(2, 0, 0), c, connectivity.BitsOf(pos.North, pos.South))
	gr, _ = g.GroupAt(p(0, 0, 0))
	assert.Equal(t, 3, gr.CountGrids())

	got, ok := gr.GridAt(p(2, 0, 0))
	require.True(t, ok)
	value, _ := got.ConnectorAt(p(2, 0, 0))
	assert.Same(t, c, value, "the same entity stays placed")
}

func TestGraph_RefreshNodeAndErrors(t *testing.T) {
	g := newGraph(t)
	err := g.Refresh(p(0, 0, 0))
	assert.True(t, errors.Is(err, network.ErrPositionNotFound))

	require.NoError(t, g.AddNode(p(0, 0, 0), box("m")))
	require.NoError(t, g.AddConnector(p(1, 0, 0), wire("w", allSides)))
	require.NoError(t, g.Refresh(p(0, 0, 0)))
	mustValid(t, g)

	gr, _ := g.GroupAt(p(0, 0, 0))
	assert.Equal(t, 2, gr.CountBlocks())
	n, ok := gr.NodeAt(p(0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, "m", n.name)
}
