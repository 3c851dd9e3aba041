// SPDX-License-Identifier: MIT

package voxelgrid_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxnet/connectivity"
	"github.com/katalvlaran/voxnet/pos"
	"github.com/katalvlaran/voxnet/voxelgrid"
)

func p(x, y, z int32) pos.Pos { return pos.New(x, y, z) }

// TestFromLayers_Errors verifies that FromLayers rejects malformed input.
func TestFromLayers_Errors(t *testing.T) {
	cases := []struct {
		name   string
		layers [][]string
		err    error
	}{
		{"NoLayers", nil, voxelgrid.ErrEmptyGrid},
		{"EmptyLayer", [][]string{{}}, voxelgrid.ErrEmptyGrid},
		{"EmptyRow", [][]string{{""}}, voxelgrid.ErrEmptyGrid},
		{"NonRectangular", [][]string{{"N-", "N"}}, voxelgrid.ErrNonRectangular},
		{"Unknown", [][]string{{"N?"}}, voxelgrid.ErrUnknownCell},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := voxelgrid.FromLayers(tc.layers, voxelgrid.DefaultOptions())
			if !errors.Is(err, tc.err) {
				t.Errorf("FromLayers(%v) error = %v; want %v", tc.layers, err, tc.err)
			}
		})
	}
}

func TestFromLayers_Placement(t *testing.T) {
	vg, err := voxelgrid.FromLayers([][]string{
		{
			"N-.",
			"..|",
		},
		{
			"..:",
			"...",
		},
	}, voxelgrid.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 4, vg.Len())

	c, ok := vg.Get(p(0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, voxelgrid.Node, c.Kind)

	c, ok = vg.Get(p(1, 0, 0))
	require.True(t, ok)
	assert.Equal(t, connectivity.BitsOf(pos.West, pos.East), c.Sides)

	c, ok = vg.Get(p(2, 0, 1))
	require.True(t, ok)
	assert.Equal(t, connectivity.BitsOf(pos.North, pos.South), c.Sides)

	c, ok = vg.Get(p(2, 1, 0))
	require.True(t, ok)
	assert.Equal(t, connectivity.BitsOf(pos.Down, pos.Up), c.Sides)

	_, ok = vg.Get(p(2, 0, 0))
	assert.False(t, ok)
}

func TestCellConnects(t *testing.T) {
	node := voxelgrid.Cell{Kind: voxelgrid.Node}
	cable := voxelgrid.Cell{Kind: voxelgrid.Connector, Sides: connectivity.BitsOf(pos.Up)}
	for _, d := range pos.Dirs {
		assert.True(t, node.Connects(d), "nodes connect on %s", d)
		assert.Equal(t, d == pos.Up, cable.Connects(d))
	}
}

// TestConnectedComponents_Adjacency: two islands, joined only diagonally.
//
//	N - . .
//	. . + N
func TestConnectedComponents_Adjacency(t *testing.T) {
	vg, err := voxelgrid.FromLayers([][]string{{
		"N-..",
		"..+N",
	}}, voxelgrid.DefaultOptions())
	require.NoError(t, err)

	want := [][]pos.Pos{
		{p(0, 0, 0), p(1, 0, 0)},
		{p(2, 0, 1), p(3, 0, 1)},
	}
	if diff := cmp.Diff(want, vg.ConnectedComponents()); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
}

// TestConnectorComponents_Compatibility: adjacent connectors whose facing
// sides do not both connect stay apart; nodes never join connectors.
//
//	- - | + N +
func TestConnectorComponents_Compatibility(t *testing.T) {
	vg, err := voxelgrid.FromLayers([][]string{{"--|+N+"}}, voxelgrid.DefaultOptions())
	require.NoError(t, err)

	want := [][]pos.Pos{
		{p(0, 0, 0), p(1, 0, 0)},
		{p(2, 0, 0)},
		{p(3, 0, 0)},
		{p(5, 0, 0)},
	}
	if diff := cmp.Diff(want, vg.ConnectorComponents()); diff != "" {
		t.Fatalf("connector components mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, vg.ConnectedComponents(), 1)
}

func TestSetDelete(t *testing.T) {
	vg := voxelgrid.New()
	vg.Set(p(0, 0, 0), voxelgrid.Cell{Kind: voxelgrid.Node})
	vg.Set(p(0, 1, 0), voxelgrid.Cell{Kind: voxelgrid.Node})
	assert.Len(t, vg.ConnectedComponents(), 1)

	vg.Delete(p(0, 0, 0))
	assert.Equal(t, []pos.Pos{p(0, 1, 0)}, vg.Positions())
	assert.Empty(t, vg.ConnectorComponents())
}
