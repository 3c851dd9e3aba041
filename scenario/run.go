// SPDX-License-Identifier: MIT

package scenario

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/katalvlaran/voxnet/connectivity"
	"github.com/katalvlaran/voxnet/network"
	"github.com/katalvlaran/voxnet/pos"
	"github.com/katalvlaran/voxnet/voxelgrid"
)

// Graph is the network type scenarios replay onto.
type Graph = network.Graph[Cable, Machine]

// Run replays s onto g and returns a summary of the final state.
//
// Layer cells are placed first in position order, then the steps in file
// order. The first failing step aborts the run; its index is in the error.
// With verification on, a mismatch against the flood-fill recount returns
// ErrOracleMismatch. Expectations are not checked here; see Report.Check.
// s is validated first, so scenarios built in code need not go through Parse.
func Run(s *Scenario, g *Graph, opts ...Option) (*Report, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	oracle := voxelgrid.New()
	if len(s.Layers) > 0 {
		vg, err := voxelgrid.FromLayers(s.Layers, voxelgrid.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("%w: layers: %v", ErrInvalidScenario, err)
		}
		for _, p := range vg.Positions() {
			cell, _ := vg.Get(p)
			if err := place(g, oracle, p, cell); err != nil {
				return nil, fmt.Errorf("layer cell %s: %w", p, err)
			}
		}
		o.Logger.Debug("layers placed", zap.String("scenario", s.Name), zap.Int("cells", vg.Len()))
		if o.Verify {
			if err := verify(g, oracle); err != nil {
				return nil, fmt.Errorf("after layers: %w", err)
			}
		}
	}

	for i, st := range s.Steps {
		if err := apply(g, oracle, st); err != nil {
			return nil, fmt.Errorf("step %d (%s at %v): %w", i, st.Op, st.At, err)
		}
		o.Logger.Debug("step applied",
			zap.String("scenario", s.Name),
			zap.Int("step", i),
			zap.String("op", st.Op),
			zap.Stringer("pos", st.Pos()),
			zap.Int("groups", g.CountGroups()))
		if o.Verify {
			if err := verify(g, oracle); err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
		}
	}
	return Summarize(s.Name, g), nil
}

func apply(g *Graph, oracle *voxelgrid.VoxelGrid, st Step) error {
	at := st.Pos()
	switch st.Op {
	case OpNode:
		return place(g, oracle, at, voxelgrid.Cell{Kind: voxelgrid.Node, Sides: connectivity.All})
	case OpConnector:
		return place(g, oracle, at, voxelgrid.Cell{Kind: voxelgrid.Connector, Sides: st.Bits()})
	case OpRemove:
		if _, err := g.RemoveAt(at); err != nil {
			return err
		}
		oracle.Delete(at)
		return nil
	}
	return fmt.Errorf("%w: unknown op %q", ErrInvalidScenario, st.Op)
}

func place(g *Graph, oracle *voxelgrid.VoxelGrid, at pos.Pos, cell voxelgrid.Cell) error {
	var err error
	if cell.Kind == voxelgrid.Node {
		err = g.AddNode(at, connectivity.NewCache(Machine{At: at}))
	} else {
		err = g.AddConnector(at, connectivity.NewCache(Cable{Sides: cell.Sides}))
	}
	if err != nil {
		return err
	}
	oracle.Set(at, cell)
	return nil
}

// verify compares g's Groups and Grids with a flood-fill recount of oracle.
func verify(g *Graph, oracle *voxelgrid.VoxelGrid) error {
	if err := g.Validate(); err != nil {
		return err
	}

	var groups, grids [][]pos.Pos
	for _, gr := range g.Groups() {
		groups = append(groups, pos.Sort(gr.Blocks()))
		for _, grid := range gr.Grids() {
			grids = append(grids, grid.Positions())
		}
	}
	byFirst := func(a, b []pos.Pos) int { return pos.Compare(a[0], b[0]) }
	slices.SortFunc(groups, byFirst)
	slices.SortFunc(grids, byFirst)

	if d := cmp.Diff(oracle.ConnectedComponents(), groups); d != "" {
		return fmt.Errorf("%w: groups (-recount +graph):\n%s", ErrOracleMismatch, d)
	}
	if d := cmp.Diff(oracle.ConnectorComponents(), grids); d != "" {
		return fmt.Errorf("%w: grids (-recount +graph):\n%s", ErrOracleMismatch, d)
	}
	return nil
}
