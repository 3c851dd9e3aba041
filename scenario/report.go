// SPDX-License-Identifier: MIT

package scenario

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/voxnet/network"
)

// Report summarises a Graph after a run.
type Report struct {
	Name   string         `yaml:"name"`
	Cells  int            `yaml:"cells"`
	Groups []GroupSummary `yaml:"groups"`
}

// GroupSummary describes one Group.
type GroupSummary struct {
	ID         network.GroupID `yaml:"id"`
	Nodes      int             `yaml:"nodes"`
	Connectors int             `yaml:"connectors"`
	// Grids lists the connector count of each Grid, in Grid order.
	Grids []int `yaml:"grids,flow"`
}

// Summarize builds a Report from g, Groups in ID order.
func Summarize(name string, g *Graph) *Report {
	r := &Report{Name: name, Cells: g.Len()}
	for _, id := range g.GroupIDs() {
		gr, _ := g.Group(id)
		gs := GroupSummary{
			ID:         id,
			Nodes:      len(gr.Nodes()),
			Connectors: gr.CountBlocks() - len(gr.Nodes()),
		}
		for _, grid := range gr.Grids() {
			gs.Grids = append(gs.Grids, grid.CountConnectors())
		}
		r.Groups = append(r.Groups, gs)
	}
	return r
}

// CountGrids returns the total number of Grids.
func (r *Report) CountGrids() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Grids)
	}
	return n
}

// Check compares the report with e. A nil e always passes.
func (r *Report) Check(e *Expect) error {
	if e == nil {
		return nil
	}
	var diffs []string
	if e.Cells != nil && *e.Cells != r.Cells {
		diffs = append(diffs, fmt.Sprintf("cells = %d, want %d", r.Cells, *e.Cells))
	}
	if e.Groups != nil && *e.Groups != len(r.Groups) {
		diffs = append(diffs, fmt.Sprintf("groups = %d, want %d", len(r.Groups), *e.Groups))
	}
	if e.Grids != nil && *e.Grids != r.CountGrids() {
		diffs = append(diffs, fmt.Sprintf("grids = %d, want %d", r.CountGrids(), *e.Grids))
	}
	if len(diffs) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrExpectation, r.Name, strings.Join(diffs, "; "))
	}
	return nil
}

// WriteText prints a human-readable summary.
func (r *Report) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "scenario %s: %d cells, %d groups, %d grids\n",
		r.Name, r.Cells, len(r.Groups), r.CountGrids())
	if err != nil {
		return err
	}
	for _, g := range r.Groups {
		if _, err := fmt.Fprintf(w, "  group %d: %d nodes, %d connectors, grids %v\n",
			g.ID, g.Nodes, g.Connectors, g.Grids); err != nil {
			return err
		}
	}
	return nil
}
