// SPDX-License-Identifier: MIT

package voxelgrid

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/voxnet/pos"
)

// New returns an empty VoxelGrid.
func New() *VoxelGrid {
	return &VoxelGrid{cells: make(map[pos.Pos]Cell)}
}

// FromLayers builds a VoxelGrid from ASCII layers. layers[y][z][x] is the
// character at (x, y, z). Returns ErrEmptyGrid, ErrNonRectangular or
// ErrUnknownCell for malformed input.
// Complexity: O(total characters).
func FromLayers(layers [][]string, opts Options) (*VoxelGrid, error) {
	if len(layers) == 0 {
		return nil, ErrEmptyGrid
	}
	vg := New()
	for y, rows := range layers {
		if len(rows) == 0 || len(rows[0]) == 0 {
			return nil, fmt.Errorf("%w: layer %d", ErrEmptyGrid, y)
		}
		width := len([]rune(rows[0]))
		for z, row := range rows {
			runes := []rune(row)
			if len(runes) != width {
				return nil, fmt.Errorf("%w: layer %d row %d", ErrNonRectangular, y, z)
			}
			for x, r := range runes {
				if strings.ContainsRune(opts.Blank, r) {
					continue
				}
				cell, ok := opts.Legend[r]
				if !ok {
					return nil, fmt.Errorf("%w: %q at (%d,%d,%d)", ErrUnknownCell, r, x, y, z)
				}
				vg.Set(pos.New(int32(x), int32(y), int32(z)), cell)
			}
		}
	}
	return vg, nil
}

// Set places c at p, replacing any previous cell.
func (vg *VoxelGrid) Set(p pos.Pos, c Cell) {
	vg.cells[p] = c
}

// Delete empties p.
func (vg *VoxelGrid) Delete(p pos.Pos) {
	delete(vg.cells, p)
}

// Get returns the cell at p.
func (vg *VoxelGrid) Get(p pos.Pos) (Cell, bool) {
	c, ok := vg.cells[p]
	return c, ok
}

// Len returns the number of placed cells.
func (vg *VoxelGrid) Len() int {
	return len(vg.cells)
}

// Positions returns every placed position, sorted.
func (vg *VoxelGrid) Positions() []pos.Pos {
	out := make([]pos.Pos, 0, len(vg.cells))
	for p := range vg.cells {
		out = append(out, p)
	}
	return pos.Sort(out)
}

// linked reports whether from and to (adjacent, towards d) are both
// connectors with facing connecting sides.
func (vg *VoxelGrid) linked(from pos.Pos, d pos.Dir, to pos.Pos) bool {
	a, okA := vg.cells[from]
	b, okB := vg.cells[to]
	return okA && okB && a.Kind == Connector && b.Kind == Connector &&
		a.Sides.Has(d) && b.Sides.Has(d.Invert())
}
