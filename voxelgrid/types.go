// SPDX-License-Identifier: MIT

package voxelgrid

import (
	"errors"

	"github.com/katalvlaran/voxnet/connectivity"
	"github.com/katalvlaran/voxnet/pos"
)

// Sentinel errors for voxelgrid operations.
var (
	// ErrEmptyGrid indicates the input has no layers, rows or columns.
	ErrEmptyGrid = errors.New("voxelgrid: input must have at least one layer, row and column")
	// ErrNonRectangular indicates rows of differing lengths within a layer.
	ErrNonRectangular = errors.New("voxelgrid: all rows of a layer must have the same length")
	// ErrUnknownCell indicates a character that the legend does not define.
	ErrUnknownCell = errors.New("voxelgrid: unknown cell character")
)

// Kind distinguishes endpoints from connectors.
type Kind uint8

const (
	// Node is an endpoint; it connects on every side.
	Node Kind = iota + 1
	// Connector relays only through its connecting sides.
	Connector
)

// Cell is one placed voxel.
type Cell struct {
	Kind  Kind
	Sides connectivity.Bits
}

// Connects reports whether the cell takes part on side d.
// Nodes take part on every side.
func (c Cell) Connects(d pos.Dir) bool {
	if c.Kind == Node {
		return true
	}
	return c.Sides.Has(d)
}

// Options controls layer parsing.
type Options struct {
	// Legend maps a character to the Cell it places.
	Legend map[rune]Cell
	// Blank lists characters that leave the voxel empty.
	Blank string
}

// DefaultLegend returns the standard characters:
//
//	N  node
//	+  connector, all sides
//	-  connector, west|east
//	|  connector, north|south
//	:  connector, down|up
func DefaultLegend() map[rune]Cell {
	return map[rune]Cell{
		'N': {Kind: Node, Sides: connectivity.All},
		'+': {Kind: Connector, Sides: connectivity.All},
		'-': {Kind: Connector, Sides: connectivity.BitsOf(pos.West, pos.East)},
		'|': {Kind: Connector, Sides: connectivity.BitsOf(pos.North, pos.South)},
		':': {Kind: Connector, Sides: connectivity.BitsOf(pos.Down, pos.Up)},
	}
}

// DefaultOptions returns DefaultLegend with '.' and ' ' as blanks.
func DefaultOptions() Options {
	return Options{
		Legend: DefaultLegend(),
		Blank:  ". ",
	}
}

// VoxelGrid is a sparse map of cells.
type VoxelGrid struct {
	cells map[pos.Pos]Cell
}
