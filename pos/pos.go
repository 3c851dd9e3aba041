// SPDX-License-Identifier: MIT

package pos

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Packed layout: X in bits 38..63, Z in bits 12..37, Y in bits 0..11.
const (
	bitsX   = 26
	bitsY   = 12
	bitsZ   = 26
	offsetX = bitsY + bitsZ
	offsetZ = bitsY
	maskX   = 1<<bitsX - 1
	maskY   = 1<<bitsY - 1
	maskZ   = 1<<bitsZ - 1
)

// New returns the position (x, y, z).
func New(x, y, z int32) Pos {
	return Pos{X: x, Y: y, Z: z}
}

// Offset returns the neighbouring position one step towards d.
func (p Pos) Offset(d Dir) Pos {
	return p.Add(offsets[d])
}

// Add returns the component-wise sum of p and q.
func (p Pos) Add(q Pos) Pos {
	return Pos{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Neighbors returns the six adjacent positions in direction order.
func (p Pos) Neighbors() [Count]Pos {
	var out [Count]Pos
	for _, d := range Dirs {
		out[d] = p.Offset(d)
	}
	return out
}

// Towards reports the direction from p to an adjacent q.
// ok is false when q is not one of p's six neighbours.
func (p Pos) Towards(q Pos) (d Dir, ok bool) {
	for _, d := range Dirs {
		if p.Offset(d) == q {
			return d, true
		}
	}
	return 0, false
}

// String renders the position as "(x,y,z)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Compare orders positions by X, then Y, then Z.
// It returns -1, 0 or +1.
func Compare(a, b Pos) int {
	switch {
	case a.X != b.X:
		return cmpInt32(a.X, b.X)
	case a.Y != b.Y:
		return cmpInt32(a.Y, b.Y)
	default:
		return cmpInt32(a.Z, b.Z)
	}
}

func cmpInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Sort orders ps in place by Compare and returns it.
func Sort(ps []Pos) []Pos {
	slices.SortFunc(ps, Compare)
	return ps
}

// Pack encodes p into a signed 64-bit scalar.
// Returns ErrOutOfRange when X or Z exceed 26 bits or Y exceeds 12 bits (signed).
func (p Pos) Pack() (int64, error) {
	if !fits(p.X, bitsX) || !fits(p.Y, bitsY) || !fits(p.Z, bitsZ) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, p)
	}
	x := int64(p.X) & maskX
	y := int64(p.Y) & maskY
	z := int64(p.Z) & maskZ
	return x<<offsetX | z<<offsetZ | y, nil
}

// Unpack decodes a scalar produced by Pack.
func Unpack(v int64) Pos {
	return Pos{
		X: int32(v >> offsetX),
		Y: int32(v << (64 - bitsY) >> (64 - bitsY)),
		Z: int32(v << (64 - offsetX) >> (64 - bitsZ)),
	}
}

func fits(v int32, bits uint) bool {
	lo := -int32(1) << (bits - 1)
	hi := int32(1)<<(bits-1) - 1
	return v >= lo && v <= hi
}

// Invert returns the opposite direction.
func (d Dir) Invert() Dir {
	return inverse[d]
}

// Offset returns the unit vector of d.
func (d Dir) Offset() Pos {
	return offsets[d]
}

// Valid reports whether d is one of the six directions.
func (d Dir) Valid() bool {
	return d < Count
}

// String returns the lower-case direction name.
func (d Dir) String() string {
	if !d.Valid() {
		return fmt.Sprintf("dir(%d)", uint8(d))
	}
	return names[d]
}

// ParseDir converts a direction name (case-insensitive) back to a Dir.
func ParseDir(s string) (Dir, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range Dirs {
		if names[d] == s {
			return d, true
		}
	}
	return 0, false
}
