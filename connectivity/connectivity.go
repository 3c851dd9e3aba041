// SPDX-License-Identifier: MIT

package connectivity

import (
	"math/bits"
	"strings"

	"github.com/katalvlaran/voxnet/pos"
)

// Connectable is implemented by endpoints and connectors alike.
type Connectable interface {
	// Connects reports whether the side facing d participates in the network.
	Connects(d pos.Dir) bool
}

// Bits is a six-bit side mask, one bit per pos.Dir.
type Bits uint8

const (
	// None connects on no side.
	None Bits = 0
	// All connects on every side.
	All Bits = 1<<pos.Count - 1
)

// BitsOf builds a mask from the given directions.
func BitsOf(dirs ...pos.Dir) Bits {
	var b Bits
	for _, d := range dirs {
		b = b.Set(d)
	}
	return b
}

// Of computes the mask of c by asking every side once.
func Of(c Connectable) Bits {
	var b Bits
	for _, d := range pos.Dirs {
		if c.Connects(d) {
			b = b.Set(d)
		}
	}
	return b
}

// Has reports whether side d is set.
func (b Bits) Has(d pos.Dir) bool { return b&(1<<d) != 0 }

// Set returns b with side d set.
func (b Bits) Set(d pos.Dir) Bits { return b | 1<<d }

// Clear returns b with side d cleared.
func (b Bits) Clear(d pos.Dir) Bits { return b &^ (1 << d) }

// Toggle returns b with side d flipped.
func (b Bits) Toggle(d pos.Dir) Bits { return b ^ 1<<d }

// Count returns the number of connecting sides.
func (b Bits) Count() int { return bits.OnesCount8(uint8(b & All)) }

// Connects makes a static mask usable as a Connectable.
func (b Bits) Connects(d pos.Dir) bool { return b.Has(d) }

// String lists the connecting sides, e.g. "west|east", or "none".
func (b Bits) String() string {
	if b&All == None {
		return "none"
	}
	parts := make([]string, 0, pos.Count)
	for _, d := range pos.Dirs {
		if b.Has(d) {
			parts = append(parts, d.String())
		}
	}
	return strings.Join(parts, "|")
}

// Cache owns one Connectable and its memoized side mask.
type Cache[T Connectable] struct {
	value T
	bits  Bits
}

// NewCache wraps value and computes its mask immediately.
func NewCache[T Connectable](value T) *Cache[T] {
	return &Cache[T]{value: value, bits: Of(value)}
}

// Value returns the wrapped entity.
func (c *Cache[T]) Value() T { return c.value }

// Connects answers from the memoized mask.
func (c *Cache[T]) Connects(d pos.Dir) bool { return c.bits.Has(d) }

// Bits returns the memoized mask.
func (c *Cache[T]) Bits() Bits { return c.bits }

// Invalidate recomputes the mask from the wrapped entity.
// A Cache that is placed in a network must not be invalidated in place:
// remove the cell first and insert it again afterwards, or use
// network.Graph.Refresh, which does both.
func (c *Cache[T]) Invalidate() {
	c.bits = Of(c.value)
}
