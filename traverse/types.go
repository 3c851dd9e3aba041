// SPDX-License-Identifier: MIT

package traverse

import "github.com/katalvlaran/voxnet/pos"

// Node is the voxel structure a flood fill runs over.
type Node interface {
	// Contains reports whether p is a member.
	Contains(p pos.Pos) bool
	// Linked reports whether from and to (to = from.Offset(towards)) are
	// joined by an edge the fill may cross.
	Linked(from pos.Pos, towards pos.Dir, to pos.Pos) bool
}

// Class is one colour produced by Divide: a connected fragment of the Node,
// in discovery order.
type Class struct {
	order []pos.Pos
	set   map[pos.Pos]struct{}
}

func newClass() *Class {
	return &Class{set: make(map[pos.Pos]struct{})}
}

func (c *Class) add(p pos.Pos) {
	c.order = append(c.order, p)
	c.set[p] = struct{}{}
}

// Contains reports whether p belongs to the class.
func (c *Class) Contains(p pos.Pos) bool {
	_, ok := c.set[p]
	return ok
}

// Len returns the number of positions in the class.
func (c *Class) Len() int { return len(c.order) }

// Positions returns the class members in discovery order.
// The slice is owned by the class and must not be modified.
func (c *Class) Positions() []pos.Pos { return c.order }
