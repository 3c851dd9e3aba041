// SPDX-License-Identifier: MIT

package traverse

import "github.com/katalvlaran/voxnet/pos"

// Divider colours the connected fragments of a Node. It is reusable.
type Divider struct {
	node     Node
	roots    []pos.Pos
	excluded map[pos.Pos]struct{}
	visited  map[pos.Pos]struct{}
}

// NewDivider binds a Divider to n.
func NewDivider(n Node) *Divider {
	return &Divider{
		node:     n,
		excluded: make(map[pos.Pos]struct{}),
		visited:  make(map[pos.Pos]struct{}),
	}
}

// Divide colours the Node.
//
//  1. removed declares positions excluded from membership for this call.
//  2. roots enumerates the fill's starting positions.
//  3. Each root not yet coloured seeds a new class; the completed class is
//     passed to sink. Empty classes are never emitted.
//
// Returns the emission index of the largest class, the first on ties,
// or -1 when no class was emitted.
func (dv *Divider) Divide(removed func(exclude func(pos.Pos)), roots func(add func(pos.Pos)), sink func(*Class)) int {
	dv.reset()
	removed(func(p pos.Pos) { dv.excluded[p] = struct{}{} })
	roots(func(p pos.Pos) { dv.roots = append(dv.roots, p) })

	skip := func(p pos.Pos) bool {
		_, ok := dv.excluded[p]
		return ok
	}

	best, bestLen, color := -1, 0, 0
	for _, root := range dv.roots {
		if _, seen := dv.visited[root]; seen {
			continue
		}
		class := newClass()
		Search(dv.node, root, dv.visited, skip, class.add)
		if class.Len() == 0 {
			continue
		}
		if class.Len() > bestLen {
			best, bestLen = color, class.Len()
		}
		sink(class)
		color++
	}
	return best
}

// Visited returns how many positions the last Divide call coloured.
func (dv *Divider) Visited() int {
	return len(dv.visited)
}

func (dv *Divider) reset() {
	dv.roots = dv.roots[:0]
	clear(dv.excluded)
	clear(dv.visited)
}
