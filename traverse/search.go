// SPDX-License-Identifier: MIT

package traverse

import "github.com/katalvlaran/voxnet/pos"

// Search runs a breadth-first fill over n from root.
// Positions for which skip returns true are never entered; every position
// entered is marked in visited and passed to reached in visit order.
// The root itself must be a member and not skipped, otherwise nothing is reached.
func Search(n Node, root pos.Pos, visited map[pos.Pos]struct{}, skip func(pos.Pos) bool, reached func(pos.Pos)) {
	if !n.Contains(root) || skip(root) {
		return
	}
	if _, seen := visited[root]; seen {
		return
	}
	queue := []pos.Pos{root}
	visited[root] = struct{}{}
	for qi := 0; qi < len(queue); qi++ {
		cur := queue[qi]
		reached(cur)
		for _, d := range pos.Dirs {
			next := cur.Offset(d)
			if _, seen := visited[next]; seen || skip(next) {
				continue
			}
			if !n.Contains(next) || !n.Linked(cur, d, next) {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}
}
