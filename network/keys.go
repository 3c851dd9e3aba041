// SPDX-License-Identifier: MIT

package network

import "github.com/katalvlaran/voxnet/pos"

// sortedKeys returns the keys of m ordered by pos.Compare.
func sortedKeys[V any](m map[pos.Pos]V) []pos.Pos {
	out := make([]pos.Pos, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	return pos.Sort(out)
}
