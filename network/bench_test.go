// SPDX-License-Identifier: MIT

package network_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/voxnet/network"
)

// BenchmarkAddConnectorLine measures appending to one long grid.
// Complexity: O(1) per insert.
func BenchmarkAddConnectorLine(b *testing.B) {
	g := network.NewGraph[cable, machine]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := g.AddConnector(p(int32(i), 0, 0), wire("c", allSides)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRemoveSplit measures cutting a 1000-cell line in the middle
// and putting the cell back.
// Complexity: O(n) per cut.
func BenchmarkRemoveSplit(b *testing.B) {
	const n = 1000
	g := network.NewGraph[cable, machine]()
	for x := int32(0); x < n; x++ {
		if err := g.AddConnector(p(x, 0, 0), wire("c", allSides)); err != nil {
			b.Fatalf("setup failed: %v", err)
		}
	}
	mid := p(n/2, 0, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.RemoveAt(mid); err != nil {
			b.Fatal(err)
		}
		if err := g.AddConnector(mid, wire("c", allSides)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRandomWalk toggles random cells in a 16³ box.
func BenchmarkRandomWalk(b *testing.B) {
	const side = 16
	rng := rand.New(rand.NewSource(42))
	g := network.NewGraph[cable, machine]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		at := p(int32(rng.Intn(side)), int32(rng.Intn(side)), int32(rng.Intn(side)))
		if g.Contains(at) {
			_, _ = g.RemoveAt(at)
			continue
		}
		if rng.Intn(4) == 0 {
			_ = g.AddNode(at, box("m"))
			continue
		}
		_ = g.AddConnector(at, wire("c", shapes[1+rng.Intn(len(shapes)-1)]))
	}
}
