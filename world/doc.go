// SPDX-License-Identifier: MIT

// Package world keeps one network.Graph per world (dimension) behind a
// goroutine-safe Registry.
//
// A network.Graph is not safe for concurrent use. The Registry serializes
// every mutation of a world's Graph under that world's lock, while
// different worlds proceed independently. Tick visits the Groups of every
// loaded world, running worlds in parallel up to the configured limit.
//
// Lock order is Registry -> world; a world lock is never held while the
// Registry lock is taken.
package world
