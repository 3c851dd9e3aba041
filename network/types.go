// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for network operations.
var (
	// ErrPositionOccupied indicates an insertion at an already placed position.
	ErrPositionOccupied = errors.New("network: position already occupied")

	// ErrPositionNotFound indicates an operation on a position that is not placed.
	ErrPositionNotFound = errors.New("network: position not found")

	// ErrNotTouching indicates a connector insertion with no occupied neighbour.
	ErrNotTouching = errors.New("network: position would not be touching the group")

	// ErrInvariant is wrapped by panics raised on internal consistency failures.
	ErrInvariant = errors.New("network: internal invariant violated")
)

// invariant panics with an error wrapping ErrInvariant.
func invariant(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...)))
}

// Kind tags the variant held by an Entry.
type Kind uint8

const (
	// KindNode marks an endpoint.
	KindNode Kind = iota + 1
	// KindConnector marks a connector segment.
	KindConnector
)

// String returns "node" or "connector".
func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindConnector:
		return "connector"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Entry is a removed cell: either a node or a connector, never both.
type Entry[C, N any] struct {
	Kind      Kind
	Node      N
	Connector C
}

// NodeEntry tags n as a removed node.
func NodeEntry[C, N any](n N) Entry[C, N] {
	return Entry[C, N]{Kind: KindNode, Node: n}
}

// ConnectorEntry tags c as a removed connector.
func ConnectorEntry[C, N any](c C) Entry[C, N] {
	return Entry[C, N]{Kind: KindConnector, Connector: c}
}

// GridID identifies a Grid inside its owning Group.
type GridID uuid.UUID

// String returns the canonical UUID text.
func (id GridID) String() string {
	return uuid.UUID(id).String()
}

// GroupID identifies a Group inside its Graph. IDs are never reused.
type GroupID uint64
