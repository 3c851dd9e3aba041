// SPDX-License-Identifier: MIT

// Package pos defines the integer voxel coordinate and the six axis-aligned
// directions used by every other voxnet package.
//
// What:
//
//   - Pos is an immutable (X, Y, Z) triple. It is comparable, so it is used
//     directly as a map key; equality is structural.
//   - Dir enumerates the six neighbours in a fixed order:
//     Down, Up, North, South, West, East. Every traversal in voxnet walks
//     directions in this order, which is what makes tie-breaks deterministic.
//   - Pack/Unpack convert a Pos to and from a signed 64-bit scalar
//     (26 bits X, 12 bits Y, 26 bits Z) for callers that keep packed indices.
//
// Complexity:
//
//   - Offset, Invert, Compare: O(1).
//   - Sort: O(n log n).
//
// Errors:
//
//   - ErrOutOfRange: a coordinate does not fit the packed layout.
package pos
