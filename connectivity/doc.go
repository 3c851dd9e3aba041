// SPDX-License-Identifier: MIT

// Package connectivity wraps placed network entities with a memoized
// per-side connectivity mask.
//
// A Connectable reports, per direction, whether that side takes part in
// the network. Cache stores the six answers as a Bits mask so that the
// engine never re-queries the entity during traversals. The mask is
// recomputed only when the owner calls Invalidate; a Cache never polls.
//
// Bits is itself a Connectable, which makes it the natural value for
// static side masks in tests and scenario files.
package connectivity
