// SPDX-License-Identifier: MIT

// Package voxelgrid is a plain sparse voxel map with full-rescan
// connectivity analysis. It knows nothing about incremental maintenance:
// every query walks the whole map, which makes it the reference the
// incremental engine in package network is checked against.
//
// What:
//
//   - VoxelGrid stores Cells (node or connector with a side mask) by pos.Pos.
//   - FromLayers builds a VoxelGrid from ASCII layers, one []string per Y
//     level, rows along Z and columns along X.
//   - ConnectedComponents groups all cells by plain adjacency.
//   - ConnectorComponents groups connectors linked by facing connecting sides.
//
// Complexity:
//
//   - ConnectedComponents, ConnectorComponents: O(V·d log V), V = cells, d = 6.
//   - FromLayers: O(total characters).
//
// Errors:
//
//   - ErrEmptyGrid: no layers, or a layer with no rows or no columns.
//   - ErrNonRectangular: rows of one layer differ in length.
//   - ErrUnknownCell: a character missing from the legend.
package voxelgrid
