// SPDX-License-Identifier: MIT

package pos

import "errors"

// ErrOutOfRange indicates a coordinate cannot be represented in packed form.
var ErrOutOfRange = errors.New("pos: coordinate out of packable range")

// Pos is a voxel coordinate.
type Pos struct {
	X, Y, Z int32
}

// Dir is one of the six axis-aligned directions.
type Dir uint8

// Directions in enumeration order.
const (
	Down Dir = iota
	Up
	North
	South
	West
	East
)

// Count is the number of directions.
const Count = 6

// Dirs lists every direction in enumeration order.
var Dirs = [Count]Dir{Down, Up, North, South, West, East}

var (
	offsets = [Count]Pos{
		Down:  {0, -1, 0},
		Up:    {0, 1, 0},
		North: {0, 0, -1},
		South: {0, 0, 1},
		West:  {-1, 0, 0},
		East:  {1, 0, 0},
	}
	inverse = [Count]Dir{
		Down:  Up,
		Up:    Down,
		North: South,
		South: North,
		West:  East,
		East:  West,
	}
	names = [Count]string{"down", "up", "north", "south", "west", "east"}
)
