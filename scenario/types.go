// SPDX-License-Identifier: MIT

package scenario

import (
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/voxnet/connectivity"
	"github.com/katalvlaran/voxnet/pos"
)

// Sentinel errors.
var (
	// ErrInvalidScenario indicates a scenario failed validation.
	ErrInvalidScenario = errors.New("scenario: invalid scenario")
	// ErrOracleMismatch indicates the graph disagrees with a flood-fill recount.
	ErrOracleMismatch = errors.New("scenario: graph disagrees with recount")
	// ErrExpectation indicates the final state differs from the expected counts.
	ErrExpectation = errors.New("scenario: expectation not met")
)

// Step operations.
const (
	OpNode      = "node"
	OpConnector = "connector"
	OpRemove    = "remove"
)

// DefaultWorld is used when a scenario names no world.
const DefaultWorld = "overworld"

// Scenario is one replayable placement script.
type Scenario struct {
	Name   string     `yaml:"name" validate:"required,max=100"`
	World  string     `yaml:"world" validate:"omitempty,max=100"`
	Layers [][]string `yaml:"layers" validate:"omitempty,dive,min=1"`
	Steps  []Step     `yaml:"steps" validate:"omitempty,dive"`
	Expect *Expect    `yaml:"expect"`
}

// WorldName returns World, or DefaultWorld if unset.
func (s *Scenario) WorldName() string {
	if s.World == "" {
		return DefaultWorld
	}
	return s.World
}

// Step places or removes one cell.
type Step struct {
	Op    string   `yaml:"op" validate:"required,oneof=node connector remove"`
	At    []int32  `yaml:"at" validate:"len=3"`
	Sides []string `yaml:"sides" validate:"omitempty,dive,oneof=all down up north south west east"`
}

// Pos returns the step position.
func (s Step) Pos() pos.Pos {
	return pos.New(s.At[0], s.At[1], s.At[2])
}

// Bits folds Sides into a mask; "all" opens every side.
func (s Step) Bits() connectivity.Bits {
	var b connectivity.Bits
	for _, name := range s.Sides {
		if name == "all" {
			return connectivity.All
		}
		if d, ok := pos.ParseDir(name); ok {
			b = b.Set(d)
		}
	}
	return b
}

// Expect lists final-state counts to check. Nil fields are not checked.
type Expect struct {
	Cells  *int `yaml:"cells" validate:"omitempty,min=0"`
	Groups *int `yaml:"groups" validate:"omitempty,min=0"`
	Grids  *int `yaml:"grids" validate:"omitempty,min=0"`
}

// Cable is the connector placed by scenarios.
type Cable struct {
	Sides connectivity.Bits
}

// Connects reports whether side d is open.
func (c Cable) Connects(d pos.Dir) bool { return c.Sides.Has(d) }

// Machine is the endpoint placed by scenarios.
type Machine struct {
	At pos.Pos
}

// Connects is true on every side.
func (Machine) Connects(pos.Dir) bool { return true }

// Option configures Run.
type Option func(*Options)

// Options holds Run configuration.
type Options struct {
	// Logger receives one debug event per applied step.
	Logger *zap.Logger
	// Verify recounts groups and grids after every step.
	Verify bool
}

// DefaultOptions returns a no-op logger with verification off.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

// WithLogger sets the step logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithVerify turns on flood-fill verification after every step.
func WithVerify(on bool) Option {
	return func(o *Options) { o.Verify = on }
}
