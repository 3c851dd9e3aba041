// SPDX-License-Identifier: MIT

package world

import (
	"errors"
	"runtime"

	"go.uber.org/zap"

	"github.com/katalvlaran/voxnet/network"
)

// ErrUnknownWorld indicates the named world has not been loaded.
var ErrUnknownWorld = errors.New("world: unknown world")

// Option configures a Registry.
type Option func(*Options)

// Options holds Registry configuration.
type Options struct {
	// Logger receives world lifecycle events and tick failures.
	Logger *zap.Logger
	// Concurrency bounds how many worlds Tick visits at once (>= 1).
	Concurrency int
	// GraphOptions, if set, supplies the options for each new world's Graph.
	GraphOptions func(world string) []network.Option
	// OnUnload, if set, runs after a world is unloaded.
	OnUnload func(world string)
}

// DefaultOptions returns a no-op logger and GOMAXPROCS concurrency.
func DefaultOptions() Options {
	return Options{
		Logger:      zap.NewNop(),
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

// WithLogger sets the Registry logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithConcurrency bounds parallel world visits in Tick. Values < 1 are ignored.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.Concurrency = n
		}
	}
}

// WithGraphOptions sets the per-world Graph option factory.
func WithGraphOptions(fn func(world string) []network.Option) Option {
	return func(o *Options) { o.GraphOptions = fn }
}

// WithOnUnload sets a hook run after each Unload.
func WithOnUnload(fn func(world string)) Option {
	return func(o *Options) { o.OnUnload = fn }
}
