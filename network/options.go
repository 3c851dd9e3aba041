// SPDX-License-Identifier: MIT

package network

import (
	"time"

	"go.uber.org/zap"
)

// Observer receives a notification after every successful Graph mutation.
// Implementations must not call back into the Graph.
type Observer interface {
	// Inserted reports a placed cell and how many Groups it touched
	// (0 = new Group, 1 = joined, >1 = merged).
	Inserted(kind Kind, touched int, elapsed time.Duration)
	// Removed reports a removed cell and how many new Groups split off.
	Removed(kind Kind, splits int, elapsed time.Duration)
	// Groups reports the live Group count after the mutation.
	Groups(total int)
}

// NopObserver discards every notification.
type NopObserver struct{}

func (NopObserver) Inserted(Kind, int, time.Duration) {}
func (NopObserver) Removed(Kind, int, time.Duration)  {}
func (NopObserver) Groups(int)                        {}

// Option configures a Graph.
type Option func(*Options)

// Options holds Graph configuration.
type Options struct {
	// Logger receives debug events for group creation, merges and splits.
	Logger *zap.Logger
	// Observer is notified after every mutation.
	Observer Observer
}

// DefaultOptions returns a no-op logger and observer.
func DefaultOptions() Options {
	return Options{
		Logger:   zap.NewNop(),
		Observer: NopObserver{},
	}
}

// WithLogger sets the Graph logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver sets the mutation observer. A nil observer is ignored.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.Observer = obs
		}
	}
}
