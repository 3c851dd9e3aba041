// SPDX-License-Identifier: MIT

package world

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/voxnet/connectivity"
	"github.com/katalvlaran/voxnet/network"
	"github.com/katalvlaran/voxnet/pos"
)

// world is one loaded Graph and the lock that serializes access to it.
// unloaded is set under mu once the world has left the Registry.
type world[C, N connectivity.Connectable] struct {
	mu       sync.Mutex
	graph    *network.Graph[C, N]
	unloaded bool
}

// Registry maps world names to their Graphs.
type Registry[C, N connectivity.Connectable] struct {
	mu     sync.RWMutex // guards worlds
	worlds map[string]*world[C, N]
	opts   Options
}

// NewRegistry returns an empty Registry.
func NewRegistry[C, N connectivity.Connectable](opts ...Option) *Registry[C, N] {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry[C, N]{
		worlds: make(map[string]*world[C, N]),
		opts:   o,
	}
}

// load returns the named world, creating it on first use.
func (r *Registry[C, N]) load(name string) *world[C, N] {
	r.mu.RLock()
	w, ok := r.worlds[name]
	r.mu.RUnlock()
	if ok {
		return w
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok = r.worlds[name]; ok {
		return w
	}
	var gopts []network.Option
	if r.opts.GraphOptions != nil {
		gopts = r.opts.GraphOptions(name)
	}
	w = &world[C, N]{graph: network.NewGraph[C, N](gopts...)}
	r.worlds[name] = w
	r.opts.Logger.Info("world loaded", zap.String("world", name))
	return w
}

func (r *Registry[C, N]) lookup(name string) (*world[C, N], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.worlds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorld, name)
	}
	return w, nil
}

// With runs fn on the named world's Graph under that world's lock,
// loading the world if needed. fn must not retain the Graph.
// If the world is unloaded while With waits for the lock, a fresh world
// is loaded under the same name.
func (r *Registry[C, N]) With(name string, fn func(*network.Graph[C, N]) error) error {
	for {
		w := r.load(name)
		w.mu.Lock()
		if w.unloaded {
			w.mu.Unlock()
			continue
		}
		defer w.mu.Unlock()
		return fn(w.graph)
	}
}

// RegisterNode places an endpoint in the named world.
func (r *Registry[C, N]) RegisterNode(name string, at pos.Pos, node *connectivity.Cache[N]) error {
	return r.With(name, func(g *network.Graph[C, N]) error {
		return g.AddNode(at, node)
	})
}

// RegisterConnector places a connector in the named world.
func (r *Registry[C, N]) RegisterConnector(name string, at pos.Pos, connector *connectivity.Cache[C]) error {
	return r.With(name, func(g *network.Graph[C, N]) error {
		return g.AddConnector(at, connector)
	})
}

// Remove deletes whatever is placed at at in the named world.
// Returns ErrUnknownWorld if the world is not loaded.
func (r *Registry[C, N]) Remove(name string, at pos.Pos) (network.Entry[C, N], error) {
	w, err := r.lookup(name)
	if err != nil {
		return network.Entry[C, N]{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.unloaded {
		return network.Entry[C, N]{}, fmt.Errorf("%w: %q", ErrUnknownWorld, name)
	}
	return w.graph.RemoveAt(at)
}

// Unload drops the named world and its Graph.
// It waits for calls already holding the world to finish; OnUnload runs
// after them, still under the world's lock, so nothing observes the world
// once the hook has started.
// Returns ErrUnknownWorld if the world is not loaded.
func (r *Registry[C, N]) Unload(name string) error {
	r.mu.Lock()
	w, ok := r.worlds[name]
	delete(r.worlds, name)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWorld, name)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.unloaded = true
	r.opts.Logger.Info("world unloaded", zap.String("world", name))
	if r.opts.OnUnload != nil {
		r.opts.OnUnload(name)
	}
	return nil
}

// Worlds returns the loaded world names in ascending order.
func (r *Registry[C, N]) Worlds() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.worlds))
	for name := range r.worlds {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Visitor is called by Tick once per Group.
type Visitor[C, N connectivity.Connectable] func(ctx context.Context, world string, id network.GroupID, group *network.Group[C, N]) error

// Tick calls visit for every Group of every loaded world, in GroupID order
// within a world. Worlds run in parallel up to the configured concurrency;
// one world's Groups are visited sequentially under its lock.
//
// The first error returned by visit cancels the remaining visits and is
// returned. Tick also stops when ctx is done.
func (r *Registry[C, N]) Tick(ctx context.Context, visit Visitor[C, N]) error {
	r.mu.RLock()
	snapshot := make(map[string]*world[C, N], len(r.worlds))
	for name, w := range r.worlds {
		snapshot[name] = w
	}
	r.mu.RUnlock()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.opts.Concurrency)
	for name, w := range snapshot {
		name, w := name, w
		eg.Go(func() error {
			w.mu.Lock()
			defer w.mu.Unlock()
			if w.unloaded {
				return nil
			}
			for _, id := range w.graph.GroupIDs() {
				if err := ctx.Err(); err != nil {
					return err
				}
				gr, _ := w.graph.Group(id)
				if err := visit(ctx, name, id, gr); err != nil {
					r.opts.Logger.Error("tick failed",
						zap.String("world", name),
						zap.Uint64("group", uint64(id)),
						zap.Error(err))
					return fmt.Errorf("world %q group %d: %w", name, id, err)
				}
			}
			return nil
		})
	}
	return eg.Wait()
}
