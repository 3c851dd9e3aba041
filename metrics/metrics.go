// SPDX-License-Identifier: MIT

package metrics

import (
	"time"

	"github.com/katalvlaran/voxnet/network"
)

// Observer returns a network.Observer that records into r under the
// given world label.
func (r *Registry) Observer(world string) network.Observer {
	return &observer{r: r, world: world}
}

type observer struct {
	r     *Registry
	world string
}

// Inserted records a placement; touched > 1 counts touched-1 merges.
func (o *observer) Inserted(kind network.Kind, touched int, elapsed time.Duration) {
	o.r.InsertsTotal.WithLabelValues(o.world, kind.String()).Inc()
	o.r.MutationDuration.WithLabelValues(o.world, "insert").Observe(elapsed.Seconds())
	switch {
	case touched == 0:
		o.r.GroupsCreated.WithLabelValues(o.world).Inc()
	case touched > 1:
		o.r.GroupMerges.WithLabelValues(o.world).Add(float64(touched - 1))
	}
}

func (o *observer) Removed(kind network.Kind, splits int, elapsed time.Duration) {
	o.r.RemovalsTotal.WithLabelValues(o.world, kind.String()).Inc()
	o.r.MutationDuration.WithLabelValues(o.world, "remove").Observe(elapsed.Seconds())
	if splits > 0 {
		o.r.GroupSplits.WithLabelValues(o.world).Add(float64(splits))
	}
}

func (o *observer) Groups(total int) {
	o.r.GroupsLive.WithLabelValues(o.world).Set(float64(total))
}

// Forget drops every series carrying the given world label, e.g. after the
// world is unloaded.
func (r *Registry) Forget(world string) {
	labels := map[string]string{"world": world}
	r.InsertsTotal.DeletePartialMatch(labels)
	r.RemovalsTotal.DeletePartialMatch(labels)
	r.GroupsCreated.DeletePartialMatch(labels)
	r.GroupMerges.DeletePartialMatch(labels)
	r.GroupSplits.DeletePartialMatch(labels)
	r.MutationDuration.DeletePartialMatch(labels)
	r.GroupsLive.DeletePartialMatch(labels)
}
