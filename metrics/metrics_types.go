// SPDX-License-Identifier: MIT

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the network mutation metrics.
type Registry struct {
	InsertsTotal     *prometheus.CounterVec
	RemovalsTotal    *prometheus.CounterVec
	GroupsCreated    *prometheus.CounterVec
	GroupMerges      *prometheus.CounterVec
	GroupSplits      *prometheus.CounterVec
	MutationDuration *prometheus.HistogramVec
	GroupsLive       *prometheus.GaugeVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with every metric initialized.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}
	r.initNetworkMetrics()
	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes every metric in text exposition format to path.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
