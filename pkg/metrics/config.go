package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds configuration for metrics collection.
type Config struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool

	// Registry is the Prometheus registerer to use. If nil, uses
	// prometheus.DefaultRegisterer via the package DefaultRegistry.
	Registry prometheus.Registerer
}

// DefaultConfig returns a default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Registry: prometheus.DefaultRegisterer,
	}
}

var (
	registriesMu sync.Mutex
	registries   = map[prometheus.Registerer]*Registry{}
)

// Resolve returns the Registry instance matching the configuration: the
// package default when no custom registerer is set, otherwise a Registry
// bound to the custom registerer. Registries are cached per registerer so
// several components configured with the same registerer share one instance
// instead of colliding on metric registration.
func (c Config) Resolve() *Registry {
	if c.Registry == nil || c.Registry == prometheus.DefaultRegisterer {
		return DefaultRegistry
	}

	registriesMu.Lock()
	defer registriesMu.Unlock()
	if r, ok := registries[c.Registry]; ok {
		return r
	}
	r := NewRegistry(c.Registry)
	registries[c.Registry] = r
	return r
}
