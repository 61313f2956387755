package scheduler

import (
	"github.com/vnykmshr/execflow/pkg/metrics"
)

// NewWithMetrics creates a scheduler that records accepted and fired jobs in
// the default metrics registry under the given scheduler name.
func NewWithMetrics(name string) Scheduler {
	return NewWithConfigAndMetrics(Config{}, name, metrics.DefaultConfig())
}

// NewWithConfigAndMetrics creates a scheduler with custom scheduler and
// metrics configuration.
func NewWithConfigAndMetrics(cfg Config, name string, metricsConfig metrics.Config) Scheduler {
	s := NewWithConfig(cfg).(*scheduler)
	if metricsConfig.Enabled {
		s.name = name
		s.registry = metricsConfig.Resolve()
	}
	return s
}
