package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Example_basicUsage demonstrates metrics configuration with a custom registry.
func Example_basicUsage() {
	// Create a separate registry to keep these metrics isolated
	registerer := prometheus.NewRegistry()
	config := Config{
		Enabled:  true,
		Registry: registerer,
	}

	registry := config.Resolve()
	registry.TasksExecuted.WithLabelValues("example_queue").Inc()

	families, err := registerer.Gather()
	if err != nil {
		fmt.Println("gather failed:", err)
		return
	}

	for _, family := range families {
		if family.GetName() == "execflow_queue_tasks_executed_total" {
			fmt.Println("found", family.GetName())
		}
	}

	// Output: found execflow_queue_tasks_executed_total
}

// Example_defaultRegistry demonstrates using the package default registry.
func Example_defaultRegistry() {
	config := DefaultConfig()

	registry := config.Resolve()
	fmt.Println(registry == DefaultRegistry)

	// Output: true
}
