package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// RenderCounterName is the name of the menu render counter.
	RenderCounterName = "treemenu_render_total"
)

// IncrementalCounter defines the interface for counters that can be incremented
// for a specific combination of label values.
// Implementations must be safe for concurrent use.
type IncrementalCounter interface {
	Increment(val ...string)
}

// Counter is an IncrementalCounter backed by a prometheus CounterVec.
// Name and Help are kept for reference; the vector holds one series per
// distinct combination of label values.
type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

// Increment adds one to the series identified by the label values.
// Parameters:
//   - val: The label values, in the order the labels were declared.
//
// It panics if the number of values does not match the number of labels.
func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// NewRenderCounter creates the menu render counter and registers it with reg.
// The counter is labeled by menu name and render outcome
// (not_found, active, inactive, error).
// Parameters:
//   - reg: The registry the counter is registered with.
//
// Returns:
//   - IncrementalCounter: The registered counter.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	b := menu.NewBuilder(repo, routes, menu.WithCounter(metric.NewRenderCounter(reg)))
func NewRenderCounter(reg prometheus.Registerer) IncrementalCounter {
	return NewCounterWithRegistry(reg, RenderCounterName,
		"Number of menu renders by menu name and outcome.",
		"menu", "outcome")
}

// NewCounterWithRegistry creates a counter vector and registers it with reg.
// Parameters:
//   - reg: The registry the counter is registered with.
//   - name: The fully qualified metric name.
//   - help: The metric help text.
//   - labels: The label names of the counter.
//
// Returns:
//   - IncrementalCounter: The registered counter.
//
// It panics if a collector with the same name is already registered.
func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) IncrementalCounter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// HandlerFor returns an HTTP handler for serving Prometheus metrics from a custom registry.
// Parameters:
//   - reg: The gatherer whose metrics are exposed.
//
// Returns:
//   - http.Handler: A handler writing the metrics in the Prometheus exposition format.
func HandlerFor(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
