// Package metrics holds the Prometheus instruments for org chart operations.
// Instruments live on a private registry so several services (and tests) can
// coexist in one process.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Operation label values.
const (
	OpAdd    = "add"
	OpMove   = "move"
	OpRemove = "remove"
	OpCount  = "count"
	OpPrint  = "print"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultHit   = "hit"
	ResultMiss  = "miss"
)

var operations = []string{OpAdd, OpMove, OpRemove, OpCount, OpPrint}

// Metrics groups the instruments recorded by the application service.
type Metrics struct {
	registry      *prometheus.Registry
	operations    *prometheus.CounterVec
	employees     prometheus.Gauge
	cacheRequests *prometheus.CounterVec
}

// New creates the instruments and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orgchart",
			Name:      "operations_total",
			Help:      "Org chart operations by operation and result.",
		}, []string{"operation", "result"}),
		employees: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orgchart",
			Name:      "employees",
			Help:      "Number of tracked employees.",
		}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orgchart",
			Name:      "count_cache_requests_total",
			Help:      "Report count lookups by cache result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(m.operations, m.employees, m.cacheRequests)

	// Every series starts at 0 so the first failure shows up as a rate.
	for _, op := range operations {
		m.operations.WithLabelValues(op, ResultOK).Add(0)
		m.operations.WithLabelValues(op, ResultError).Add(0)
	}
	m.cacheRequests.WithLabelValues(ResultHit).Add(0)
	m.cacheRequests.WithLabelValues(ResultMiss).Add(0)
	return m
}

// ObserveOperation counts one call of op, classified by err.
func (m *Metrics) ObserveOperation(op string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.operations.WithLabelValues(op, result).Inc()
}

// SetEmployees records the current headcount.
func (m *Metrics) SetEmployees(n int) {
	if m == nil {
		return
	}
	m.employees.Set(float64(n))
}

// ObserveCache counts one count-cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheRequests.WithLabelValues(ResultHit).Inc()
		return
	}
	m.cacheRequests.WithLabelValues(ResultMiss).Inc()
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Write renders every metric family in the Prometheus text exposition format.
func (m *Metrics) Write(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
