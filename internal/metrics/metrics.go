// Package metrics exposes Prometheus counters for the lab's write paths.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ssclab"

type Metrics struct {
	registry *prometheus.Registry

	winsLogged          *prometheus.CounterVec
	activations         *prometheus.CounterVec
	deletions           *prometheus.CounterVec
	undos               *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
}

// New registers the collectors on a private registry so several instances can coexist.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		winsLogged: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wins_logged_total",
			Help:      "Wins logged, by source (experiment or standalone).",
		}, []string{"source"}),
		activations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activation_transitions_total",
			Help:      "Activation state transitions, by kind.",
		}, []string{"transition"}),
		deletions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletions_total",
			Help:      "Deleted entities, by kind.",
		}, []string{"kind"}),
		undos: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "undo_requests_total",
			Help:      "Undo requests, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		persistenceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Failed store writes, by operation.",
		}, []string{"operation"}),
	}
}

func (metrics *Metrics) Registry() *prometheus.Registry {
	return metrics.registry
}

func (metrics *Metrics) WinLogged(source string) {
	metrics.winsLogged.WithLabelValues(source).Inc()
}

func (metrics *Metrics) Activation(transition string) {
	metrics.activations.WithLabelValues(transition).Inc()
}

func (metrics *Metrics) Deleted(kind string) {
	metrics.deletions.WithLabelValues(kind).Inc()
}

func (metrics *Metrics) Undo(kind string, outcome string) {
	metrics.undos.WithLabelValues(kind, outcome).Inc()
}

func (metrics *Metrics) PersistenceFailure(operation string) {
	metrics.persistenceFailures.WithLabelValues(operation).Inc()
}
