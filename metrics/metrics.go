// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package metrics exports simulation statistics as Prometheus metrics.
//
// A Collector is installed as a circuit observer:
//
//	m := metrics.New(prometheus.DefaultRegisterer)
//	c := logicsim.New("top", logicsim.WithObserver(m))
//
// Sub-circuits run their own passes; install the collector on them too with
// circuitfile.Load options to count them.
//
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/db47h/logicsim"
)

const namespace = "logicsim"

// Collector is a logicsim.Observer that updates Prometheus metrics.
//
type Collector struct {
	Passes      *prometheus.CounterVec // passes by halt reason
	Steps       prometheus.Histogram   // queue items processed per pass
	Diagnostics *prometheus.CounterVec // diagnostics by kind
	Resets      prometheus.Counter     // passes that started with a full reset
}

// New creates the collector metrics and registers them with reg.
// It panics if registration fails.
//
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		Passes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Simulation passes by halt reason.",
		}, []string{"halt"}),
		Steps: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_steps",
			Help:      "Queue items processed per simulation pass.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 11),
		}),
		Diagnostics: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Diagnostics reported by kind.",
		}, []string{"kind"}),
		Resets: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Simulation passes that started with a full reset.",
		}),
	}
}

// Diagnostic implements logicsim.Observer.
//
func (m *Collector) Diagnostic(c *logicsim.Circuit, d logicsim.Diagnostic) {
	m.Diagnostics.WithLabelValues(d.Kind().String()).Inc()
}

// PassDone implements logicsim.Observer.
//
func (m *Collector) PassDone(c *logicsim.Circuit, r *logicsim.PassResult) {
	m.Passes.WithLabelValues(r.Halt.String()).Inc()
	m.Steps.Observe(float64(r.Steps))
	if r.Reset {
		m.Resets.Inc()
	}
}
