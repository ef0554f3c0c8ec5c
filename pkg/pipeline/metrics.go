// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for pipeline runs. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	runs    prometheus.Counter
	invalid prometheus.Counter

	targets prometheus.Counter
	skipped prometheus.Counter
	dropped prometheus.Counter
	ignored prometheus.Counter

	duration prometheus.Histogram
}

// NewMetrics creates the pipeline collectors and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer. Registering twice on the
// same registry panics; use DefaultMetrics to share one set process-wide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		runs:    prometheus.NewCounter(prometheus.CounterOpts{Name: "kt2uml_pipeline_runs_total", Help: "Documents rendered"}),
		invalid: prometheus.NewCounter(prometheus.CounterOpts{Name: "kt2uml_pipeline_invalid_total", Help: "Documents that produced no result"}),

		targets: prometheus.NewCounter(prometheus.CounterOpts{Name: "kt2uml_pipeline_targets_total", Help: "Diagram targets emitted"}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{Name: "kt2uml_pipeline_declarations_skipped_total", Help: "Function declarations skipped after a resolution failure"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{Name: "kt2uml_pipeline_parameters_dropped_total", Help: "Parameters left out of built functions"}),
		ignored: prometheus.NewCounter(prometheus.CounterOpts{Name: "kt2uml_pipeline_declarations_ignored_total", Help: "Declarations that are not diagram targets"}),

		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kt2uml_pipeline_render_seconds",
			Help:    "Duration of one render",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}

	reg.MustRegister(
		m.runs, m.invalid,
		m.targets, m.skipped, m.dropped, m.ignored,
		m.duration,
	)
	return m
}

var defaultMetrics struct {
	once sync.Once
	m    *Metrics
}

// DefaultMetrics returns the process-wide collectors registered on
// prometheus.DefaultRegisterer, creating them on first use.
func DefaultMetrics() *Metrics {
	defaultMetrics.once.Do(func() {
		defaultMetrics.m = NewMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics.m
}

func (m *Metrics) observe(res Result, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.Inc()
	m.duration.Observe(elapsed.Seconds())
	if res.State == Invalid {
		m.invalid.Inc()
		return
	}
	m.targets.Add(float64(len(res.Targets)))
	m.skipped.Add(float64(len(res.Report.Skipped)))
	m.dropped.Add(float64(res.Report.DroppedParams))
	m.ignored.Add(float64(res.Report.Ignored))
}
