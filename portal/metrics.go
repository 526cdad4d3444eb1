// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const resultLabel = "result"

// Metrics collects per query counters of a Set. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	locates        *prometheus.CounterVec
	networkChanges prometheus.Counter
	cellsLocated   prometheus.Histogram
	cellsVisible   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		locates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "locate_total",
			Help:      "Point location queries by result.",
		}, []string{resultLabel}),
		networkChanges: f.NewCounter(prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "network_change_total",
			Help:      "Successful locations that ended in another network than the hint.",
		}),
		cellsLocated: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "portal",
			Name:      "locate_cells_visited",
			Help:      "Cells tested per point location query.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}),
		cellsVisible: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "portal",
			Name:      "visible_cells",
			Help:      "Cells gathered per visibility walk.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
		}),
	}
}

func (m *Metrics) observeLocate(hit bool, visited int, changed bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.locates.With(prometheus.Labels{resultLabel: result}).Inc()
	m.cellsLocated.Observe(float64(visited))
	if changed {
		m.networkChanges.Inc()
	}
}

func (m *Metrics) observeVisible(n int) {
	if m == nil {
		return
	}
	m.cellsVisible.Observe(float64(n))
}
