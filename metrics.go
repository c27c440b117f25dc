package animator

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors a session reports to. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	Rebuilds    prometheus.Counter
	Crossfades  prometheus.Counter
	Reweights   prometheus.Counter
	Finished    *prometheus.CounterVec
	AutoReturns prometheus.Counter
	Previewing  prometheus.Gauge
}

// NewMetrics creates the session collectors and registers them with reg.
// A nil reg leaves them unregistered, which suits tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "animator_rebuilds_total",
			Help: "Total number of action registry rebuilds caused by clip set changes.",
		}),
		Crossfades: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "animator_crossfades_total",
			Help: "Total number of crossfades started by Mix.",
		}),
		Reweights: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "animator_reweights_total",
			Help: "Total number of Mix calls that re-weighted the active action.",
		}),
		Finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "animator_finished_total",
			Help: "Total number of finished events, by clip.",
		}, []string{"clip"}),
		AutoReturns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "animator_auto_returns_total",
			Help: "Total number of automatic returns to the default action after an unclamped one-shot.",
		}),
		Previewing: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "animator_previewing",
			Help: "Number of sessions with editor preview playback running.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Rebuilds, m.Crossfades, m.Reweights, m.Finished, m.AutoReturns, m.Previewing)
	}
	return m
}

func (m *Metrics) rebuild() {
	if m != nil {
		m.Rebuilds.Inc()
	}
}

func (m *Metrics) crossfade() {
	if m != nil {
		m.Crossfades.Inc()
	}
}

func (m *Metrics) reweight() {
	if m != nil {
		m.Reweights.Inc()
	}
}

func (m *Metrics) finished(clip string) {
	if m != nil {
		m.Finished.WithLabelValues(clip).Inc()
	}
}

func (m *Metrics) autoReturn() {
	if m != nil {
		m.AutoReturns.Inc()
	}
}

func (m *Metrics) previewing(on bool) {
	if m == nil {
		return
	}
	if on {
		m.Previewing.Inc()
	} else {
		m.Previewing.Dec()
	}
}
