package layoutanim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records keyframe lifecycle counters. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	keyFramesStarted  *prometheus.CounterVec
	keyFramesFinished *prometheus.CounterVec
	inflight          prometheus.Gauge
	immediate         prometheus.Counter
	pullDuration      prometheus.Histogram
	configsDropped    prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		// Labels: "create", "update", "delete"
		keyFramesStarted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "layoutanim_keyframes_started_total",
			Help: "Keyframes created by transaction pulls, by animation kind",
		}, []string{"kind"}),
		// Labels: kind, result ("completed", "interrupted")
		keyFramesFinished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "layoutanim_keyframes_finished_total",
			Help: "Keyframes removed from the in-flight set, by kind and result",
		}, []string{"kind", "result"}),
		inflight: f.NewGauge(prometheus.GaugeOpts{
			Name: "layoutanim_keyframes_inflight",
			Help: "Keyframes currently in flight across all surfaces",
		}),
		immediate: f.NewCounter(prometheus.CounterOpts{
			Name: "layoutanim_immediate_mutations_total",
			Help: "Mutations returned for immediate execution by transaction pulls",
		}),
		pullDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "layoutanim_pull_duration_seconds",
			Help:    "Time spent intercepting one transaction",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
		configsDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "layoutanim_configs_dropped_total",
			Help: "Configured animations replaced before any pull consumed them",
		}),
	}
}

func (m *Metrics) keyFrameStarted(kind ConfigKind) {
	if m == nil {
		return
	}
	m.keyFramesStarted.WithLabelValues(kind.String()).Inc()
	m.inflight.Inc()
}

func (m *Metrics) keyFrameFinished(kind ConfigKind, interrupted bool) {
	if m == nil {
		return
	}
	result := "completed"
	if interrupted {
		result = "interrupted"
	}
	m.keyFramesFinished.WithLabelValues(kind.String(), result).Inc()
	m.inflight.Dec()
}

func (m *Metrics) pulled(immediate int, seconds float64) {
	if m == nil {
		return
	}
	m.immediate.Add(float64(immediate))
	m.pullDuration.Observe(seconds)
}

func (m *Metrics) configDropped() {
	if m == nil {
		return
	}
	m.configsDropped.Inc()
}
