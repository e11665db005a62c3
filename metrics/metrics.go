// SPDX-License-Identifier: MIT

// Package metrics exports driver progress as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/bspgraph/ghs"
	"github.com/katalvlaran/bspgraph/superstep"
)

const namespace = "ghsmst"

var _ superstep.Recorder = (*Recorder)(nil)

// Recorder implements superstep.Recorder on a caller-supplied registry.
type Recorder struct {
	Rounds        *prometheus.CounterVec
	RoundDuration *prometheus.HistogramVec
	Messages      *prometheus.CounterVec
	Emitted       prometheus.Counter
	Deferred      prometheus.Counter
	Halts         prometheus.Counter
	LastRound     prometheus.Gauge
}

// NewRecorder registers every metric on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		Rounds: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rounds_total",
				Help:      "Rounds executed, by driver phase",
			},
			[]string{"phase"},
		),
		RoundDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "round_duration_seconds",
				Help:      "Wall time of one round, by driver phase",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5, 30},
			},
			[]string{"phase"},
		),
		Messages: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_delivered_total",
				Help:      "Messages delivered to vertices, by kind",
			},
			[]string{"kind"},
		),
		Emitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_emitted_total",
			Help:      "Messages emitted by vertices, deferred ones included",
		}),
		Deferred: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_deferred_total",
			Help:      "Messages re-emitted to their receiver for a later round",
		}),
		Halts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fragments_halted_total",
			Help:      "Distinct fragments that found no outgoing edge",
		}),
		LastRound: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_round",
			Help:      "Index of the last completed round",
		}),
	}
}

// ObserveRound implements superstep.Recorder.
func (r *Recorder) ObserveRound(phase superstep.Phase, round int, elapsed time.Duration, st superstep.RoundStats) {
	label := phase.String()
	r.Rounds.WithLabelValues(label).Inc()
	r.RoundDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	for kind, n := range st.ByKind {
		r.Messages.WithLabelValues(kind.String()).Add(float64(n))
	}
	r.Emitted.Add(float64(st.Emitted))
	r.Deferred.Add(float64(st.Deferred))
	if round >= 0 {
		r.LastRound.Set(float64(round))
	}
}

// ObserveHalt implements superstep.Recorder.
func (r *Recorder) ObserveHalt(ghs.EdgeID) {
	r.Halts.Inc()
}
