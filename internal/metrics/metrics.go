// Package metrics exposes pipeline counters in Prometheus format.
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayusman/chromatip/internal/detector"
)

// Metrics holds all application metrics on a private registry.
type Metrics struct {
	ticks        *prometheus.CounterVec
	detections   *prometheus.CounterVec
	absences     *prometheus.CounterVec
	tickDuration prometheus.Histogram
	saves        prometheus.Counter
	saveErrors   prometheus.Counter

	// Updated from other goroutines and read by GaugeFuncs.
	FramesDropped atomic.Uint64
	StreamClients atomic.Int64

	registry *prometheus.Registry
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chromatip_ticks_total",
			Help: "Frames processed by the detection session",
		}, []string{"mode"}),
		detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chromatip_detections_total",
			Help: "Ticks that found a pointing position",
		}, []string{"mode"}),
		absences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chromatip_absences_total",
			Help: "Ticks without a pointing position",
		}, []string{"mode"}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chromatip_tick_seconds",
			Help:    "Time spent detecting, sampling and classifying one frame",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chromatip_saves_total",
			Help: "Colors saved to the color log",
		}),
		saveErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chromatip_save_errors_total",
			Help: "Failed color saves",
		}),
	}

	m.registry.MustRegister(m.ticks, m.detections, m.absences, m.tickDuration, m.saves, m.saveErrors)

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "chromatip_frames_dropped_total",
			Help: "Frames overwritten before the session consumed them",
		},
		func() float64 { return float64(m.FramesDropped.Load()) },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "chromatip_stream_clients",
			Help: "Connected result and video stream clients",
		},
		func() float64 { return float64(m.StreamClients.Load()) },
	))

	// Pre-create label values so every mode is exported from the start.
	for _, mode := range detector.AllModes {
		m.ticks.WithLabelValues(mode.String())
		m.detections.WithLabelValues(mode.String())
		m.absences.WithLabelValues(mode.String())
	}

	return m
}

// ObserveTick records one session tick.
func (m *Metrics) ObserveTick(mode detector.Mode, detected bool, d time.Duration) {
	label := mode.String()
	m.ticks.WithLabelValues(label).Inc()
	if detected {
		m.detections.WithLabelValues(label).Inc()
	} else {
		m.absences.WithLabelValues(label).Inc()
	}
	m.tickDuration.Observe(d.Seconds())
}

// ObserveSave records a save attempt.
func (m *Metrics) ObserveSave(err error) {
	if err != nil {
		m.saveErrors.Inc()
		return
	}
	m.saves.Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
