// Package metrics exposes Prometheus instrumentation for the OCR
// pipeline. Collection is opt-in: nothing is registered until Register
// is called, and a nil *Metrics is safe to record against.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the pipeline collectors.
type Metrics struct {
	PagesProcessed     prometheus.Counter
	WordsRecognized    prometheus.Counter
	DetectionSeconds   prometheus.Histogram
	RecognitionSeconds prometheus.Histogram
}

// New creates the pipeline collectors. They report nothing until
// registered with a prometheus.Registerer.
func New() *Metrics {
	return &Metrics{
		PagesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lectio",
			Name:      "pages_processed_total",
			Help:      "Number of document pages run through the pipeline.",
		}),
		WordsRecognized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lectio",
			Name:      "words_recognized_total",
			Help:      "Number of words produced by recognition.",
		}),
		DetectionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lectio",
			Name:      "detection_duration_seconds",
			Help:      "Time spent localizing text per page.",
			Buckets:   prometheus.DefBuckets,
		}),
		RecognitionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lectio",
			Name:      "recognition_duration_seconds",
			Help:      "Time spent transcribing word crops per page.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Register attaches the collectors to a registerer. Passing nil uses the
// default registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		m.PagesProcessed,
		m.WordsRecognized,
		m.DetectionSeconds,
		m.RecognitionSeconds,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// PageDone records a processed page and its word yield.
func (m *Metrics) PageDone(words int) {
	if m == nil {
		return
	}
	m.PagesProcessed.Inc()
	m.WordsRecognized.Add(float64(words))
}

// ObserveDetection records a page detection duration.
func (m *Metrics) ObserveDetection(d time.Duration) {
	if m == nil {
		return
	}
	m.DetectionSeconds.Observe(d.Seconds())
}

// ObserveRecognition records a page recognition duration.
func (m *Metrics) ObserveRecognition(d time.Duration) {
	if m == nil {
		return
	}
	m.RecognitionSeconds.Observe(d.Seconds())
}
