package lectio

import (
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/lectio/builder"
	"github.com/tsawler/lectio/detection"
	"github.com/tsawler/lectio/metrics"
	"github.com/tsawler/lectio/recognition"
)

// Option configures a Predictor created by OCRPredictor.
type Option func(*predictorOptions)

type predictorOptions struct {
	detector   detection.Detector
	recognizer recognition.Recognizer
	builder    builder.Config
	logger     *logrus.Logger
	metrics    *metrics.Metrics
	workers    int
	languages  []string
	pretrained bool
}

func defaultPredictorOptions() predictorOptions {
	return predictorOptions{
		builder:    builder.DefaultConfig(),
		workers:    runtime.GOMAXPROCS(0),
		pretrained: true,
	}
}

// WithDetector supplies a custom detector, overriding the architecture
// name passed to OCRPredictor.
func WithDetector(d detection.Detector) Option {
	return func(o *predictorOptions) {
		o.detector = d
	}
}

// WithRecognizer supplies a custom recognizer, overriding the
// architecture name passed to OCRPredictor.
func WithRecognizer(r recognition.Recognizer) Option {
	return func(o *predictorOptions) {
		o.recognizer = r
	}
}

// WithLogger enables structured logging of pipeline progress.
func WithLogger(l *logrus.Logger) Option {
	return func(o *predictorOptions) {
		o.logger = l
	}
}

// WithMetrics enables Prometheus instrumentation. The collectors must be
// registered by the caller.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *predictorOptions) {
		o.metrics = m
	}
}

// WithWorkers sets how many pages are processed concurrently. The
// default is the number of available CPUs.
func WithWorkers(n int) Option {
	return func(o *predictorOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithPretrained controls whether the architectures load pretrained
// parameters. The profiles behind the architecture names are always
// engine-backed, so only true is accepted; passing false makes
// OCRPredictor fail rather than silently hand out an untrained model.
func WithPretrained(enabled bool) Option {
	return func(o *predictorOptions) {
		o.pretrained = enabled
	}
}

// WithLanguages selects the recognition languages. The default is
// English.
func WithLanguages(langs ...string) Option {
	return func(o *predictorOptions) {
		o.languages = append([]string(nil), langs...)
	}
}

// WithResolveLines controls whether words are clustered into lines. It
// is enabled by default; disabling it yields one line per page in
// reading order.
func WithResolveLines(enabled bool) Option {
	return func(o *predictorOptions) {
		o.builder.ResolveLines = enabled
	}
}

// WithResolveBlocks controls whether lines are grouped into blocks by
// vertical proximity. It is disabled by default.
func WithResolveBlocks(enabled bool) Option {
	return func(o *predictorOptions) {
		o.builder.ResolveBlocks = enabled
	}
}

// WithParagraphBreak sets the relative gap used to split lines and
// blocks.
func WithParagraphBreak(gap float64) Option {
	return func(o *predictorOptions) {
		if gap > 0 {
			o.builder.ParagraphBreak = gap
		}
	}
}
