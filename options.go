package binsparse

import (
	"log/slog"

	"github.com/hupe1980/binsparse/codec"
)

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Save/Load/Delete behavior.
//
// Options primarily exist to avoid exploding the API surface
// (e.g. codec-specific Save/Load variants).
type Option func(*options)

// WithCodec configures the codec used for attribute documents.
//
// If nil is passed, codec.Default is used. Load decodes with the configured
// codec, so readers and writers of the same containers must agree on one.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &binsparse.BasicMetricsCollector{}
//	err := binsparse.Save(ctx, store, "m", m, binsparse.WithMetricsCollector(metrics))
//	// ... more operations ...
//	stats := metrics.GetStats()
//	fmt.Printf("Saves: %d, Avg latency: %dns\n", stats.SaveCount, stats.SaveAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := binsparse.NewJSONLogger(slog.LevelInfo)
//	err := binsparse.Save(ctx, store, "m", m, binsparse.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
