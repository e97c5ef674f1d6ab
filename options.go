package vose

import (
	"log/slog"
	"time"

	"github.com/vosealias/vose/codec"
)

type options struct {
	source  Source
	logger  *Logger
	metrics MetricsCollector
	codec   codec.Codec
}

// Option configures construction and load behavior.
//
// Options exist to avoid exploding the API surface (e.g. source- or
// codec-specific constructor variants).
type Option func(*options)

// WithSource sets the default source consulted by Sample and SampleN.
//
// If this option is not used, a mutex-guarded math/rand source with a
// time-based seed is created for the structure. If nil is passed, the option
// is ignored.
func WithSource(src Source) Option {
	return func(o *options) {
		if src != nil {
			o.source = src
		}
	}
}

// WithLogger configures structured logging for construction and snapshot
// operations. Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := vose.NewJSONLogger(slog.LevelInfo)
//	va, _ := vose.New(elements, weights, vose.WithLogger(logger))
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

// WithMetricsCollector configures a metrics collector for construction and
// snapshot operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithCodec configures the codec used for snapshot payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		source:  NewSource(time.Now().UnixNano()),
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
		codec:   codec.Default,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
