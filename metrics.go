package vose

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// The sampling hot path is deliberately unmetered: a draw is a handful of
// nanoseconds and per-draw callbacks would dominate it. Construction and
// snapshot I/O are the operations worth watching.
type MetricsCollector interface {
	// RecordBuild is called after each construction attempt.
	// n is the element count, duration the total time taken, err is nil on
	// success.
	RecordBuild(n int, duration time.Duration, err error)

	// RecordSnapshotSave is called after each snapshot write.
	// bytes is the number of bytes written.
	RecordSnapshotSave(bytes int, duration time.Duration, err error)

	// RecordSnapshotLoad is called after each snapshot read.
	RecordSnapshotLoad(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)        {}
func (NoopMetricsCollector) RecordSnapshotSave(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSnapshotLoad(time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
	SaveCount       atomic.Int64
	SaveErrors      atomic.Int64
	SaveBytes       atomic.Int64
	LoadCount       atomic.Int64
	LoadErrors      atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(n int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordSnapshotSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotSave(bytes int, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveBytes.Add(int64(bytes))
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// RecordSnapshotLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotLoad(duration time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:    b.BuildCount.Load(),
		BuildErrors:   b.BuildErrors.Load(),
		BuildAvgNanos: b.getAvgBuildNanos(),
		SaveCount:     b.SaveCount.Load(),
		SaveErrors:    b.SaveErrors.Load(),
		SaveBytes:     b.SaveBytes.Load(),
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgBuildNanos() int64 {
	count := b.BuildCount.Load()
	if count == 0 {
		return 0
	}
	return b.BuildTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount    int64
	BuildErrors   int64
	BuildAvgNanos int64
	SaveCount     int64
	SaveErrors    int64
	SaveBytes     int64
	LoadCount     int64
	LoadErrors    int64
}
