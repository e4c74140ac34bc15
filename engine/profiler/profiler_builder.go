package profiler

import (
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// ProfilerBuilderOption is a function that configures a Profiler during construction.
type ProfilerBuilderOption func(*Profiler)

// WithLogger sets the logger frame statistics are written to.
//
// Parameters:
//   - logger: the zerolog logger to use
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the logger option to a Profiler
func WithLogger(logger zerolog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// WithMeter records frame metrics through meter instead of the global meter provider.
func WithMeter(meter metric.Meter) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.meter = meter
	}
}

// WithUpdateInterval sets how often statistics are logged. Values <= 0 are ignored.
//
// Parameters:
//   - interval: the time between two log lines
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the interval option to a Profiler
func WithUpdateInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}
