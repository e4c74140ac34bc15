package profiler

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// InstrumentationName is the meter name the profiler registers its instruments under.
const InstrumentationName = "github.com/Carmen-Shannon/oxy-viewer/engine/profiler"

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Every frame is recorded as OpenTelemetry metrics; a summary is logged at a configurable interval.
type Profiler struct {
	logger zerolog.Logger
	meter  metric.Meter
	now    func() time.Time

	frames        metric.Int64Counter
	frameDuration metric.Float64Histogram

	frameCount     int
	lastTime       time.Time
	lastFrame      time.Time
	updateInterval time.Duration
	maxFrameTime   time.Duration

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second and metrics go to
// the global meter provider, which is a no-op unless the host installs one.
//
// Parameters:
//   - options: a variadic list of ProfilerBuilderOption functions to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
//   - error: an error if an instrument could not be created
func NewProfiler(options ...ProfilerBuilderOption) (*Profiler, error) {
	p := &Profiler{
		logger:         zerolog.Nop(),
		now:            time.Now,
		updateInterval: time.Second,
	}

	for _, option := range options {
		option(p)
	}

	if p.meter == nil {
		p.meter = otel.Meter(InstrumentationName)
	}

	var err error
	p.frames, err = p.meter.Int64Counter("viewer.frames",
		metric.WithDescription("Number of frames rendered."),
		metric.WithUnit("{frame}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create frame counter: %w", err)
	}

	p.frameDuration, err = p.meter.Float64Histogram("viewer.frame.duration",
		metric.WithDescription("Wall time between consecutive frames."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create frame duration histogram: %w", err)
	}

	p.lastTime = p.now()
	p.lastFrame = p.lastTime
	return p, nil
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics at debug level when the update interval has elapsed.
// Statistics include: FPS, worst frame time, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	ctx := context.Background()
	currentTime := p.now()

	frameTime := currentTime.Sub(p.lastFrame)
	p.lastFrame = currentTime
	if frameTime > p.maxFrameTime {
		p.maxFrameTime = frameTime
	}

	p.frameCount++
	p.frames.Add(ctx, 1)
	p.frameDuration.Record(ctx, frameTime.Seconds())

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.logger.Debug().
		Float64("fps", fps).
		Dur("max_frame", p.maxFrameTime).
		Float64("heap_mb", allocMB).
		Float64("alloc_rate_mb_s", allocRateMB).
		Uint32("gc", gcCount).
		Uint64("gc_last_us", lastPauseUs).
		Uint64("gc_max_us", maxPauseUs).
		Float64("sys_mb", sysMB).
		Msg("frame stats")

	p.frameCount = 0
	p.maxFrameTime = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
