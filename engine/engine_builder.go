package engine

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/rs/zerolog"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithWindow sets the window whose clock, events and close flag drive the loop.
//
// Parameters:
//   - w: a pre-configured window, usually a window.Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Host) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithFrameCallback registers the function called once per loop iteration.
//
// Parameters:
//   - callback: function receiving the delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameCallback(callback func(deltaTime float32) error) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = callback
	}
}

// WithEventHandler registers the consumer of buffered window events.
func WithEventHandler(handler func(event window.Event)) EngineBuilderOption {
	return func(e *engine) {
		e.eventHandler = handler
	}
}

// WithProfiler enables per-frame profiling through p. A nil profiler disables profiling.
//
// Parameters:
//   - p: the profiler ticked after every frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithLogger sets the logger used for loop lifecycle messages and frame errors.
func WithLogger(logger zerolog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}
