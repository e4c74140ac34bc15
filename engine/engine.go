package engine

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/rs/zerolog"
)

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine has no window")

// State is the lifecycle state of the render loop.
type State int

const (
	// StateRunning is the initial state; the loop keeps iterating.
	StateRunning State = iota
	// StateTerminating means the current iteration is the last one.
	StateTerminating
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminating:
		return "terminating"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Host is the part of a window the loop drives: the clock, event polling and the close flag.
// window.Window satisfies it.
type Host interface {
	PollEvents()
	Events() []window.Event
	Time() float64
	ShouldClose() bool
}

// engine implements the Engine interface.
type engine struct {
	window Host
	logger zerolog.Logger

	profiler *profiler.Profiler

	frameCallback func(deltaTime float32) error
	eventHandler  func(event window.Event)

	state State
	quit  bool
}

// Engine is the main entry point for the engine.
// It runs the single-threaded render loop: frame callback, event polling and dispatch, quit check.
type Engine interface {
	// Window returns the host window.
	//
	// Returns:
	//   - Host: the window instance
	Window() Host

	// State returns the current lifecycle state.
	State() State

	// SetFrameCallback registers the function called once per loop iteration.
	// A returned error is logged and the loop continues with the next frame.
	//
	// Parameters:
	//   - callback: function receiving the time in seconds since the previous iteration
	SetFrameCallback(callback func(deltaTime float32) error)

	// SetEventHandler registers the function receiving each buffered window event,
	// in arrival order, after the window has been polled.
	//
	// Parameters:
	//   - handler: the event consumer
	SetEventHandler(handler func(event window.Event))

	// Run starts the main loop and blocks until a quit is requested or the window closes.
	//
	// Returns:
	//   - error: ErrNoWindow if the engine has no window
	Run() error

	// Quit requests termination. The current iteration finishes before the loop exits.
	// Safe to call multiple times and from inside the frame callback.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, callbacks, profiling)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger: zerolog.Nop(),
		state:  StateRunning,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Window() Host {
	return e.window
}

func (e *engine) State() State {
	return e.state
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32) error) {
	e.frameCallback = callback
}

func (e *engine) SetEventHandler(handler func(event window.Event)) {
	e.eventHandler = handler
}

func (e *engine) Quit() {
	e.quit = true
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}

	e.logger.Info().Msg("render loop started")
	frames := 0
	last := e.window.Time()

	for e.state == StateRunning {
		now := e.window.Time()
		dt := float32(now - last)
		last = now

		if err := e.runFrame(dt); err != nil {
			e.logger.Error().Err(err).Int("frame", frames).Msg("frame failed")
		}
		frames++

		if e.profiler != nil {
			e.profiler.Tick()
		}

		e.window.PollEvents()
		for _, event := range e.window.Events() {
			if e.eventHandler != nil {
				e.eventHandler(event)
			}
		}

		if e.quit || e.window.ShouldClose() {
			e.state = StateTerminating
		}
	}

	e.logger.Info().Int("frames", frames).Msg("render loop stopped")
	return nil
}

// runFrame invokes the frame callback. A panic inside the callback terminates the loop
// after this iteration instead of crashing the process.
func (e *engine) runFrame(dt float32) (err error) {
	if e.frameCallback == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			e.quit = true
			err = fmt.Errorf("frame callback panicked: %v", r)
		}
	}()

	return e.frameCallback(dt)
}
