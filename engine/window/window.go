package window

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog"
)

// ErrWindowCreate is returned when the platform window or its context cannot be created.
var ErrWindowCreate = errors.New("window creation failed")

// EventKind identifies the payload of a buffered window Event.
type EventKind int

const (
	// EventCursor carries an absolute cursor position in X, Y.
	EventCursor EventKind = iota
	// EventScroll carries scroll offsets in X, Y.
	EventScroll
	// EventResize carries the new framebuffer size in Width, Height.
	EventResize
)

// Event is a window-system event recorded while polling. Events are handed to the frame loop
// in arrival order instead of being dispatched from inside the platform callbacks.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Width  int
	Height int
}

// Window defines the interface for the platform window.
// Key state is polled; cursor, scroll and resize notifications are buffered by PollEvents and
// drained with Events.
type Window interface {
	// KeyPressed reports whether the key is currently held down.
	//
	// Parameters:
	//   - keyCode: a GLFW key code (see common key codes)
	//
	// Returns:
	//   - bool: true if the key is pressed
	KeyPressed(keyCode uint32) bool

	// PollEvents processes pending window-system events without blocking.
	PollEvents()

	// Events returns the events buffered since the previous call and clears the buffer.
	//
	// Returns:
	//   - []Event: buffered events in arrival order
	Events() []Event

	// Time returns seconds elapsed since the window system was initialized.
	Time() float64

	// ShouldClose reports whether the user or the program asked the window to close.
	ShouldClose() bool

	// SetShouldClose sets the close flag.
	SetShouldClose(value bool)

	// SurfaceDescriptor returns the platform-specific descriptor used to create a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor, nil if the window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int

	// Close destroys the window and terminates the window system.
	//
	// Returns:
	//   - error: an error if the window was never initialized
	Close() error
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width and height are the framebuffer size in pixels once created, the requested
	// window size before.
	width  int
	height int

	minWidth, minHeight int
	maxWidth, maxHeight int

	// cursorDisabled hides and captures the cursor for unbounded mouse look.
	cursorDisabled bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// events buffers callbacks fired during PollEvents.
	events []Event

	logger zerolog.Logger
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: variadic list of WindowBuilderOption functions to configure the window
//
// Returns:
//   - Window: the created window
//   - error: an error wrapping ErrWindowCreate if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:          "Default Window Title",
		width:          800,
		height:         600,
		minWidth:       200,
		minHeight:      150,
		maxWidth:       dontCare,
		maxHeight:      dontCare,
		cursorDisabled: true,
		logger:         zerolog.Nop(),
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWindowCreate, err)
	}
	w.logger.Info().
		Str("title", w.title).
		Int("width", w.width).
		Int("height", w.height).
		Msg("window created")
	return w, nil
}

func (w *engineWindow) KeyPressed(keyCode uint32) bool {
	return platformKeyPressed(w, keyCode)
}

func (w *engineWindow) PollEvents() {
	platformPollEvents(w)
}

func (w *engineWindow) Events() []Event {
	events := w.events
	w.events = nil
	return events
}

func (w *engineWindow) Time() float64 {
	return platformTime()
}

func (w *engineWindow) ShouldClose() bool {
	return platformShouldClose(w)
}

func (w *engineWindow) SetShouldClose(value bool) {
	platformSetShouldClose(w, value)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

// pushEvent records an event for the next Events call.
func (w *engineWindow) pushEvent(e Event) {
	if e.Kind == EventResize {
		w.width = e.Width
		w.height = e.Height
	}
	w.events = append(w.events, e)
}
