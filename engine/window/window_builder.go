package window

import "github.com/rs/zerolog"

// WindowBuilderOption is a functional option applied to a window during construction via NewWindow.
type WindowBuilderOption func(*engineWindow)

// WithTitle sets the window title.
//
// Parameters:
//   - title: the title shown in the title bar
//
// Returns:
//   - WindowBuilderOption: a function that sets the window title
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithWidth sets the requested window width in screen coordinates.
//
// Parameters:
//   - width: the window width
//
// Returns:
//   - WindowBuilderOption: a function that sets the window width
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the requested window height in screen coordinates.
//
// Parameters:
//   - height: the window height
//
// Returns:
//   - WindowBuilderOption: a function that sets the window height
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithMinSize sets the minimum size the user can resize the window to.
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = width
		w.minHeight = height
	}
}

// WithMaxSize sets the maximum size the user can resize the window to.
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth = width
		w.maxHeight = height
	}
}

// WithCursorDisabled captures and hides the cursor when true (the default), giving unbounded
// relative mouse movement for mouse look.
func WithCursorDisabled(disabled bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.cursorDisabled = disabled
	}
}

// WithLogger sets the logger used for window lifecycle messages.
func WithLogger(logger zerolog.Logger) WindowBuilderOption {
	return func(w *engineWindow) {
		w.logger = logger
	}
}
