package viewer

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/rs/zerolog"
)

// ViewerBuilderOption is a function that configures a viewer during construction.
type ViewerBuilderOption func(*viewer)

// WithInput sets the key state source and close flag, normally the window.
//
// Parameters:
//   - input: the window input
//
// Returns:
//   - ViewerBuilderOption: a function that applies the input option to a viewer
func WithInput(input Input) ViewerBuilderOption {
	return func(v *viewer) {
		v.input = input
	}
}

// WithRenderer sets the renderer that brackets every frame.
func WithRenderer(r FrameRenderer) ViewerBuilderOption {
	return func(v *viewer) {
		v.renderer = r
	}
}

// WithProgram sets the shader program receiving the per-frame uniforms.
func WithProgram(p shader.Program) ViewerBuilderOption {
	return func(v *viewer) {
		v.program = p
	}
}

// WithModel sets the model drawn every frame.
func WithModel(m Drawable) ViewerBuilderOption {
	return func(v *viewer) {
		v.model = m
	}
}

// WithCamera sets the camera. A default camera at (0,0,3) is used otherwise.
func WithCamera(c camera.Camera) ViewerBuilderOption {
	return func(v *viewer) {
		v.camera = c
	}
}

// WithWindowSize sets the configured window size. It fixes the projection aspect ratio and
// the initial cursor reference point. Non-positive values are ignored.
//
// Parameters:
//   - width, height: the configured window size in pixels
//
// Returns:
//   - ViewerBuilderOption: a function that applies the size option to a viewer
func WithWindowSize(width, height int) ViewerBuilderOption {
	return func(v *viewer) {
		if width > 0 && height > 0 {
			v.width = width
			v.height = height
		}
	}
}

// WithLogger sets the logger used for event handling failures.
func WithLogger(logger zerolog.Logger) ViewerBuilderOption {
	return func(v *viewer) {
		v.logger = logger
	}
}
