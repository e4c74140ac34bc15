package viewer

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
)

// State is the mutable viewer state shared by the input sampler, the transform updater and the
// frame loop. It is owned by a single goroutine.
type State struct {
	Camera    camera.Camera
	Mouse     *camera.CursorTracker
	Queue     *Queue
	Transform *Transform

	// SelectedIndex is the sub-mesh highlighted by the shader. Digit keys set it to 0..9.
	SelectedIndex int32

	// QuitRequested is set by the Escape key; the current frame still completes.
	QuitRequested bool
}

// NewState creates viewer state around a camera, with an empty queue and an uninitialized
// transform. The cursor tracker starts at the center of a width x height window.
//
// Parameters:
//   - cam: the camera driven by WASD, mouse and scroll input
//   - width, height: the configured window size
//
// Returns:
//   - *State: the new state
func NewState(cam camera.Camera, width, height int) *State {
	return &State{
		Camera:    cam,
		Mouse:     camera.NewCursorTracker(float64(width)/2, float64(height)/2),
		Queue:     &Queue{},
		Transform: &Transform{},
	}
}
