package viewer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// Clip planes of the viewer projection.
const (
	NearPlane float32 = 0.1
	FarPlane  float32 = 100.0
)

// Uniform member names written every frame.
const (
	UniformProjection     = "projection"
	UniformView           = "view"
	UniformModel          = "model"
	UniformSelectedObject = "selectedObject"
)

// ErrMissingCollaborator is returned by NewViewer when a required option was not supplied.
var ErrMissingCollaborator = errors.New("viewer is missing a collaborator")

// Input is the window side of the viewer: polled key state and the close flag.
type Input interface {
	KeyState
	SetShouldClose(value bool)
}

// FrameRenderer brackets a frame and follows surface resizes. renderer.Renderer implements it.
type FrameRenderer interface {
	BeginFrame() error
	EndFrame()
	Present()
	Resize(width, height int) error
}

// Drawable is a model that draws its sub-meshes with a shader program. model.Model implements it.
type Drawable interface {
	Draw(p shader.Program) error
}

type viewer struct {
	state *State

	input    Input
	renderer FrameRenderer
	program  shader.Program
	model    Drawable
	camera   camera.Camera

	width, height int
	logger        zerolog.Logger
}

// Viewer renders one model per frame and routes keyboard, cursor, scroll and resize input to
// the camera, the movement queue and the sub-mesh selection.
type Viewer interface {
	// State returns the live viewer state.
	State() *State

	// Frame runs one frame: sample input, clear, upload projection, view, model and selection,
	// draw the model and present. When the frame cannot begin (for example an outdated surface)
	// nothing is drawn or presented and queued movement is kept for the next frame.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - error: an error if the frame could not be started or the model could not be drawn
	Frame(dt float32) error

	// HandleEvent applies a buffered window event: cursor moves turn the camera, scrolling zooms
	// and a resize reconfigures the surface.
	//
	// Parameters:
	//   - event: the window event
	HandleEvent(event window.Event)
}

var _ Viewer = &viewer{}

// NewViewer creates a Viewer. WithInput, WithRenderer, WithProgram and WithModel are required.
//
// Parameters:
//   - options: a variadic list of ViewerBuilderOption functions to configure the viewer
//
// Returns:
//   - Viewer: the new viewer
//   - error: ErrMissingCollaborator if a required option is missing
func NewViewer(options ...ViewerBuilderOption) (Viewer, error) {
	v := &viewer{
		width:  800,
		height: 600,
		logger: zerolog.Nop(),
	}

	for _, option := range options {
		option(v)
	}

	switch {
	case v.input == nil:
		return nil, fmt.Errorf("%w: input", ErrMissingCollaborator)
	case v.renderer == nil:
		return nil, fmt.Errorf("%w: renderer", ErrMissingCollaborator)
	case v.program == nil:
		return nil, fmt.Errorf("%w: shader program", ErrMissingCollaborator)
	case v.model == nil:
		return nil, fmt.Errorf("%w: model", ErrMissingCollaborator)
	}

	if v.camera == nil {
		v.camera = camera.NewCamera()
	}
	v.state = NewState(v.camera, v.width, v.height)
	return v, nil
}

func (v *viewer) State() *State {
	return v.state
}

func (v *viewer) Frame(dt float32) error {
	Sample(v.state, v.input, dt)
	if v.state.QuitRequested {
		v.input.SetShouldClose(true)
	}

	if err := v.renderer.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}

	err := v.draw()

	v.renderer.EndFrame()
	v.renderer.Present()
	return err
}

func (v *viewer) draw() error {
	v.program.Use()

	// The projection keeps the configured aspect ratio after resizes.
	aspect := float32(v.width) / float32(v.height)
	projection := common.Perspective(mgl32.DegToRad(v.state.Camera.Zoom()), aspect, NearPlane, FarPlane)
	v.program.SetMat4(UniformProjection, projection)
	v.program.SetMat4(UniformView, v.state.Camera.ViewMatrix())

	v.state.Transform.Update(v.state.Queue)
	v.program.SetMat4(UniformModel, v.state.Transform.Matrix())
	v.program.SetInt(UniformSelectedObject, v.state.SelectedIndex)

	if err := v.model.Draw(v.program); err != nil {
		return fmt.Errorf("failed to draw model: %w", err)
	}
	return nil
}

func (v *viewer) HandleEvent(event window.Event) {
	switch event.Kind {
	case window.EventCursor:
		dx, dy := v.state.Mouse.Offset(event.X, event.Y)
		v.state.Camera.ProcessMouseMovement(dx, dy, true)
	case window.EventScroll:
		v.state.Camera.ProcessMouseScroll(float32(event.Y))
	case window.EventResize:
		if err := v.renderer.Resize(event.Width, event.Height); err != nil {
			v.logger.Error().Err(err).Msg("resize failed")
		}
	}
}
