package viewer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Initial placement of the model: moved down to the center of the view and scaled down.
var (
	InitialOffset = mgl32.Vec3{0, -1.75, 0}
	InitialScale  = mgl32.Vec3{0.2, 0.2, 0.2}
)

// Transform is the accumulated model matrix. It is set to the initial placement on the first
// Update and afterwards only changes by applying queued movement commands.
type Transform struct {
	model       mgl32.Mat4
	initialized bool
}

// Update latches the initial placement on the first call, then drains q and applies each
// command as a translation in model space: model = model · T(cmd).
//
// Parameters:
//   - q: the pending movement commands, empty on return
func (t *Transform) Update(q *Queue) {
	if !t.initialized {
		t.initialized = true
		t.model = mgl32.Ident4().
			Mul4(mgl32.Translate3D(InitialOffset.X(), InitialOffset.Y(), InitialOffset.Z())).
			Mul4(mgl32.Scale3D(InitialScale.X(), InitialScale.Y(), InitialScale.Z()))
	}

	q.Drain(func(cmd Command) {
		d := cmd.Translation()
		t.model = t.model.Mul4(mgl32.Translate3D(d.X(), d.Y(), d.Z()))
	})
}

// Matrix returns the current model matrix, the zero matrix before the first Update.
func (t *Transform) Matrix() mgl32.Mat4 {
	return t.model
}

// Initialized reports whether Update has run at least once.
func (t *Transform) Initialized() bool {
	return t.initialized
}
