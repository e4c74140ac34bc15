package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], eps)
}

func TestNewCamera_Defaults(t *testing.T) {
	c := NewCamera()

	assertVec3(t, mgl32.Vec3{0, 0, 3}, c.Position())
	assertVec3(t, mgl32.Vec3{0, 0, -1}, c.Front())
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Right())
	assertVec3(t, mgl32.Vec3{0, 1, 0}, c.Up())
	assert.Equal(t, DefaultZoom, c.Zoom())
	assert.Equal(t, DefaultYaw, c.Yaw())
	assert.Equal(t, DefaultPitch, c.Pitch())
}

func TestProcessKeyboard(t *testing.T) {
	tests := []struct {
		dir  Movement
		want mgl32.Vec3
	}{
		{MovementForward, mgl32.Vec3{0, 0, 3 - 2.5*0.5}},
		{MovementBackward, mgl32.Vec3{0, 0, 3 + 2.5*0.5}},
		{MovementLeft, mgl32.Vec3{-2.5 * 0.5, 0, 3}},
		{MovementRight, mgl32.Vec3{2.5 * 0.5, 0, 3}},
	}
	for _, tt := range tests {
		c := NewCamera()
		c.ProcessKeyboard(tt.dir, 0.5)
		assertVec3(t, tt.want, c.Position())
	}
}

func TestProcessKeyboard_IndependentDirectionsCombine(t *testing.T) {
	c := NewCamera()
	c.ProcessKeyboard(MovementForward, 0.1)
	c.ProcessKeyboard(MovementRight, 0.1)

	assertVec3(t, mgl32.Vec3{0.25, 0, 2.75}, c.Position())
}

func TestProcessMouseMovement_PitchConstrained(t *testing.T) {
	c := NewCamera()
	c.ProcessMouseMovement(0, 10000, true)
	assert.Equal(t, MaxPitch, c.Pitch())

	c.ProcessMouseMovement(0, -20000, true)
	assert.Equal(t, -MaxPitch, c.Pitch())
}

func TestProcessMouseMovement_Unconstrained(t *testing.T) {
	c := NewCamera()
	c.ProcessMouseMovement(0, 1000, false)
	assert.InDelta(t, 100.0, c.Pitch(), eps)
}

func TestProcessMouseMovement_YawTurnsFront(t *testing.T) {
	c := NewCamera()
	// 900 px * 0.1 = 90 degrees: from -Z to +X
	c.ProcessMouseMovement(900, 0, true)

	assert.InDelta(t, 0.0, c.Yaw(), eps)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Front())
	assertVec3(t, mgl32.Vec3{0, 0, 1}, c.Right())
}

func TestProcessMouseScroll_Clamped(t *testing.T) {
	c := NewCamera()

	c.ProcessMouseScroll(5)
	assert.Equal(t, float32(40), c.Zoom())

	c.ProcessMouseScroll(100)
	assert.Equal(t, MinZoom, c.Zoom())

	c.ProcessMouseScroll(-100)
	assert.Equal(t, MaxZoom, c.Zoom())
}

func TestViewMatrix(t *testing.T) {
	c := NewCamera()
	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 1, 0})
	assert.True(t, common.ApproxEqualMat4(want, c.ViewMatrix(), eps))

	// the origin sits three units in front of the camera
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -3.0, p.Z(), eps)
}

func TestBuilderOptions(t *testing.T) {
	c := NewCamera(
		WithPosition(mgl32.Vec3{1, 2, 3}),
		WithYaw(0),
		WithPitch(0),
		WithMovementSpeed(10),
		WithMouseSensitivity(1),
		WithZoom(90),
	)

	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Front())
	assert.Equal(t, MaxZoom, c.Zoom())

	c.ProcessKeyboard(MovementForward, 1)
	assertVec3(t, mgl32.Vec3{11, 2, 3}, c.Position())

	c.ProcessMouseMovement(0, 30, true)
	assert.Equal(t, float32(30), c.Pitch())
}

func TestCursorTracker(t *testing.T) {
	tr := NewCursorTracker(400, 300)

	dx, dy := tr.Offset(520, 180)
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	dx, dy = tr.Offset(530, 170)
	assert.Equal(t, float32(10), dx)
	assert.Equal(t, float32(10), dy)

	dx, dy = tr.Offset(525, 175)
	assert.Equal(t, float32(-5), dx)
	assert.Equal(t, float32(-5), dy)
}
