package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a continuous camera movement direction driven by held keys.
type Movement int

const (
	// MovementForward moves along the view direction.
	MovementForward Movement = iota
	// MovementBackward moves against the view direction.
	MovementBackward
	// MovementLeft strafes against the right vector.
	MovementLeft
	// MovementRight strafes along the right vector.
	MovementRight
)

// Default camera values.
const (
	DefaultYaw         float32 = -90.0
	DefaultPitch       float32 = 0.0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45.0

	// MinZoom and MaxZoom bound the field of view in degrees.
	MinZoom float32 = 1.0
	MaxZoom float32 = 45.0

	// MaxPitch bounds the pitch in degrees when constrained, avoiding the LookAt flip at ±90.
	MaxPitch float32 = 89.0
)

type cameraImpl struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3
	worldUp  mgl32.Vec3

	// yaw and pitch are Euler angles in degrees.
	yaw   float32
	pitch float32

	movementSpeed    float32
	mouseSensitivity float32
	zoom             float32
}

// Camera defines the interface for a first-person fly camera.
// Orientation is held as yaw/pitch Euler angles; the basis vectors are recomputed whenever
// the angles change. Zoom is the vertical field of view in degrees.
type Camera interface {
	// ProcessKeyboard moves the camera in the given direction scaled by the frame time.
	//
	// Parameters:
	//   - direction: the movement direction
	//   - deltaTime: elapsed frame time in seconds
	ProcessKeyboard(direction Movement, deltaTime float32)

	// ProcessMouseMovement rotates the camera by a cursor offset.
	//
	// Parameters:
	//   - xOffset: horizontal cursor offset in pixels
	//   - yOffset: vertical cursor offset in pixels, positive upwards
	//   - constrainPitch: clamp the pitch to ±MaxPitch when true
	ProcessMouseMovement(xOffset, yOffset float32, constrainPitch bool)

	// ProcessMouseScroll zooms by a vertical scroll offset. Zoom is kept within [MinZoom, MaxZoom].
	//
	// Parameters:
	//   - yOffset: the vertical scroll offset
	ProcessMouseScroll(yOffset float32)

	// ViewMatrix returns the world-to-view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// Zoom returns the vertical field of view in degrees.
	Zoom() float32

	// Position retrieves the camera position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the world-space position
	Position() mgl32.Vec3

	// Front retrieves the unit view direction.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized front vector
	Front() mgl32.Vec3

	// Up retrieves the camera's unit up vector, orthogonal to Front and Right.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized up vector
	Up() mgl32.Vec3

	// Right retrieves the unit right vector, Front crossed with the world up.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized right vector
	Right() mgl32.Vec3

	// Yaw retrieves the yaw angle.
	//
	// Returns:
	//   - float32: the yaw in degrees
	Yaw() float32

	// Pitch retrieves the pitch angle.
	//
	// Returns:
	//   - float32: the pitch in degrees
	Pitch() float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at (0, 0, 3) looking down -Z, configured with the provided options.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions to configure the camera
//
// Returns:
//   - Camera: the new camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		position:         mgl32.Vec3{0, 0, 3},
		worldUp:          mgl32.Vec3{0, 1, 0},
		yaw:              DefaultYaw,
		pitch:            DefaultPitch,
		movementSpeed:    DefaultSpeed,
		mouseSensitivity: DefaultSensitivity,
		zoom:             DefaultZoom,
	}
	for _, opt := range options {
		opt(c)
	}
	c.updateVectors()
	return c
}

func (c *cameraImpl) ProcessKeyboard(direction Movement, deltaTime float32) {
	velocity := c.movementSpeed * deltaTime
	switch direction {
	case MovementForward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case MovementBackward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case MovementLeft:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case MovementRight:
		c.position = c.position.Add(c.right.Mul(velocity))
	}
}

func (c *cameraImpl) ProcessMouseMovement(xOffset, yOffset float32, constrainPitch bool) {
	c.yaw += xOffset * c.mouseSensitivity
	c.pitch += yOffset * c.mouseSensitivity

	if constrainPitch {
		c.pitch = mgl32.Clamp(c.pitch, -MaxPitch, MaxPitch)
	}

	c.updateVectors()
}

func (c *cameraImpl) ProcessMouseScroll(yOffset float32) {
	c.zoom = mgl32.Clamp(c.zoom-yOffset, MinZoom, MaxZoom)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

func (c *cameraImpl) Zoom() float32 {
	return c.zoom
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) Front() mgl32.Vec3 {
	return c.front
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	return c.right
}

func (c *cameraImpl) Yaw() float32 {
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	return c.pitch
}

// updateVectors recomputes front, right and up from the Euler angles.
func (c *cameraImpl) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.front = front.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
