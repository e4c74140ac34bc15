package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraBuilderOption is a functional option applied to a camera during construction via NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's starting position.
//
// Parameters:
//   - position: world space position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera position
func WithPosition(position mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithWorldUp sets the world up vector used to derive the camera basis.
//
// Parameters:
//   - up: the world up vector, typically (0, 1, 0)
//
// Returns:
//   - CameraBuilderOption: a function that sets the world up vector
func WithWorldUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.worldUp = up
	}
}

// WithYaw sets the starting yaw in degrees. -90 looks down -Z.
//
// Parameters:
//   - yaw: yaw angle in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the yaw
func WithYaw(yaw float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = yaw
	}
}

// WithPitch sets the starting pitch in degrees.
//
// Parameters:
//   - pitch: pitch angle in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the pitch
func WithPitch(pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pitch = pitch
	}
}

// WithMovementSpeed sets the keyboard movement speed in world units per second.
//
// Parameters:
//   - speed: movement speed
//
// Returns:
//   - CameraBuilderOption: a function that sets the movement speed
func WithMovementSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.movementSpeed = speed
	}
}

// WithMouseSensitivity sets the degrees of rotation per pixel of cursor movement.
//
// Parameters:
//   - sensitivity: mouse sensitivity
//
// Returns:
//   - CameraBuilderOption: a function that sets the mouse sensitivity
func WithMouseSensitivity(sensitivity float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.mouseSensitivity = sensitivity
	}
}

// WithZoom sets the starting field of view in degrees, clamped to [MinZoom, MaxZoom].
//
// Parameters:
//   - zoom: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the zoom
func WithZoom(zoom float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoom = mgl32.Clamp(zoom, MinZoom, MaxZoom)
	}
}
