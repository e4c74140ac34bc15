package camera

// CursorTracker converts absolute cursor positions into per-event offsets.
// The first position only latches the reference point so the camera does not jump
// when the cursor is captured.
type CursorTracker struct {
	lastX, lastY float64
	first        bool
}

// NewCursorTracker creates a tracker whose reference point starts at (x, y),
// normally the window center.
func NewCursorTracker(x, y float64) *CursorTracker {
	return &CursorTracker{lastX: x, lastY: y, first: true}
}

// Offset records a cursor position and returns the offset from the previous one.
// The y offset is reversed since window y grows downwards.
//
// Parameters:
//   - x, y: cursor position in screen pixels
//
// Returns:
//   - dx, dy: the offsets to feed into Camera.ProcessMouseMovement
func (t *CursorTracker) Offset(x, y float64) (dx, dy float32) {
	if t.first {
		t.lastX = x
		t.lastY = y
		t.first = false
	}

	dx = float32(x - t.lastX)
	dy = float32(t.lastY - y)

	t.lastX = x
	t.lastY = y
	return dx, dy
}
