package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW   = 87  // W key (ASCII)
	KeyA   = 65  // A key (ASCII)
	KeyS   = 83  // S key (ASCII)
	KeyD   = 68  // D key (ASCII)
	KeyEsc = 256 // Escape key (GLFW)

	Key0 = 48 // 0 key (ASCII)
	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
	Key4 = 52 // 4 key (ASCII)
	Key5 = 53 // 5 key (ASCII)
	Key6 = 54 // 6 key (ASCII)
	Key7 = 55 // 7 key (ASCII)
	Key8 = 56 // 8 key (ASCII)
	Key9 = 57 // 9 key (ASCII)
)

// Arrow keys
const (
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)

// Numeric keypad digits
const (
	KeyKP0 = 320 // Keypad 0 (GLFW)
	KeyKP1 = 321 // Keypad 1 (GLFW)
	KeyKP2 = 322 // Keypad 2 (GLFW)
	KeyKP3 = 323 // Keypad 3 (GLFW)
	KeyKP4 = 324 // Keypad 4 (GLFW)
	KeyKP5 = 325 // Keypad 5 (GLFW)
	KeyKP6 = 326 // Keypad 6 (GLFW)
	KeyKP7 = 327 // Keypad 7 (GLFW)
	KeyKP8 = 328 // Keypad 8 (GLFW)
	KeyKP9 = 329 // Keypad 9 (GLFW)
)

// DigitKeys maps a digit to its main-row key code.
var DigitKeys = [10]uint32{Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9}

// KeypadDigitKeys maps a digit to its numeric keypad key code.
var KeypadDigitKeys = [10]uint32{KeyKP0, KeyKP1, KeyKP2, KeyKP3, KeyKP4, KeyKP5, KeyKP6, KeyKP7, KeyKP8, KeyKP9}
