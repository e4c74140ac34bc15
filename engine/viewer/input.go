package viewer

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
)

// KeyState reports whether a key is currently held. window.Window implements it.
type KeyState interface {
	KeyPressed(keyCode uint32) bool
}

// cameraKeys pairs the WASD keys with the camera movement they drive.
var cameraKeys = []struct {
	key      uint32
	movement camera.Movement
}{
	{common.KeyW, camera.MovementForward},
	{common.KeyS, camera.MovementBackward},
	{common.KeyA, camera.MovementLeft},
	{common.KeyD, camera.MovementRight},
}

// arrowKeys lists the movement keys by priority. Only the first held key pushes a command.
var arrowKeys = []struct {
	key     uint32
	command Command
}{
	{common.KeyRight, CommandRight},
	{common.KeyLeft, CommandLeft},
	{common.KeyUp, CommandUp},
	{common.KeyDown, CommandDown},
}

// Sample polls the keyboard once and updates state. Every step runs on every call:
//   - Escape requests quit.
//   - W/S/A/D move the camera, each independently, scaled by dt.
//   - Digits 0..9 (main row or keypad) select a sub-mesh; the highest held digit wins.
//   - Right, Left, Up, Down push at most one movement command, in that priority.
//
// Parameters:
//   - state: the viewer state to update
//   - keys: the polled key state
//   - dt: seconds since the previous frame
func Sample(state *State, keys KeyState, dt float32) {
	if keys.KeyPressed(common.KeyEsc) {
		state.QuitRequested = true
	}

	for _, ck := range cameraKeys {
		if keys.KeyPressed(ck.key) {
			state.Camera.ProcessKeyboard(ck.movement, dt)
		}
	}

	for digit := range common.DigitKeys {
		if keys.KeyPressed(common.DigitKeys[digit]) || keys.KeyPressed(common.KeypadDigitKeys[digit]) {
			state.SelectedIndex = int32(digit)
		}
	}

	for _, ak := range arrowKeys {
		if keys.KeyPressed(ak.key) {
			state.Queue.Push(ak.command)
			break
		}
	}
}
