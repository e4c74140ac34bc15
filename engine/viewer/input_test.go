package viewer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/stretchr/testify/assert"
)

type fakeKeys map[uint32]bool

func (k fakeKeys) KeyPressed(keyCode uint32) bool {
	return k[keyCode]
}

func pressed(keys ...uint32) fakeKeys {
	k := fakeKeys{}
	for _, key := range keys {
		k[key] = true
	}
	return k
}

func newTestState() *State {
	return NewState(camera.NewCamera(), 800, 600)
}

func drained(q *Queue) []Command {
	var got []Command
	q.Drain(func(c Command) { got = append(got, c) })
	return got
}

func TestSample_Escape(t *testing.T) {
	s := newTestState()
	Sample(s, pressed(common.KeyEsc, common.KeyRight, common.Key4), 0.016)

	assert.True(t, s.QuitRequested)
	// The rest of the sampling still runs.
	assert.Equal(t, int32(4), s.SelectedIndex)
	assert.Equal(t, []Command{CommandRight}, drained(s.Queue))
}

func TestSample_ArrowPriority(t *testing.T) {
	tests := []struct {
		name string
		keys []uint32
		want []Command
	}{
		{"none", nil, nil},
		{"right", []uint32{common.KeyRight}, []Command{CommandRight}},
		{"left", []uint32{common.KeyLeft}, []Command{CommandLeft}},
		{"up", []uint32{common.KeyUp}, []Command{CommandUp}},
		{"down", []uint32{common.KeyDown}, []Command{CommandDown}},
		{"right beats left", []uint32{common.KeyLeft, common.KeyRight}, []Command{CommandRight}},
		{"left beats up", []uint32{common.KeyUp, common.KeyLeft}, []Command{CommandLeft}},
		{"up beats down", []uint32{common.KeyDown, common.KeyUp}, []Command{CommandUp}},
		{"all", []uint32{common.KeyDown, common.KeyUp, common.KeyLeft, common.KeyRight}, []Command{CommandRight}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			Sample(s, pressed(tt.keys...), 0.016)
			assert.Equal(t, tt.want, drained(s.Queue))
		})
	}
}

func TestSample_HeldArrowPushesEveryFrame(t *testing.T) {
	s := newTestState()
	keys := pressed(common.KeyUp)
	for i := 0; i < 5; i++ {
		Sample(s, keys, 0.016)
	}
	assert.Equal(t, 5, s.Queue.Len())
}

func TestSample_Selection(t *testing.T) {
	tests := []struct {
		name string
		keys []uint32
		want int32
	}{
		{"unchanged", nil, 0},
		{"main row", []uint32{common.Key7}, 7},
		{"keypad", []uint32{common.KeyKP5}, 5},
		{"highest digit wins", []uint32{common.Key2, common.Key9, common.Key5}, 9},
		{"keypad and main row", []uint32{common.KeyKP8, common.Key3}, 8},
		{"3 and 7", []uint32{common.KeyKP3, common.Key7}, 7},
		{"zero", []uint32{common.Key0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			Sample(s, pressed(tt.keys...), 0.016)
			assert.Equal(t, tt.want, s.SelectedIndex)
		})
	}
}

func TestSample_SelectionPersists(t *testing.T) {
	s := newTestState()
	Sample(s, pressed(common.Key6), 0.016)
	Sample(s, pressed(), 0.016)
	assert.Equal(t, int32(6), s.SelectedIndex)
}

func TestSample_CameraMovement(t *testing.T) {
	s := newTestState()
	Sample(s, pressed(common.KeyW), 1)
	assert.InDelta(t, 0.5, s.Camera.Position().Z(), 1e-5)

	// Opposite keys cancel.
	s = newTestState()
	Sample(s, pressed(common.KeyA, common.KeyD), 1)
	assert.InDelta(t, 0, s.Camera.Position().X(), 1e-5)

	s = newTestState()
	Sample(s, pressed(common.KeyD), 0.5)
	assert.InDelta(t, 1.25, s.Camera.Position().X(), 1e-5)
	assert.False(t, s.QuitRequested)
}
