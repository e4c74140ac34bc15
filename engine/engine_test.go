package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost advances its clock by step on every Time call and closes after closeAfter polls.
type fakeHost struct {
	now  float64
	step float64

	polls      int
	closeAfter int
	pending    [][]window.Event

	calls []string
}

func (h *fakeHost) PollEvents() {
	h.polls++
	h.calls = append(h.calls, "poll")
}

func (h *fakeHost) Events() []window.Event {
	if len(h.pending) == 0 {
		return nil
	}
	events := h.pending[0]
	h.pending = h.pending[1:]
	return events
}

func (h *fakeHost) Time() float64 {
	t := h.now
	h.now += h.step
	return t
}

func (h *fakeHost) ShouldClose() bool {
	return h.closeAfter > 0 && h.polls >= h.closeAfter
}

func TestRun_NoWindow(t *testing.T) {
	assert.ErrorIs(t, NewEngine().Run(), ErrNoWindow)
}

func TestRun_OrderAndDeltaTime(t *testing.T) {
	host := &fakeHost{step: 0.5, closeAfter: 2}
	host.pending = [][]window.Event{
		{{Kind: window.EventCursor, X: 1, Y: 2}, {Kind: window.EventScroll, Y: 1}},
	}

	var dts []float32
	var events []window.EventKind
	e := NewEngine(
		WithWindow(host),
		WithFrameCallback(func(dt float32) error {
			dts = append(dts, dt)
			host.calls = append(host.calls, "frame")
			return nil
		}),
		WithEventHandler(func(ev window.Event) {
			events = append(events, ev.Kind)
			host.calls = append(host.calls, "event")
		}),
	)

	require.NoError(t, e.Run())
	assert.Equal(t, StateTerminating, e.State())
	assert.Equal(t, []float32{0.5, 0.5}, dts)
	assert.Equal(t, []window.EventKind{window.EventCursor, window.EventScroll}, events)
	assert.Equal(t, []string{"frame", "poll", "event", "event", "frame", "poll"}, host.calls)
}

func TestRun_QuitFinishesCurrentFrame(t *testing.T) {
	host := &fakeHost{step: 0.1}
	var e Engine
	frames := 0
	e = NewEngine(WithWindow(host), WithFrameCallback(func(float32) error {
		frames++
		if frames == 3 {
			e.Quit()
		}
		return nil
	}))

	require.NoError(t, e.Run())
	assert.Equal(t, 3, frames)
	assert.Equal(t, 3, host.polls)
}

func TestRun_FrameErrorIsLoggedAndLoopContinues(t *testing.T) {
	var buf bytes.Buffer
	host := &fakeHost{step: 0.1, closeAfter: 3}
	frames := 0
	e := NewEngine(
		WithWindow(host),
		WithLogger(zerolog.New(&buf)),
		WithFrameCallback(func(float32) error {
			frames++
			if frames == 1 {
				return errors.New("surface outdated")
			}
			return nil
		}),
	)

	require.NoError(t, e.Run())
	assert.Equal(t, 3, frames)
	assert.Contains(t, buf.String(), "surface outdated")
	assert.Equal(t, 1, strings.Count(buf.String(), "frame failed"))
}

func TestRun_PanicTerminates(t *testing.T) {
	var buf bytes.Buffer
	host := &fakeHost{step: 0.1}
	e := NewEngine(
		WithWindow(host),
		WithLogger(zerolog.New(&buf)),
		WithFrameCallback(func(float32) error { panic("boom") }),
	)

	require.NoError(t, e.Run())
	assert.Equal(t, 1, host.polls)
	assert.Contains(t, buf.String(), "frame callback panicked: boom")
}

func TestRun_TicksProfiler(t *testing.T) {
	p, err := profiler.NewProfiler()
	require.NoError(t, err)

	host := &fakeHost{step: 0.1, closeAfter: 2}
	e := NewEngine(WithWindow(host), WithProfiler(p))
	e.SetFrameCallback(func(float32) error { return nil })
	e.SetEventHandler(func(window.Event) {})

	require.NoError(t, e.Run())
	assert.Same(t, host, e.Window())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "terminating", StateTerminating.String())
	assert.Equal(t, "State(7)", State(7).String())
}
