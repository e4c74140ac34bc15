package window

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestEvents_DrainedInArrivalOrder(t *testing.T) {
	w := &engineWindow{width: 800, height: 600, logger: zerolog.Nop()}

	w.pushEvent(Event{Kind: EventCursor, X: 10, Y: 20})
	w.pushEvent(Event{Kind: EventScroll, Y: -1})
	w.pushEvent(Event{Kind: EventResize, Width: 1024, Height: 768})

	events := w.Events()
	assert.Equal(t, []Event{
		{Kind: EventCursor, X: 10, Y: 20},
		{Kind: EventScroll, Y: -1},
		{Kind: EventResize, Width: 1024, Height: 768},
	}, events)
	assert.Empty(t, w.Events())
}

func TestResizeEvent_UpdatesSize(t *testing.T) {
	w := &engineWindow{width: 800, height: 600, logger: zerolog.Nop()}

	w.pushEvent(Event{Kind: EventResize, Width: 1600, Height: 1200})

	assert.Equal(t, 1600, w.Width())
	assert.Equal(t, 1200, w.Height())
}

func TestUninitializedWindow(t *testing.T) {
	w := &engineWindow{logger: zerolog.Nop()}

	assert.False(t, w.KeyPressed(65))
	assert.True(t, w.ShouldClose())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
	w.PollEvents()
	w.SetShouldClose(true)
}

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{}
	for _, opt := range []WindowBuilderOption{
		WithTitle("viewer"),
		WithWidth(640),
		WithHeight(480),
		WithMinSize(100, 50),
		WithMaxSize(1920, 1080),
		WithCursorDisabled(false),
	} {
		opt(w)
	}

	assert.Equal(t, "viewer", w.title)
	assert.Equal(t, 640, w.width)
	assert.Equal(t, 480, w.height)
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 50, w.minHeight)
	assert.Equal(t, 1920, w.maxWidth)
	assert.Equal(t, 1080, w.maxHeight)
	assert.False(t, w.cursorDisabled)
}
