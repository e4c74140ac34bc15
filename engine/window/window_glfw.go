package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// dontCare leaves a size limit unbounded.
const dontCare = glfw.DontCare

// glfwWindow holds GLFW-specific window state.
type glfwWindow struct {
	window *glfw.Window
}

// newPlatformWindow initializes GLFW, creates a window without a client API (the WebGPU
// surface is created from it later) and installs callbacks that buffer events on w.
// Must be called from the main goroutine; the OS thread stays locked for the window lifetime.
//
// Parameters:
//   - w: the engineWindow to attach the platform window to
//
// Returns:
//   - error: an error if GLFW initialization or window creation fails
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}

	gw := &glfwWindow{window: win}
	w.internalWindow = gw

	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	if w.cursorDisabled {
		win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.pushEvent(Event{Kind: EventCursor, X: xpos, Y: ypos})
	})

	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.pushEvent(Event{Kind: EventScroll, X: xoff, Y: yoff})
	})

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.pushEvent(Event{Kind: EventResize, Width: width, Height: height})
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

func platformKeyPressed(w *engineWindow, keyCode uint32) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.window.GetKey(glfw.Key(keyCode)) == glfw.Press
}

func platformPollEvents(w *engineWindow) {
	if w.internalWindow == nil {
		return
	}
	glfw.PollEvents()
}

func platformTime() float64 {
	return glfw.GetTime()
}

func platformShouldClose(w *engineWindow) bool {
	if w.internalWindow == nil {
		return true
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.window.ShouldClose()
}

func platformSetShouldClose(w *engineWindow, value bool) {
	if w.internalWindow == nil {
		return
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.window.SetShouldClose(value)
}

// platformGetSurfaceDescriptor returns the WebGPU surface descriptor for the GLFW window.
//
// Parameters:
//   - w: the engineWindow to get the surface descriptor for
//
// Returns:
//   - *wgpu.SurfaceDescriptor: the surface descriptor, or nil if not initialized
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformCloseWindow destroys the GLFW window and terminates GLFW.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: an error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	w.logger.Info().Msg("window closed")
	return nil
}
