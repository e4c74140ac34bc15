package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/viewer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/Carmen-Shannon/oxy-viewer/internal/config"
	"github.com/Carmen-Shannon/oxy-viewer/internal/logging"
	"github.com/rs/zerolog/log"
)

// shaderKey names the single pipeline the viewer registers.
const shaderKey = "model_loading"

func init() {
	// GLFW calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("viewer exited")
	}
}

// run wires the viewer and blocks until the render loop ends. Deferred releases run before
// main reports an error.
func run() error {
	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Pretty)
	log.Logger = logger

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithCursorDisabled(true),
		window.WithLogger(logging.Component(logger, "window")),
	)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	presentMode := renderer.PresentModeVSync
	if !cfg.Renderer.VSync {
		presentMode = renderer.PresentModeUncapped
	}

	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithClearColor(cfg.Renderer.ClearColor),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.Software),
		renderer.WithLogger(logging.Component(logger, "renderer")),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	defer r.Release()

	s, err := shader.NewShader(shaderKey, cfg.ShaderPath)
	if err != nil {
		return fmt.Errorf("failed to build shader: %w", err)
	}
	if err := r.RegisterShader(s); err != nil {
		return fmt.Errorf("failed to register shader: %w", err)
	}

	l := loader.NewLoader(
		loader.WithGPU(r),
		loader.WithProgress(cfg.Log.Pretty),
		loader.WithLogger(logging.Component(logger, "loader")),
	)
	m, err := l.Load(cfg.ModelPath, s)
	if err != nil {
		return fmt.Errorf("failed to load model %s: %w", cfg.ModelPath, err)
	}
	defer m.Release()

	v, err := viewer.NewViewer(
		viewer.WithInput(win),
		viewer.WithRenderer(r),
		viewer.WithProgram(s),
		viewer.WithModel(m),
		viewer.WithCamera(camera.NewCamera()),
		viewer.WithWindowSize(cfg.Window.Width, cfg.Window.Height),
		viewer.WithLogger(logging.Component(logger, "viewer")),
	)
	if err != nil {
		return fmt.Errorf("failed to create viewer: %w", err)
	}

	var p *profiler.Profiler
	if cfg.Profiling {
		p, err = profiler.NewProfiler(profiler.WithLogger(logging.Component(logger, "profiler")))
		if err != nil {
			return fmt.Errorf("failed to create profiler: %w", err)
		}
	}

	for i := 0; i < m.MeshCount(); i++ {
		logger.Debug().Int("index", i).Str("name", m.MeshName(i)).Msg("sub-mesh")
	}

	lo, hi := m.Bounds()
	logger.Info().
		Str("model", m.Name()).
		Int("meshes", m.MeshCount()).
		Floats32("bounds_min", lo[:]).
		Floats32("bounds_max", hi[:]).
		Msg("viewer ready; arrows move the model, 0-9 highlight a sub-mesh, Esc quits")

	e := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithFrameCallback(v.Frame),
		engine.WithEventHandler(v.HandleEvent),
		engine.WithProfiler(p),
		engine.WithLogger(logging.Component(logger, "engine")),
	)
	if err := e.Run(); err != nil {
		return fmt.Errorf("render loop failed: %w", err)
	}
	return nil
}
