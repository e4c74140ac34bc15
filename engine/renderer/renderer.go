package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog"
)

var (
	// ErrGraphicsInit is returned when the GPU device or surface cannot be initialized.
	ErrGraphicsInit = errors.New("failed to initialize graphics")

	// ErrNoActiveShader is returned by DrawMesh before any registered shader's Use was called.
	ErrNoActiveShader = errors.New("no active shader")

	// ErrShaderNotRegistered is returned when activating a shader the renderer does not know.
	ErrShaderNotRegistered = errors.New("shader not registered")
)

// registeredShader is a shader with the GPU objects created for it on registration.
type registeredShader struct {
	shader   shader.Shader
	pipeline pipeline.Pipeline
	frame    bind_group_provider.BindGroupProvider
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend RendererBackend
	logger  zerolog.Logger

	shaders map[string]*registeredShader
	active  *registeredShader

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           wgpu.Color
}

// Renderer draws indexed meshes with WGSL shaders registered up front.
//
// A frame is BeginFrame (which clears color and depth), any number of DrawMesh calls, EndFrame
// and Present. Shaders become active through their own Use method; the uniform block of the
// active shader is uploaded before the first draw that follows a change to it.
type Renderer interface {
	// RegisterShader creates the render pipeline and the per-frame uniform buffer for s, and
	// hooks s.Use so that it activates s on this renderer. Registering a key twice is a no-op.
	//
	// Parameters:
	//   - s: the reflected shader
	//
	// Returns:
	//   - error: an error if GPU object creation fails
	RegisterShader(s shader.Shader) error

	// ActiveShader returns the shader selected by the last Use call, or nil.
	ActiveShader() shader.Shader

	// Pipeline returns the pipeline registered for a shader key, or nil.
	Pipeline(key string) pipeline.Pipeline

	// Resize reconfigures the surface and its render targets for a new framebuffer size.
	// Zero sizes (minimized windows) are ignored.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if the render targets could not be recreated
	Resize(width, height int) error

	// InitMeshBuffers uploads vertex and index data for a mesh.
	//
	// Parameters:
	//   - provider: the provider to store the buffers on
	//   - vertexData: raw vertex bytes matching the shader's vertex layout
	//   - indexData: raw uint32 index bytes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the buffers and bind group described by a shader bind group layout.
	// Textures and samplers must be initialized first.
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView uploads decoded RGBA pixels for a texture binding.
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler for a sampler binding. Zero fields use repeat addressing
	// and linear filtering.
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers queues buffer uploads.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and clears it.
	BeginFrame() error

	// DrawMesh draws one mesh with the active shader. Bind group FrameGroup is the shader's
	// frame uniforms, the material provider is bound at the next group.
	//
	// Parameters:
	//   - mesh: the provider holding vertex and index buffers
	//   - material: the provider holding the material bind group
	//
	// Returns:
	//   - error: ErrNoActiveShader, or an error if the draw could not be encoded
	DrawMesh(mesh, material bind_group_provider.BindGroupProvider) error

	// EndFrame submits the commands recorded since BeginFrame.
	EndFrame()

	// Present shows the submitted frame.
	Present()

	// Release releases every GPU object owned by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the WebGPU device for a window's surface and configures it to the
// window's size.
//
// Parameters:
//   - win: the window providing the surface
//   - options: functional options applied before the device is created
//
// Returns:
//   - Renderer: the renderer
//   - error: an error wrapping ErrGraphicsInit if the device or surface cannot be created
func NewRenderer(win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	backend, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGraphicsInit, err)
	}

	if err := r.attach(backend, win.Width(), win.Height()); err != nil {
		backend.Release()
		return nil, fmt.Errorf("%w: %w", ErrGraphicsInit, err)
	}

	r.logger.Info().
		Int("width", win.Width()).
		Int("height", win.Height()).
		Uint32("msaa", uint32(r.msaa)).
		Msg("renderer initialized")
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		logger:      zerolog.Nop(),
		shaders:     make(map[string]*registeredShader),
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
		clearColor:  wgpu.Color{R: 0.05, G: 0.05, B: 0.05, A: 1.0},
	}

	for _, opt := range options {
		opt(r)
	}

	return r
}

// attach applies the collected options to backend and configures the surface.
func (r *renderer) attach(backend RendererBackend, width, height int) error {
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) RegisterShader(s shader.Shader) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.shaders[s.Key()]; exists {
		return nil
	}

	p := pipeline.NewPipeline(s.Key(), pipeline.WithShader(s))
	if err := r.backend.RegisterRenderPipeline(p); err != nil {
		return fmt.Errorf("shader %s: failed to create render pipeline: %w", s.Key(), err)
	}

	frame := bind_group_provider.NewBindGroupProvider(s.Key() + " Frame")
	if err := r.backend.InitBindGroup(frame, s.BindGroupLayoutDescriptor(shader.FrameGroup)); err != nil {
		p.Release()
		return fmt.Errorf("shader %s: failed to create frame bind group: %w", s.Key(), err)
	}

	r.shaders[s.Key()] = &registeredShader{shader: s, pipeline: p, frame: frame}
	s.SetActivateHook(r.activate)

	r.logger.Debug().Str("shader", s.Key()).Msg("shader registered")
	return nil
}

// activate is installed as the Use hook of every registered shader.
func (r *renderer) activate(s shader.Shader) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs, ok := r.shaders[s.Key()]
	if !ok {
		r.logger.Warn().Err(ErrShaderNotRegistered).Str("shader", s.Key()).Msg("ignoring Use")
		return
	}
	r.active = rs
}

func (r *renderer) ActiveShader() shader.Shader {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return nil
	}
	return r.active.shader
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rs, ok := r.shaders[key]; ok {
		return rs.pipeline
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to resize surface to %dx%d: %w", width, height, err)
	}
	r.logger.Debug().Int("width", width).Int("height", height).Msg("surface resized")
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, binding, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, binding, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawMesh(mesh, material bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	active := r.active
	r.mu.Unlock()

	if active == nil {
		return ErrNoActiveShader
	}

	if uniforms := active.shader.FrameUniforms(); uniforms.Dirty() {
		r.backend.WriteBuffers([]bind_group_provider.BufferWrite{{
			Provider: active.frame,
			Binding:  shader.FrameBinding,
			Data:     uniforms.Bytes(),
		}})
		uniforms.ClearDirty()
	}

	bindGroups := []bind_group_provider.BindGroupProvider{active.frame}
	if material != nil {
		bindGroups = append(bindGroups, material)
	}
	return r.backend.DrawCall(active.pipeline, mesh, bindGroups)
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, rs := range r.shaders {
		rs.shader.SetActivateHook(nil)
		rs.frame.Release()
		rs.pipeline.Release()
		delete(r.shaders, key)
	}
	r.active = nil
	r.mu.Unlock()

	r.backend.Release()
}
