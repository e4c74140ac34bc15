package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawCall struct {
	pipeline   string
	mesh       string
	bindGroups []string
}

type fakeBackend struct {
	configured  [][2]int
	presentMode PresentMode
	clearColor  wgpu.Color
	pipelines   []string
	bindGroups  []string
	writes      []bind_group_provider.BufferWrite
	draws       []drawCall
	calls       []string

	configureErr error
	pipelineErr  error
}

var _ RendererBackend = &fakeBackend{}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	f.configured = append(f.configured, [2]int{width, height})
	return f.configureErr
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.presentMode = mode }

func (f *fakeBackend) SetClearColor(color wgpu.Color) { f.clearColor = color }

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if f.pipelineErr != nil {
		return f.pipelineErr
	}
	f.pipelines = append(f.pipelines, p.Key())
	return nil
}

func (f *fakeBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, indexCount int) error {
	provider.SetIndexCount(indexCount)
	return nil
}

func (f *fakeBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider, _ wgpu.BindGroupLayoutDescriptor) error {
	f.bindGroups = append(f.bindGroups, provider.Label())
	return nil
}

func (f *fakeBackend) InitTextureView(bind_group_provider.BindGroupProvider, int, common.TextureStagingData) error {
	return nil
}

func (f *fakeBackend) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	return nil
}

func (f *fakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		w.Data = append([]byte(nil), w.Data...)
		f.writes = append(f.writes, w)
	}
	f.calls = append(f.calls, "write")
}

func (f *fakeBackend) BeginFrame() error {
	f.calls = append(f.calls, "begin")
	return nil
}

func (f *fakeBackend) DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	labels := make([]string, len(bindGroups))
	for i, bg := range bindGroups {
		labels[i] = bg.Label()
	}
	f.draws = append(f.draws, drawCall{pipeline: p.Key(), mesh: mesh.Label(), bindGroups: labels})
	f.calls = append(f.calls, "draw")
	return nil
}

func (f *fakeBackend) EndFrame() { f.calls = append(f.calls, "end") }

func (f *fakeBackend) Present() { f.calls = append(f.calls, "present") }

func (f *fakeBackend) Release() { f.calls = append(f.calls, "release") }

func newTestRenderer(t *testing.T, options ...RendererBuilderOption) (*renderer, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	r := newRenderer(options...)
	require.NoError(t, r.attach(backend, 800, 600))
	return r, backend
}

func newTestShader(t *testing.T, key string) shader.Shader {
	t.Helper()
	s, err := shader.NewShader(key, "../../shaders/model_loading.wgsl")
	require.NoError(t, err)
	return s
}

func TestAttach_AppliesOptions(t *testing.T) {
	_, backend := newTestRenderer(t,
		WithPresentMode(PresentModeUncapped),
		WithClearColor([4]float64{0.1, 0.2, 0.3, 1}),
	)

	assert.Equal(t, [][2]int{{800, 600}}, backend.configured)
	assert.Equal(t, PresentModeUncapped, backend.presentMode)
	assert.Equal(t, wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}, backend.clearColor)
}

func TestRegisterShader_CreatesPipelineAndFrameGroupOnce(t *testing.T) {
	r, backend := newTestRenderer(t)
	s := newTestShader(t, "model")

	require.NoError(t, r.RegisterShader(s))
	require.NoError(t, r.RegisterShader(s))

	assert.Equal(t, []string{"model"}, backend.pipelines)
	assert.Equal(t, []string{"model Frame"}, backend.bindGroups)
	assert.NotNil(t, r.Pipeline("model"))
	assert.Nil(t, r.Pipeline("other"))
}

func TestRegisterShader_PipelineError(t *testing.T) {
	r, backend := newTestRenderer(t)
	backend.pipelineErr = errors.New("boom")

	err := r.RegisterShader(newTestShader(t, "model"))
	assert.ErrorContains(t, err, "boom")
	assert.Nil(t, r.Pipeline("model"))
}

func TestDrawMesh_RequiresActiveShader(t *testing.T) {
	r, _ := newTestRenderer(t)
	require.NoError(t, r.RegisterShader(newTestShader(t, "model")))

	err := r.DrawMesh(bind_group_provider.NewBindGroupProvider("mesh"), nil)
	assert.ErrorIs(t, err, ErrNoActiveShader)
}

func TestUse_ActivatesRegisteredShader(t *testing.T) {
	r, _ := newTestRenderer(t)
	s := newTestShader(t, "model")
	require.NoError(t, r.RegisterShader(s))

	assert.Nil(t, r.ActiveShader())
	s.Use()
	assert.Same(t, s, r.ActiveShader())
}

func TestDrawMesh_FlushesDirtyFrameUniformsOnce(t *testing.T) {
	r, backend := newTestRenderer(t)
	s := newTestShader(t, "model")
	require.NoError(t, r.RegisterShader(s))

	require.NoError(t, r.BeginFrame())
	s.Use()
	s.SetMat4("model", mgl32.Scale3D(0.2, 0.2, 0.2))
	s.SetInt("selectedObject", 3)

	material := bind_group_provider.NewBindGroupProvider("material 0")
	require.NoError(t, r.DrawMesh(bind_group_provider.NewBindGroupProvider("mesh 0"), material))
	require.NoError(t, r.DrawMesh(bind_group_provider.NewBindGroupProvider("mesh 1"), material))
	r.EndFrame()
	r.Present()

	assert.Equal(t, []string{"begin", "write", "draw", "draw", "end", "present"}, backend.calls)
	require.Len(t, backend.writes, 1)
	assert.Equal(t, "model Frame", backend.writes[0].Provider.Label())
	assert.Equal(t, shader.FrameBinding, backend.writes[0].Binding)
	assert.Len(t, backend.writes[0].Data, 208)
	assert.False(t, s.FrameUniforms().Dirty())

	require.Len(t, backend.draws, 2)
	assert.Equal(t, drawCall{pipeline: "model", mesh: "mesh 1", bindGroups: []string{"model Frame", "material 0"}}, backend.draws[1])
}

func TestResize(t *testing.T) {
	r, backend := newTestRenderer(t)

	require.NoError(t, r.Resize(1024, 768))
	require.NoError(t, r.Resize(0, 0))
	assert.Equal(t, [][2]int{{800, 600}, {1024, 768}}, backend.configured)

	backend.configureErr = errors.New("lost")
	assert.ErrorContains(t, r.Resize(640, 480), "lost")
}

func TestRelease_UnhooksShaders(t *testing.T) {
	r, backend := newTestRenderer(t)
	s := newTestShader(t, "model")
	require.NoError(t, r.RegisterShader(s))

	r.Release()
	s.Use()

	assert.Nil(t, r.ActiveShader())
	assert.Equal(t, []string{"release"}, backend.calls)
}
