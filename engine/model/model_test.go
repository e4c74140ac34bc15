package model

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGPU struct {
	meshes   map[string]int
	textures map[string]common.TextureStagingData
	groups   []string
	writes   map[string][]byte
	draws    [][2]string

	drawErr error
}

func newFakeGPU() *fakeGPU {
	return &fakeGPU{
		meshes:   make(map[string]int),
		textures: make(map[string]common.TextureStagingData),
		writes:   make(map[string][]byte),
	}
}

func (f *fakeGPU) DrawMesh(mesh, mat bind_group_provider.BindGroupProvider) error {
	if f.drawErr != nil {
		return f.drawErr
	}
	f.draws = append(f.draws, [2]string{mesh.Label(), mat.Label()})
	return nil
}

func (f *fakeGPU) InitMeshBuffers(p bind_group_provider.BindGroupProvider, vertexData, _ []byte, indexCount int) error {
	f.meshes[p.Label()] = len(vertexData)
	p.SetIndexCount(indexCount)
	return nil
}

func (f *fakeGPU) InitBindGroup(p bind_group_provider.BindGroupProvider, _ wgpu.BindGroupLayoutDescriptor) error {
	f.groups = append(f.groups, p.Label())
	return nil
}

func (f *fakeGPU) InitTextureView(p bind_group_provider.BindGroupProvider, _ int, data common.TextureStagingData) error {
	f.textures[p.Label()] = data
	return nil
}

func (f *fakeGPU) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	return nil
}

func (f *fakeGPU) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		f.writes[w.Provider.Label()] = w.Data
	}
}

func loadShader(t *testing.T, key string) shader.Shader {
	t.Helper()
	s, err := shader.NewShader(key, "../../shaders/model_loading.wgsl")
	require.NoError(t, err)
	return s
}

func triangle(name string, materialIndex int) ImportedMesh {
	return ImportedMesh{
		Name: name,
		Vertices: []Vertex{
			{Position: [3]float32{0, 0, 0}},
			{Position: [3]float32{1, 0, 0}},
			{Position: [3]float32{0, 1, 0}},
		},
		Indices:       []uint32{0, 1, 2},
		MaterialIndex: materialIndex,
		BoundingMin:   [3]float32{0, 0, 0},
		BoundingMax:   [3]float32{1, 1, 0},
	}
}

func newTestModel() Model {
	textured := material.NewMaterial(
		material.WithName("visor"),
		material.WithTexture(common.TextureStagingData{Pixels: make([]byte, 16), Width: 2, Height: 2}),
	)
	return NewModel(
		WithName("suit"),
		WithMaterials(textured),
		WithMeshes(triangle("helmet", 0), triangle("legs", -1)),
	)
}

func TestNewModel_MeshesAndMaterials(t *testing.T) {
	m := newTestModel()

	assert.Equal(t, "suit", m.Name())
	assert.Equal(t, 2, m.MeshCount())
	assert.Equal(t, "helmet", m.MeshName(0))
	assert.Equal(t, "legs", m.MeshName(1))
	assert.Equal(t, "", m.MeshName(2))
	assert.Len(t, m.Materials(), 1)

	lo, hi := m.Bounds()
	assert.Equal(t, [3]float32{0, 0, 0}, lo)
	assert.Equal(t, [3]float32{1, 1, 0}, hi)
}

func TestUpload_CreatesPerMeshResources(t *testing.T) {
	m := newTestModel()
	gpu := newFakeGPU()
	s := loadShader(t, "model")

	require.NoError(t, m.Upload(gpu, s))

	assert.Equal(t, 3*VertexSize, gpu.meshes["suit mesh 0"])
	assert.Equal(t, []string{"suit material 0", "suit material 1"}, gpu.groups)
	assert.Equal(t, uint32(2), gpu.textures["suit material 0"].Width)
	assert.Equal(t, common.WhiteTexture, gpu.textures["suit material 1"])

	layout, ok := s.BindingLayout(material.Group, material.UniformBinding)
	require.True(t, ok)
	meshIndex, ok := layout.Field("meshIndex")
	require.True(t, ok)
	for i, label := range []string{"suit material 0", "suit material 1"} {
		data := gpu.writes[label]
		require.Len(t, data, int(layout.Size))
		assert.Equal(t, uint32(i), binary.LittleEndian.Uint32(data[meshIndex.Offset:]), label)
	}
}

func TestDraw_OrderAndErrors(t *testing.T) {
	m := newTestModel()
	gpu := newFakeGPU()
	s := loadShader(t, "model")

	assert.ErrorIs(t, m.Draw(s), ErrNotUploaded)

	require.NoError(t, m.Upload(gpu, s))
	require.NoError(t, m.Draw(s))
	assert.Equal(t, [][2]string{
		{"suit mesh 0", "suit material 0"},
		{"suit mesh 1", "suit material 1"},
	}, gpu.draws)

	assert.ErrorContains(t, m.Draw(loadShader(t, "other")), "uploaded for shader model")

	gpu.drawErr = errors.New("lost device")
	assert.ErrorContains(t, m.Draw(s), "lost device")
}

func TestRelease_RequiresUploadAgain(t *testing.T) {
	m := newTestModel()
	s := loadShader(t, "model")
	require.NoError(t, m.Upload(newFakeGPU(), s))

	m.Release()
	assert.ErrorIs(t, m.Draw(s), ErrNotUploaded)
}
