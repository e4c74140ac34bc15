package shader

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelShaderPath = "../../../shaders/model_loading.wgsl"

func loadModelShader(t *testing.T) Shader {
	t.Helper()
	s, err := NewShader("model", modelShaderPath)
	require.NoError(t, err)
	return s
}

func TestNewShader_EntryPoints(t *testing.T) {
	s := loadModelShader(t)

	assert.Equal(t, "model", s.Key())
	assert.Equal(t, "vs_main", s.EntryPoint(ShaderTypeVertex))
	assert.Equal(t, "fs_main", s.EntryPoint(ShaderTypeFragment))
	assert.NotEmpty(t, s.Source())
}

func TestNewShader_VertexLayout(t *testing.T) {
	s := loadModelShader(t)

	require.Len(t, s.VertexLayouts(), 1)
	layout := s.VertexLayouts()[0]
	assert.Equal(t, uint64(32), layout.ArrayStride)
	assert.Equal(t, []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
	}, layout.Attributes)
}

func TestNewShader_BindGroupLayouts(t *testing.T) {
	s := loadModelShader(t)
	stages := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment

	frame := s.BindGroupLayoutDescriptor(0)
	require.Len(t, frame.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, frame.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(208), frame.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, stages, frame.Entries[0].Visibility)

	material := s.BindGroupLayoutDescriptor(1)
	require.Len(t, material.Entries, 3)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, material.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(32), material.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, material.Entries[1].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, material.Entries[1].Texture.ViewDimension)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, material.Entries[2].Sampler.Type)

	assert.Equal(t, "frame", s.BindingVarName(0, 0))
	assert.Equal(t, "diffuseSampler", s.BindingVarName(1, 2))
	assert.Equal(t, "", s.BindingVarName(3, 0))
}

func TestNewShader_FrameUniformLayout(t *testing.T) {
	s := loadModelShader(t)

	layout := s.FrameUniforms().Layout()
	assert.Equal(t, "FrameUniforms", layout.Name)
	assert.Equal(t, uint64(208), layout.Size)
	assert.Equal(t, []FieldLayout{
		{Name: "projection", Type: "mat4x4<f32>", Offset: 0, Size: 64},
		{Name: "view", Type: "mat4x4<f32>", Offset: 64, Size: 64},
		{Name: "model", Type: "mat4x4<f32>", Offset: 128, Size: 64},
		{Name: "selectedObject", Type: "i32", Offset: 192, Size: 4},
	}, layout.Fields)

	mesh, ok := s.BindingLayout(1, 0)
	require.True(t, ok)
	assert.Equal(t, "MeshUniforms", mesh.Name)

	_, ok = s.BindingLayout(1, 1)
	assert.False(t, ok, "texture bindings have no struct layout")
}

func TestSetMat4_WritesAtReflectedOffset(t *testing.T) {
	s := loadModelShader(t)
	m := mgl32.Translate3D(1, 2, 3)

	s.SetMat4("view", m)

	data := s.FrameUniforms().Bytes()
	assert.True(t, s.FrameUniforms().Dirty())
	for i := 0; i < 16; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[64+i*4:]))
		assert.Equal(t, m[i], got, "element %d", i)
	}
	for _, b := range data[:64] {
		assert.Zero(t, b)
	}
}

func TestSetInt_AndIgnoredWrites(t *testing.T) {
	s := loadModelShader(t)

	s.SetInt("selectedObject", 7)
	data := s.FrameUniforms().Bytes()
	assert.Equal(t, int32(7), int32(binary.LittleEndian.Uint32(data[192:])))

	s.FrameUniforms().ClearDirty()
	before := append([]byte(nil), data...)

	s.SetMat4("doesNotExist", mgl32.Ident4())
	s.SetInt("model", 3)

	assert.Equal(t, before, s.FrameUniforms().Bytes())
	assert.False(t, s.FrameUniforms().Dirty())
}

func TestUse_CallsActivateHook(t *testing.T) {
	s := loadModelShader(t)
	s.Use()

	var active Shader
	s.SetActivateHook(func(sh Shader) { active = sh })
	s.Use()
	assert.Same(t, s, active)
}

func TestNewShader_Errors(t *testing.T) {
	_, err := NewShader("missing", filepath.Join(t.TempDir(), "nope.wgsl"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewShaderFromSource("vs-only", "@vertex fn main() -> @builtin(position) vec4<f32> { return vec4<f32>(); }")
	assert.ErrorIs(t, err, ErrMissingEntryPoint)

	_, err = NewShaderFromSource("fs-only", "@fragment fn main() -> @location(0) vec4<f32> { return vec4<f32>(); }")
	assert.ErrorIs(t, err, ErrMissingEntryPoint)
}

func TestStructLayout_NestedAndArrays(t *testing.T) {
	src := `
struct Light {
    position: vec3<f32>,
    intensity: f32,
}
struct Scene {
    lights: array<Light, 4>,
    count: u32,
    ambient: vec3f,
}
`
	layouts := computeStructLayouts(parseStructBlocks(stripComments(src)))

	light := layouts["Light"]
	assert.Equal(t, uint64(16), light.Size)
	assert.Equal(t, uint64(12), light.Fields[1].Offset)

	scene := layouts["Scene"]
	assert.Equal(t, uint64(64), scene.Fields[1].Offset)
	assert.Equal(t, uint64(80), scene.Fields[2].Offset)
	assert.Equal(t, uint64(96), scene.Size)
}

func TestStripComments(t *testing.T) {
	src := "a // line\nb /* block /* nested */ still */ c\n"
	assert.Equal(t, "a \nb  c\n", stripComments(src))
}

func TestUniformBlock_Vec4(t *testing.T) {
	b := NewUniformBlock(StructLayout{
		Size: 32,
		Fields: []FieldLayout{
			{Name: "color", Type: "vec4<f32>", Offset: 0, Size: 16},
			{Name: "flags", Type: "u32", Offset: 16, Size: 4},
		},
	})

	assert.True(t, b.SetVec4("color", mgl32.Vec4{0.5, 0.25, 1, 1}))
	assert.False(t, b.SetInt("flags", 9))
	assert.False(t, b.SetVec4("flags", mgl32.Vec4{}))
	assert.True(t, b.Dirty())

	data := b.Bytes()
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(data[4:])))
	assert.Zero(t, binary.LittleEndian.Uint32(data[16:]))
}
