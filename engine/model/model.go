package model

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNotUploaded is returned by Draw before Upload succeeded.
var ErrNotUploaded = errors.New("model has not been uploaded to the GPU")

// MeshDrawer draws one mesh with the active shader.
type MeshDrawer interface {
	DrawMesh(mesh, material bind_group_provider.BindGroupProvider) error
}

// GPU is the part of the renderer a model needs to upload and draw itself.
type GPU interface {
	MeshDrawer
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)
}

// subMesh is one independently drawn part of a model.
type subMesh struct {
	mesh     ImportedMesh
	material material.Material

	meshProvider  bind_group_provider.BindGroupProvider
	groupProvider bind_group_provider.BindGroupProvider
}

// model is the implementation of the Model interface.
type model struct {
	name      string
	meshes    []*subMesh
	materials []material.Material

	gpu       MeshDrawer
	shaderKey string
}

// Model is a loaded mesh made of ordered sub-meshes, each drawn with its own material. Sub-mesh i
// is drawn with meshIndex = i so the shader can highlight the selected one.
type Model interface {
	// Name returns the model identifier.
	Name() string

	// MeshCount returns the number of sub-meshes.
	MeshCount() int

	// MeshName returns the name of sub-mesh i, or "" when i is out of range.
	MeshName(i int) string

	// Materials returns the materials referenced by the sub-meshes.
	Materials() []material.Material

	// Bounds returns the axis-aligned bounding box of all sub-meshes.
	//
	// Returns:
	//   - [3]float32: the minimum corner
	//   - [3]float32: the maximum corner
	Bounds() (lo, hi [3]float32)

	// Upload creates the GPU buffers and per-mesh bind groups for a shader. The model draws
	// only with that shader afterwards.
	//
	// Parameters:
	//   - gpu: the renderer
	//   - s: the shader whose bind group layouts the resources must match
	//
	// Returns:
	//   - error: an error if any GPU resource could not be created
	Upload(gpu GPU, s shader.Shader) error

	// Draw draws every sub-mesh in order with the active shader.
	//
	// Parameters:
	//   - p: the active program, which must be the shader passed to Upload
	//
	// Returns:
	//   - error: ErrNotUploaded, a shader mismatch, or the first draw error
	Draw(p shader.Program) error

	// Release releases the GPU resources created by Upload.
	Release()
}

var _ Model = &model{}

// NewModel creates a model from imported sub-meshes and their materials.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the model
//
// Returns:
//   - Model: the model, not yet uploaded
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) MeshCount() int {
	return len(m.meshes)
}

func (m *model) MeshName(i int) string {
	if i < 0 || i >= len(m.meshes) {
		return ""
	}
	return m.meshes[i].mesh.Name
}

func (m *model) Materials() []material.Material {
	return m.materials
}

func (m *model) Bounds() (lo, hi [3]float32) {
	for i, sm := range m.meshes {
		for axis := 0; axis < 3; axis++ {
			if i == 0 || sm.mesh.BoundingMin[axis] < lo[axis] {
				lo[axis] = sm.mesh.BoundingMin[axis]
			}
			if i == 0 || sm.mesh.BoundingMax[axis] > hi[axis] {
				hi[axis] = sm.mesh.BoundingMax[axis]
			}
		}
	}
	return lo, hi
}

func (m *model) Upload(gpu GPU, s shader.Shader) error {
	groupDescriptor := s.BindGroupLayoutDescriptor(material.Group)
	uniformLayout, hasUniforms := s.BindingLayout(material.Group, material.UniformBinding)

	for i, sm := range m.meshes {
		sm.meshProvider = bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s mesh %d", m.name, i))
		err := gpu.InitMeshBuffers(
			sm.meshProvider,
			common.SliceToBytes(sm.mesh.Vertices),
			common.SliceToBytes(sm.mesh.Indices),
			len(sm.mesh.Indices),
		)
		if err != nil {
			return fmt.Errorf("model %s: failed to upload mesh %d: %w", m.name, i, err)
		}

		if len(groupDescriptor.Entries) == 0 {
			continue
		}

		sm.groupProvider = bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s material %d", m.name, i))
		if err := m.initGroup(gpu, sm, groupDescriptor); err != nil {
			return fmt.Errorf("model %s: failed to create bind group for mesh %d: %w", m.name, i, err)
		}
		if hasUniforms {
			gpu.WriteBuffers([]bind_group_provider.BufferWrite{{
				Provider: sm.groupProvider,
				Binding:  material.UniformBinding,
				Data:     sm.material.Uniforms(uniformLayout, int32(i)),
			}})
		}
	}

	m.gpu = gpu
	m.shaderKey = s.Key()
	return nil
}

// initGroup attaches the texture and sampler the descriptor asks for, then creates the group.
func (m *model) initGroup(gpu GPU, sm *subMesh, descriptor wgpu.BindGroupLayoutDescriptor) error {
	for _, entry := range descriptor.Entries {
		binding := int(entry.Binding)
		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			if err := gpu.InitTextureView(sm.groupProvider, binding, sm.material.Texture()); err != nil {
				return err
			}
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			if err := gpu.InitSampler(sm.groupProvider, binding, sm.material.Sampler()); err != nil {
				return err
			}
		}
	}
	return gpu.InitBindGroup(sm.groupProvider, descriptor)
}

func (m *model) Draw(p shader.Program) error {
	if m.gpu == nil {
		return ErrNotUploaded
	}
	if s, ok := p.(shader.Shader); ok && s.Key() != m.shaderKey {
		return fmt.Errorf("model %s was uploaded for shader %s, not %s", m.name, m.shaderKey, s.Key())
	}

	for i, sm := range m.meshes {
		if err := m.gpu.DrawMesh(sm.meshProvider, sm.groupProvider); err != nil {
			return fmt.Errorf("model %s: failed to draw mesh %d: %w", m.name, i, err)
		}
	}
	return nil
}

func (m *model) Release() {
	for _, sm := range m.meshes {
		if sm.meshProvider != nil {
			sm.meshProvider.Release()
			sm.meshProvider = nil
		}
		if sm.groupProvider != nil {
			sm.groupProvider.Release()
			sm.groupProvider = nil
		}
	}
	m.gpu = nil
	m.shaderKey = ""
}
