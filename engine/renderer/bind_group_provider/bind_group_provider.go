package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label used for every GPU object created for this provider.
	label string

	// The following fields are GPU allocated resources populated by the Renderer, not by the caller.

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
	textureViews    map[int]*wgpu.TextureView
	samplers        map[int]*wgpu.Sampler

	// Mesh providers additionally carry vertex/index buffers and the index count used by DrawIndexed.

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

// BindGroupProvider holds the GPU resources one drawable part needs: a bind group with its
// buffers, texture views and samplers, and for meshes the vertex and index buffers.
//
// Usage pattern:
//  1. The owner creates a provider with a label
//  2. The Renderer fills it through InitMeshBuffers, InitTextureView, InitSampler and InitBindGroup
//  3. Uniform data is uploaded with Renderer.WriteBuffers targeting a binding of the provider
//  4. DrawMesh binds the provider's resources
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider and clears the references.
	Release()

	// Label returns the debug label for this provider.
	Label() string

	// BindGroup returns the created bind group, or nil if not initialized.
	BindGroup() *wgpu.BindGroup

	// SetBindGroup sets the bind group.
	SetBindGroup(bg *wgpu.BindGroup)

	// BindGroupLayout returns the layout the bind group was created with, or nil.
	BindGroupLayout() *wgpu.BindGroupLayout

	// SetBindGroupLayout sets the bind group layout.
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// Buffer returns the buffer bound at the given binding index, or nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// SetBuffer sets the buffer for a binding index.
	SetBuffer(binding int, buf *wgpu.Buffer)

	// TextureView returns the texture view bound at the given binding index, or nil if not set.
	TextureView(binding int) *wgpu.TextureView

	// SetTextureView sets the texture view for a binding index.
	SetTextureView(binding int, tv *wgpu.TextureView)

	// Sampler returns the sampler bound at the given binding index, or nil if not set.
	Sampler(binding int) *wgpu.Sampler

	// SetSampler sets the sampler for a binding index.
	SetSampler(binding int, s *wgpu.Sampler)

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	VertexBuffer() *wgpu.Buffer

	// SetVertexBuffer sets the GPU vertex buffer.
	SetVertexBuffer(buf *wgpu.Buffer)

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	IndexBuffer() *wgpu.Buffer

	// SetIndexBuffer sets the GPU index buffer.
	SetIndexBuffer(buf *wgpu.Buffer)

	// IndexCount returns the number of indices drawn for this provider.
	IndexCount() int

	// SetIndexCount sets the number of indices drawn for this provider.
	SetIndexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider. GPU resources are attached later by the Renderer.
//
// Parameters:
//   - label: the debug label
//   - options: functional options applied after the defaults
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	for k, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, k)
	}
	for k, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, k)
	}
	for k, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, k)
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.textureViews[binding] = tv
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}
