package pipeline

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	// key is the unique identifier for this pipeline, shared with its shader
	key    string
	shader shader.Shader

	// renderPipeline and bindGroupLayouts are GPU objects set by the Renderer on registration
	renderPipeline   *wgpu.RenderPipeline
	bindGroupLayouts []*wgpu.BindGroupLayout

	depthTestEnabled  bool
	depthWriteEnabled bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
}

// Pipeline describes a render pipeline built from one WGSL module holding both the vertex and
// fragment stage, together with the fixed-function state used to create it.
type Pipeline interface {
	// Key returns the unique key associated with this pipeline.
	Key() string

	// Shader returns the shader module the pipeline is built from.
	Shader() shader.Shader

	// RenderPipeline returns the created GPU pipeline, or nil before registration.
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline sets the created GPU pipeline.
	//
	// Parameters:
	//   - rp: the render pipeline
	SetRenderPipeline(rp *wgpu.RenderPipeline)

	// BindGroupLayouts returns the bind group layouts of the pipeline layout, indexed by group.
	BindGroupLayouts() []*wgpu.BindGroupLayout

	// SetBindGroupLayouts sets the bind group layouts created for the pipeline layout.
	SetBindGroupLayouts(layouts []*wgpu.BindGroupLayout)

	// DepthTestEnabled reports whether fragments are depth tested with CompareFunctionLess.
	DepthTestEnabled() bool

	// DepthWriteEnabled reports whether fragments write depth.
	DepthWriteEnabled() bool

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order treated as front facing.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask of the single color target.
	WriteMask() wgpu.ColorWriteMask

	// Release releases the GPU pipeline and bind group layouts.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline description with depth testing on, no culling and
// triangle list topology.
//
// Parameters:
//   - key: the unique identifier for this pipeline
//   - options: functional options applied after the defaults
//
// Returns:
//   - Pipeline: the pipeline description
func NewPipeline(key string, options ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		key:               key,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) BindGroupLayouts() []*wgpu.BindGroupLayout {
	return p.bindGroupLayouts
}

func (p *pipeline) SetBindGroupLayouts(layouts []*wgpu.BindGroupLayout) {
	p.bindGroupLayouts = layouts
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
	for _, l := range p.bindGroupLayouts {
		if l != nil {
			l.Release()
		}
	}
	p.bindGroupLayouts = nil
}
