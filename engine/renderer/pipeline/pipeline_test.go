package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipeline_Defaults(t *testing.T) {
	p := NewPipeline("model")

	assert.Equal(t, "model", p.Key())
	assert.Nil(t, p.Shader())
	assert.Nil(t, p.RenderPipeline())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
}

func TestNewPipeline_Options(t *testing.T) {
	p := NewPipeline("wire",
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithCullMode(wgpu.CullModeBack),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)

	assert.False(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskRed, p.WriteMask())
}

func TestPipeline_ReleaseWithoutGPUObjects(t *testing.T) {
	p := NewPipeline("model")
	p.SetBindGroupLayouts([]*wgpu.BindGroupLayout{nil, nil})

	assert.NotPanics(t, p.Release)
	assert.Nil(t, p.BindGroupLayouts())
}
