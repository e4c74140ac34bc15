package material

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Bindings inside the per-mesh bind group of the model shader.
const (
	Group          = 1
	UniformBinding = 0
	TextureBinding = 1
	SamplerBinding = 2
)

// material is the implementation of the Material interface.
type material struct {
	name         string
	diffuseColor [4]float32
	texturePath  string
	texture      *common.TextureStagingData
	sampler      common.SamplerStagingData
}

// Material is the surface description of one or more sub-meshes: a diffuse color multiplied
// with an optional diffuse texture.
//
// Surface properties are set at load time; the decoded texture is attached once the loader
// has read it.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// DiffuseColor retrieves the RGBA diffuse color.
	//
	// Returns:
	//   - [4]float32: the color as RGBA values
	DiffuseColor() [4]float32

	// TexturePath retrieves the path of the diffuse map, or "" if the material has none.
	TexturePath() string

	// Texture returns the decoded diffuse map, or a 1x1 white texture when none is attached.
	//
	// Returns:
	//   - common.TextureStagingData: pixels ready for upload
	Texture() common.TextureStagingData

	// HasTexture reports whether a decoded diffuse map is attached.
	HasTexture() bool

	// SetTexture attaches the decoded diffuse map.
	//
	// Parameters:
	//   - data: the decoded pixels
	SetTexture(data common.TextureStagingData)

	// Sampler returns the sampler state used for the diffuse map.
	Sampler() common.SamplerStagingData

	// Uniforms encodes the per-mesh uniform block for a sub-mesh drawn with this material.
	// Members missing from layout are skipped.
	//
	// Parameters:
	//   - layout: the reflected layout of the uniform struct at (Group, UniformBinding)
	//   - meshIndex: the index of the sub-mesh within its model
	//
	// Returns:
	//   - []byte: the encoded block, layout.Size bytes long
	Uniforms(layout shader.StructLayout, meshIndex int32) []byte
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// The default is an opaque white, untextured material.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		diffuseColor: [4]float32{1, 1, 1, 1},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) DiffuseColor() [4]float32 {
	return m.diffuseColor
}

func (m *material) TexturePath() string {
	return m.texturePath
}

func (m *material) Texture() common.TextureStagingData {
	if m.texture == nil {
		return common.WhiteTexture
	}
	return *m.texture
}

func (m *material) HasTexture() bool {
	return m.texture != nil
}

func (m *material) SetTexture(data common.TextureStagingData) {
	m.texture = &data
}

func (m *material) Sampler() common.SamplerStagingData {
	return m.sampler
}

func (m *material) Uniforms(layout shader.StructLayout, meshIndex int32) []byte {
	block := shader.NewUniformBlock(layout)
	block.SetVec4("diffuseColor", mgl32.Vec4(m.diffuseColor))
	block.SetInt("meshIndex", meshIndex)
	return block.Bytes()
}
