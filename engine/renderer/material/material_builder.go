package material

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithDiffuseColor is an option builder that sets the RGBA diffuse color of the material.
//
// Parameters:
//   - color: the diffuse color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse color option to a material
func WithDiffuseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.diffuseColor = color
	}
}

// WithTexturePath records the path of the diffuse map to be decoded by the loader.
func WithTexturePath(path string) MaterialBuilderOption {
	return func(m *material) {
		m.texturePath = path
	}
}

// WithTexture attaches an already decoded diffuse map.
func WithTexture(data common.TextureStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.texture = &data
	}
}

// WithSampler sets the sampler state for the diffuse map.
func WithSampler(data common.SamplerStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.sampler = data
	}
}

// FromImported copies the surface properties of a material parsed by a loader.
//
// Parameters:
//   - im: the imported material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the imported properties to a material
func FromImported(im common.ImportedMaterial) MaterialBuilderOption {
	return func(m *material) {
		m.name = im.Name
		m.diffuseColor = im.DiffuseColor
		m.texturePath = im.DiffuseTexturePath
		if im.DiffuseTexture != nil && im.DiffuseTexture.SamplerData != nil {
			m.sampler = *im.DiffuseTexture.SamplerData
		}
	}
}
