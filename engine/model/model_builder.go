package model

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
)

// ModelBuilderOption is a function that configures a model instance during construction.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the model.
//
// Parameters:
//   - name: the identifier for the model
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMaterials sets the materials referenced by ImportedMesh.MaterialIndex. Apply it before
// WithMeshes.
//
// Parameters:
//   - mats: the materials in index order
//
// Returns:
//   - ModelBuilderOption: a function that applies the materials to a model
func WithMaterials(mats ...material.Material) ModelBuilderOption {
	return func(m *model) {
		m.materials = mats
	}
}

// WithMeshes appends sub-meshes. A mesh whose MaterialIndex does not reference a material
// set by WithMaterials is drawn with a default white material.
//
// Parameters:
//   - meshes: the imported sub-meshes in draw order
//
// Returns:
//   - ModelBuilderOption: a function that applies the meshes to a model
func WithMeshes(meshes ...ImportedMesh) ModelBuilderOption {
	return func(m *model) {
		for _, mesh := range meshes {
			mat := material.NewMaterial(material.WithName("default"))
			if mesh.MaterialIndex >= 0 && mesh.MaterialIndex < len(m.materials) {
				mat = m.materials[mesh.MaterialIndex]
			}
			m.meshes = append(m.meshes, &subMesh{mesh: mesh, material: mat})
		}
	}
}

// FromImported builds the model's name, materials and meshes from a loader result.
// Decoded textures must already be attached to the returned materials by the caller.
//
// Parameters:
//   - im: the imported model
//   - mats: materials created from im.Materials, in the same order
//
// Returns:
//   - ModelBuilderOption: a function that applies the imported model to a model
func FromImported(im ImportedModel, mats []material.Material) ModelBuilderOption {
	return func(m *model) {
		WithName(im.Name)(m)
		WithMaterials(mats...)(m)
		WithMeshes(im.Meshes...)(m)
	}
}
