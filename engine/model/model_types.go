package model

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// Vertex is the GPU layout of one mesh vertex, matching the VertexInput struct of the model
// shader (locations 0-2). Size: 32 bytes, no padding.
type Vertex struct {
	Position [3]float32 // offset  0
	Normal   [3]float32 // offset 12
	TexCoord [2]float32 // offset 24
}

// VertexSize is the stride of Vertex in a vertex buffer.
const VertexSize = 32

// ImportedModel represents a 3D model loaded from an external format.
// This is the universal format that importers produce.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Meshes are the sub-meshes in file order.
	Meshes []ImportedMesh

	// Materials are referenced by ImportedMesh.MaterialIndex.
	Materials []common.ImportedMaterial
}

// ImportedMesh represents a single sub-mesh within an imported model.
type ImportedMesh struct {
	// Name is the object or group name the sub-mesh was declared under.
	Name string

	// Vertices are the deduplicated vertices of the sub-mesh.
	Vertices []Vertex

	// Indices are the triangle indices into Vertices.
	Indices []uint32

	// MaterialIndex references ImportedModel.Materials, -1 for the default material.
	MaterialIndex int

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin [3]float32

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax [3]float32
}
