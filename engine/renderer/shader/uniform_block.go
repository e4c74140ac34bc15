package shader

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// UniformBlock is a CPU-side staging copy of a uniform buffer laid out like a reflected WGSL
// struct. Setters write by member name; a write to an unknown member or a member of another
// type is dropped, like a uniform location of -1 in OpenGL.
type UniformBlock struct {
	layout StructLayout
	data   []byte
	dirty  bool
}

// NewUniformBlock allocates a zeroed block of layout.Size bytes.
func NewUniformBlock(layout StructLayout) *UniformBlock {
	return &UniformBlock{
		layout: layout,
		data:   make([]byte, layout.Size),
	}
}

// Layout returns the reflected struct layout backing the block.
func (b *UniformBlock) Layout() StructLayout {
	return b.layout
}

// Bytes returns the staged buffer contents. The slice is owned by the block.
func (b *UniformBlock) Bytes() []byte {
	return b.data
}

// Dirty reports whether a setter changed the block since the last ClearDirty.
func (b *UniformBlock) Dirty() bool {
	return b.dirty
}

// ClearDirty marks the staged contents as uploaded.
func (b *UniformBlock) ClearDirty() {
	b.dirty = false
}

// SetMat4 writes a mat4x4<f32> member.
//
// Returns:
//   - bool: false if the member does not exist or is not a mat4x4<f32>
func (b *UniformBlock) SetMat4(name string, m mgl32.Mat4) bool {
	dst, ok := b.slot(name, "mat4x4<f32>", "mat4x4f")
	if !ok {
		return false
	}
	common.PutMat4(dst, m)
	return true
}

// SetVec4 writes a vec4<f32> member.
func (b *UniformBlock) SetVec4(name string, v mgl32.Vec4) bool {
	dst, ok := b.slot(name, "vec4<f32>", "vec4f")
	if !ok {
		return false
	}
	for i, f := range v {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
	return true
}

// SetInt writes an i32 member.
func (b *UniformBlock) SetInt(name string, v int32) bool {
	dst, ok := b.slot(name, "i32")
	if !ok {
		return false
	}
	binary.LittleEndian.PutUint32(dst, uint32(v))
	return true
}

// slot returns the byte range of a member whose type is one of types and marks the block dirty.
func (b *UniformBlock) slot(name string, types ...string) ([]byte, bool) {
	f, ok := b.layout.Field(name)
	if !ok {
		return nil, false
	}
	for _, t := range types {
		if f.Type == t {
			b.dirty = true
			return b.data[f.Offset : f.Offset+f.Size], true
		}
	}
	return nil, false
}
