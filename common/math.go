package common

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// depthRangeCorrection remaps OpenGL clip-space depth [-w, w] to the WebGPU range [0, w].
// Column-major: z' = 0.5*z + 0.5*w.
var depthRangeCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Perspective creates a right-handed perspective projection matrix whose clip-space depth
// is in the WebGPU [0, 1] range.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	return depthRangeCorrection.Mul4(mgl32.Perspective(fovY, aspect, near, far))
}

// Mat4Bytes serializes a column-major matrix into 64 little-endian bytes for GPU upload.
//
// Parameters:
//   - m: the matrix to serialize
//
// Returns:
//   - []byte: a new 64-byte buffer
func Mat4Bytes(m mgl32.Mat4) []byte {
	buf := make([]byte, 64)
	PutMat4(buf, m)
	return buf
}

// PutMat4 writes a column-major matrix into dst as 16 little-endian float32 values.
// dst must hold at least 64 bytes.
func PutMat4(dst []byte, m mgl32.Mat4) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	size := int(unsafe.Sizeof(data[0])) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), size)
}

// ApproxEqualMat4 reports whether every element of a and b differs by at most epsilon.
// The comparison is absolute.
func ApproxEqualMat4(a, b mgl32.Mat4, epsilon float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > float64(epsilon) {
			return false
		}
	}
	return true
}
