package common

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectDepth(m mgl32.Mat4, z float32) float32 {
	clip := m.Mul4x1(mgl32.Vec4{0, 0, z, 1})
	return clip.Z() / clip.W()
}

func TestPerspective_DepthRange(t *testing.T) {
	p := Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100)

	assert.InDelta(t, 0, projectDepth(p, -0.1), 1e-5)
	assert.InDelta(t, 1, projectDepth(p, -100), 1e-5)

	mid := projectDepth(p, -10)
	assert.Greater(t, mid, float32(0))
	assert.Less(t, mid, float32(1))
}

func TestPerspective_KeepsXY(t *testing.T) {
	fov, aspect := mgl32.DegToRad(30), float32(2)
	p := Perspective(fov, aspect, 0.1, 100)
	gl := mgl32.Perspective(fov, aspect, 0.1, 100)

	for _, i := range []int{0, 5, 11} {
		assert.InDelta(t, gl[i], p[i], 1e-6, "element %d", i)
	}
}

func TestMat4Bytes(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	buf := Mat4Bytes(m)
	require.Len(t, buf, 64)

	for i := range m {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		assert.Equal(t, m[i], got)
	}
	// Column-major: the translation occupies elements 12..14.
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[13*4:])))
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]uint32{}))

	b := SliceToBytes([]uint32{1, 0x01020304})
	require.Len(t, b, 8)
	assert.Equal(t, uint32(0x01020304), binary.LittleEndian.Uint32(b[4:]))
}

func TestApproxEqualMat4(t *testing.T) {
	a := mgl32.Ident4()
	b := mgl32.Ident4()
	b[12] = 1e-7
	assert.True(t, ApproxEqualMat4(a, b, 1e-6))

	b[12] = 0.1
	assert.False(t, ApproxEqualMat4(a, b, 1e-6))
}
