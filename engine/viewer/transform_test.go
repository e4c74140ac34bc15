package viewer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec4(t *testing.T, want, got mgl32.Vec4) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-6)
}

func TestTransform_InitialPlacement(t *testing.T) {
	var tr Transform
	assert.False(t, tr.Initialized())

	tr.Update(&Queue{})

	assert.True(t, tr.Initialized())
	m := tr.Matrix()
	assertVec4(t, mgl32.Vec4{0.2, 0, 0, 0}, m.Col(0))
	assertVec4(t, mgl32.Vec4{0, 0.2, 0, 0}, m.Col(1))
	assertVec4(t, mgl32.Vec4{0, 0, 0.2, 0}, m.Col(2))
	assertVec4(t, mgl32.Vec4{0, -1.75, 0, 1}, m.Col(3))
}

func TestTransform_StepsAreInModelSpace(t *testing.T) {
	var tr Transform
	q := &Queue{}
	tr.Update(q)

	q.Push(CommandRight)
	tr.Update(q)

	// 0.1 model units under a 0.2 scale.
	assertVec4(t, mgl32.Vec4{0.02, -1.75, 0, 1}, tr.Matrix().Col(3))
	assert.Equal(t, 0, q.Len())
}

func TestTransform_AccumulatesAndNeverResets(t *testing.T) {
	var tr Transform
	q := &Queue{}

	// Commands queued before the first update apply after the initial placement.
	q.Push(CommandLeft)
	tr.Update(q)
	assertVec4(t, mgl32.Vec4{-0.02, -1.75, 0, 1}, tr.Matrix().Col(3))

	q.Push(CommandUp)
	q.Push(CommandUp)
	q.Push(CommandDown)
	tr.Update(q)
	tr.Update(q)

	assertVec4(t, mgl32.Vec4{-0.02, -1.73, 0, 1}, tr.Matrix().Col(3))
	assertVec4(t, mgl32.Vec4{0.2, 0, 0, 0}, tr.Matrix().Col(0))
}

func TestTransform_OppositeCommandsCancel(t *testing.T) {
	var a, b Transform
	qa, qb := &Queue{}, &Queue{}

	qa.Push(CommandRight)
	qa.Push(CommandLeft)
	a.Update(qa)
	b.Update(qb)

	assert.True(t, common.ApproxEqualMat4(a.Matrix(), b.Matrix(), 1e-6))
}
