package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var unitQuad = [4]Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

func TestQuadNormalUnitSquare(t *testing.T) {
	// Both diagonals have length sqrt(2), so the normal has length 2.
	n := QuadNormal(unitQuad[0], unitQuad[1], unitQuad[2], unitQuad[3])
	assert.Equal(t, Vec3{0, 0, 2}, n)
}

func TestQuadNormalTranslationInvariant(t *testing.T) {
	base := QuadNormal(unitQuad[0], unitQuad[1], unitQuad[2], unitQuad[3])
	off := Vec3{12.5, -3, 7.25}
	moved := QuadNormal(unitQuad[0].Add(off), unitQuad[1].Add(off), unitQuad[2].Add(off), unitQuad[3].Add(off))
	assert.InDeltaSlice(t, base[:], moved[:], 1e-5)
}

func TestQuadNormalNotNormalized(t *testing.T) {
	// Scaling the quad by s scales both diagonals by s, so the normal grows
	// from 2 to 2s². It keeps its direction and is never rescaled to unit length.
	for _, s := range []float32{0.5, 2, 10} {
		p := unitQuad
		for i := range p {
			p[i] = p[i].Scale(s)
		}
		n := QuadNormal(p[0], p[1], p[2], p[3])
		assert.InDeltaSlice(t, []float32{0, 0, 2 * s * s}, n[:], 1e-4, "scale %v", s)
	}
}

func TestQuadNormalWarpedQuad(t *testing.T) {
	n := QuadNormal(Vec3{0, 0, 0}, Vec3{2, 0, 0}, Vec3{2, 1, 1}, Vec3{0, 1, 0})
	// d1 = (2,1,1), d2 = (-2,1,0)
	assert.Equal(t, Vec3{-1, -2, 4}, n)
}

func TestVec3Basics(t *testing.T) {
	a := Vec3{3, 4, 0}
	assert.Equal(t, float32(5), a.Len())
	u := a.Normalize()
	assert.InDeltaSlice(t, []float32{0.6, 0.8, 0}, u[:], 1e-6)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.Equal(t, Vec3{1, -2, 0}, Vec3{1, 5, 0}.Min(Vec3{4, -2, 3}))
	assert.Equal(t, Vec3{4, 5, 3}, Vec3{1, 5, 0}.Max(Vec3{4, -2, 3}))
}

func TestOrbitViewIsRotation(t *testing.T) {
	m := OrbitView(30, -25)
	id := Mat3Mul(m, m.Transpose())
	want := Mat3Identity()
	assert.InDeltaSlice(t, want[:], id[:], 1e-5)
}
