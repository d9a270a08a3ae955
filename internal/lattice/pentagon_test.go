package lattice

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-10

func assertPoints(t *testing.T, expected [][2]float64, actual []r2.Point) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i, e := range expected {
		assert.InDelta(t, e[0], actual[i].X, tolerance, "vertex %d x", i)
		assert.InDelta(t, e[1], actual[i].Y, tolerance, "vertex %d y", i)
	}
}

func TestPentagonVertices(t *testing.T) {
	assertPoints(t, [][2]float64{
		{0, 0},
		{0.1993818474311588, 0.3754138223914238},
		{0.6180339887498949, 0.4490279765795854},
		{0.8174158361810537, 0.0736141541881617},
		{0.418652141318736, -0.07361415418816161},
	}, Pentagon().Vertices)
}

func TestTriangleVertices(t *testing.T) {
	assertPoints(t, [][2]float64{
		{0, 0},
		{0.6180339887498949, 0.4490279765795854},
		{0.6180339887498949, -0.4490279765795854},
	}, Triangle().Vertices)
	assert.InDelta(t, 0.6283185307179586, VAngle(), tolerance)
	assert.Equal(t, r2.Point{}, U())
}

func TestBasis(t *testing.T) {
	b := Basis()
	assert.InDelta(t, 0.6180339887498949, b.M00, tolerance)
	assert.InDelta(t, 0.4490279765795854, b.M10, tolerance)
	assert.InDelta(t, 0.6180339887498949, b.M01, tolerance)
	assert.InDelta(t, -0.4490279765795854, b.M11, tolerance)

	inv := BasisInverse()
	assert.InDelta(t, 0.8090169943749475, inv.M00, tolerance)
	assert.InDelta(t, 0.8090169943749475, inv.M10, tolerance)
	assert.InDelta(t, 1.1135163644116068, inv.M01, tolerance)
	assert.InDelta(t, -1.1135163644116068, inv.M11, tolerance)

	p := r2.Point{X: 0.3, Y: -0.2}
	ij := FaceToIJ(p)
	back := IJToFace(ij)
	assert.InDelta(t, p.X, back.X, tolerance)
	assert.InDelta(t, p.Y, back.Y, tolerance)
}

func TestMat2(t *testing.T) {
	m := Mat2{M00: 2, M01: 1, M10: 3, M11: 4}
	assert.InDelta(t, 5, m.Determinant(), tolerance)

	inv, ok := m.Inverse()
	require.True(t, ok)
	assert.InDelta(t, 0.8, inv.M00, tolerance)
	assert.InDelta(t, -0.2, inv.M01, tolerance)
	assert.InDelta(t, -0.6, inv.M10, tolerance)
	assert.InDelta(t, 0.4, inv.M11, tolerance)

	p := m.Transform(r2.Point{X: 1, Y: 2})
	assert.InDelta(t, 4, p.X, tolerance)
	assert.InDelta(t, 11, p.Y, tolerance)

	_, ok = Mat2{M00: 1, M01: 2, M10: 2, M11: 4}.Inverse()
	assert.False(t, ok)
}

func TestPentagonIsACopy(t *testing.T) {
	p := Pentagon()
	p.Scale(10)
	assert.InDelta(t, 0.1993818474311588, Pentagon().Vertices[1].X, tolerance)
}
