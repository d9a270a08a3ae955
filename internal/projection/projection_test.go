package projection

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/assert"

	"github.com/jengzang/a5grid/internal/spatial"
)

func TestAuthalicKnownValues(t *testing.T) {
	assert.Equal(t, 0.0, GeodeticToAuthalic(0).Radians())
	assert.InDelta(t, math.Pi/2, GeodeticToAuthalic(s1.Angle(math.Pi/2)).Radians(), 1e-15)
	assert.InDelta(t, 44.8717, GeodeticToAuthalic(spatial.Radians(45)).Degrees(), 1e-4)
	// the authalic latitude is always nearer the equator
	assert.Less(t, GeodeticToAuthalic(spatial.Radians(30)).Degrees(), 30.0)
	assert.Greater(t, GeodeticToAuthalic(spatial.Radians(-30)).Degrees(), -30.0)
}

func TestAuthalicRoundTrip(t *testing.T) {
	for lat := -90.0; lat <= 90; lat += 7.5 {
		phi := spatial.Radians(lat)
		back := AuthalicToGeodetic(GeodeticToAuthalic(phi))
		assert.InDelta(t, phi.Radians(), back.Radians(), 1e-12, "latitude %v", lat)
	}
}

func TestGnomonicRoundTrip(t *testing.T) {
	for _, s := range []spatial.Spherical{
		{Theta: 0, Phi: 0.1},
		{Theta: 1.1, Phi: 0.5},
		{Theta: -2.9, Phi: 0.8},
	} {
		polar := GnomonicForward(s)
		assert.InDelta(t, math.Tan(s.Phi.Radians()), polar.Rho, 1e-15)
		back := GnomonicInverse(polar)
		assert.InDelta(t, s.Theta.Radians(), back.Theta.Radians(), 1e-15)
		assert.InDelta(t, s.Phi.Radians(), back.Phi.Radians(), 1e-12)
	}
}

func octant() (spatial.SphericalTriangle, spatial.FaceTriangle) {
	sph := spatial.SphericalTriangle{A: r3.Vector{X: 1}, B: r3.Vector{Y: 1}, C: r3.Vector{Z: 1}}
	face := spatial.FaceTriangle{A: r2.Point{X: 0, Y: 0}, B: r2.Point{X: 1, Y: 0}, C: r2.Point{X: 0, Y: 1}}
	return sph, face
}

func TestPolyhedralRoundTrip(t *testing.T) {
	sph, face := octant()
	for _, v := range []r3.Vector{
		{X: 0.2, Y: 0.3, Z: 0.5},
		{X: 1, Y: 1, Z: 1},
		{X: 0.9, Y: 0.05, Z: 0.05},
		{X: 0.01, Y: 0.6, Z: 0.4},
	} {
		v = v.Normalize()
		p := PolyhedralForward(v, sph, face)
		back := PolyhedralInverse(p, face, sph)
		assert.InDelta(t, 0, back.Sub(v).Norm(), 1e-9, "vector %v", v)
	}
}

func TestPolyhedralVertices(t *testing.T) {
	sph, face := octant()
	assert.Equal(t, sph.A, PolyhedralInverse(face.A, face, sph))
	assert.Equal(t, sph.B, PolyhedralInverse(face.B, face, sph))
	assert.Equal(t, sph.C, PolyhedralInverse(face.C, face, sph))
}

func TestPolyhedralEqualArea(t *testing.T) {
	sph, face := octant()
	// A, B and the midpoint of BC cover half the face triangle, so the
	// image of the midpoint must cut the octant in half
	mid := PolyhedralInverse(r2.Point{X: 0.5, Y: 0.5}, face, sph)
	assert.InDelta(t, 0, mid.X, 1e-12)

	total := sph.Polygon().Area()
	part := spatial.SphericalTriangle{A: sph.A, B: sph.B, C: mid}.Polygon().Area()
	assert.InDelta(t, total/2, part, 1e-9)
}
