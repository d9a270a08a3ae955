package projection

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/jengzang/a5grid/internal/spatial"
)

// vertexThreshold snaps barycentric coordinates that are within rounding
// of a vertex straight onto it
const vertexThreshold = 1 - 1e-14

// PolyhedralForward maps a unit vector inside a spherical triangle to the
// matching point of a planar face triangle, preserving area ratios
func PolyhedralForward(v r3.Vector, sph spatial.SphericalTriangle, face spatial.FaceTriangle) r2.Point {
	a, b, c := sph.A, sph.B, sph.C
	areaABC := sph.Polygon().Area()

	z := safeUnit(v.Sub(a))
	p := safeUnit(spatial.QuadrupleProduct(a, z, b, c))

	h := spatial.VectorDifference(a, v) / spatial.VectorDifference(a, p)
	scaled := h / areaABC
	bary := spatial.Barycentric{
		U: 1 - h,
		V: scaled * spatial.SphericalTriangle{A: a, B: p, C: c}.Polygon().Area(),
		W: scaled * spatial.SphericalTriangle{A: a, B: b, C: p}.Polygon().Area(),
	}
	return spatial.BarycentricToFace(bary, face)
}

// PolyhedralInverse maps a face-plane point back into the spherical triangle
func PolyhedralInverse(point r2.Point, face spatial.FaceTriangle, sph spatial.SphericalTriangle) r3.Vector {
	a, b, c := sph.A, sph.B, sph.C
	bary := spatial.FaceToBarycentric(point, face)

	switch {
	case bary.U > vertexThreshold:
		return a
	case bary.V > vertexThreshold:
		return b
	case bary.W > vertexThreshold:
		return c
	}

	c1 := b.Cross(c)
	areaABC := sph.Polygon().Area()
	h := 1 - bary.U
	r := bary.W / h
	alpha := r * areaABC
	s := math.Sin(alpha)
	halfC := math.Sin(alpha / 2)
	cc := 2 * halfC * halfC

	c01 := a.Dot(b)
	c12 := b.Dot(c)
	c20 := c.Dot(a)
	s12 := c1.Norm()
	vol := a.Dot(c1)

	f := s*vol + cc*(c01*c12-c20)
	g := cc * s12 * (1 + c01)
	q := (2 / math.Acos(c12)) * math.Atan2(g, f)
	p := spatial.Slerp(b, c, q)

	k := spatial.VectorDifference(a, p)
	t := safeAcos(h*k) / safeAcos(k)
	return spatial.Slerp(a, p, t)
}

// safeAcos returns acos(1 - 2x²) with a series for small x
func safeAcos(x float64) float64 {
	if x < 1e-3 {
		return 2*x + x*x*x/3
	}
	return math.Acos(1 - 2*x*x)
}

func safeUnit(v r3.Vector) r3.Vector {
	u, err := spatial.Normalize(v)
	if err != nil {
		return v
	}
	return u
}
