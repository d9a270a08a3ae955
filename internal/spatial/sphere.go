package spatial

import (
	"math"

	"github.com/golang/geo/r3"
)

// SphericalPolygon is a polygon on the unit sphere with great-circle edges
type SphericalPolygon struct {
	Vertices []r3.Vector
}

// NewSphericalPolygon wraps the given vertices. The slice is not copied.
func NewSphericalPolygon(vertices []r3.Vector) *SphericalPolygon {
	return &SphericalPolygon{Vertices: vertices}
}

// Polygon returns the polygon spanned by a spherical triangle
func (t SphericalTriangle) Polygon() *SphericalPolygon {
	return NewSphericalPolygon([]r3.Vector{t.A, t.B, t.C})
}

// Boundary densifies every edge into nSegments great-circle pieces. When
// closed is set the first point is repeated at the end.
func (p *SphericalPolygon) Boundary(nSegments int, closed bool) []r3.Vector {
	if nSegments < 1 {
		nSegments = 1
	}
	n := len(p.Vertices)
	points := make([]r3.Vector, 0, n*nSegments+1)
	for s := 0; s < n*nSegments; s++ {
		points = append(points, p.Slerp(float64(s)/float64(nSegments)))
	}
	if closed && len(points) > 0 {
		points = append(points, points[0])
	}
	return points
}

// Slerp walks the perimeter. Integer values of t land on vertices and the
// fractional part interpolates along the following edge.
func (p *SphericalPolygon) Slerp(t float64) r3.Vector {
	n := len(p.Vertices)
	f := math.Mod(t, 1)
	i := int(math.Mod(t, float64(n)))
	j := (i + 1) % n
	return Slerp(p.Vertices[i], p.Vertices[j], f)
}

// ContainsPoint returns a positive value when point lies inside a polygon
// wound counter-clockwise as seen from outside the sphere. The value is the
// smallest sine between the point and the edges meeting at each vertex.
func (p *SphericalPolygon) ContainsPoint(point r3.Vector) float64 {
	n := len(p.Vertices)
	minDelta := math.Inf(1)
	for i := 0; i < n; i++ {
		v := p.Vertices[i]
		va := unit(p.Vertices[(i+1)%n].Sub(v))
		vb := unit(p.Vertices[(i+n-1)%n].Sub(v))
		vp := unit(point.Sub(v))

		sinAP := v.Dot(va.Cross(vp))
		sinPB := v.Dot(vp.Cross(vb))
		minDelta = math.Min(minDelta, math.Min(sinAP, sinPB))
	}
	return minDelta
}

// Area returns the signed area in steradians. Counter-clockwise polygons
// have positive area.
func (p *SphericalPolygon) Area() float64 {
	n := len(p.Vertices)
	switch {
	case n < 3:
		return 0
	case n == 3:
		return triangleArea(p.Vertices[0], p.Vertices[1], p.Vertices[2])
	}

	var center r3.Vector
	for _, v := range p.Vertices {
		center = center.Add(v)
	}
	center = unit(center)

	area := 0.0
	for i := 0; i < n; i++ {
		a := triangleArea(center, p.Vertices[i], p.Vertices[(i+1)%n])
		if !math.IsNaN(a) {
			area += a
		}
	}
	return area
}

// triangleArea uses the triple product of the edge midpoints, which stays
// stable for very small triangles.
func triangleArea(v1, v2, v3 r3.Vector) float64 {
	midA := unit(Lerp(v2, v3, 0.5))
	midB := unit(Lerp(v3, v1, 0.5))
	midC := unit(Lerp(v1, v2, 0.5))

	s := math.Max(-1, math.Min(1, TripleProduct(midA, midB, midC)))
	if math.Abs(s) < 1e-8 {
		return 2 * s
	}
	return 2 * math.Asin(s)
}
