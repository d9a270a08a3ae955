package spatial

import (
	"math"

	"github.com/golang/geo/r2"
)

// ShapeKind tags the kind of cell outline held by a FacePolygon
type ShapeKind int

const (
	// KindPentagon is the outline of a face or of a Hilbert cell
	KindPentagon ShapeKind = iota
	// KindTriangle is the outline of a quintant (resolution 1)
	KindTriangle
)

func (k ShapeKind) String() string {
	switch k {
	case KindPentagon:
		return "pentagon"
	case KindTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// FacePolygon is a cell outline in a face plane. Vertices are kept in the
// winding for which SignedArea is non-negative; the transforms below keep
// that invariant.
type FacePolygon struct {
	Kind     ShapeKind
	Vertices []r2.Point
}

// NewPentagon builds a pentagon outline, fixing the winding if needed
func NewPentagon(v [5]r2.Point) *FacePolygon {
	return newFacePolygon(KindPentagon, v[:])
}

// NewTriangle builds a triangle outline, fixing the winding if needed
func NewTriangle(v [3]r2.Point) *FacePolygon {
	return newFacePolygon(KindTriangle, v[:])
}

func newFacePolygon(kind ShapeKind, vertices []r2.Point) *FacePolygon {
	p := &FacePolygon{Kind: kind, Vertices: append([]r2.Point(nil), vertices...)}
	if !p.isWindingCorrect() {
		reversePoints(p.Vertices)
	}
	return p
}

// Clone returns a deep copy
func (p *FacePolygon) Clone() *FacePolygon {
	return &FacePolygon{Kind: p.Kind, Vertices: append([]r2.Point(nil), p.Vertices...)}
}

// SignedArea returns twice the signed area with the sign convention used for
// winding checks
func (p *FacePolygon) SignedArea() float64 {
	area := 0.0
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a, b := p.Vertices[i], p.Vertices[(i+1)%n]
		area += (b.X - a.X) * (b.Y + a.Y)
	}
	return area
}

func (p *FacePolygon) isWindingCorrect() bool {
	return p.SignedArea() >= 0
}

func (p *FacePolygon) Scale(s float64) *FacePolygon {
	for i, v := range p.Vertices {
		p.Vertices[i] = v.Mul(s)
	}
	return p
}

func (p *FacePolygon) Rotate180() *FacePolygon {
	for i, v := range p.Vertices {
		p.Vertices[i] = r2.Point{X: -v.X, Y: -v.Y}
	}
	return p
}

// ReflectY mirrors across the x axis and reverses the vertex order so the
// winding is preserved
func (p *FacePolygon) ReflectY() *FacePolygon {
	for i, v := range p.Vertices {
		p.Vertices[i] = r2.Point{X: v.X, Y: -v.Y}
	}
	reversePoints(p.Vertices)
	return p
}

func (p *FacePolygon) Translate(t r2.Point) *FacePolygon {
	for i, v := range p.Vertices {
		p.Vertices[i] = v.Add(t)
	}
	return p
}

// Rotate turns the outline counter-clockwise about the face centre
func (p *FacePolygon) Rotate(angle float64) *FacePolygon {
	sin, cos := math.Sincos(angle)
	for i, v := range p.Vertices {
		p.Vertices[i] = r2.Point{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
	}
	return p
}

// Center returns the vertex mean
func (p *FacePolygon) Center() r2.Point {
	n := float64(len(p.Vertices))
	var c r2.Point
	for _, v := range p.Vertices {
		c.X += v.X / n
		c.Y += v.Y / n
	}
	return c
}

// ContainsPoint returns 1 when point is inside. Outside points get a
// negative score whose magnitude grows with the distance past the
// offending edge.
func (p *FacePolygon) ContainsPoint(point r2.Point) float64 {
	n := len(p.Vertices)
	dMax := 1.0
	for i := 0; i < n; i++ {
		v1, v2 := p.Vertices[i], p.Vertices[(i+1)%n]
		d := v1.Sub(v2)
		pv := point.Sub(v1)

		cross := d.X*pv.Y - d.Y*pv.X
		if cross < 0 {
			dMax = math.Min(dMax, cross/pv.Norm())
		}
	}
	return dMax
}

// SplitEdges returns a copy with every edge divided into the given number
// of equal segments
func (p *FacePolygon) SplitEdges(segments int) *FacePolygon {
	if segments <= 1 {
		return p.Clone()
	}
	n := len(p.Vertices)
	out := make([]r2.Point, 0, n*segments)
	for i := 0; i < n; i++ {
		v1, v2 := p.Vertices[i], p.Vertices[(i+1)%n]
		out = append(out, v1)
		for j := 1; j < segments; j++ {
			t := float64(j) / float64(segments)
			out = append(out, r2.Point{X: v1.X + t*(v2.X-v1.X), Y: v1.Y + t*(v2.Y-v1.Y)})
		}
	}
	return newFacePolygon(p.Kind, out)
}

func reversePoints(s []r2.Point) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
