package lattice

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/jengzang/a5grid/internal/spatial"
)

// PentagonVertices places the reference pentagon at the given anchor of a
// Hilbert resolution and rotates it into the quintant
func PentagonVertices(resolution int, quintant int, anchor Anchor) *spatial.FacePolygon {
	pentagon := Pentagon()
	translation := Basis().Transform(r2.Point{X: anchor.Offset.I, Y: anchor.Offset.J})

	if anchor.Flips[0] == No && anchor.Flips[1] == Yes {
		pentagon.Rotate180()
	}

	k := anchor.K
	f := int(anchor.Flips[0]) + int(anchor.Flips[1])
	if ((f == -2 || f == 2) && k > 1) || (f == 0 && (k == 0 || k == 3)) {
		pentagon.ReflectY()
	}

	switch {
	case anchor.Flips[0] == Yes && anchor.Flips[1] == Yes:
		pentagon.Rotate180()
	case anchor.Flips[0] == Yes:
		pentagon.Translate(W().Mul(-1))
	case anchor.Flips[1] == Yes:
		pentagon.Translate(W())
	}

	pentagon.Translate(translation)
	pentagon.Scale(1 / math.Pow(2, float64(resolution)))
	pentagon.Rotate(TwoPiOver5 * float64(quintant))
	return pentagon
}

// QuintantVertices returns the triangle covering one fifth of a face
func QuintantVertices(quintant int) *spatial.FacePolygon {
	return Triangle().Rotate(TwoPiOver5 * float64(quintant))
}

// FaceVertices returns the face pentagon, whose corners are V rotated
// through the five quintants
func FaceVertices() *spatial.FacePolygon {
	v := V()
	var verts [5]r2.Point
	for q := 0; q < 5; q++ {
		sin, cos := math.Sincos(TwoPiOver5 * float64(q))
		verts[4-q] = r2.Point{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
	}
	return spatial.NewPentagon(verts)
}

// QuintantFromPolar returns the quintant whose centre line is nearest to
// the polar angle
func QuintantFromPolar(p spatial.Polar) int {
	q := int(math.Round(p.Gamma.Radians()/TwoPiOver5)) + 5
	return q % 5
}
