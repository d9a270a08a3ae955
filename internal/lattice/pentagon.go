package lattice

import (
	"math"
	"sync"

	"github.com/golang/geo/r2"

	"github.com/jengzang/a5grid/internal/spatial"
)

// Mat2 is a 2x2 matrix in row-major order
type Mat2 struct {
	M00, M01, M10, M11 float64
}

// Mat2FromCols builds a matrix whose columns are c0 and c1
func Mat2FromCols(c0, c1 r2.Point) Mat2 {
	return Mat2{M00: c0.X, M01: c1.X, M10: c0.Y, M11: c1.Y}
}

func (m Mat2) Determinant() float64 {
	return m.M00*m.M11 - m.M01*m.M10
}

// Inverse returns the inverse matrix; ok is false for singular matrices
func (m Mat2) Inverse() (inv Mat2, ok bool) {
	det := m.Determinant()
	if math.Abs(det) < 2.220446049250313e-16 {
		return Mat2{}, false
	}
	d := 1 / det
	return Mat2{M00: m.M11 * d, M01: -m.M01 * d, M10: -m.M10 * d, M11: m.M00 * d}, true
}

// Transform applies the matrix to p
func (m Mat2) Transform(p r2.Point) r2.Point {
	return r2.Point{X: m.M00*p.X + m.M01*p.Y, Y: m.M10*p.X + m.M11*p.Y}
}

type pentagonConstants struct {
	pentagon     *spatial.FacePolygon
	triangle     *spatial.FacePolygon
	u, v, w      r2.Point
	vAngle       float64
	basis        Mat2
	basisInverse Mat2
}

var (
	pentagonOnce sync.Once
	pentagonVals pentagonConstants
)

func constants() *pentagonConstants {
	pentagonOnce.Do(func() {
		pentagonVals = computePentagonConstants()
	})
	return &pentagonVals
}

// computePentagonConstants scales and rotates the reference pentagon so that
// its edge midpoint sits at the face edge distance, then derives the
// quintant triangle and the lattice basis from it.
func computePentagonConstants() pentagonConstants {
	verts := [5]r2.Point{
		{X: 0, Y: 0},
		{X: 0, Y: 1},
		{X: 0.7885966681787006, Y: 1.6149108024237764},
		{X: 1.6171013659387945, Y: 1.054928690397459},
		{X: math.Cos(PiOver10), Y: math.Sin(PiOver10)},
	}
	c := verts[2]
	cLength := math.Sqrt(c.X*c.X + c.Y*c.Y)
	edgeMidpointD := 2 * cLength * math.Cos(PiOver5)
	basisRotation := PiOver5 - math.Atan2(c.Y, c.X)
	scale := 2 * DistanceToEdge / edgeMidpointD

	sin, cos := math.Sincos(basisRotation)
	for i, v := range verts {
		x, y := v.X*scale, v.Y*scale
		verts[i] = r2.Point{X: x*cos - y*sin, Y: x*sin + y*cos}
	}
	c = verts[2]

	bisector := math.Atan2(c.Y, c.X) - PiOver5
	l := DistanceToEdge / math.Cos(PiOver5)
	vAngle := bisector + PiOver5
	wAngle := bisector - PiOver5
	u := r2.Point{}
	v := r2.Point{X: l * math.Cos(vAngle), Y: l * math.Sin(vAngle)}
	w := r2.Point{X: l * math.Cos(wAngle), Y: l * math.Sin(wAngle)}

	basis := Mat2FromCols(v, w)
	inv, ok := basis.Inverse()
	if !ok {
		panic("lattice: basis matrix is singular")
	}

	return pentagonConstants{
		pentagon:     spatial.NewPentagon(verts),
		triangle:     spatial.NewTriangle([3]r2.Point{u, v, w}),
		u:            u,
		v:            v,
		w:            w,
		vAngle:       vAngle,
		basis:        basis,
		basisInverse: inv,
	}
}

// Pentagon returns a copy of the reference Hilbert cell pentagon
func Pentagon() *spatial.FacePolygon { return constants().pentagon.Clone() }

// Triangle returns a copy of the reference quintant triangle (u, v, w)
func Triangle() *spatial.FacePolygon { return constants().triangle.Clone() }

// V and W are the lattice basis vectors. U is the face centre.
func U() r2.Point { return constants().u }
func V() r2.Point { return constants().v }
func W() r2.Point { return constants().w }

// VAngle is the polar angle of V
func VAngle() float64 { return constants().vAngle }

func Basis() Mat2        { return constants().basis }
func BasisInverse() Mat2 { return constants().basisInverse }

// FaceToIJ expresses a face point in the lattice basis
func FaceToIJ(p r2.Point) spatial.IJ {
	q := constants().basisInverse.Transform(p)
	return spatial.IJ{I: q.X, J: q.Y}
}

// IJToFace is the inverse of FaceToIJ
func IJToFace(ij spatial.IJ) r2.Point {
	return constants().basis.Transform(r2.Point{X: ij.I, Y: ij.J})
}
