package dodecahedron

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"

	"github.com/jengzang/a5grid/internal/lattice"
	"github.com/jengzang/a5grid/internal/projection"
	"github.com/jengzang/a5grid/internal/spatial"
)

// Each face is cut into 10 triangles by its centre, corners and edge
// midpoints. Points beyond the face edge use a reflected triangle reaching
// into the neighbouring face. The squashed variant places the reflected
// apex on the neighbouring face centre and is only used to look up
// spherical vertices.
const (
	faceTrianglesPerFace = 10
	numFaceTriangles     = 3 * faceTrianglesPerFace
	numSphericalTriangle = 2 * NumOrigins * faceTrianglesPerFace
)

type projectionTables struct {
	crs                *CRS
	faceTriangles      [numFaceTriangles]spatial.FaceTriangle
	sphericalTriangles [numSphericalTriangle]spatial.SphericalTriangle
}

var (
	tablesOnce sync.Once
	tables     *projectionTables
)

func projectionData() *projectionTables {
	tablesOnce.Do(func() {
		t, err := buildTables()
		if err != nil {
			panic(fmt.Sprintf("dodecahedron: %v", err))
		}
		tables = t
	})
	return tables
}

func buildTables() (*projectionTables, error) {
	crs, err := NewCRS()
	if err != nil {
		return nil, err
	}
	t := &projectionTables{crs: crs}

	for i := 0; i < faceTrianglesPerFace; i++ {
		t.faceTriangles[i] = baseFaceTriangle(i)
		t.faceTriangles[i+faceTrianglesPerFace] = reflectedFaceTriangle(i, false)
		t.faceTriangles[i+2*faceTrianglesPerFace] = reflectedFaceTriangle(i, true)
	}

	table := origins()
	for o := range table {
		for i := 0; i < faceTrianglesPerFace; i++ {
			for _, reflected := range []bool{false, true} {
				tri, err := t.computeSphericalTriangle(i, &table[o], reflected)
				if err != nil {
					return nil, err
				}
				t.sphericalTriangles[sphericalIndex(i, o, reflected)] = tri
			}
		}
	}
	return t, nil
}

func sphericalIndex(faceTriangle, originID int, reflected bool) int {
	idx := faceTrianglesPerFace*originID + faceTriangle
	if reflected {
		idx += NumOrigins * faceTrianglesPerFace
	}
	return idx
}

func (t *projectionTables) faceTriangle(index int, reflected, squashed bool) spatial.FaceTriangle {
	if reflected {
		if squashed {
			index += 2 * faceTrianglesPerFace
		} else {
			index += faceTrianglesPerFace
		}
	}
	return t.faceTriangles[index]
}

func (t *projectionTables) computeSphericalTriangle(index int, o *Origin, reflected bool) (spatial.SphericalTriangle, error) {
	face := t.faceTriangle(index, reflected, true)
	var out [3]r3.Vector
	for i, p := range [3]r2.Point{face.A, face.B, face.C} {
		polar := spatial.ToPolar(p)
		polar.Gamma += o.Angle
		rotated := spatial.ToCartesian(projection.GnomonicInverse(polar))
		v, err := t.crs.Vertex(Rotate(rotated, o.Quat))
		if err != nil {
			return spatial.SphericalTriangle{}, err
		}
		out[i] = v
	}
	return spatial.SphericalTriangle{A: out[0], B: out[1], C: out[2]}, nil
}

// baseFaceTriangle returns triangle index (0-9) of the face: even indices
// run centre, edge midpoint, first corner and odd ones centre, second
// corner, edge midpoint.
func baseFaceTriangle(index int) spatial.FaceTriangle {
	quintant := ((index + 1) / 2) % 5
	verts := lattice.QuintantVertices(quintant).Vertices
	center, corner1, corner2 := verts[0], verts[1], verts[2]
	mid := r2.Point{X: (corner1.X + corner2.X) / 2, Y: (corner1.Y + corner2.Y) / 2}

	if index%2 == 0 {
		return spatial.FaceTriangle{A: center, B: mid, C: corner1}
	}
	return spatial.FaceTriangle{A: center, B: corner2, C: mid}
}

func reflectedFaceTriangle(index int, squashed bool) spatial.FaceTriangle {
	base := baseFaceTriangle(index)
	a, b, c := base.A.Mul(-1), base.B, base.C

	mid := c
	if index%2 == 0 {
		mid = b
	}
	scale := 2.0
	if squashed {
		scale = 1 + 1/math.Cos(lattice.InterhedralAngle)
	}
	a = a.Add(mid.Mul(scale))
	return spatial.FaceTriangle{A: a, B: c, C: b}
}

func faceTriangleIndex(p spatial.Polar) int {
	idx := (int(math.Floor(p.Gamma.Radians()/lattice.PiOver5)) + 10) % 10
	if idx < 0 {
		idx += 10
	}
	return idx
}

// shouldReflect reports whether the point lies beyond the face edge of its
// quintant
func shouldReflect(p spatial.Polar) bool {
	test := spatial.Polar{Rho: p.Rho, Gamma: normalizeGamma(p.Gamma)}
	return spatial.ToFace(test).X > lattice.DistanceToEdge
}

// normalizeGamma returns the angle relative to the nearest quintant centre
// line
func normalizeGamma(gamma s1.Angle) s1.Angle {
	segment := gamma.Radians() / lattice.TwoPiOver5
	return s1.Angle((segment - math.Round(segment)) * lattice.TwoPiOver5)
}

// Forward projects a spherical point into the face plane of the origin
func Forward(s spatial.Spherical, originID int) r2.Point {
	t := projectionData()
	o := &origins()[originID]

	unprojected := spatial.ToCartesian(s)
	local := spatial.ToSpherical(Rotate(unprojected, o.InverseQuat))
	polar := projection.GnomonicForward(local)
	polar.Gamma -= o.Angle

	idx := faceTriangleIndex(polar)
	reflect := shouldReflect(polar)
	face := t.faceTriangle(idx, reflect, false)
	sph := t.sphericalTriangles[sphericalIndex(idx, originID, reflect)]
	return projection.PolyhedralForward(unprojected, sph, face)
}

// Inverse maps a face-plane point of the origin back onto the sphere
func Inverse(p r2.Point, originID int) spatial.Spherical {
	t := projectionData()

	polar := spatial.ToPolar(p)
	idx := faceTriangleIndex(polar)
	reflect := shouldReflect(polar)
	face := t.faceTriangle(idx, reflect, false)
	sph := t.sphericalTriangles[sphericalIndex(idx, originID, reflect)]
	return spatial.ToSpherical(projection.PolyhedralInverse(p, face, sph))
}

// ReferenceFrame returns the shared CRS
func ReferenceFrame() *CRS {
	return projectionData().crs
}
