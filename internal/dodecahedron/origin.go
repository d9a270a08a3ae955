// Package dodecahedron holds the twelve face origins of the dodecahedron and
// the projection between the sphere and a face plane.
package dodecahedron

import (
	"math"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"gonum.org/v1/gonum/num/quat"

	"github.com/jengzang/a5grid/internal/lattice"
	"github.com/jengzang/a5grid/internal/spatial"
)

// NumOrigins is the number of dodecahedron faces
const NumOrigins = 12

// Origin describes one face: where its centre sits on the sphere, the
// rotation into its local frame and how the Hilbert curve walks its
// quintants.
type Origin struct {
	ID            int
	Axis          spatial.Spherical
	Quat          quat.Number
	InverseQuat   quat.Number
	Angle         s1.Angle
	Layout        [5]lattice.Orientation
	Clockwise     bool
	FirstQuintant int
}

var (
	clockwiseFan  = [5]lattice.Orientation{lattice.VU, lattice.UW, lattice.VW, lattice.VW, lattice.VW}
	clockwiseStep = [5]lattice.Orientation{lattice.WU, lattice.UW, lattice.VW, lattice.VU, lattice.UW}
	counterStep   = [5]lattice.Orientation{lattice.WU, lattice.UV, lattice.WV, lattice.WU, lattice.UW}
	counterJump   = [5]lattice.Orientation{lattice.VU, lattice.UV, lattice.WV, lattice.WU, lattice.UW}

	// indexed by generation order, before the origins are sorted into
	// curve order
	quintantLayouts = [NumOrigins][5]lattice.Orientation{
		clockwiseFan,
		counterJump,
		counterStep,
		clockwiseStep,
		counterStep,
		counterJump,
		counterStep,
		clockwiseStep,
		clockwiseStep,
		clockwiseStep,
		counterJump,
		counterJump,
	}
	quintantFirst = [NumOrigins]int{4, 2, 3, 2, 0, 4, 3, 2, 2, 0, 3, 0}
	originOrder   = [NumOrigins]int{0, 1, 2, 4, 3, 5, 7, 8, 6, 11, 10, 9}

	// face rotations as (x, y, z, w)
	faceQuaternions = [NumOrigins][4]float64{
		{0, 0, 0, 1},
		{0, 0.5257311121191336, 0, 0.8506508083520399},
		{-0.5, 0.16245984811645314, 0, 0.8506508083520399},
		{-0.30901699437494745, -0.42532540417602, 0, 0.8506508083520399},
		{0.30901699437494745, -0.42532540417602, 0, 0.8506508083520399},
		{0.5, 0.16245984811645314, 0, 0.8506508083520399},
		{0, -0.8506508083520399, 0, 0.5257311121191336},
		{0.8090169943749475, -0.2628655560595668, 0, 0.5257311121191336},
		{0.5, 0.6881909602355868, 0, 0.5257311121191336},
		{-0.5, 0.6881909602355868, 0, 0.5257311121191336},
		{-0.8090169943749475, -0.2628655560595668, 0, 0.5257311121191336},
		{0, -1, 0, 0},
	}
)

var (
	originsOnce sync.Once
	originTable [NumOrigins]Origin
)

func origins() *[NumOrigins]Origin {
	originsOnce.Do(func() {
		originTable = generateOrigins()
	})
	return &originTable
}

func generateOrigins() [NumOrigins]Origin {
	var generated []Origin
	add := func(axis spatial.Spherical, angle float64, q [4]float64) {
		id := len(generated)
		qn := quat.Number{Real: q[3], Imag: q[0], Jmag: q[1], Kmag: q[2]}
		layout := quintantLayouts[id]
		generated = append(generated, Origin{
			ID:            id,
			Axis:          axis,
			Quat:          qn,
			InverseQuat:   quat.Conj(qn),
			Angle:         s1.Angle(angle),
			Layout:        layout,
			Clockwise:     layout == clockwiseFan || layout == clockwiseStep,
			FirstQuintant: quintantFirst[id],
		})
	}

	add(spatial.Spherical{}, 0, faceQuaternions[0])
	for i := 0; i < 5; i++ {
		alpha := float64(i) * lattice.TwoPiOver5
		add(spatial.Spherical{Theta: s1.Angle(alpha), Phi: s1.Angle(lattice.InterhedralAngle)},
			lattice.PiOver5, faceQuaternions[i+1])
		add(spatial.Spherical{Theta: s1.Angle(alpha + lattice.PiOver5), Phi: s1.Angle(math.Pi - lattice.InterhedralAngle)},
			lattice.PiOver5, faceQuaternions[(i+3)%5+6])
	}
	add(spatial.Spherical{Phi: s1.Angle(math.Pi)}, 0, faceQuaternions[11])

	var out [NumOrigins]Origin
	for newID, oldID := range originOrder {
		o := generated[oldID]
		o.ID = newID
		out[newID] = o
	}
	return out
}

// Origins returns a copy of the twelve origins in curve order
func Origins() [NumOrigins]Origin {
	return *origins()
}

// Get returns the origin with the given id. The returned value is a copy.
func Get(id int) Origin {
	return origins()[id]
}

// QuintantToSegment maps a geometric quintant of the face to the segment
// number used in cell ids and the curve orientation inside it
func QuintantToSegment(quintant int, o *Origin) (int, lattice.Orientation) {
	step := 1
	if o.Clockwise {
		step = -1
	}
	delta := (quintant + 5 - o.FirstQuintant) % 5
	rel := (step*delta + 5) % 5
	return (o.FirstQuintant + rel) % 5, o.Layout[rel]
}

// SegmentToQuintant is the inverse of QuintantToSegment
func SegmentToQuintant(segment int, o *Origin) (int, lattice.Orientation) {
	step := 1
	if o.Clockwise {
		step = -1
	}
	rel := (segment + 5 - o.FirstQuintant) % 5
	quintant := ((o.FirstQuintant+step*rel)%5 + 5) % 5
	return quintant, o.Layout[rel]
}

// Haversine returns sin²(Δφ/2) + sin²(Δθ/2)·sinφ₁·sinφ₂, a monotonic
// stand-in for the angular distance between two spherical points
func Haversine(point, axis spatial.Spherical) float64 {
	theta, phi := point.Theta.Radians(), point.Phi.Radians()
	theta2, phi2 := axis.Theta.Radians(), axis.Phi.Radians()
	a1 := math.Sin((phi2 - phi) / 2)
	a2 := math.Sin((theta2 - theta) / 2)
	return a1*a1 + a2*a2*math.Sin(phi)*math.Sin(phi2)
}

// FindNearestOrigin returns the origin whose centre is closest to point.
// Ties go to the lowest id.
func FindNearestOrigin(point spatial.Spherical) Origin {
	table := origins()
	nearest := 0
	minDistance := math.Inf(1)
	for i := range table {
		if d := Haversine(point, table[i].Axis); d < minDistance {
			minDistance = d
			nearest = i
		}
	}
	return table[nearest]
}

// IsNearestOrigin reports whether o is the face that point falls in
func IsNearestOrigin(point spatial.Spherical, o Origin) bool {
	return FindNearestOrigin(point).ID == o.ID
}

// Rotate applies the rotation q to v
func Rotate(v r3.Vector, q quat.Number) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}
