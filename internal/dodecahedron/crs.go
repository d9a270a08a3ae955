package dodecahedron

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/pkg/errors"

	"github.com/jengzang/a5grid/internal/lattice"
	"github.com/jengzang/a5grid/internal/spatial"
)

const crsTolerance = 1e-5

// CRS is the rigid frame of the dodecahedron: 12 face centres, 20 vertices
// and 30 edge midpoints on the unit sphere
type CRS struct {
	vertices []r3.Vector
}

// NewCRS builds the 62 reference vertices from the origins
func NewCRS() (*CRS, error) {
	c := &CRS{vertices: make([]r3.Vector, 0, 62)}
	table := origins()

	for i := range table {
		c.add(spatial.ToCartesian(table[i].Axis))
	}
	c.addRing(table, 1, math.Atan(lattice.DistanceToVertex))
	c.addRing(table, 0, math.Atan(lattice.DistanceToEdge))

	if len(c.vertices) != 62 {
		return nil, errors.Errorf("crs: expected 62 vertices, got %d", len(c.vertices))
	}
	return c, nil
}

// addRing adds five points per face at polar angle phi, at azimuths
// (2i+offset)·π/5 from the face orientation
func (c *CRS) addRing(table *[NumOrigins]Origin, offset int, phi float64) {
	for o := range table {
		for i := 0; i < 5; i++ {
			theta := float64(2*i+offset)*math.Pi/5 + table[o].Angle.Radians()
			p := spatial.ToCartesian(spatial.Spherical{Theta: s1.Angle(theta), Phi: s1.Angle(phi)})
			c.add(Rotate(p, table[o].Quat))
		}
	}
}

func (c *CRS) add(v r3.Vector) bool {
	n, err := spatial.Normalize(v)
	if err != nil {
		return false
	}
	for _, existing := range c.vertices {
		if n.Sub(existing).Norm() < crsTolerance {
			return false
		}
	}
	c.vertices = append(c.vertices, n)
	return true
}

// Vertex snaps point onto the reference vertex it is close to
func (c *CRS) Vertex(point r3.Vector) (r3.Vector, error) {
	for _, v := range c.vertices {
		if point.Sub(v).Norm() < crsTolerance {
			return v, nil
		}
	}
	return r3.Vector{}, errors.Errorf("crs: no vertex near %v", point)
}

// Len returns the number of reference vertices
func (c *CRS) Len() int { return len(c.vertices) }
