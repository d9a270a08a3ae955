package dodecahedron

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"

	"github.com/jengzang/a5grid/internal/lattice"
	"github.com/jengzang/a5grid/internal/spatial"
)

func TestOrigins(t *testing.T) {
	table := Origins()
	require.Len(t, table, NumOrigins)
	for i, o := range table {
		assert.Equal(t, i, o.ID)
		assert.InDelta(t, 1, quat.Abs(o.Quat), 1e-10, "origin %d", i)
		assert.InDelta(t, 1, quat.Abs(o.InverseQuat), 1e-10, "origin %d", i)
		assert.GreaterOrEqual(t, o.FirstQuintant, 0)
		assert.Less(t, o.FirstQuintant, 5)
	}
	assert.Equal(t, table[3], Get(3))
}

func TestOriginQuaternionMovesPoleToAxis(t *testing.T) {
	pole := r3.Vector{Z: 1}
	for _, o := range Origins() {
		axis := spatial.ToCartesian(o.Axis)
		assert.InDelta(t, 0, Rotate(pole, o.Quat).Sub(axis).Norm(), 1e-9, "origin %d", o.ID)
		assert.InDelta(t, 0, Rotate(axis, o.InverseQuat).Sub(pole).Norm(), 1e-9, "origin %d", o.ID)
	}
}

func TestFindNearestOrigin(t *testing.T) {
	for _, o := range Origins() {
		assert.Equal(t, o.ID, FindNearestOrigin(o.Axis).ID)
		assert.True(t, IsNearestOrigin(o.Axis, o))

		antipode := spatial.Spherical{Theta: o.Axis.Theta + math.Pi, Phi: math.Pi - o.Axis.Phi}
		assert.NotEqual(t, o.ID, FindNearestOrigin(antipode).ID)
		assert.False(t, IsNearestOrigin(antipode, o))
	}

	boundary := []struct {
		point    spatial.Spherical
		expected []int
	}{
		{spatial.Spherical{Theta: 0, Phi: lattice.PiOver5 / 2}, []int{0, 1}},
		{spatial.Spherical{Theta: 2 * lattice.PiOver5, Phi: lattice.PiOver5}, []int{3, 4}},
		{spatial.Spherical{Theta: 0, Phi: math.Pi - lattice.PiOver5/2}, []int{9, 10}},
	}
	for _, b := range boundary {
		assert.Contains(t, b.expected, FindNearestOrigin(b.point).ID)
	}
}

func TestHaversine(t *testing.T) {
	p := spatial.Spherical{Theta: math.Pi / 4, Phi: math.Pi / 3}
	assert.Equal(t, 0.0, Haversine(p, p))

	cases := []struct {
		a, b     spatial.Spherical
		expected float64
	}{
		{spatial.Spherical{}, spatial.Spherical{Phi: math.Pi / 2}, 0.5},
		{spatial.Spherical{Phi: math.Pi / 4}, spatial.Spherical{Theta: math.Pi / 2, Phi: math.Pi / 4}, 0.25},
	}
	for _, c := range cases {
		assert.InDelta(t, c.expected, Haversine(c.a, c.b), 1e-4)
		assert.InDelta(t, Haversine(c.a, c.b), Haversine(c.b, c.a), 1e-12)
	}

	last := 0.0
	for _, phi := range []s1.Angle{math.Pi / 6, math.Pi / 4, math.Pi / 3, math.Pi / 2} {
		d := Haversine(spatial.Spherical{}, spatial.Spherical{Phi: phi})
		assert.Greater(t, d, last)
		last = d
	}
}

func TestQuintantSegmentRoundTrip(t *testing.T) {
	for _, o := range Origins() {
		segments := make(map[int]bool)
		for q := 0; q < 5; q++ {
			segment, orientation := QuintantToSegment(q, &o)
			back, backOrientation := SegmentToQuintant(segment, &o)
			assert.Equal(t, q, back, "origin %d", o.ID)
			assert.Equal(t, orientation, backOrientation)
			segments[segment] = true
		}
		assert.Len(t, segments, 5)

		first, _ := QuintantToSegment(o.FirstQuintant, &o)
		assert.Equal(t, o.FirstQuintant, first)
	}
}

func TestCRS(t *testing.T) {
	crs, err := NewCRS()
	require.NoError(t, err)
	assert.Equal(t, 62, crs.Len())
	assert.Same(t, ReferenceFrame(), ReferenceFrame())

	for _, v := range crs.vertices {
		assert.InDelta(t, 1, v.Norm(), 1e-12)
		snapped, err := crs.Vertex(v.Mul(1 + 1e-7))
		require.NoError(t, err)
		assert.Equal(t, v, snapped)
	}

	_, err = crs.Vertex(r3.Vector{X: 1, Y: 1, Z: 1}.Mul(0.3))
	assert.Error(t, err)
}
