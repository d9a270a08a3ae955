package spatial

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// ErrDegenerateGeometry is returned when a zero-length vector or a collapsed
// polygon cannot be normalised
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// Normalize returns v scaled to unit length
func Normalize(v r3.Vector) (r3.Vector, error) {
	n := v.Norm()
	if n == 0 || math.IsNaN(n) {
		return v, errors.Wrapf(ErrDegenerateGeometry, "cannot normalize %v", v)
	}
	return r3.Vector{X: v.X / n, Y: v.Y / n, Z: v.Z / n}, nil
}

// unit normalises v and leaves zero vectors untouched. Internal pipelines
// only ever pass it sums of nearby unit vectors.
func unit(v r3.Vector) r3.Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return r3.Vector{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Lerp interpolates linearly between a and b
func Lerp(a, b r3.Vector, t float64) r3.Vector {
	return r3.Vector{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
	}
}

// Angle returns the angle between a and b in radians
func Angle(a, b r3.Vector) float64 {
	cos := a.Dot(b) / (a.Norm() * b.Norm())
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}

// VectorDifference measures the separation of two unit vectors as the sine of
// half the angle between them. It stays accurate for nearly identical
// vectors, where it falls back to half the chord length.
func VectorDifference(a, b r3.Vector) float64 {
	mid := unit(Lerp(a, b, 0.5))
	d := a.Cross(mid).Norm()
	if d < 1e-8 {
		return 0.5 * a.Sub(b).Norm()
	}
	return d
}

// TripleProduct returns a · (b × c)
func TripleProduct(a, b, c r3.Vector) float64 {
	return a.Dot(b.Cross(c))
}

// QuadrupleProduct returns (a × b) × (c × d), expanded as
// b(a·(c×d)) − a(b·(c×d)).
func QuadrupleProduct(a, b, c, d r3.Vector) r3.Vector {
	cd := c.Cross(d)
	acd := a.Dot(cd)
	bcd := b.Dot(cd)
	return b.Mul(acd).Sub(a.Mul(bcd))
}

// Slerp interpolates along the great circle from a to b
func Slerp(a, b r3.Vector, t float64) r3.Vector {
	gamma := Angle(a, b)
	if gamma < 1e-12 {
		return Lerp(a, b, t)
	}
	wa := math.Sin((1-t)*gamma) / math.Sin(gamma)
	wb := math.Sin(t*gamma) / math.Sin(gamma)
	return a.Mul(wa).Add(b.Mul(wb))
}
