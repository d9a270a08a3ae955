package spatial

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// LonLat represents a geographic point in degrees
type LonLat struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Spherical is a point on the unit sphere. Theta is the azimuth around the
// polar axis and Phi is the angle from the north pole.
type Spherical struct {
	Theta s1.Angle
	Phi   s1.Angle
}

// Polar is a point in a face plane expressed as radius and azimuth
type Polar struct {
	Rho   float64
	Gamma s1.Angle
}

// IJ is a point in the lattice basis of the pentagon tiling
type IJ struct {
	I, J float64
}

// KJ is the sheared form of IJ used by the Hilbert curve, K = I + J
type KJ struct {
	K, J float64
}

// Barycentric coordinates relative to a face triangle
type Barycentric struct {
	U, V, W float64
}

// FaceTriangle is a triangle in a face plane
type FaceTriangle struct {
	A, B, C r2.Point
}

// SphericalTriangle is a triangle with vertices on the unit sphere
type SphericalTriangle struct {
	A, B, C r3.Vector
}

// Radians converts degrees to an s1.Angle
func Radians(deg float64) s1.Angle {
	return s1.Angle(deg * math.Pi / 180)
}

// ToPolar converts a face-plane point to polar coordinates
func ToPolar(p r2.Point) Polar {
	return Polar{
		Rho:   math.Sqrt(p.X*p.X + p.Y*p.Y),
		Gamma: s1.Angle(math.Atan2(p.Y, p.X)),
	}
}

// ToFace converts polar coordinates back to a face-plane point
func ToFace(p Polar) r2.Point {
	g := p.Gamma.Radians()
	return r2.Point{X: p.Rho * math.Cos(g), Y: p.Rho * math.Sin(g)}
}

// ToSpherical converts a Cartesian vector to spherical coordinates. The
// vector does not need to be unit length.
func ToSpherical(v r3.Vector) Spherical {
	theta := math.Atan2(v.Y, v.X)
	r := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	cos := math.Max(-1, math.Min(1, v.Z/r))
	return Spherical{Theta: s1.Angle(theta), Phi: s1.Angle(math.Acos(cos))}
}

// ToCartesian converts spherical coordinates to a unit vector
func ToCartesian(s Spherical) r3.Vector {
	theta, phi := s.Theta.Radians(), s.Phi.Radians()
	sinPhi := math.Sin(phi)
	return r3.Vector{
		X: sinPhi * math.Cos(theta),
		Y: sinPhi * math.Sin(theta),
		Z: math.Cos(phi),
	}
}

// FaceToBarycentric expresses p in barycentric coordinates of tri
func FaceToBarycentric(p r2.Point, tri FaceTriangle) Barycentric {
	p1, p2, p3 := tri.A, tri.B, tri.C
	d31 := p1.Sub(p3)
	d23 := p3.Sub(p2)
	d3p := p.Sub(p3)

	det := d23.X*d31.Y - d23.Y*d31.X
	b0 := (d23.X*d3p.Y - d23.Y*d3p.X) / det
	b1 := (d31.X*d3p.Y - d31.Y*d3p.X) / det
	return Barycentric{U: b0, V: b1, W: 1 - (b0 + b1)}
}

// BarycentricToFace is the inverse of FaceToBarycentric
func BarycentricToFace(b Barycentric, tri FaceTriangle) r2.Point {
	return r2.Point{
		X: b.U*tri.A.X + b.V*tri.B.X + b.W*tri.C.X,
		Y: b.U*tri.A.Y + b.V*tri.B.Y + b.W*tri.C.Y,
	}
}

// IJToKJ shears lattice coordinates into the Hilbert frame
func IJToKJ(ij IJ) KJ {
	return KJ{K: ij.I + ij.J, J: ij.J}
}

// KJToIJ is the inverse of IJToKJ
func KJToIJ(kj KJ) IJ {
	return IJ{I: kj.K - kj.J, J: kj.J}
}
