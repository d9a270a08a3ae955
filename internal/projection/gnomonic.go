package projection

import (
	"math"

	"github.com/golang/geo/s1"

	"github.com/jengzang/a5grid/internal/spatial"
)

// GnomonicForward projects a point given in face-centred spherical
// coordinates onto the tangent plane at the face centre
func GnomonicForward(s spatial.Spherical) spatial.Polar {
	return spatial.Polar{Rho: math.Tan(s.Phi.Radians()), Gamma: s.Theta}
}

// GnomonicInverse lifts a tangent-plane point back onto the sphere
func GnomonicInverse(p spatial.Polar) spatial.Spherical {
	return spatial.Spherical{Theta: p.Gamma, Phi: s1.Angle(math.Atan(p.Rho))}
}
