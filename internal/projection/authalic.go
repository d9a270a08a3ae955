// Package projection implements the projections between the sphere and the
// face planes of the dodecahedron: the authalic latitude correction, the
// gnomonic projection and the equal-area polyhedral projection.
package projection

import (
	"math"

	"github.com/golang/geo/s1"
)

// Clenshaw series coefficients for the WGS84 ellipsoid
var (
	geodeticToAuthalic = [6]float64{
		-2.2392098386786394e-03,
		2.1308606513250217e-06,
		-2.5592576864212742e-09,
		3.3701965267802837e-12,
		-4.6675453126112487e-15,
		6.6749287038481596e-18,
	}
	authalicToGeodetic = [6]float64{
		2.2392089963541657e-03,
		2.8831978048607556e-06,
		5.0862207399726603e-09,
		1.0201812377816100e-11,
		2.1912872306767718e-14,
		4.9284235482523806e-17,
	}
)

// GeodeticToAuthalic converts a geodetic latitude to the authalic latitude,
// the latitude on a sphere of equal surface area
func GeodeticToAuthalic(phi s1.Angle) s1.Angle {
	return applyCoefficients(phi, &geodeticToAuthalic)
}

// AuthalicToGeodetic is the inverse of GeodeticToAuthalic
func AuthalicToGeodetic(phi s1.Angle) s1.Angle {
	return applyCoefficients(phi, &authalicToGeodetic)
}

func applyCoefficients(phi s1.Angle, c *[6]float64) s1.Angle {
	sinPhi, cosPhi := math.Sincos(phi.Radians())
	x := 2 * (cosPhi - sinPhi) * (cosPhi + sinPhi)

	u0 := x*c[5] + c[4]
	u1 := x*u0 + c[3]
	u0 = x*u1 - u0 + c[2]
	u1 = x*u0 - u1 + c[1]
	u0 = x*u1 - u0 + c[0]

	return phi + s1.Angle(2*sinPhi*cosPhi*u0)
}
