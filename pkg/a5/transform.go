package a5

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/pkg/errors"

	"github.com/jengzang/a5grid/internal/projection"
	"github.com/jengzang/a5grid/internal/spatial"
)

// longitudeOffset rotates the dodecahedron so that no face centre sits on
// the antimeridian
const longitudeOffset = 93.0

// LonLatFromRadians builds a point from radian coordinates
func LonLatFromRadians(lon, lat float64) spatial.LonLat {
	return spatial.LonLat{Lon: lon * 180 / math.Pi, Lat: lat * 180 / math.Pi}
}

func validateLonLat(p spatial.LonLat) error {
	if math.IsNaN(p.Lon) || math.IsNaN(p.Lat) || math.IsInf(p.Lon, 0) || math.IsInf(p.Lat, 0) {
		return errors.Wrapf(ErrInvalidInput, "non-finite coordinate (%v, %v)", p.Lon, p.Lat)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return errors.Wrapf(ErrInvalidInput, "latitude %v outside [-90, 90]", p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return errors.Wrapf(ErrInvalidInput, "longitude %v outside [-180, 180]", p.Lon)
	}
	return nil
}

// wrapLongitude maps any longitude into [-180, 180)
func wrapLongitude(lon float64) float64 {
	return math.Mod(math.Mod(lon+180, 360)+360, 360) - 180
}

// normalizePoint wraps the longitude and clamps the latitude of an internal
// sample point
func normalizePoint(p spatial.LonLat) spatial.LonLat {
	return spatial.LonLat{
		Lon: wrapLongitude(p.Lon),
		Lat: math.Max(-90, math.Min(90, p.Lat)),
	}
}

func fromLonLat(p spatial.LonLat) spatial.Spherical {
	theta := spatial.Radians(p.Lon + longitudeOffset)
	phi := s1.Angle(math.Pi/2) - projection.GeodeticToAuthalic(spatial.Radians(p.Lat))
	return spatial.Spherical{Theta: theta, Phi: phi}
}

func toLonLat(s spatial.Spherical) spatial.LonLat {
	lat := projection.AuthalicToGeodetic(s1.Angle(math.Pi/2) - s.Phi)
	return spatial.LonLat{Lon: s.Theta.Degrees() - longitudeOffset, Lat: lat.Degrees()}
}

// normalizeLongitudes shifts every longitude of a ring to within 180° of
// the ring centre so that rings crossing the antimeridian stay contiguous
func normalizeLongitudes(ring []spatial.LonLat) []spatial.LonLat {
	if len(ring) == 0 {
		return ring
	}

	var center r3.Vector
	for _, p := range ring {
		center = center.Add(spatial.ToCartesian(fromLonLat(p)))
	}
	if n := center.Norm(); n > 0 {
		center = center.Mul(1 / n)
	}
	c := toLonLat(spatial.ToSpherical(center))
	centerLon := c.Lon
	if c.Lat > 89.99 || c.Lat < -89.99 {
		centerLon = ring[0].Lon
	}
	centerLon = wrapLongitude(centerLon)

	out := make([]spatial.LonLat, len(ring))
	for i, p := range ring {
		lon := p.Lon
		for lon-centerLon > 180 {
			lon -= 360
		}
		for lon-centerLon < -180 {
			lon += 360
		}
		out[i] = spatial.LonLat{Lon: lon, Lat: p.Lat}
	}
	return out
}
