package a5

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/jengzang/a5grid/internal/dodecahedron"
	"github.com/jengzang/a5grid/internal/lattice"
	"github.com/jengzang/a5grid/internal/spatial"
)

// jitterSamples is the number of points scattered around the input when a
// cell estimate has to be verified
const jitterSamples = 25

// nearbySearchLevels is how many ancestors of the best estimate are
// searched when no jittered sample lands in a containing cell
const nearbySearchLevels = 3

const minLonStretchCos = 0.01

// maxBoundarySegments bounds the densification of a single edge
const maxBoundarySegments = 1024

// LonLatToCell returns the cell at the given resolution that contains the
// point. Longitudes of exactly ±180 are accepted and wrapped.
func LonLatToCell(p spatial.LonLat, resolution int) (CellID, error) {
	if err := validateResolution(resolution); err != nil {
		return 0, err
	}
	if err := validateLonLat(p); err != nil {
		return 0, err
	}
	point := normalizePoint(p)
	if resolution < firstHilbertResolution {
		return Serialize(estimateCell(point, resolution))
	}

	// The lattice estimate can land in a neighbour near cell edges, so
	// candidates from nearby samples are checked against the point itself.
	target := fromLonLat(point)
	scale := 50 / math.Pow(2, float64(resolution-firstHilbertResolution+1))
	seen := make(map[CellID]struct{}, jitterSamples+1)
	var best CellID
	bestScore := math.Inf(-1)

	// Longitude steps shrink towards the poles, so they are widened to
	// cover the same distance on the sphere.
	lonStretch := 1 / math.Max(math.Cos(point.Lat*math.Pi/180), minLonStretchCos)

	for i := -1; i < jitterSamples; i++ {
		sample := point
		if i >= 0 {
			r := float64(i) / jitterSamples * scale
			sample = normalizePoint(spatial.LonLat{
				Lon: point.Lon + math.Cos(float64(i))*r*lonStretch,
				Lat: point.Lat + math.Sin(float64(i))*r,
			})
		}
		c := estimateCell(sample, resolution)
		id, err := Serialize(c)
		if err != nil {
			return 0, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		score := cellShape(c).ContainsPoint(dodecahedron.Forward(target, c.Origin))
		if score > 0 {
			return id, nil
		}
		if score > bestScore {
			best, bestScore = id, score
		}
	}

	if id, ok := searchNearby(best, target, resolution); ok {
		return id, nil
	}
	return best, nil
}

// searchNearby looks for a cell containing target among the cells that share
// a close ancestor with near
func searchNearby(near CellID, target spatial.Spherical, resolution int) (CellID, bool) {
	for up := 1; up <= nearbySearchLevels && resolution-up >= 0; up++ {
		ancestor, err := CellToParentAt(near, resolution-up)
		if err != nil {
			return 0, false
		}
		candidates, err := CellToChildrenAt(ancestor, resolution)
		if err != nil {
			return 0, false
		}
		for _, id := range candidates {
			c, err := Deserialize(id)
			if err != nil {
				continue
			}
			if cellShape(c).ContainsPoint(dodecahedron.Forward(target, c.Origin)) > 0 {
				return id, true
			}
		}
	}
	return 0, false
}

func estimateCell(p spatial.LonLat, resolution int) Cell {
	spherical := fromLonLat(p)
	origin := dodecahedron.FindNearestOrigin(spherical)
	face := dodecahedron.Forward(spherical, origin.ID)

	quintant := lattice.QuintantFromPolar(spatial.ToPolar(face))
	segment, orientation := dodecahedron.QuintantToSegment(quintant, &origin)
	c := Cell{Origin: origin.ID, Segment: segment, Resolution: resolution}
	if resolution < firstHilbertResolution {
		return c
	}

	if quintant != 0 {
		sin, cos := math.Sincos(-lattice.TwoPiOver5 * float64(quintant))
		face = r2.Point{X: cos*face.X - sin*face.Y, Y: sin*face.X + cos*face.Y}
	}
	hilbertResolution := resolution - firstHilbertResolution + 1
	face = face.Mul(math.Pow(2, float64(hilbertResolution)))
	c.S = lattice.IJToS(lattice.FaceToIJ(face), hilbertResolution, orientation)
	return c
}

// cellShape rebuilds the outline of a cell in the face plane of its origin
func cellShape(c Cell) *spatial.FacePolygon {
	o := dodecahedron.Get(c.Origin)
	quintant, orientation := dodecahedron.SegmentToQuintant(c.Segment, &o)
	switch c.Resolution {
	case 0:
		return lattice.FaceVertices()
	case 1:
		return lattice.QuintantVertices(quintant)
	}
	hilbertResolution := c.Resolution - firstHilbertResolution + 1
	anchor := lattice.SToAnchor(c.S, hilbertResolution, orientation)
	return lattice.PentagonVertices(hilbertResolution, quintant, anchor)
}

// BoundaryOptions controls the ring returned by CellToBoundary
type BoundaryOptions struct {
	// Closed repeats the first vertex at the end of the ring
	Closed bool
	// Segments is the number of pieces each edge is split into. Zero picks
	// a default that keeps coarse cells smooth on the sphere.
	Segments int
}

// DefaultBoundaryOptions returns a closed ring with automatic densification
func DefaultBoundaryOptions() BoundaryOptions {
	return BoundaryOptions{Closed: true}
}

func defaultSegments(resolution int) int {
	if resolution >= 6 {
		return 1
	}
	return 1 << uint(6-resolution)
}

// CellToBoundary returns the outline of a cell counter-clockwise as seen
// from outside the sphere. Longitudes are kept contiguous across the
// antimeridian so they may leave [-180, 180]. A nil opts is the same as
// DefaultBoundaryOptions.
func CellToBoundary(id CellID, opts *BoundaryOptions) ([]spatial.LonLat, error) {
	o := DefaultBoundaryOptions()
	if opts != nil {
		o = *opts
	}
	if o.Segments < 0 || o.Segments > maxBoundarySegments {
		return nil, errors.Wrapf(ErrInvalidInput, "segments %d outside [0, %d]", o.Segments, maxBoundarySegments)
	}

	c, err := Deserialize(id)
	if err != nil {
		return nil, err
	}
	segments := o.Segments
	if segments == 0 {
		segments = defaultSegments(c.Resolution)
	}

	split := cellShape(c).SplitEdges(segments)
	ring := make([]spatial.LonLat, 0, len(split.Vertices)+1)
	for _, v := range split.Vertices {
		ring = append(ring, toLonLat(dodecahedron.Inverse(v, c.Origin)))
	}
	ring = normalizeLongitudes(ring)
	if o.Closed {
		ring = append(ring, ring[0])
	}
	for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
	return ring, nil
}

// CellToLonLat returns the centre of a cell with the longitude in
// [-180, 180)
func CellToLonLat(id CellID) (spatial.LonLat, error) {
	c, err := Deserialize(id)
	if err != nil {
		return spatial.LonLat{}, err
	}
	p := toLonLat(dodecahedron.Inverse(cellShape(c).Center(), c.Origin))
	p.Lon = wrapLongitude(p.Lon)
	return p, nil
}

// CellContainsPoint scores how well the cell contains p. Positive values
// mean inside; negative values grow with the distance outside.
func CellContainsPoint(id CellID, p spatial.LonLat) (float64, error) {
	if err := validateLonLat(p); err != nil {
		return 0, err
	}
	c, err := Deserialize(id)
	if err != nil {
		return 0, err
	}
	face := dodecahedron.Forward(fromLonLat(normalizePoint(p)), c.Origin)
	return cellShape(c).ContainsPoint(face), nil
}
