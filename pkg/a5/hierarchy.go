package a5

import (
	"github.com/pkg/errors"

	"github.com/jengzang/a5grid/internal/dodecahedron"
)

// MaxChildren caps the number of ids a single expansion may produce
const MaxChildren = 1 << 26

// CellToParent returns the cell one resolution coarser than id
func CellToParent(id CellID) (CellID, error) {
	res := GetResolution(id)
	if res == 0 {
		return 0, errors.Wrapf(ErrNoParent, "%s is at resolution 0", id)
	}
	return CellToParentAt(id, res-1)
}

// CellToParentAt returns the ancestor of id at the given resolution. Asking
// for the cell's own resolution returns id.
func CellToParentAt(id CellID, resolution int) (CellID, error) {
	c, err := Deserialize(id)
	if err != nil {
		return 0, err
	}
	if resolution < 0 {
		return 0, errors.Wrapf(ErrInvalidInput, "parent resolution %d is negative", resolution)
	}
	if resolution > c.Resolution {
		return 0, errors.Wrapf(ErrResolution, "parent resolution %d finer than %d", resolution, c.Resolution)
	}
	if resolution == c.Resolution {
		return id, nil
	}

	parent := Cell{Origin: c.Origin, Segment: c.Segment, Resolution: resolution}
	if resolution >= firstHilbertResolution {
		parent.S = c.S >> uint(2*(c.Resolution-resolution))
	}
	return Serialize(parent)
}

// CellToChildren returns the cells one resolution finer than id in curve
// order, which is also ascending id order
func CellToChildren(id CellID) ([]CellID, error) {
	return CellToChildrenAt(id, GetResolution(id)+1)
}

// CellToChildrenAt returns all descendants of id at the given resolution in
// ascending order
func CellToChildrenAt(id CellID, resolution int) ([]CellID, error) {
	c, err := Deserialize(id)
	if err != nil {
		return nil, err
	}
	if resolution < c.Resolution {
		return nil, errors.Wrapf(ErrResolution, "child resolution %d coarser than %d", resolution, c.Resolution)
	}
	if resolution > MaxResolution {
		return nil, errors.Wrapf(ErrMaxResolutionExceeded, "child resolution %d above %d", resolution, MaxResolution)
	}
	if resolution == c.Resolution {
		return []CellID{id}, nil
	}
	if n := NumChildren(c.Resolution, resolution); n > MaxChildren {
		return nil, errors.Wrapf(ErrInvalidInput, "%d children exceed the limit of %d", n, MaxChildren)
	}

	segments := []int{c.Segment}
	if c.Resolution == 0 {
		o := dodecahedron.Get(c.Origin)
		segments = make([]int, 5)
		for n := range segments {
			segments[n] = (n + o.FirstQuintant) % 5
		}
	}

	diff := resolution - max(c.Resolution, firstHilbertResolution-1)
	count := uint64(1) << uint(2*diff)
	base := c.S << uint(2*diff)

	children := make([]CellID, 0, uint64(len(segments))*count)
	for _, segment := range segments {
		for i := uint64(0); i < count; i++ {
			child, err := Serialize(Cell{Origin: c.Origin, Segment: segment, S: base + i, Resolution: resolution})
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
	}
	return children, nil
}

// Res0Cells returns the twelve face cells in ascending order
func Res0Cells() []CellID {
	cells := make([]CellID, 0, dodecahedron.NumOrigins)
	for i := 0; i < dodecahedron.NumOrigins; i++ {
		id, err := Serialize(Cell{Origin: i})
		if err != nil {
			panic(err)
		}
		cells = append(cells, id)
	}
	return cells
}

// DescendantRange returns the smallest id interval holding every descendant
// of id at any finer resolution. Ids of other resolutions can fall inside
// the interval, so callers that store mixed resolutions must filter on
// resolution as well.
func DescendantRange(id CellID) (lo, hi CellID, err error) {
	c, err := Deserialize(id)
	if err != nil {
		return 0, 0, err
	}

	top6 := uint64(id) >> hilbertStartBit
	switch c.Resolution {
	case 0:
		first := uint64(5 * c.Origin)
		return CellID(first << hilbertStartBit), CellID((first+5)<<hilbertStartBit - 1), nil
	case 1:
		return CellID(top6 << hilbertStartBit), CellID((top6+1)<<hilbertStartBit - 1), nil
	}
	lsb := uint64(1) << markerShift(c.Resolution)
	return CellID(uint64(id) - lsb + 1), CellID(uint64(id) + lsb - 1), nil
}
