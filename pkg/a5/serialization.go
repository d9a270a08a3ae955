package a5

import (
	"github.com/pkg/errors"

	"github.com/jengzang/a5grid/internal/dodecahedron"
)

const (
	// MaxResolution is the finest resolution a CellID can address
	MaxResolution = 29

	firstHilbertResolution = 2
	hilbertStartBit        = 58

	removalMask uint64 = 0x03ffffffffffffff
)

// Cell is the unpacked form of a CellID
type Cell struct {
	Origin     int
	Segment    int
	S          uint64
	Resolution int
}

// getResolution finds the marker bit. It returns -1 for the world cell.
func getResolution(index uint64) int {
	resolution := MaxResolution
	shifted := index >> 1
	for resolution > -1 && shifted&1 == 0 {
		resolution--
		if resolution < firstHilbertResolution {
			shifted >>= 1
		} else {
			shifted >>= 2
		}
	}
	return resolution
}

func hilbertBits(resolution int) uint {
	return uint(2 * (resolution - firstHilbertResolution + 1))
}

// markerShift returns the bit position of the resolution marker
func markerShift(resolution int) uint {
	if resolution < firstHilbertResolution {
		return hilbertStartBit - uint(resolution+1)
	}
	return hilbertStartBit - (hilbertBits(resolution) + 1)
}

// Serialize packs a cell into its id
func Serialize(c Cell) (CellID, error) {
	if err := validateResolution(c.Resolution); err != nil {
		return 0, err
	}
	if c.Origin < 0 || c.Origin >= dodecahedron.NumOrigins {
		return 0, errors.Wrapf(ErrInvalidInput, "origin %d out of range", c.Origin)
	}
	if c.Segment < 0 || c.Segment > 4 {
		return 0, errors.Wrapf(ErrInvalidInput, "segment %d out of range", c.Segment)
	}

	var index uint64
	if c.Resolution == 0 {
		index = uint64(c.Origin) << hilbertStartBit
	} else {
		o := dodecahedron.Get(c.Origin)
		segmentN := (c.Segment + 5 - o.FirstQuintant) % 5
		index = uint64(5*c.Origin+segmentN) << hilbertStartBit
	}

	if c.Resolution >= firstHilbertResolution {
		bits := hilbertBits(c.Resolution)
		if c.S >= uint64(1)<<bits {
			return 0, errors.Wrapf(ErrInvalidInput, "s %d too large for resolution %d", c.S, c.Resolution)
		}
		index += c.S << (hilbertStartBit - bits)
	}

	index |= uint64(1) << markerShift(c.Resolution)
	return CellID(index), nil
}

// Deserialize unpacks an id. Ids that do not survive a round trip through
// Serialize are rejected with ErrInvalidCellID.
func Deserialize(id CellID) (Cell, error) {
	c, err := unpack(uint64(id))
	if err != nil {
		return Cell{}, err
	}
	again, err := Serialize(c)
	if err != nil || again != id {
		return Cell{}, errors.Wrapf(ErrInvalidCellID, "%s has reserved bits set", id)
	}
	return c, nil
}

func unpack(index uint64) (Cell, error) {
	resolution := getResolution(index)
	if resolution < 0 {
		return Cell{}, errors.Wrap(ErrInvalidCellID, "world cell is not addressable")
	}

	top6 := int(index >> hilbertStartBit)
	c := Cell{Resolution: resolution}
	if resolution == 0 {
		c.Origin = top6
	} else {
		c.Origin = top6 / 5
	}
	if c.Origin >= dodecahedron.NumOrigins {
		return Cell{}, errors.Wrapf(ErrInvalidCellID, "could not parse origin from %d", top6)
	}
	if resolution > 0 {
		o := dodecahedron.Get(c.Origin)
		c.Segment = (top6%5 + o.FirstQuintant) % 5
	}

	if resolution >= firstHilbertResolution {
		c.S = (index & removalMask) >> (hilbertStartBit - hilbertBits(resolution))
	}
	return c, nil
}

// GetResolution returns the resolution of an id, or -1 when no marker bit
// is present
func GetResolution(id CellID) int {
	return getResolution(uint64(id))
}

// IsValidCell reports whether id addresses a cell
func IsValidCell(id CellID) bool {
	_, err := Deserialize(id)
	return err == nil
}
