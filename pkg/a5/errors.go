package a5

import (
	"github.com/pkg/errors"

	"github.com/jengzang/a5grid/internal/spatial"
)

var (
	// ErrInvalidInput reports an out-of-range coordinate or resolution
	ErrInvalidInput = errors.New("invalid input")
	// ErrDegenerateGeometry reports a zero-length vector or collapsed polygon
	ErrDegenerateGeometry = spatial.ErrDegenerateGeometry
	// ErrInvalidCellID reports an id with an unknown face or a reserved bit
	// pattern
	ErrInvalidCellID = errors.New("invalid cell id")
	// ErrNoParent is returned when the parent of a resolution 0 cell is
	// requested
	ErrNoParent = errors.New("cell has no parent")
	// ErrMaxResolutionExceeded is returned for children of a cell at
	// MaxResolution
	ErrMaxResolutionExceeded = errors.New("maximum resolution exceeded")
	// ErrResolution is returned when a target resolution is coarser than a
	// cell it should expand
	ErrResolution = errors.New("resolution error")
)

func validateResolution(resolution int) error {
	if resolution < 0 || resolution > MaxResolution {
		return errors.Wrapf(ErrInvalidInput, "resolution %d outside [0, %d]", resolution, MaxResolution)
	}
	return nil
}
