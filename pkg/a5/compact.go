package a5

import (
	"slices"

	"github.com/pkg/errors"
)

// Compact returns the smallest set of cells covering the same area as
// cells. Complete sibling groups are replaced by their parent, deepest
// resolution first, and cells already covered by an ancestor in the input
// are dropped. The result is sorted and free of duplicates; cells is not
// modified.
func Compact(cells []CellID) ([]CellID, error) {
	set := make(map[CellID]struct{}, len(cells))
	for i, id := range cells {
		if !IsValidCell(id) {
			return nil, errors.Wrapf(ErrInvalidCellID, "cell %d (%s)", i, id)
		}
		set[id] = struct{}{}
	}

	for id := range set {
		for p := id; GetResolution(p) > 0; {
			p, _ = CellToParent(p)
			if _, ok := set[p]; ok {
				delete(set, id)
				break
			}
		}
	}

	for res := MaxResolution; res > 0; res-- {
		groups := make(map[CellID]int)
		for id := range set {
			if GetResolution(id) != res {
				continue
			}
			parent, err := CellToParent(id)
			if err != nil {
				return nil, err
			}
			groups[parent]++
		}

		want := int(NumChildren(res-1, res))
		for parent, n := range groups {
			if n != want {
				continue
			}
			children, err := CellToChildren(parent)
			if err != nil {
				return nil, err
			}
			for _, child := range children {
				delete(set, child)
			}
			set[parent] = struct{}{}
		}
	}

	return sortedCells(set), nil
}

// Uncompact expands every cell to the target resolution. Cells already at
// the target are kept; a cell finer than the target fails with
// ErrResolution.
func Uncompact(cells []CellID, resolution int) ([]CellID, error) {
	if err := validateResolution(resolution); err != nil {
		return nil, err
	}

	var total uint64
	for i, id := range cells {
		if !IsValidCell(id) {
			return nil, errors.Wrapf(ErrInvalidCellID, "cell %d (%s)", i, id)
		}
		res := GetResolution(id)
		if res > resolution {
			return nil, errors.Wrapf(ErrResolution, "cannot uncompact %s at resolution %d to %d", id, res, resolution)
		}
		total += NumChildren(res, resolution)
		if total > MaxChildren {
			return nil, errors.Wrapf(ErrInvalidInput, "uncompacting to resolution %d exceeds %d cells", resolution, MaxChildren)
		}
	}

	out := make([]CellID, 0, total)
	for _, id := range cells {
		children, err := CellToChildrenAt(id, resolution)
		if err != nil {
			return nil, err
		}
		out = append(out, children...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func sortedCells(set map[CellID]struct{}) []CellID {
	out := make([]CellID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
