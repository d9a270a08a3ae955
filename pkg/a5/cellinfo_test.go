package a5

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumCells(t *testing.T) {
	assert.Equal(t, uint64(12), NumCells(0))
	assert.Equal(t, uint64(60), NumCells(1))
	assert.Equal(t, uint64(240), NumCells(2))
	assert.Equal(t, uint64(960), NumCells(3))
	assert.Equal(t, uint64(60)<<56, NumCells(MaxResolution))
	assert.Zero(t, NumCells(-1))
	assert.Zero(t, NumCells(MaxResolution+1))
}

func TestNumChildren(t *testing.T) {
	assert.Equal(t, uint64(1), NumChildren(4, 4))
	assert.Equal(t, uint64(5), NumChildren(0, 1))
	assert.Equal(t, uint64(4), NumChildren(1, 2))
	assert.Equal(t, uint64(20), NumChildren(0, 2))
	assert.Equal(t, uint64(1)<<20, NumChildren(5, 15))
	assert.Zero(t, NumChildren(3, 2))
	assert.Zero(t, NumChildren(-1, 2))
}

func TestCellArea(t *testing.T) {
	assert.InDelta(t, 42505468731619.93, CellArea(0), 1)
	assert.InDelta(t, CellArea(0)/5, CellArea(1), 1e-3)
	for res := 2; res <= MaxResolution; res++ {
		assert.InEpsilon(t, CellArea(res-1)/4, CellArea(res), 1e-12)
	}
	assert.Zero(t, CellArea(MaxResolution+1))
}
