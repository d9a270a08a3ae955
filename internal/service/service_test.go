package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jengzang/a5grid/internal/database"
	"github.com/jengzang/a5grid/internal/models"
	"github.com/jengzang/a5grid/internal/repository"
	"github.com/jengzang/a5grid/internal/spatial"
	"github.com/jengzang/a5grid/pkg/a5"
)

func newCellService(t *testing.T, maxUncompact int) *CellService {
	t.Helper()
	s, err := NewCellService(1<<20, maxUncompact, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func newStores(t *testing.T) (*GridService, *CoverageService) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cells := newCellService(t, 4096)
	grid := NewGridService(repository.NewGridRepository(db), cells, 7, zap.NewNop())
	coverage := NewCoverageService(repository.NewCoverageRepository(db), cells, zap.NewNop())
	return grid, coverage
}

func TestParseCells(t *testing.T) {
	face := a5.Res0Cells()[4]
	ids, err := ParseCells([]string{face.String(), "0x" + face.String()})
	require.NoError(t, err)
	assert.Equal(t, []a5.CellID{face, face}, ids)

	_, err = ParseCells([]string{"zz"})
	assert.True(t, errors.Is(err, a5.ErrInvalidInput))

	_, err = ParseCells([]string{"1"})
	assert.True(t, errors.Is(err, a5.ErrInvalidCellID))
}

func TestCellServiceInfo(t *testing.T) {
	s := newCellService(t, 100)
	id, err := s.Encode(spatial.LonLat{Lon: 113.26, Lat: 23.13}, 9)
	require.NoError(t, err)

	info, err := s.Info(id)
	require.NoError(t, err)
	assert.Equal(t, id.String(), info.CellID)
	assert.Equal(t, 9, info.Resolution)
	assert.InDelta(t, a5.CellArea(9), info.AreaM2, 1e-6)

	parent, err := a5.CellToParent(id)
	require.NoError(t, err)
	assert.Equal(t, parent.String(), info.Parent)

	faceInfo, err := s.Info(a5.Res0Cells()[0])
	require.NoError(t, err)
	assert.Empty(t, faceInfo.Parent)
}

func TestCellServiceBoundaryCached(t *testing.T) {
	s := newCellService(t, 100)
	id, err := s.Encode(spatial.LonLat{Lon: -46.63, Lat: -23.55}, 6)
	require.NoError(t, err)

	opts := a5.DefaultBoundaryOptions()
	first, err := s.Boundary(id, opts)
	require.NoError(t, err)
	s.boundaries.Wait()
	second, err := s.Boundary(id, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	direct, err := a5.CellToBoundary(id, &opts)
	require.NoError(t, err)
	assert.Equal(t, direct, second)
}

func TestCellServiceBoundaries(t *testing.T) {
	s := newCellService(t, 100)
	faces := a5.Res0Cells()
	rings, err := s.Boundaries(context.Background(), faces, a5.BoundaryOptions{Closed: true, Segments: 2})
	require.NoError(t, err)
	require.Len(t, rings, len(faces))
	for _, ring := range rings {
		assert.Len(t, ring, 11)
	}

	_, err = s.Boundaries(context.Background(), []a5.CellID{faces[0], 0}, a5.DefaultBoundaryOptions())
	assert.True(t, errors.Is(err, a5.ErrInvalidCellID))
}

func TestCellServiceLimits(t *testing.T) {
	s := newCellService(t, 100)
	face := a5.Res0Cells()[1]

	children, err := s.Children(face, nil)
	require.NoError(t, err)
	assert.Len(t, children, 5)

	four := 4
	_, err = s.Children(face, &four)
	assert.True(t, errors.Is(err, ErrLimitExceeded))

	_, err = s.Uncompact([]a5.CellID{face}, 4)
	assert.True(t, errors.Is(err, ErrLimitExceeded))

	cells, err := s.Uncompact([]a5.CellID{face}, 2)
	require.NoError(t, err)
	assert.Len(t, cells, 20)

	compacted, err := s.Compact(cells)
	require.NoError(t, err)
	assert.Equal(t, []a5.CellID{face}, compacted)

	parent, err := s.Parent(cells[7], nil)
	require.NoError(t, err)
	zero := 0
	ancestor, err := s.Parent(cells[7], &zero)
	require.NoError(t, err)
	assert.Equal(t, face, ancestor)
	assert.Equal(t, 1, parent.Resolution())
}

func TestCellServiceResolution(t *testing.T) {
	s := newCellService(t, 100)
	info, err := s.Resolution(1)
	require.NoError(t, err)
	assert.EqualValues(t, 60, info.NumCells)

	_, err = s.Resolution(31)
	assert.True(t, errors.Is(err, a5.ErrInvalidInput))
	assert.Len(t, s.Res0(), 12)
}

func TestGridServiceIngestAndRollup(t *testing.T) {
	grid, _ := newStores(t)
	ctx := context.Background()

	gz := models.LonLat{Lon: 113.2644, Lat: 23.1291}
	ldn := models.LonLat{Lon: -0.1276, Lat: 51.5072}
	n, err := grid.Ingest(ctx, models.PointsRequest{Points: []models.TimedLonLat{
		{LonLat: gz, Time: 20},
		{LonLat: gz, Time: 10},
		{LonLat: gz},
		{LonLat: ldn, Time: 5},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	cells, err := grid.GetGridCells(ctx, models.GridFilter{Resolution: 7})
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.EqualValues(t, 3, cells[0].PointCount)
	assert.EqualValues(t, 10, cells[0].FirstSeen)
	assert.EqualValues(t, 20, cells[0].LastSeen)

	gzCell, err := a5.LonLatToCell(spatial.LonLat{Lon: gz.Lon, Lat: gz.Lat}, 7)
	require.NoError(t, err)
	stored, err := grid.GetGridCell(ctx, gzCell)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stored.PointCount)
	assert.InDelta(t, gz.Lon, stored.CenterLon, 5)

	ancestor, err := a5.CellToParentAt(gzCell, 3)
	require.NoError(t, err)
	rollup, err := grid.Rollup(ctx, ancestor, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 3, rollup.PointCount)
	assert.Equal(t, 1, rollup.CellCount)

	self, err := grid.Rollup(ctx, gzCell, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 3, self.PointCount)

	_, err = grid.Rollup(ctx, ancestor, 2)
	assert.True(t, errors.Is(err, a5.ErrResolution))

	_, err = grid.GetGridCell(ctx, ancestor)
	assert.True(t, errors.Is(err, ErrNotFound))

	summary, err := grid.Summary(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Cells)
	assert.Equal(t, 4.0, summary.Total)
	assert.Equal(t, 3.0, summary.Max)

	removed, err := grid.Reset(ctx, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)
}

func TestGridServiceIngestRejectsBadPoint(t *testing.T) {
	grid, _ := newStores(t)
	bad := 40
	_, err := grid.Ingest(context.Background(), models.PointsRequest{
		Resolution: &bad,
		Points:     []models.TimedLonLat{{LonLat: models.LonLat{Lon: 1, Lat: 1}}},
	})
	assert.True(t, errors.Is(err, a5.ErrInvalidInput))
}

func TestCoverageService(t *testing.T) {
	_, coverage := newStores(t)
	ctx := context.Background()

	face := a5.Res0Cells()[9]
	children, err := a5.CellToChildren(face)
	require.NoError(t, err)
	hexes := make([]string, len(children))
	for i, id := range children {
		hexes[i] = id.String()
	}

	saved, err := coverage.Save(ctx, models.CoverageRequest{Name: "face9", Cells: hexes})
	require.NoError(t, err)
	assert.Equal(t, []string{face.String()}, saved.Cells)

	res := 1
	expanded, err := coverage.Get(ctx, "face9", &res)
	require.NoError(t, err)
	assert.Equal(t, hexes, expanded.Cells)

	list, err := coverage.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, coverage.Delete(ctx, "face9"))
	assert.True(t, errors.Is(coverage.Delete(ctx, "face9"), ErrNotFound))

	_, err = coverage.Get(ctx, "face9", nil)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = coverage.Save(ctx, models.CoverageRequest{Name: "bad", Cells: []string{"3"}})
	assert.True(t, errors.Is(err, a5.ErrInvalidCellID))
}
