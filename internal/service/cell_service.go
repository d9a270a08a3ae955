package service

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jengzang/a5grid/internal/metrics"
	"github.com/jengzang/a5grid/internal/models"
	"github.com/jengzang/a5grid/internal/spatial"
	"github.com/jengzang/a5grid/pkg/a5"
)

// lonLatCost is the cache cost of one boundary vertex in bytes
const lonLatCost = 16

// CellService exposes the grid engine with boundary caching and limits on
// expansion
type CellService struct {
	boundaries   *ristretto.Cache[string, []spatial.LonLat]
	maxUncompact int
	log          *zap.Logger
}

// NewCellService creates a cell service. maxCacheCost bounds the bytes of
// cached boundaries; maxUncompact bounds the cells any single call may
// return.
func NewCellService(maxCacheCost int64, maxUncompact int, log *zap.Logger) (*CellService, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, []spatial.LonLat]{
		NumCounters: max(maxCacheCost/lonLatCost/10, 1000),
		MaxCost:     maxCacheCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create boundary cache")
	}
	return &CellService{
		boundaries:   cache,
		maxUncompact: maxUncompact,
		log:          log.With(zap.String("component", "cell_service")),
	}, nil
}

// Close releases the cache
func (s *CellService) Close() {
	s.boundaries.Close()
}

// ParseCells parses hex ids and rejects ids that do not address a cell
func ParseCells(hexIDs []string) ([]a5.CellID, error) {
	cells := make([]a5.CellID, 0, len(hexIDs))
	for _, h := range hexIDs {
		id, err := ParseCell(h)
		if err != nil {
			return nil, err
		}
		cells = append(cells, id)
	}
	return cells, nil
}

// ParseCell parses a single hex id
func ParseCell(hexID string) (a5.CellID, error) {
	id, err := a5.FromHex(hexID)
	if err != nil {
		return 0, err
	}
	if !a5.IsValidCell(id) {
		return 0, errors.Wrapf(a5.ErrInvalidCellID, "%q", hexID)
	}
	return id, nil
}

// Encode returns the cell containing p
func (s *CellService) Encode(p spatial.LonLat, resolution int) (a5.CellID, error) {
	id, err := a5.LonLatToCell(p, resolution)
	if err != nil {
		return 0, err
	}
	metrics.CellsEncodedTotal.WithLabelValues(strconv.Itoa(resolution)).Inc()
	return id, nil
}

// Info describes a cell
func (s *CellService) Info(id a5.CellID) (*models.CellInfo, error) {
	center, err := a5.CellToLonLat(id)
	if err != nil {
		return nil, err
	}
	res := a5.GetResolution(id)
	info := &models.CellInfo{
		CellID:     id.String(),
		Resolution: res,
		Center:     models.LonLat{Lon: center.Lon, Lat: center.Lat},
		AreaM2:     a5.CellArea(res),
	}
	if res > 0 {
		parent, err := a5.CellToParent(id)
		if err != nil {
			return nil, err
		}
		info.Parent = parent.String()
	}
	return info, nil
}

// Boundary returns the cell outline, served from the cache when possible.
// The returned slice is shared and must not be modified.
func (s *CellService) Boundary(id a5.CellID, opts a5.BoundaryOptions) ([]spatial.LonLat, error) {
	key := fmt.Sprintf("%x/%d/%t", uint64(id), opts.Segments, opts.Closed)
	if ring, ok := s.boundaries.Get(key); ok {
		metrics.BoundaryCacheHitsTotal.Inc()
		return ring, nil
	}
	metrics.BoundaryCacheMissesTotal.Inc()

	ring, err := a5.CellToBoundary(id, &opts)
	if err != nil {
		return nil, err
	}
	s.boundaries.Set(key, ring, int64(len(ring)*lonLatCost))
	return ring, nil
}

// Boundaries computes the outlines of many cells in parallel. Results are
// in the order of ids.
func (s *CellService) Boundaries(ctx context.Context, ids []a5.CellID, opts a5.BoundaryOptions) ([][]spatial.LonLat, error) {
	out := make([][]spatial.LonLat, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ring, err := s.Boundary(id, opts)
			if err != nil {
				return err
			}
			out[i] = ring
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Parent returns the ancestor at resolution, or the direct parent when
// resolution is nil
func (s *CellService) Parent(id a5.CellID, resolution *int) (a5.CellID, error) {
	if resolution == nil {
		return a5.CellToParent(id)
	}
	return a5.CellToParentAt(id, *resolution)
}

// Children returns the descendants at resolution, or the direct children
// when resolution is nil
func (s *CellService) Children(id a5.CellID, resolution *int) ([]a5.CellID, error) {
	target := a5.GetResolution(id) + 1
	if resolution != nil {
		target = *resolution
	}
	if target >= a5.GetResolution(id) && target <= a5.MaxResolution {
		if err := s.checkLimit(a5.NumChildren(a5.GetResolution(id), target)); err != nil {
			return nil, err
		}
	}
	children, err := a5.CellToChildrenAt(id, target)
	if err != nil {
		return nil, err
	}
	metrics.CellsExpandedTotal.Add(float64(len(children)))
	return children, nil
}

// Compact merges complete sibling groups
func (s *CellService) Compact(ids []a5.CellID) ([]a5.CellID, error) {
	return a5.Compact(ids)
}

// Uncompact expands ids to resolution within the configured limit
func (s *CellService) Uncompact(ids []a5.CellID, resolution int) ([]a5.CellID, error) {
	var total uint64
	for _, id := range ids {
		total += a5.NumChildren(a5.GetResolution(id), resolution)
	}
	if err := s.checkLimit(total); err != nil {
		return nil, err
	}
	cells, err := a5.Uncompact(ids, resolution)
	if err != nil {
		return nil, err
	}
	metrics.CellsExpandedTotal.Add(float64(len(cells)))
	s.log.Debug("uncompacted cells", zap.Int("input", len(ids)), zap.Int("output", len(cells)), zap.Int("resolution", resolution))
	return cells, nil
}

func (s *CellService) checkLimit(n uint64) error {
	if n > uint64(s.maxUncompact) {
		return errors.Wrapf(ErrLimitExceeded, "%d cells requested, limit is %d", n, s.maxUncompact)
	}
	return nil
}

// Res0 returns the twelve face cells
func (s *CellService) Res0() []a5.CellID {
	return a5.Res0Cells()
}

// Resolution describes a grid level
func (s *CellService) Resolution(resolution int) (*models.ResolutionInfo, error) {
	if resolution < 0 || resolution > a5.MaxResolution {
		return nil, errors.Wrapf(a5.ErrInvalidInput, "resolution %d outside [0, %d]", resolution, a5.MaxResolution)
	}
	return &models.ResolutionInfo{
		Resolution: resolution,
		NumCells:   a5.NumCells(resolution),
		CellAreaM2: a5.CellArea(resolution),
	}, nil
}
