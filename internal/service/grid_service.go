package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/jengzang/a5grid/internal/metrics"
	"github.com/jengzang/a5grid/internal/models"
	"github.com/jengzang/a5grid/internal/repository"
	"github.com/jengzang/a5grid/internal/spatial"
	"github.com/jengzang/a5grid/internal/stats"
	"github.com/jengzang/a5grid/pkg/a5"
)

// GridService aggregates points into per-cell counts
type GridService struct {
	repo              *repository.GridRepository
	cells             *CellService
	defaultResolution int
	log               *zap.Logger
}

// NewGridService creates a new grid service
func NewGridService(repo *repository.GridRepository, cells *CellService, defaultResolution int, log *zap.Logger) *GridService {
	return &GridService{
		repo:              repo,
		cells:             cells,
		defaultResolution: defaultResolution,
		log:               log.With(zap.String("component", "grid_service")),
	}
}

// Ingest encodes a batch of points and adds them to the stored counts. It
// returns the number of distinct cells touched.
func (s *GridService) Ingest(ctx context.Context, req models.PointsRequest) (int, error) {
	res := s.defaultResolution
	if req.Resolution != nil {
		res = *req.Resolution
	}

	byCell := make(map[a5.CellID]*models.CellCount)
	var order []a5.CellID
	for i, p := range req.Points {
		id, err := s.cells.Encode(spatial.LonLat{Lon: p.Lon, Lat: p.Lat}, res)
		if err != nil {
			return 0, errors.Wrapf(err, "point %d", i)
		}
		c, ok := byCell[id]
		if !ok {
			c = &models.CellCount{CellID: id.String(), Resolution: res}
			byCell[id] = c
			order = append(order, id)
		}
		c.Count++
		if p.Time != 0 {
			if c.FirstSeen == 0 || p.Time < c.FirstSeen {
				c.FirstSeen = p.Time
			}
			if p.Time > c.LastSeen {
				c.LastSeen = p.Time
			}
		}
	}

	counts := make([]models.CellCount, 0, len(order))
	for _, id := range order {
		counts = append(counts, *byCell[id])
	}
	if err := s.repo.AddCounts(ctx, counts); err != nil {
		return 0, err
	}
	metrics.PointsIngestedTotal.Add(float64(len(req.Points)))
	s.log.Info("ingested points", zap.Int("points", len(req.Points)), zap.Int("cells", len(counts)), zap.Int("resolution", res))
	return len(counts), nil
}

// GetGridCells lists stored counts with their cell centres
func (s *GridService) GetGridCells(ctx context.Context, filter models.GridFilter) ([]models.GridCell, error) {
	if filter.Resolution < 0 || filter.Resolution > a5.MaxResolution {
		return nil, errors.Wrapf(a5.ErrInvalidInput, "resolution %d outside [0, %d]", filter.Resolution, a5.MaxResolution)
	}
	cells, err := s.repo.GetGridCells(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range cells {
		id, err := a5.FromHex(cells[i].CellID)
		if err != nil {
			return nil, err
		}
		center, err := a5.CellToLonLat(id)
		if err != nil {
			return nil, err
		}
		cells[i].CenterLon, cells[i].CenterLat = center.Lon, center.Lat
	}
	return cells, nil
}

// GetGridCell returns the stored count of one cell
func (s *GridService) GetGridCell(ctx context.Context, id a5.CellID) (*models.GridCell, error) {
	cell, err := s.repo.GetGridCell(ctx, id)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		return nil, errors.Wrapf(ErrNotFound, "no count stored for %s", id)
	}
	center, err := a5.CellToLonLat(id)
	if err != nil {
		return nil, err
	}
	cell.CenterLon, cell.CenterLat = center.Lon, center.Lat
	return cell, nil
}

// Rollup sums the counts stored at sourceResolution beneath id
func (s *GridService) Rollup(ctx context.Context, id a5.CellID, sourceResolution int) (*models.Rollup, error) {
	res := id.Resolution()
	if sourceResolution < res {
		return nil, errors.Wrapf(a5.ErrResolution, "source resolution %d coarser than %d", sourceResolution, res)
	}
	if sourceResolution > a5.MaxResolution {
		return nil, errors.Wrapf(a5.ErrInvalidInput, "resolution %d above %d", sourceResolution, a5.MaxResolution)
	}

	lo, hi := id, id
	if sourceResolution > res {
		var err error
		if lo, hi, err = a5.DescendantRange(id); err != nil {
			return nil, err
		}
	}
	total, n, err := s.repo.SumRange(ctx, sourceResolution, lo, hi)
	if err != nil {
		return nil, err
	}
	return &models.Rollup{
		CellID:           id.String(),
		Resolution:       res,
		SourceResolution: sourceResolution,
		PointCount:       total,
		CellCount:        n,
	}, nil
}

// Summary describes the distribution of the counts stored at a resolution
func (s *GridService) Summary(ctx context.Context, resolution int) (*stats.Summary, error) {
	counts, err := s.repo.CountsAt(ctx, resolution)
	if err != nil {
		return nil, err
	}
	summary := stats.Summarize(counts)
	return &summary, nil
}

// Reset removes every stored count at a resolution
func (s *GridService) Reset(ctx context.Context, resolution int) (int64, error) {
	n, err := s.repo.DeleteResolution(ctx, resolution)
	if err != nil {
		return 0, err
	}
	s.log.Info("cleared grid cells", zap.Int("resolution", resolution), zap.Int64("rows", n))
	return n, nil
}
