package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/jengzang/a5grid/internal/models"
	"github.com/jengzang/a5grid/internal/repository"
)

// CoverageService stores named cell sets in compacted form
type CoverageService struct {
	repo  *repository.CoverageRepository
	cells *CellService
	log   *zap.Logger
}

// NewCoverageService creates a new coverage service
func NewCoverageService(repo *repository.CoverageRepository, cells *CellService, log *zap.Logger) *CoverageService {
	return &CoverageService{repo: repo, cells: cells, log: log.With(zap.String("component", "coverage_service"))}
}

// Save compacts the request cells and stores them under the name
func (s *CoverageService) Save(ctx context.Context, req models.CoverageRequest) (*models.Coverage, error) {
	ids, err := ParseCells(req.Cells)
	if err != nil {
		return nil, err
	}
	compacted, err := s.cells.Compact(ids)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, req.Name, req.Description, compacted); err != nil {
		return nil, err
	}
	s.log.Info("saved coverage", zap.String("name", req.Name), zap.Int("input", len(ids)), zap.Int("stored", len(compacted)))
	return s.repo.Get(ctx, req.Name)
}

// Get loads a coverage, uncompacted to resolution when one is given
func (s *CoverageService) Get(ctx context.Context, name string, resolution *int) (*models.Coverage, error) {
	c, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.Wrapf(ErrNotFound, "coverage %s", name)
	}
	if resolution == nil {
		return c, nil
	}

	ids, err := ParseCells(c.Cells)
	if err != nil {
		return nil, err
	}
	expanded, err := s.cells.Uncompact(ids, *resolution)
	if err != nil {
		return nil, err
	}
	c.Cells = make([]string, len(expanded))
	for i, id := range expanded {
		c.Cells[i] = id.String()
	}
	return c, nil
}

// List returns the stored coverages without cells
func (s *CoverageService) List(ctx context.Context) ([]models.Coverage, error) {
	return s.repo.List(ctx)
}

// Delete removes a coverage
func (s *CoverageService) Delete(ctx context.Context, name string) error {
	ok, err := s.repo.Delete(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrNotFound, "coverage %s", name)
	}
	return nil
}
