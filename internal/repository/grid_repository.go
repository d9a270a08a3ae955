package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/jengzang/a5grid/internal/database"
	"github.com/jengzang/a5grid/internal/models"
	"github.com/jengzang/a5grid/pkg/a5"
)

// maxGridCells caps a single listing
const maxGridCells = 10000

// cellKey is the stored form of an id: zero padded so that text order is
// numeric order
func cellKey(id a5.CellID) string {
	return fmt.Sprintf("%016x", uint64(id))
}

// GridRepository handles database operations for cell counts
type GridRepository struct {
	db *sql.DB
}

// NewGridRepository creates a new grid repository
func NewGridRepository(db *sql.DB) *GridRepository {
	return &GridRepository{db: db}
}

// AddCounts adds a batch of counts in one transaction
func (r *GridRepository) AddCounts(ctx context.Context, counts []models.CellCount) error {
	query := `INSERT INTO cell_counts (cell_id, resolution, point_count, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (cell_id) DO UPDATE SET
			point_count = point_count + excluded.point_count,
			first_seen = CASE
				WHEN first_seen IS NULL OR excluded.first_seen < first_seen THEN COALESCE(excluded.first_seen, first_seen)
				ELSE first_seen END,
			last_seen = CASE
				WHEN last_seen IS NULL OR excluded.last_seen > last_seen THEN COALESCE(excluded.last_seen, last_seen)
				ELSE last_seen END,
			updated_at = CURRENT_TIMESTAMP`

	return database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return errors.Wrap(err, "failed to prepare count upsert")
		}
		defer stmt.Close()

		for _, c := range counts {
			id, err := a5.FromHex(c.CellID)
			if err != nil {
				return err
			}
			_, err = stmt.ExecContext(ctx, cellKey(id), c.Resolution, c.Count, nullTime(c.FirstSeen), nullTime(c.LastSeen))
			if err != nil {
				return errors.Wrapf(err, "failed to add count for %s", c.CellID)
			}
		}
		return nil
	})
}

func nullTime(ts int64) sql.NullInt64 {
	return sql.NullInt64{Int64: ts, Valid: ts != 0}
}

// GetGridCells retrieves stored counts with filtering, hottest first
func (r *GridRepository) GetGridCells(ctx context.Context, filter models.GridFilter) ([]models.GridCell, error) {
	query := `SELECT cell_id, resolution, point_count, first_seen, last_seen, updated_at
		FROM cell_counts`

	var conditions []string
	var args []interface{}
	if filter.Resolution >= 0 {
		conditions = append(conditions, "resolution = ?")
		args = append(args, filter.Resolution)
	}
	if filter.MinCount > 0 {
		conditions = append(conditions, "point_count >= ?")
		args = append(args, filter.MinCount)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 || limit > maxGridCells {
		limit = maxGridCells
	}
	query += " ORDER BY point_count DESC, cell_id LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query grid cells")
	}
	defer rows.Close()

	cells := []models.GridCell{}
	for rows.Next() {
		c, err := scanGridCell(rows)
		if err != nil {
			return nil, err
		}
		cells = append(cells, *c)
	}
	return cells, rows.Err()
}

// GetGridCell retrieves the stored count of a cell, nil when absent
func (r *GridRepository) GetGridCell(ctx context.Context, id a5.CellID) (*models.GridCell, error) {
	query := `SELECT cell_id, resolution, point_count, first_seen, last_seen, updated_at
		FROM cell_counts WHERE cell_id = ?`

	c, err := scanGridCell(r.db.QueryRowContext(ctx, query, cellKey(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// SumRange totals the counts of cells at resolution whose ids lie in
// [lo, hi]
func (r *GridRepository) SumRange(ctx context.Context, resolution int, lo, hi a5.CellID) (int64, int, error) {
	query := `SELECT COALESCE(SUM(point_count), 0), COUNT(*)
		FROM cell_counts WHERE resolution = ? AND cell_id BETWEEN ? AND ?`

	var total int64
	var n int
	err := r.db.QueryRowContext(ctx, query, resolution, cellKey(lo), cellKey(hi)).Scan(&total, &n)
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to sum cell range")
	}
	return total, n, nil
}

// CountsAt returns every stored count at a resolution
func (r *GridRepository) CountsAt(ctx context.Context, resolution int) ([]float64, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT point_count FROM cell_counts WHERE resolution = ?", resolution)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query counts")
	}
	defer rows.Close()

	var counts []float64
	for rows.Next() {
		var n int64
		if err := rows.Scan(&n); err != nil {
			return nil, errors.Wrap(err, "failed to scan count")
		}
		counts = append(counts, float64(n))
	}
	return counts, rows.Err()
}

// DeleteResolution removes every stored count at a resolution
func (r *GridRepository) DeleteResolution(ctx context.Context, resolution int) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cell_counts WHERE resolution = ?", resolution)
	if err != nil {
		return 0, errors.Wrap(err, "failed to clear grid cells")
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGridCell(row rowScanner) (*models.GridCell, error) {
	var c models.GridCell
	var key string
	var first, last sql.NullInt64
	if err := row.Scan(&key, &c.Resolution, &c.PointCount, &first, &last, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to scan grid cell")
	}
	id, err := a5.FromHex(key)
	if err != nil {
		return nil, err
	}
	c.CellID = a5.ToHex(id)
	c.FirstSeen = first.Int64
	c.LastSeen = last.Int64
	return &c, nil
}
