package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/jengzang/a5grid/internal/database"
	"github.com/jengzang/a5grid/internal/models"
	"github.com/jengzang/a5grid/pkg/a5"
)

// CoverageRepository stores named cell sets
type CoverageRepository struct {
	db *sql.DB
}

// NewCoverageRepository creates a new coverage repository
func NewCoverageRepository(db *sql.DB) *CoverageRepository {
	return &CoverageRepository{db: db}
}

// Save replaces the coverage called name with cells
func (r *CoverageRepository) Save(ctx context.Context, name, description string, cells []a5.CellID) error {
	return database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO coverages (name, description) VALUES (?, ?)
			ON CONFLICT (name) DO UPDATE SET description = excluded.description, updated_at = CURRENT_TIMESTAMP`,
			name, description)
		if err != nil {
			return errors.Wrapf(err, "failed to save coverage %s", name)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM coverage_cells WHERE coverage_name = ?", name); err != nil {
			return errors.Wrapf(err, "failed to clear cells of coverage %s", name)
		}

		stmt, err := tx.PrepareContext(ctx, "INSERT INTO coverage_cells (coverage_name, cell_id, resolution) VALUES (?, ?, ?)")
		if err != nil {
			return errors.Wrap(err, "failed to prepare coverage insert")
		}
		defer stmt.Close()
		for _, id := range cells {
			if _, err := stmt.ExecContext(ctx, name, cellKey(id), a5.GetResolution(id)); err != nil {
				return errors.Wrapf(err, "failed to store cell %s", id)
			}
		}
		return nil
	})
}

// Get loads a coverage with its cells in ascending order, nil when absent
func (r *CoverageRepository) Get(ctx context.Context, name string) (*models.Coverage, error) {
	var c models.Coverage
	err := r.db.QueryRowContext(ctx,
		"SELECT name, description, created_at, updated_at FROM coverages WHERE name = ?", name).
		Scan(&c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get coverage %s", name)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT cell_id FROM coverage_cells WHERE coverage_name = ? ORDER BY cell_id", name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query cells of coverage %s", name)
	}
	defer rows.Close()

	c.Cells = []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errors.Wrap(err, "failed to scan coverage cell")
		}
		id, err := a5.FromHex(key)
		if err != nil {
			return nil, err
		}
		c.Cells = append(c.Cells, a5.ToHex(id))
	}
	return &c, rows.Err()
}

// List returns every coverage without its cells
func (r *CoverageRepository) List(ctx context.Context) ([]models.Coverage, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name, description, created_at, updated_at FROM coverages ORDER BY name")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list coverages")
	}
	defer rows.Close()

	out := []models.Coverage{}
	for rows.Next() {
		var c models.Coverage
		if err := rows.Scan(&c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan coverage")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a coverage and reports whether it existed
func (r *CoverageRepository) Delete(ctx context.Context, name string) (bool, error) {
	var deleted int64
	err := database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM coverage_cells WHERE coverage_name = ?", name); err != nil {
			return errors.Wrapf(err, "failed to delete cells of coverage %s", name)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM coverages WHERE name = ?", name)
		if err != nil {
			return errors.Wrapf(err, "failed to delete coverage %s", name)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted > 0, err
}
