// Package export renders cells as GeoJSON.
package export

import (
	"context"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/jengzang/a5grid/internal/spatial"
	"github.com/jengzang/a5grid/pkg/a5"
)

// BoundarySource computes outlines for a batch of cells
type BoundarySource interface {
	Boundaries(ctx context.Context, ids []a5.CellID, opts a5.BoundaryOptions) ([][]spatial.LonLat, error)
}

// Polygon converts a ring to a closed GeoJSON polygon geometry
func Polygon(ring []spatial.LonLat) (*geom.Polygon, error) {
	if len(ring) < 3 {
		return nil, errors.Wrapf(a5.ErrDegenerateGeometry, "ring has %d vertices", len(ring))
	}
	coords := make([]geom.Coord, 0, len(ring)+1)
	for _, p := range ring {
		coords = append(coords, geom.Coord{p.Lon, p.Lat})
	}
	if ring[0] != ring[len(ring)-1] {
		coords = append(coords, coords[0])
	}
	return geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{coords})
}

// CellFeature wraps a cell outline in a feature carrying the cell id
func CellFeature(id a5.CellID, ring []spatial.LonLat) (*geojson.Feature, error) {
	poly, err := Polygon(ring)
	if err != nil {
		return nil, errors.Wrapf(err, "cell %s", id)
	}
	return &geojson.Feature{
		ID:       id.String(),
		Geometry: poly,
		Properties: map[string]interface{}{
			"cellIdHex":  id.String(),
			"resolution": id.Resolution(),
		},
	}, nil
}

// Cells builds a feature collection with one polygon per cell, in the
// order of ids
func Cells(ctx context.Context, src BoundarySource, ids []a5.CellID, opts a5.BoundaryOptions) (*geojson.FeatureCollection, error) {
	rings, err := src.Boundaries(ctx, ids, opts)
	if err != nil {
		return nil, err
	}
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(ids))}
	for i, id := range ids {
		f, err := CellFeature(id, rings[i])
		if err != nil {
			return nil, err
		}
		fc.Features = append(fc.Features, f)
	}
	return fc, nil
}

// Wireframe lists every cell at resolution, or the given cells when any are
// passed, as a feature collection
func Wireframe(ctx context.Context, src BoundarySource, expand func([]a5.CellID, int) ([]a5.CellID, error), cells []a5.CellID, resolution int) (*geojson.FeatureCollection, error) {
	if len(cells) == 0 {
		cells = a5.Res0Cells()
	}
	ids, err := expand(cells, resolution)
	if err != nil {
		return nil, err
	}
	return Cells(ctx, src, ids, a5.DefaultBoundaryOptions())
}
