package export

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/jengzang/a5grid/internal/spatial"
	"github.com/jengzang/a5grid/pkg/a5"
)

// engineSource computes boundaries directly
type engineSource struct{}

func (engineSource) Boundaries(_ context.Context, ids []a5.CellID, opts a5.BoundaryOptions) ([][]spatial.LonLat, error) {
	out := make([][]spatial.LonLat, len(ids))
	for i, id := range ids {
		ring, err := a5.CellToBoundary(id, &opts)
		if err != nil {
			return nil, err
		}
		out[i] = ring
	}
	return out, nil
}

func TestPolygonCloses(t *testing.T) {
	ring := []spatial.LonLat{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 0, Lat: 1}}
	poly, err := Polygon(ring)
	require.NoError(t, err)
	coords := poly.Coords()[0]
	require.Len(t, coords, 4)
	assert.Equal(t, coords[0], coords[3])

	closed, err := Polygon(append(ring, ring[0]))
	require.NoError(t, err)
	assert.Len(t, closed.Coords()[0], 4)

	_, err = Polygon(ring[:2])
	assert.True(t, errors.Is(err, a5.ErrDegenerateGeometry))
}

func TestCellsFeatureCollection(t *testing.T) {
	faces := a5.Res0Cells()[:3]
	fc, err := Cells(context.Background(), engineSource{}, faces, a5.BoundaryOptions{Closed: true, Segments: 1})
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)
	for i, f := range fc.Features {
		assert.Equal(t, faces[i].String(), f.Properties["cellIdHex"])
		assert.Equal(t, 0, f.Properties["resolution"])
		poly, ok := f.Geometry.(*geom.Polygon)
		require.True(t, ok)
		assert.Len(t, poly.Coords()[0], 6)
	}

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "FeatureCollection", decoded.Type)
	assert.Equal(t, "Polygon", decoded.Features[0].Geometry.Type)
	assert.Equal(t, faces[0].String(), decoded.Features[0].Properties["cellIdHex"])
}

func TestWireframe(t *testing.T) {
	fc, err := Wireframe(context.Background(), engineSource{}, a5.Uncompact, nil, 1)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 60)

	face := a5.Res0Cells()[5]
	sub, err := Wireframe(context.Background(), engineSource{}, a5.Uncompact, []a5.CellID{face}, 2)
	require.NoError(t, err)
	assert.Len(t, sub.Features, 20)
}
