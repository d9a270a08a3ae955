package a5

import (
	"slices"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/a5grid/internal/spatial"
)

func mustCell(t *testing.T, c Cell) CellID {
	t.Helper()
	id, err := Serialize(c)
	require.NoError(t, err)
	return id
}

func mustChildren(t *testing.T, id CellID, resolution int) []CellID {
	t.Helper()
	cells, err := CellToChildrenAt(id, resolution)
	require.NoError(t, err)
	return cells
}

func TestCompactOriginScenario(t *testing.T) {
	point := spatial.LonLat{Lon: 0, Lat: 0}
	face, err := LonLatToCell(point, 0)
	require.NoError(t, err)
	assert.Contains(t, Res0Cells(), face)

	child, err := LonLatToCell(point, 1)
	require.NoError(t, err)
	parent, err := CellToParent(child)
	require.NoError(t, err)
	assert.Equal(t, face, parent)

	children, err := Uncompact([]CellID{face}, 1)
	require.NoError(t, err)
	require.Len(t, children, 5)
	assert.True(t, slices.IsSorted(children))
	assert.Contains(t, children, child)

	compacted, err := Compact(children)
	require.NoError(t, err)
	assert.Equal(t, []CellID{face}, compacted)
}

func TestCompact(t *testing.T) {
	base := mustCell(t, Cell{Origin: 3, Segment: 1, S: 2, Resolution: 2})
	other := mustCell(t, Cell{Origin: 9, Segment: 0, S: 77, Resolution: 5})
	grandchildren := mustChildren(t, base, 4)
	siblings := mustChildren(t, Res0Cells()[0], 1)

	cases := []struct {
		name  string
		input []CellID
		want  []CellID
	}{
		{"empty", nil, []CellID{}},
		{"single", []CellID{other}, []CellID{other}},
		{"duplicates", []CellID{other, other, other}, []CellID{other}},
		{"two levels", grandchildren, []CellID{base}},
		{"to face", siblings, []CellID{Res0Cells()[0]}},
		{"incomplete group", grandchildren[1:4], grandchildren[1:4]},
		{"covered by ancestor", append([]CellID{base}, grandchildren[3], grandchildren[9]), []CellID{base}},
		{"faces never merge", Res0Cells(), Res0Cells()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			input := slices.Clone(c.input)
			got, err := Compact(input)
			require.NoError(t, err)
			want := slices.Clone(c.want)
			slices.Sort(want)
			assert.Equal(t, want, got)
			assert.Equal(t, c.input, input)
		})
	}
}

func TestCompactMixedResolutions(t *testing.T) {
	base := mustCell(t, Cell{Origin: 3, Segment: 1, S: 2, Resolution: 2})
	// the fourth child is only present as its res-5 descendants
	children := mustChildren(t, base, 3)
	var input []CellID
	input = append(input, children[:3]...)
	input = append(input, mustChildren(t, children[3], 5)...)

	got, err := Compact(input)
	require.NoError(t, err)
	assert.Equal(t, []CellID{base}, got)
}

func TestCompactIdempotentAndRoundTrip(t *testing.T) {
	base := mustCell(t, Cell{Origin: 3, Segment: 1, S: 2, Resolution: 2})
	sets := [][]CellID{
		mustChildren(t, base, 4)[5:],
		append(mustChildren(t, base, 3), mustCell(t, Cell{Origin: 9, Segment: 0, S: 77, Resolution: 5})),
		append(mustChildren(t, Res0Cells()[4], 1)[:4], mustChildren(t, Res0Cells()[7], 2)...),
		{mustCell(t, Cell{Origin: 11, Segment: 3, S: 13, Resolution: 3}), Res0Cells()[2]},
	}
	for i, s := range sets {
		once, err := Compact(s)
		require.NoError(t, err)
		twice, err := Compact(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "set %d", i)

		finest := 0
		for _, id := range s {
			finest = max(finest, GetResolution(id))
		}
		for _, r := range []int{finest, finest + 1} {
			expanded, err := Uncompact(s, r)
			require.NoError(t, err)
			back, err := Compact(expanded)
			require.NoError(t, err)
			assert.Equal(t, once, back, "set %d resolution %d", i, r)
		}
	}
}

func TestCompactRejectsInvalidCells(t *testing.T) {
	_, err := Compact([]CellID{Res0Cells()[0], 0})
	assert.True(t, errors.Is(err, ErrInvalidCellID))
}

func TestUncompact(t *testing.T) {
	base := mustCell(t, Cell{Origin: 3, Segment: 1, S: 2, Resolution: 2})
	other := mustCell(t, Cell{Origin: 9, Segment: 0, S: 45, Resolution: 4})

	got, err := Uncompact([]CellID{other, base}, 4)
	require.NoError(t, err)
	assert.Len(t, got, 17)
	assert.True(t, slices.IsSorted(got))
	assert.Contains(t, got, other)

	// overlapping input is deduplicated
	withChild, err := Uncompact([]CellID{base, mustChildren(t, base, 3)[0]}, 4)
	require.NoError(t, err)
	assert.Len(t, withChild, 16)

	same, err := Uncompact([]CellID{base}, 2)
	require.NoError(t, err)
	assert.Equal(t, []CellID{base}, same)

	empty, err := Uncompact(nil, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUncompactErrors(t *testing.T) {
	fine := mustCell(t, Cell{Origin: 9, Segment: 0, S: 77, Resolution: 5})
	_, err := Uncompact([]CellID{fine}, 4)
	assert.True(t, errors.Is(err, ErrResolution))

	_, err = Uncompact([]CellID{fine}, MaxResolution+1)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Uncompact([]CellID{0x1200000000000001}, 3)
	assert.True(t, errors.Is(err, ErrInvalidCellID))

	_, err = Uncompact(Res0Cells(), 15)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
