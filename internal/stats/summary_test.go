package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarize(t *testing.T) {
	counts := []float64{5, 1, 3, 2, 4}
	s := Summarize(counts)
	assert.Equal(t, 5, s.Cells)
	assert.Equal(t, 15.0, s.Total)
	assert.Equal(t, 3.0, s.Mean)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.InDelta(t, 3.0, s.Median, 1e-12)
	assert.InDelta(t, 1.5811388300841898, s.StdDev, 1e-12)
	assert.Equal(t, []float64{5, 1, 3, 2, 4}, counts)
	assert.Less(t, s.Evenness, 1.0)
	assert.Greater(t, s.Gini, 0.0)
}

func TestSummarizeEvenSpread(t *testing.T) {
	s := Summarize([]float64{7, 7, 7, 7})
	assert.InDelta(t, 1, s.Evenness, 1e-12)
	assert.InDelta(t, 0, s.Gini, 1e-12)
	assert.Zero(t, s.StdDev)
}

func TestSummarizeConcentrated(t *testing.T) {
	s := Summarize([]float64{0, 0, 0, 100})
	assert.InDelta(t, 0, s.Evenness, 1e-12)
	assert.InDelta(t, 0.75, s.Gini, 1e-12)
}

func TestSummarizeSingle(t *testing.T) {
	s := Summarize([]float64{9})
	assert.Equal(t, 9.0, s.Median)
	assert.Equal(t, 1.0, s.Evenness)
	assert.Zero(t, s.Gini)
}
