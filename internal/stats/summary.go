// Package stats summarises the distribution of stored cell counts.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes how points spread over cells
type Summary struct {
	Cells  int     `json:"cells"`
	Total  float64 `json:"total"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	// Evenness is the Shannon entropy of the counts divided by its maximum,
	// 1 when every cell holds the same count
	Evenness float64 `json:"evenness"`
	// Gini is 0 for an even spread and approaches 1 when one cell holds
	// everything
	Gini float64 `json:"gini"`
}

// Summarize computes the summary of counts. counts is not modified.
func Summarize(counts []float64) Summary {
	n := len(counts)
	if n == 0 {
		return Summary{}
	}
	sorted := make([]float64, n)
	copy(sorted, counts)
	sort.Float64s(sorted)

	s := Summary{
		Cells:  n,
		Total:  floats.Sum(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    sorted[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    sorted[n-1],
	}
	if n > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	s.Evenness = evenness(sorted, s.Total)
	s.Gini = gini(sorted, s.Total)
	return s
}

func evenness(values []float64, total float64) float64 {
	if len(values) < 2 || total <= 0 {
		return 1
	}
	p := make([]float64, len(values))
	for i, v := range values {
		p[i] = v / total
	}
	return stat.Entropy(p) / math.Log(float64(len(values)))
}

// gini expects values sorted ascending
func gini(sorted []float64, total float64) float64 {
	n := float64(len(sorted))
	if n < 2 || total <= 0 {
		return 0
	}
	var weighted float64
	for i, v := range sorted {
		weighted += float64(i+1) * v
	}
	return (2*weighted)/(n*total) - (n+1)/n
}
