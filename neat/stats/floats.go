// Package stats computes per-generation descriptive statistics over a NEAT
// run and can dump a run's history to an NPZ archive for offline analysis.
// The engine itself never depends on this package; a caller collects
// Snapshots explicitly after each epoch.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Floats is a slice of values with descriptive statistics attached,
// one entry per species in a generation.
type Floats []float64

// Min returns the smallest value, or NaN for an empty slice.
func (x Floats) Min() float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return floats.Min(x)
}

// Max returns the greatest value, or NaN for an empty slice.
func (x Floats) Max() float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return floats.Max(x)
}

// Mean returns the average value, or NaN for an empty slice.
func (x Floats) Mean() float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}

// MeanVariance returns the sample mean and unbiased variance.
func (x Floats) MeanVariance() (mean, variance float64) {
	if len(x) == 0 {
		return math.NaN(), math.NaN()
	}
	return stat.MeanVariance(x, nil)
}
