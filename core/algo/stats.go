// Package algo has the numeric helpers shared by the grading engine.
package algo

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Mean returns the arithmetic mean of values, or 0 when there are none.
func Mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// StdDev returns the population standard deviation of values, or 0 when there are none.
func StdDev(values []float64) float64 {
	sd, err := stats.StandardDeviationPopulation(values)
	if err != nil || math.IsNaN(sd) {
		return 0
	}
	return sd
}

// WindowTrend returns last-first over the trailing window of values.
// It reports false when fewer than window values are available.
func WindowTrend(values []float64, window int) (float64, bool) {
	if window < 2 || len(values) < window {
		return 0, false
	}
	recent := values[len(values)-window:]
	return recent[len(recent)-1] - recent[0], true
}

// PercentChange returns (last-first)/first*100 over the whole series.
// A zero first value yields 0 rather than an infinite change.
func PercentChange(values []float64) float64 {
	if len(values) < 2 || values[0] == 0 {
		return 0
	}
	return (values[len(values)-1] - values[0]) / values[0] * 100
}
