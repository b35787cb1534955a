package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/morph/shapes"
)

// previewStats summarizes a sampled point set.
type previewStats struct {
	Count      int
	Mean       [3]float64
	StdDev     [3]float64
	Min, Max   [3]float64
	RadiusMean float64
	RadiusMax  float64
}

// computeStats gathers per-axis and radial statistics of a flat xyz buffer.
func computeStats(points []float32) previewStats {
	n := len(points) / 3
	s := previewStats{Count: n}
	if n == 0 {
		return s
	}

	axis := make([]float64, n)
	radius := make([]float64, n)
	for a := 0; a < 3; a++ {
		for i := 0; i < n; i++ {
			axis[i] = float64(points[i*3+a])
		}
		mean, variance := stat.MeanVariance(axis, nil)
		s.Mean[a] = mean
		s.StdDev[a] = math.Sqrt(variance)
		s.Min[a] = floats.Min(axis)
		s.Max[a] = floats.Max(axis)
	}

	for i := 0; i < n; i++ {
		x, y, z := float64(points[i*3]), float64(points[i*3+1]), float64(points[i*3+2])
		radius[i] = math.Sqrt(x*x + y*y + z*z)
	}
	s.RadiusMean = stat.Mean(radius, nil)
	s.RadiusMax = floats.Max(radius)
	return s
}

// Lines formats the statistics for display.
func (s previewStats) Lines(shape shapes.Shape) []string {
	bound := shapes.Bounds(shape)
	lines := []string{
		fmt.Sprintf("Points: %d", s.Count),
		fmt.Sprintf("Radius: mean %.3f  max %.3f  (bound %.3f)", s.RadiusMean, s.RadiusMax, bound),
	}
	for a, name := range []string{"x", "y", "z"} {
		lines = append(lines, fmt.Sprintf("%s: [%+.2f, %+.2f]  mean %+.3f  sd %.3f",
			name, s.Min[a], s.Max[a], s.Mean[a], s.StdDev[a]))
	}
	if s.RadiusMax > bound+1e-5 {
		lines = append(lines, "WARNING: points outside bound")
	}
	return lines
}
