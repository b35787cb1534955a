package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	ElapsedSec      float64 `csv:"elapsed"`
	Frames          int     `csv:"frames"`

	// Cloud state at window end
	Shape     string  `csv:"shape"`
	Particles int     `csv:"particles"`
	Progress  float64 `csv:"progress"`

	// Events during window
	Regenerations  int `csv:"regenerations"`
	GestureUpdates int `csv:"gesture_updates"`

	// Gesture over the window
	DetectedFrac float64 `csv:"detected_frac"`
	PinchMean    float64 `csv:"pinch_mean"`
	SpreadMean   float64 `csv:"spread_mean"`

	// Distance from each particle to its effective target (sampled at window end)
	ErrorMean float64 `csv:"error_mean"`
	ErrorP50  float64 `csv:"error_p50"`
	ErrorP90  float64 `csv:"error_p90"`
	ErrorMax  float64 `csv:"error_max"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(s.WindowEndTick)),
		slog.Float64("elapsed", s.ElapsedSec),
		slog.Int("frames", s.Frames),
		slog.String("shape", s.Shape),
		slog.Int("particles", s.Particles),
		slog.Int("regenerations", s.Regenerations),
		slog.Int("gesture_updates", s.GestureUpdates),
		slog.Float64("detected_frac", s.DetectedFrac),
		slog.Float64("spread_mean", s.SpreadMean),
		slog.Float64("error_mean", s.ErrorMean),
		slog.Float64("error_p90", s.ErrorP90),
	)
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeErrorStats calculates mean, median, p90 and max of per-particle
// distances. values is not modified.
func ComputeErrorStats(values []float64) (mean, p50, p90, max float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	max = floats.Max(values)

	// Sort a copy for percentiles
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	return mean, p50, p90, max
}
