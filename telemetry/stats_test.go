package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeErrorStats(t *testing.T) {
	// Unsorted on purpose
	values := []float64{0.5, 0.1, 1.0, 0.3, 0.9, 0.2, 0.8, 0.4, 0.7, 0.6}
	mean, p50, p90, max := ComputeErrorStats(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if math.Abs(p50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", p50)
	}
	if math.Abs(p90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", p90)
	}
	if max != 1.0 {
		t.Errorf("max = %v, want 1.0", max)
	}
	if values[0] != 0.5 {
		t.Error("input slice should not be reordered")
	}
}

func TestComputeErrorStatsEmpty(t *testing.T) {
	mean, p50, p90, max := ComputeErrorStats(nil)

	if mean != 0 || p50 != 0 || p90 != 0 || max != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector(1.0)

	if c.ShouldFlush(0.5) {
		t.Error("expected window still open at 0.5s")
	}

	c.RecordFrame(true, 0.8, 1.2, 0)
	c.RecordFrame(false, 0.5, 0.75, 1)
	c.RecordFrame(true, 0.2, 0.3, 0)
	c.RecordFrame(false, 0.5, 0.75, 0)

	if !c.ShouldFlush(1.0) {
		t.Fatal("expected window due at 1.0s")
	}

	stats := c.Flush(60, 1.0, 30, FieldSample{
		Shape:     "SPHERE",
		Particles: 3,
		Progress:  0.5,
		Errors:    []float64{0.1, 0.2, 0.3},
	})

	if stats.Frames != 4 || stats.Regenerations != 1 || stats.GestureUpdates != 30 {
		t.Errorf("unexpected counters %+v", stats)
	}
	if stats.DetectedFrac != 0.5 {
		t.Errorf("detected_frac = %v, want 0.5", stats.DetectedFrac)
	}
	if math.Abs(stats.PinchMean-0.5) > 1e-6 || math.Abs(stats.SpreadMean-0.75) > 1e-6 {
		t.Errorf("unexpected means pinch=%v spread=%v", stats.PinchMean, stats.SpreadMean)
	}
	if math.Abs(stats.ErrorMean-0.2) > 1e-9 || stats.ErrorMax != 0.3 {
		t.Errorf("unexpected error stats mean=%v max=%v", stats.ErrorMean, stats.ErrorMax)
	}
	if stats.Shape != "SPHERE" || stats.Particles != 3 {
		t.Errorf("unexpected field sample %+v", stats)
	}

	// Next window starts fresh and counts publications from the last flush
	if c.ShouldFlush(1.5) {
		t.Error("expected new window to be open")
	}
	next := c.Flush(90, 2.0, 45, FieldSample{})
	if next.Frames != 0 || next.GestureUpdates != 15 || next.WindowStartTick != 60 {
		t.Errorf("unexpected second window %+v", next)
	}
}
