package telemetry

// Collector accumulates per-frame samples within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick    int32
	windowStartElapsed float64
	startPublished     uint64

	// Per-frame accumulators for current window
	frames        int
	detected      int
	pinchSum      float64
	spreadSum     float64
	regenerations int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 5
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordFrame records one rendered frame.
func (c *Collector) RecordFrame(detected bool, pinch, spread float32, regenerations int) {
	c.frames++
	if detected {
		c.detected++
	}
	c.pinchSum += float64(pinch)
	c.spreadSum += float64(spread)
	c.regenerations += regenerations
}

// ShouldFlush returns true if the window has run its full duration.
func (c *Collector) ShouldFlush(elapsed float64) bool {
	return elapsed-c.windowStartElapsed >= c.windowDurationSec
}

// FieldSample is the cloud state sampled when a window closes.
type FieldSample struct {
	Shape     string
	Particles int
	Progress  float32
	Errors    []float64 // per-particle distance to effective target
}

// Flush produces a WindowStats and resets counters for the next window.
// published is the gesture cell's running publication count.
func (c *Collector) Flush(currentTick int32, elapsed float64, published uint64, field FieldSample) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		ElapsedSec:      elapsed,
		Frames:          c.frames,
		Shape:           field.Shape,
		Particles:       field.Particles,
		Progress:        float64(field.Progress),
		Regenerations:   c.regenerations,
		GestureUpdates:  int(published - c.startPublished),
	}

	if c.frames > 0 {
		n := float64(c.frames)
		stats.DetectedFrac = float64(c.detected) / n
		stats.PinchMean = c.pinchSum / n
		stats.SpreadMean = c.spreadSum / n
	}

	stats.ErrorMean, stats.ErrorP50, stats.ErrorP90, stats.ErrorMax = ComputeErrorStats(field.Errors)

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowStartElapsed = elapsed
	c.startPublished = published
	c.frames = 0
	c.detected = 0
	c.pinchSum = 0
	c.spreadSum = 0
	c.regenerations = 0

	return stats
}
