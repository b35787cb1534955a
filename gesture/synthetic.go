package gesture

import (
	"context"
	"math"
	"time"
)

// Producer publishes signals at its own cadence until ctx is done or its
// source runs out.
type Producer interface {
	Run(ctx context.Context, pub Publisher) error
}

// Synthetic is a scripted hand: it opens and closes once per Period while
// circling the origin, and leaves the frame for the last Absent of each
// period. Useful for headless runs and demos without a tracker.
type Synthetic struct {
	Interval time.Duration // time between published signals
	Period   time.Duration // one open/close cycle
	Radius   float32       // radius of the hand's circular path
	Absent   time.Duration // hand missing at the end of each period
	Range    Range
}

// NewSynthetic returns a Synthetic at 30 Hz with a four second cycle.
func NewSynthetic() *Synthetic {
	return &Synthetic{
		Interval: time.Second / 30,
		Period:   4 * time.Second,
		Radius:   3,
		Range:    DefaultRange,
	}
}

// At returns the signal the scripted hand shows at offset t.
func (s *Synthetic) At(t time.Duration) Signal {
	if s.Period <= 0 {
		return Neutral()
	}
	phase := t % s.Period
	if s.Absent > 0 && phase >= s.Period-s.Absent {
		return Neutral()
	}

	angle := 2 * math.Pi * float64(phase) / float64(s.Period)
	// Pinch follows a raised cosine: closed at the start of each period
	pinch := float32(0.5 - 0.5*math.Cos(angle))

	return Signal{
		Detected:      true,
		IsOpen:        s.Range.IsOpen(pinch),
		PinchDistance: pinch,
		X:             s.Radius * float32(math.Cos(angle)),
		Y:             s.Radius * float32(math.Sin(angle)),
	}
}

// Run publishes At(elapsed) every Interval until ctx is cancelled.
func (s *Synthetic) Run(ctx context.Context, pub Publisher) error {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Second / 30
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	pub.Publish(s.At(0))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			pub.Publish(s.At(now.Sub(start)))
		}
	}
}
