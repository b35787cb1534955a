// Package gesture defines the normalized hand signal that drives the
// particle field, and the producers that publish it.
package gesture

import "math"

// Signal is the normalized hand state consumed once per frame.
type Signal struct {
	Detected      bool
	IsOpen        bool
	PinchDistance float32 // 0 (pinched) to 1 (fully open)
	X, Y          float32 // world units, roughly [-5, 5], y up
}

// Neutral returns the signal emitted while no hand is visible.
func Neutral() Signal {
	return Signal{PinchDistance: 0.5}
}

// Landmark is a tracked hand point in normalized image space
// (x, y in [0, 1], y down; z relative depth).
type Landmark struct {
	X, Y, Z float64
}

// Range maps raw landmark measurements onto the signal.
type Range struct {
	MinPinch      float64 `yaml:"min_pinch"`      // raw thumb-index distance mapped to 0
	MaxPinch      float64 `yaml:"max_pinch"`      // raw thumb-index distance mapped to 1
	OpenThreshold float32 `yaml:"open_threshold"` // IsOpen when pinch exceeds this
	Extent        float32 `yaml:"extent"`         // world span of the image width
}

// DefaultRange is the empirical mapping used by hand trackers.
var DefaultRange = Range{
	MinPinch:      0.05,
	MaxPinch:      0.30,
	OpenThreshold: 0.4,
	Extent:        10,
}

// Normalize rescales a raw pinch distance into [0, 1].
func (r Range) Normalize(raw float64) float32 {
	span := r.MaxPinch - r.MinPinch
	if span <= 0 || math.IsNaN(raw) {
		return Neutral().PinchDistance
	}
	return float32(clamp01((raw - r.MinPinch) / span))
}

// IsOpen applies the open-hand threshold to a normalized pinch.
func (r Range) IsOpen(pinch float32) bool {
	return pinch > r.OpenThreshold
}

// FromLandmarks builds a detected signal from the thumb tip, index tip and
// wrist landmarks. Image y is inverted so that up is positive.
func (r Range) FromLandmarks(thumb, index, wrist Landmark) Signal {
	dx := thumb.X - index.X
	dy := thumb.Y - index.Y
	dz := thumb.Z - index.Z
	pinch := r.Normalize(math.Sqrt(dx*dx + dy*dy + dz*dz))

	return Signal{
		Detected:      true,
		IsOpen:        r.IsOpen(pinch),
		PinchDistance: pinch,
		X:             float32(wrist.X-0.5) * r.Extent,
		Y:             -float32(wrist.Y-0.5) * r.Extent,
	}
}

// Sanitize clamps a signal from an untrusted producer. Undetected signals
// keep their pinch (spread still applies) but lose position and are never open.
// A non-finite position yields Neutral, and finite positions are clamped to
// half the Extent on each axis.
func (r Range) Sanitize(s Signal) Signal {
	if !finite(s.X) || !finite(s.Y) {
		return Neutral()
	}
	if !finite(s.PinchDistance) {
		s.PinchDistance = Neutral().PinchDistance
	}
	s.PinchDistance = float32(clamp01(float64(s.PinchDistance)))
	s.IsOpen = s.Detected && r.IsOpen(s.PinchDistance)
	if !s.Detected {
		s.X, s.Y = 0, 0
		return s
	}
	if half := r.Extent / 2; half > 0 {
		s.X = clampAbs(s.X, half)
		s.Y = clampAbs(s.Y, half)
	}
	return s
}

// Normalize rescales a raw pinch distance using DefaultRange.
func Normalize(raw float64) float32 {
	return DefaultRange.Normalize(raw)
}

// FromLandmarks builds a signal using DefaultRange.
func FromLandmarks(thumb, index, wrist Landmark) Signal {
	return DefaultRange.FromLandmarks(thumb, index, wrist)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clampAbs(v, limit float32) float32 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
