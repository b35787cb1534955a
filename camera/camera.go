// Package camera provides an orbiting 3D camera for viewing particle clouds.
package camera

import "math"

// autoRotateStep is the yaw advanced per frame at AutoSpeed 1.0:
// one revolution per minute at 60fps.
const autoRotateStep = 2 * math.Pi / 60 / 60

// maxPitch keeps the camera off the poles so the up vector stays valid.
const maxPitch = 1.5

// Orbit is a camera that circles a fixed target at the origin.
type Orbit struct {
	// Angles in radians. Yaw 0, Pitch 0 looks down -Z from +Z.
	Yaw, Pitch float32

	// Distance from the target
	Distance float32

	// Vertical field of view in degrees
	Fovy float32

	// Distance constraints
	MinDistance, MaxDistance float32

	// AutoSpeed scales the idle auto-rotation
	AutoSpeed float32

	home float32
}

// New creates a camera on the +Z axis at the given distance.
func New(distance, fovy, autoSpeed float32) *Orbit {
	return &Orbit{
		Distance:    distance,
		Fovy:        fovy,
		MinDistance: distance * 0.25,
		MaxDistance: distance * 4,
		AutoSpeed:   autoSpeed,
		home:        distance,
	}
}

// Position returns the camera position in world coordinates.
func (c *Orbit) Position() (x, y, z float32) {
	cp := math.Cos(float64(c.Pitch))
	d := float64(c.Distance)
	x = float32(d * cp * math.Sin(float64(c.Yaw)))
	y = float32(d * math.Sin(float64(c.Pitch)))
	z = float32(d * cp * math.Cos(float64(c.Yaw)))
	return x, y, z
}

// Rotate adds to yaw and pitch. Pitch is clamped short of the poles.
func (c *Orbit) Rotate(dyaw, dpitch float32) {
	c.Yaw = wrap(c.Yaw + dyaw)
	c.Pitch = clamp(c.Pitch+dpitch, -maxPitch, maxPitch)
}

// AutoRotate advances yaw by one idle frame.
func (c *Orbit) AutoRotate() {
	c.Rotate(autoRotateStep*c.AutoSpeed, 0)
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Orbit) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy divides the distance by factor (factor > 1 moves closer).
func (c *Orbit) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Reset returns the camera to its starting position.
func (c *Orbit) Reset() {
	c.Yaw = 0
	c.Pitch = 0
	c.Distance = c.home
}

// wrap keeps an angle in [-pi, pi].
func wrap(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
