package systems

import (
	"fmt"
	"math"

	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/shapes"
)

// FieldParams holds the tuning constants of the particle update.
type FieldParams struct {
	Rate       float32 // fraction of the remaining distance covered per tick
	SpreadMin  float32 // spread floor so the cloud never collapses to a point
	SpreadGain float32 // spread at full pinch
	HandGain   float32 // world offset per unit of hand position
}

// DefaultFieldParams returns the stock feel: about 20 ticks to settle,
// spread between 0.2 and 1.5, hand nudges of a tenth of its position.
func DefaultFieldParams() FieldParams {
	return FieldParams{
		Rate:       0.05,
		SpreadMin:  0.2,
		SpreadGain: 1.5,
		HandGain:   0.1,
	}
}

// Field owns the particle buffers of one cloud and advances them once per
// rendered frame. Buffers are flat xyz float32 slices of length 3*N.
//
// The update is deliberately not scaled by frame time: convergence speed
// follows the frame rate.
type Field struct {
	current []float32 // drawn this frame
	target  []float32 // unscaled geometry of lastShape
	back    []float32 // regeneration scratch, swapped with target

	n         int
	lastShape shapes.Shape
	progress  float32
	regens    int

	params FieldParams
	rng    shapes.Rand
	noise  NoiseModel
}

// NewField creates a field of n particles at the origin heading for shape.
// A nil noise model disables jitter.
func NewField(n int, shape shapes.Shape, params FieldParams, rng shapes.Rand, noise NoiseModel) *Field {
	if noise == nil {
		noise = NoNoise{}
	}
	f := &Field{
		lastShape: shape,
		progress:  1,
		params:    params,
		rng:       rng,
		noise:     noise,
	}
	f.alloc(n)
	shapes.GenerateInto(f.target, shape, f.rng)
	return f
}

func (f *Field) alloc(n int) {
	if n < 0 {
		n = 0
	}
	f.n = n
	f.current = make([]float32, n*3)
	f.target = make([]float32, n*3)
	f.back = make([]float32, n*3)
}

// SetShape retargets the field. Targets are regenerated only when shape
// differs from the last requested one; it reports whether that happened.
func (f *Field) SetShape(shape shapes.Shape) bool {
	if shape == f.lastShape {
		return false
	}
	// Fill the back buffer, then swap so Tick never sees a partial target
	shapes.GenerateInto(f.back, shape, f.rng)
	f.target, f.back = f.back, f.target

	f.lastShape = shape
	f.progress = 0
	f.regens++
	return true
}

// SetParticleCount reallocates every buffer for n particles. Current
// positions restart at the origin. No-op if n is unchanged.
func (f *Field) SetParticleCount(n int) bool {
	if n < 0 {
		n = 0
	}
	if n == f.n {
		return false
	}
	f.alloc(n)
	shapes.GenerateInto(f.target, f.lastShape, f.rng)
	f.progress = 0
	f.regens++
	return true
}

// SetNoise replaces the jitter model. nil disables jitter.
func (f *Field) SetNoise(noise NoiseModel) {
	if noise == nil {
		noise = NoNoise{}
	}
	f.noise = noise
}

// SetParams replaces the tuning constants.
func (f *Field) SetParams(p FieldParams) {
	f.params = p
}

// Spread returns the gain applied to target coordinates for g.
func (f *Field) Spread(g gesture.Signal) float32 {
	spread := g.PinchDistance * f.params.SpreadGain
	if spread < f.params.SpreadMin {
		spread = f.params.SpreadMin
	}
	return spread
}

// HandOffset returns the x/y nudge applied to the whole cloud. It is zero
// whenever no hand is detected, whatever stale position g carries.
func (f *Field) HandOffset(g gesture.Signal) (float32, float32) {
	if !g.Detected {
		return 0, 0
	}
	return g.X * f.params.HandGain, g.Y * f.params.HandGain
}

// EffectiveTarget returns where particle i is heading under g.
func (f *Field) EffectiveTarget(i int, g gesture.Signal) (x, y, z float32) {
	spread := f.Spread(g)
	hx, hy := f.HandOffset(g)
	i3 := i * 3
	return f.target[i3]*spread + hx, f.target[i3+1]*spread + hy, f.target[i3+2] * spread
}

// Tick advances every particle one step toward its effective target.
// Call exactly once per rendered frame with the latest gesture and the
// elapsed wall time in seconds.
func (f *Field) Tick(g gesture.Signal, elapsed float64) {
	if len(f.current) != f.n*3 || len(f.target) != f.n*3 {
		panic(fmt.Sprintf("systems: field buffers out of sync (n=%d current=%d target=%d)",
			f.n, len(f.current), len(f.target)))
	}

	rate := f.params.Rate
	spread := f.Spread(g)
	hx, hy := f.HandOffset(g)
	cur := f.current
	tgt := f.target

	for i := 0; i < f.n; i++ {
		i3 := i * 3
		noise := f.noise.Sample(i, elapsed)

		cur[i3] += (tgt[i3]*spread+hx-cur[i3])*rate + noise
		cur[i3+1] += (tgt[i3+1]*spread+hy-cur[i3+1])*rate + noise
		cur[i3+2] += (tgt[i3+2]*spread-cur[i3+2])*rate + noise
	}

	f.progress += (1 - f.progress) * rate
}

// ConvergenceError writes each particle's distance from its effective
// target into dst, growing it if needed, and returns it.
func (f *Field) ConvergenceError(g gesture.Signal, dst []float64) []float64 {
	if cap(dst) < f.n {
		dst = make([]float64, f.n)
	}
	dst = dst[:f.n]
	for i := 0; i < f.n; i++ {
		tx, ty, tz := f.EffectiveTarget(i, g)
		i3 := i * 3
		dx := float64(f.current[i3] - tx)
		dy := float64(f.current[i3+1] - ty)
		dz := float64(f.current[i3+2] - tz)
		dst[i] = math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	return dst
}

// Positions returns the current xyz buffer. Callers must not modify it;
// it changes on every Tick.
func (f *Field) Positions() []float32 {
	return f.current
}

// Targets returns the unscaled target buffer of the active shape.
func (f *Field) Targets() []float32 {
	return f.target
}

// Len returns the particle count.
func (f *Field) Len() int {
	return f.n
}

// Shape returns the last requested shape.
func (f *Field) Shape() shapes.Shape {
	return f.lastShape
}

// Progress is a 0..1 marker of how far the last shape change has eased
// in. It is informational and does not affect positions.
func (f *Field) Progress() float32 {
	return f.progress
}

// Regenerations counts target regenerations since creation.
func (f *Field) Regenerations() int {
	return f.regens
}
