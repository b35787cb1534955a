package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// NoiseModel produces the per-particle jitter added on every tick.
// One value is applied to all three axes of particle i.
type NoiseModel interface {
	Sample(i int, elapsed float64) float32
}

// SineNoise is a phase-shifted sine per particle: amp * sin(elapsed*freq + i).
type SineNoise struct {
	Amp  float32
	Freq float64
}

// Sample implements NoiseModel.
func (n SineNoise) Sample(i int, elapsed float64) float32 {
	return n.Amp * float32(math.Sin(elapsed*n.Freq+float64(i)))
}

// NoNoise disables jitter.
type NoNoise struct{}

// Sample implements NoiseModel.
func (NoNoise) Sample(int, float64) float32 { return 0 }

// SimplexNoise draws jitter from 2D simplex noise over (time, particle),
// giving a smoother drift than SineNoise.
type SimplexNoise struct {
	Amp   float32
	Freq  float64
	noise opensimplex.Noise
}

// NewSimplexNoise creates a seeded simplex noise model.
func NewSimplexNoise(amp float32, freq float64, seed int64) *SimplexNoise {
	return &SimplexNoise{
		Amp:   amp,
		Freq:  freq,
		noise: opensimplex.New(seed),
	}
}

// Sample implements NoiseModel.
func (n *SimplexNoise) Sample(i int, elapsed float64) float32 {
	// Eval2 is in [-1, 1]
	return n.Amp * float32(n.noise.Eval2(elapsed*n.Freq, float64(i)*0.5))
}

// NewNoiseModel builds the model named by kind ("sine", "simplex", "none").
// Unknown kinds fall back to sine; config rejects them at load.
func NewNoiseModel(kind string, amp float32, freq float64, seed int64) NoiseModel {
	switch kind {
	case "none":
		return NoNoise{}
	case "simplex":
		return NewSimplexNoise(amp, freq, seed)
	default:
		return SineNoise{Amp: amp, Freq: freq}
	}
}
