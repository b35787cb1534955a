package shapes

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// Geometry constants. These define the look of each shape.
const (
	bottleHalfHeight = 2.0
	bottleShoulderY  = 0.5
	bottleNeckY      = 1.2
	bottleTaper      = 0.8
	bottleBodyRadius = 1.0
	bottleNeckRadius = 0.4

	sphereRadius = 2.0

	cubeHalf = 1.5

	torusMajor = 2.0
	torusMinor = 0.6

	heartDepth = 1.5
)

// Rand is the randomness source used by the stochastic shapes.
// *rand.Rand satisfies it, so tests can pass a seeded generator.
type Rand interface {
	Float64() float64
}

// globalRand defers to the math/rand package source.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Generate samples count target points for shape and returns them as a
// flat xyz buffer of length 3*count. A nil rng uses the package source.
// Sphere ignores rng entirely, so equal counts give equal layouts.
func Generate(count int, shape Shape, rng Rand) []float32 {
	if count <= 0 {
		return []float32{}
	}
	points := make([]float32, count*3)
	GenerateInto(points, shape, rng)
	return points
}

// GenerateInto fills dst (length 3*N) with N target points for shape.
// Trailing elements past the last full triple are left untouched.
func GenerateInto(dst []float32, shape Shape, rng Rand) {
	if rng == nil {
		rng = globalRand{}
	}
	count := len(dst) / 3

	for i := 0; i < count; i++ {
		var v r3.Vec
		switch shape {
		case Bottle:
			v = bottlePoint(rng)
		case Sphere:
			v = spherePoint(i, count)
		case Cube:
			v = cubePoint(rng)
		case Torus:
			v = torusPoint(rng)
		case Heart:
			v = heartPoint(rng)
		default:
			// Unknown shapes collapse to the origin
		}

		i3 := i * 3
		dst[i3] = float32(v.X)
		dst[i3+1] = float32(v.Y)
		dst[i3+2] = float32(v.Z)
	}
}

// BottleRadius returns the shell radius of the bottle at height y.
// The base band (y < -1.5) and the body share the same radius.
func BottleRadius(y float64) float64 {
	switch {
	case y < bottleShoulderY:
		return bottleBodyRadius
	case y < bottleNeckY:
		// Shoulder taper
		return bottleBodyRadius - (y-bottleShoulderY)*bottleTaper
	default:
		return bottleNeckRadius
	}
}

// bottlePoint places a point on the lateral surface of the bottle.
// The bottle is a hollow shell; nothing is placed inside it.
func bottlePoint(rng Rand) r3.Vec {
	y := (rng.Float64() - 0.5) * 2 * bottleHalfHeight
	theta := rng.Float64() * 2 * math.Pi
	r := BottleRadius(y)
	return r3.Vec{X: math.Cos(theta) * r, Y: y, Z: math.Sin(theta) * r}
}

// spherePoint returns point i of n on a spherical spiral. The polar angle
// is measured from +Y, matching a y-up scene.
func spherePoint(i, n int) r3.Vec {
	phi := math.Acos(-1 + 2*float64(i)/float64(n))
	theta := math.Sqrt(float64(n)*math.Pi) * phi
	sinPhi := math.Sin(phi)
	return r3.Scale(sphereRadius, r3.Vec{
		X: sinPhi * math.Sin(theta),
		Y: math.Cos(phi),
		Z: sinPhi * math.Cos(theta),
	})
}

// cubePoint fills the cube volume uniformly.
func cubePoint(rng Rand) r3.Vec {
	return r3.Vec{
		X: (rng.Float64() - 0.5) * 2 * cubeHalf,
		Y: (rng.Float64() - 0.5) * 2 * cubeHalf,
		Z: (rng.Float64() - 0.5) * 2 * cubeHalf,
	}
}

// torusPoint places a point on the torus surface around the z axis.
func torusPoint(rng Rand) r3.Vec {
	u := rng.Float64() * 2 * math.Pi
	v := rng.Float64() * 2 * math.Pi
	ring := torusMajor + torusMinor*math.Cos(v)
	return r3.Vec{
		X: ring * math.Cos(u),
		Y: ring * math.Sin(u),
		Z: torusMinor * math.Sin(v),
	}
}

// heartPoint extrudes the parametric heart curve through a thin z slab.
func heartPoint(rng Rand) r3.Vec {
	t := rng.Float64() * 2 * math.Pi
	z := (rng.Float64() - 0.5) * heartDepth
	s := math.Sin(t)
	return r3.Vec{
		X: 1.6 * s * s * s,
		Y: 1.3*math.Cos(t) - 0.5*math.Cos(2*t) - 0.2*math.Cos(3*t) - 0.1*math.Cos(4*t),
		Z: z,
	}
}
