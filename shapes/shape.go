// Package shapes provides the target geometry for the particle cloud.
// Each shape is a single sampling rule that turns a particle count into a
// flat xyz buffer.
package shapes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownShape is returned when a shape name cannot be parsed.
var ErrUnknownShape = errors.New("unknown shape")

// Shape identifies which sampling rule produces target points.
type Shape uint8

const (
	Bottle Shape = iota
	Sphere
	Cube
	Torus
	Heart
)

var shapeNames = [...]string{
	Bottle: "BOTTLE",
	Sphere: "SPHERE",
	Cube:   "CUBE",
	Torus:  "TORUS",
	Heart:  "HEART",
}

// All returns every known shape in menu order.
func All() []Shape {
	return []Shape{Bottle, Sphere, Cube, Torus, Heart}
}

// Valid reports whether s has a sampling rule.
func (s Shape) Valid() bool {
	return int(s) < len(shapeNames)
}

// String returns the upper-case shape name.
func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
	return shapeNames[s]
}

// ParseShape parses a shape name, ignoring case and surrounding space.
func ParseShape(name string) (Shape, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for i, sn := range shapeNames {
		if sn == n {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Bounds returns the radius of an origin-centred sphere that contains every
// point the shape can produce. Used for framing and sanity checks.
func Bounds(s Shape) float64 {
	switch s {
	case Bottle:
		// Base ring (r=1) at y=-2
		return 2.2360679775 // sqrt(1 + 2*2)
	case Sphere:
		return sphereRadius
	case Cube:
		return cubeHalf * 1.7320508076 // sqrt(3)
	case Torus:
		return torusMajor + torusMinor
	case Heart:
		return 2.0
	default:
		return 0
	}
}
