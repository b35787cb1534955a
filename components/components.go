// Package components defines ECS components for the scene.
package components

import (
	"image/color"

	"github.com/pthm-cable/morph/shapes"
)

// Cloud marks a particle cloud entity. ID keys the cloud's field buffers,
// which live outside the ECS because they are large flat slices.
type Cloud struct {
	ID    uint32
	Shape shapes.Shape                           // requested shape; the field regenerates on change
	Count int          `inspect:"bar,max:50000"` // requested particle count
}

// Spin rotates a cloud about the vertical axis once per frame.
type Spin struct {
	Angle float32 `inspect:"angle"`          // radians, kept in [-Pi, Pi]
	Rate  float32 `inspect:"label,fmt:%.4f"` // radians per frame
}

// Tint is the draw color of a cloud. Presentation only.
type Tint struct {
	Color color.RGBA
}
