package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/camera"
)

// PointCloud draws particle fields as small cubes in 3D.
type PointCloud struct {
	pointSize float32
}

// NewPointCloud creates a renderer drawing each particle at the given size.
func NewPointCloud(pointSize float32) *PointCloud {
	return &PointCloud{pointSize: pointSize}
}

// SetPointSize updates the particle size (config reload).
func (r *PointCloud) SetPointSize(size float32) {
	r.pointSize = size
}

// Camera3D converts an orbit camera into a raylib perspective camera.
func Camera3D(cam *camera.Orbit) rl.Camera3D {
	x, y, z := cam.Position()
	return rl.Camera3D{
		Position:   rl.Vector3{X: x, Y: y, Z: z},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       cam.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// Begin starts 3D drawing through cam. Pair with End.
func (r *PointCloud) Begin(cam *camera.Orbit) {
	rl.BeginMode3D(Camera3D(cam))
}

// End finishes 3D drawing.
func (r *PointCloud) End() {
	rl.EndMode3D()
}

// Draw renders one cloud. positions is a flat xyz buffer; angle rotates the
// cloud about the vertical axis in radians. Must be called between Begin and End.
func (r *PointCloud) Draw(positions []float32, angle float32, tint color.RGBA) {
	rl.PushMatrix()
	rl.Rotatef(angle*180/math.Pi, 0, 1, 0)

	size := rl.Vector3{X: r.pointSize, Y: r.pointSize, Z: r.pointSize}
	for i := 0; i+2 < len(positions); i += 3 {
		p := rl.Vector3{X: positions[i], Y: positions[i+1], Z: positions[i+2]}
		if r.pointSize > 0 {
			rl.DrawCubeV(p, size, tint)
		} else {
			rl.DrawPoint3D(p, tint)
		}
	}

	rl.PopMatrix()
}
