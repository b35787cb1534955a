package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/inspector"
	"github.com/pthm-cable/morph/shapes"
)

// shapeKeys select shapes in shapes.All() order.
var shapeKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive}

// orbitSensitivity is radians of camera orbit per pixel dragged.
const orbitSensitivity = 0.005

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Shape selection
	all := shapes.All()
	for i, key := range shapeKeys {
		if i < len(all) && rl.IsKeyPressed(key) {
			g.SetShape(all[i])
		}
	}

	// Panel toggles
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyI) {
		g.inspector.Toggle()
	}

	// Camera controls
	g.handleCameraInput()
}

// handleResize checks for window resize and repositions panels.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.controls.SetPosition(int32(w)-210, 10)
	g.perfPanel.SetPosition(10, int32(h)-130)
	g.inspector.SetPosition(inspectorX(w), 10)
}

// inspectorX places the inspector left of the controls panel.
func inspectorX(screenWidth float32) int32 {
	return int32(screenWidth) - 220 - inspector.PanelWidth
}

// handleCameraInput orbits on left drag and zooms with +/-.
// The wheel belongs to the mouse hand.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) &&
		!g.controls.Contains(mouse.X, mouse.Y) &&
		!g.inspector.HandleClick(mouse.X, mouse.Y, g.inspectorSections()) {
		g.dragging = true
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging {
		delta := rl.GetMouseDelta()
		g.camera.Rotate(-delta.X*orbitSensitivity, delta.Y*orbitSensitivity)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
