// Shape preview tool - interactive view of sampler output with statistics.
//
// Usage: go run ./cmd/shapepreview
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/renderer"
	"github.com/pthm-cable/morph/shapes"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewSize  = 700
	panelWidth   = windowWidth - previewSize - 30
)

// PreviewParams holds the sampler inputs being previewed.
type PreviewParams struct {
	Shape  shapes.Shape
	Count  int
	Seed   int64
	Spread float32
}

func defaultParams() PreviewParams {
	return PreviewParams{Shape: shapes.Bottle, Count: 8000, Seed: 1, Spread: 1}
}

func main() {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Shape Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	cam := camera.New(8, 45, 1)
	cloud := renderer.NewPointCloud(0.03)
	target := rl.LoadRenderTexture(previewSize, previewSize)
	defer rl.UnloadRenderTexture(target)

	var points []float32
	var stats previewStats
	spinning := true
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			points = shapes.Generate(params.Count, params.Shape, rand.New(rand.NewSource(params.Seed)))
			stats = computeStats(points)
			needsRegen = false
		}
		if spinning {
			cam.AutoRotate()
		}

		// Drag inside the preview to orbit
		mouse := rl.GetMousePosition()
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) && mouse.X < previewSize+10 {
			delta := rl.GetMouseDelta()
			cam.Rotate(-delta.X*0.005, delta.Y*0.005)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			cam.ZoomBy(1 + wheel*0.1)
		}

		// Render the cloud offscreen
		rl.BeginTextureMode(target)
		rl.ClearBackground(rl.Color{R: 5, G: 5, B: 5, A: 255})
		cloud.Begin(cam)
		rl.DrawCircle3D(rl.Vector3{}, float32(shapes.Bounds(params.Shape))*params.Spread, rl.Vector3{X: 1}, 90, rl.DarkGray)
		cloud.Draw(scaled(points, params.Spread), 0, rl.Color{R: 79, G: 163, B: 255, A: 255})
		cloud.End()
		rl.EndTextureMode()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Render textures are stored upside down
		rl.DrawTextureRec(
			target.Texture,
			rl.Rectangle{X: 0, Y: 0, Width: previewSize, Height: -previewSize},
			rl.Vector2{X: 10, Y: 10},
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Sampler Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Shape buttons
		for _, s := range shapes.All() {
			label := s.String()
			if s == params.Shape {
				label = "> " + label
			}
			if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 20), Height: 26}, label) && s != params.Shape {
				params.Shape = s
				needsRegen = true
			}
			panelY += 30
		}
		panelY += 10

		// Count slider
		rl.DrawText("Particles", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCount := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			float32(params.Count), 100, 30000,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Count), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newCount) != params.Count {
			params.Count = int(newCount)
			needsRegen = true
		}
		panelY += 35

		// Spread slider scales the preview the way pinch spread scales the field
		rl.DrawText("Spread", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.Spread = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			params.Spread, 0.2, 1.5,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Spread), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		// Seed slider
		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			float32(params.Seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != params.Seed {
			params.Seed = int64(newSeed)
			needsRegen = true
		}
		panelY += 40

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(spinning, "Stop", "Spin")) {
			spinning = !spinning
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset View") {
			cam.Reset()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			cam.Reset()
			needsRegen = true
		}
		panelY += 50

		// Statistics
		rl.DrawText("Statistics:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		for _, line := range stats.Lines(params.Shape) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		// Instructions
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(fmt.Sprintf("field:\n  count: %d\n  shape: %s\n", params.Count, params.Shape))
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// scaled returns points multiplied by spread, or points itself at 1.
func scaled(points []float32, spread float32) []float32 {
	if spread == 1 {
		return points
	}
	out := make([]float32, len(points))
	for i, v := range points {
		out[i] = v * spread
	}
	return out
}
