package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/inspector"
	"github.com/pthm-cable/morph/shapes"
	"github.com/pthm-cable/morph/systems"
	"github.com/pthm-cable/morph/ui"
)

const controlsLegend = "[1-5] shape  [Space] pause  [F11] fullscreen  [Tab] panel  [P] perf  [I] inspect  " +
	"[RMB] show hand  [Wheel] pinch  [LMB drag] orbit  [+/-] zoom  [Home] reset view"

// Update handles input, polls the mouse hand and runs one frame.
func (g *Game) Update() {
	g.handleInput()

	if g.mouse != nil {
		g.mouse.poll(g.pub)
	}

	if g.paused {
		return
	}

	g.step(float64(rl.GetFrameTime()))

	// Idle orbit until a hand shows up
	if !g.signal.Detected && !g.dragging {
		g.camera.AutoRotate()
	}
}

// Draw renders the scene and UI.
func (g *Game) Draw() {
	timer := g.perf.Start(systems.SystemDraw)
	cfg := g.config()

	rl.BeginDrawing()
	rl.ClearBackground(cfg.Derived.Background)

	g.cloudRenderer.Begin(g.camera)
	query := g.cloudFilter.Query()
	for query.Next() {
		cloud, spin, tint := query.Get()
		if f := g.morph.Field(cloud.ID); f != nil {
			g.cloudRenderer.Draw(f.Positions(), spin.Angle, tint.Color)
		}
	}
	g.cloudRenderer.End()

	g.drawUI()

	rl.EndDrawing()
	timer.Stop()
	g.perfCollector.RecordFrame()
}

// drawUI draws the HUD and panels and applies control panel changes.
func (g *Game) drawUI() {
	cfg := g.config()
	cloud := g.clouds.Get(g.cloud)
	tint := g.tints.Get(g.cloud)

	data := ui.HUDData{
		Title:        cfg.Screen.Title,
		Shape:        cloud.Shape.String(),
		Particles:    cloud.Count,
		Signal:       g.signal,
		Source:       g.source,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	}
	if f := g.Field(); f != nil {
		data.Progress = f.Progress()
		data.Spread = f.Spread(g.signal)
	}
	g.hud.Draw(data)
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)

	if g.showPerf {
		g.perfPanel.Draw(ui.PerfPanelData{
			SystemTimes: g.perf.Averages(),
			Total:       g.perf.Total(),
			Registry:    g.registry,
		})
	}

	g.inspector.Draw(g.inspectorSections())

	before := ui.ControlsState{
		Shape:      cloud.Shape,
		Count:      cloud.Count,
		MaxCount:   config.MaxParticles,
		Color:      tint.Color,
		Palette:    cfg.Derived.Palette,
		Fullscreen: rl.IsWindowFullscreen(),
	}
	after := g.controls.Draw(before)

	if after.Shape != before.Shape {
		g.SetShape(after.Shape)
	}
	if after.Count != before.Count {
		g.SetParticleCount(after.Count)
	}
	if after.Color != before.Color {
		tint.Color = after.Color
	}
	if after.Fullscreen != before.Fullscreen {
		rl.ToggleFullscreen()
	}
}

// fieldView is the inspector's summary of the live particle field.
type fieldView struct {
	Shape         shapes.Shape
	Particles     int     `inspect:"bar,max:50000"`
	Progress      float32 `inspect:"bar"`
	Spread        float32 `inspect:"bar,max:1.5"`
	Regenerations int
	Detected      bool
	Pinch         float32 `inspect:"bar"`
}

// inspectorSections lists the primary cloud's components and field state.
func (g *Game) inspectorSections() []inspector.Section {
	view := fieldView{Detected: g.signal.Detected, Pinch: g.signal.PinchDistance}
	if f := g.Field(); f != nil {
		view.Shape = f.Shape()
		view.Particles = f.Len()
		view.Progress = f.Progress()
		view.Spread = f.Spread(g.signal)
		view.Regenerations = f.Regenerations()
	}
	return []inspector.Section{
		{Title: "FIELD", Component: view},
		{Title: "CLOUD", Component: g.clouds.Get(g.cloud)},
		{Title: "SPIN", Component: g.spins.Get(g.cloud)},
		{Title: "TINT", Component: g.tints.Get(g.cloud)},
	}
}
