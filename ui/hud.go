package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Shape        string
	Particles    int
	Progress     float32
	Spread       float32
	Signal       gesture.Signal
	Source       string
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// StatusText describes the hand state in one line.
func StatusText(sig gesture.Signal) string {
	switch {
	case !sig.Detected:
		return "Show your hand"
	case sig.IsOpen:
		return "Hand open"
	default:
		return "Hand closed"
	}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer

	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Shape: %s | Particles: %d | FPS: %d", data.Shape, data.Particles, data.FPS),
		10, 35, 16, rl.LightGray,
	)

	status := StatusText(data.Signal)
	statusColor := rl.Yellow
	if data.Signal.Detected {
		statusColor = rl.Green
	}
	rl.DrawText(fmt.Sprintf("%s (%s)", status, data.Source), 10, 55, 16, statusColor)

	y := int32(78)
	y = r.DrawBar(10, y, "Morph", data.Progress, 260)
	y = r.DrawBar(10, y, "Pinch", data.Signal.PinchDistance, 260)
	r.DrawLabelValue(10, y, "Spread", fmt.Sprintf("%.2f", data.Spread))

	if data.Paused {
		rl.DrawText("PAUSED", data.ScreenWidth/2-40, 10, 20, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	SystemTimes map[string]time.Duration
	Total       time.Duration
	Registry    *systems.SystemRegistry
}

// PerfPanel renders the system performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel with systems in frame order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("System Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, info := range data.Registry.All() {
		avg := data.SystemTimes[info.ID]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", info.Name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
