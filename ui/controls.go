package ui

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/shapes"
)

// ControlsState is the panel's view of the current settings.
type ControlsState struct {
	Shape      shapes.Shape
	Count      int
	MaxCount   int
	Color      color.RGBA
	Palette    []color.RGBA
	Fullscreen bool
}

// ControlsPanel renders the right-side panel with shape, color and count controls.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point lies over the panel.
func (c *ControlsPanel) Contains(px, py float32) bool {
	if !c.visible {
		return false
	}
	return px >= float32(c.x) && px <= float32(c.x+c.width) &&
		py >= float32(c.y) && py <= float32(c.y+c.height)
}

// panelHeight sizes the panel for the shape list, palette rows, slider and toggle.
func (c *ControlsPanel) panelHeight(paletteSize int) int32 {
	lh := c.renderer.Theme.LineHeight
	shapeRows := int32(len(shapes.All()))
	paletteRows := int32((paletteSize + 5) / 6)
	return c.renderer.Theme.Padding*2 + lh*3 + 18 + shapeRows*32 + paletteRows*28 + 30 + 26
}

// Draw renders the panel and returns the state after any interaction.
func (c *ControlsPanel) Draw(state ControlsState) ControlsState {
	if !c.visible {
		return state
	}

	r := c.renderer
	padding := r.Theme.Padding
	x := float32(c.x + padding)
	w := float32(c.width - padding*2)

	c.height = c.panelHeight(len(state.Palette))
	r.DrawPanel(c.x, c.y, c.width, c.height)
	y := c.y + padding

	y = r.DrawSectionHeader(c.x+padding, y, "Shape")
	for _, s := range shapes.All() {
		label := s.String()
		if s == state.Shape {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: w, Height: 26}, label) {
			state.Shape = s
		}
		y += 32
	}

	y += 6
	y = r.DrawSectionHeader(c.x+padding, y, "Color")
	const swatch = 22
	for i, col := range state.Palette {
		sx := x + float32(i%6)*(swatch+6)
		sy := float32(y) + float32(i/6)*(swatch+6)
		rect := rl.Rectangle{X: sx, Y: sy, Width: swatch, Height: swatch}
		if gui.Button(rect, "") {
			state.Color = col
		}
		// Paint the swatch over the button face
		rl.DrawRectangleRec(rl.Rectangle{X: sx + 3, Y: sy + 3, Width: swatch - 6, Height: swatch - 6}, col)
		if col == state.Color {
			rl.DrawRectangleLinesEx(rect, 2, r.Theme.Selected)
		}
	}
	y += int32((len(state.Palette)+5)/6) * (swatch + 6)

	y += 6
	y = r.DrawSectionHeader(c.x+padding, y, fmt.Sprintf("Particles: %d", state.Count))
	maxCount := state.MaxCount
	if maxCount < state.Count {
		maxCount = state.Count
	}
	count := gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: w, Height: 20},
		"", "",
		float32(state.Count), 0, float32(maxCount),
	)
	if int(count) != state.Count {
		// Snap to hundreds so dragging does not reallocate every frame
		state.Count = int(count/100+0.5) * 100
	}
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: w, Height: 26}, toggleText(state.Fullscreen, "Windowed", "Fullscreen")) {
		state.Fullscreen = !state.Fullscreen
	}

	return state
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
