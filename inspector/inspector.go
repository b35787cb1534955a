// Package inspector draws a reflection-driven panel of ECS component values.
package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30
	sectionGap   = 8
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Section is one titled component in the panel.
type Section struct {
	Title     string
	Component interface{}
}

// Inspector shows the components of a single entity.
type Inspector struct {
	visible bool
	panelX  int32
	panelY  int32
}

// NewInspector creates a hidden inspector at the given position.
func NewInspector(x, y int32) *Inspector {
	return &Inspector{panelX: x, panelY: y}
}

// SetPosition moves the panel, e.g. after a window resize.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.panelX = x
	ins.panelY = y
}

// Toggle shows or hides the panel.
func (ins *Inspector) Toggle() { ins.visible = !ins.visible }

// IsVisible reports whether the panel is drawn.
func (ins *Inspector) IsVisible() bool { return ins.visible }

// HandleClick hides the panel when the close button is hit and reports
// whether the click landed on the panel.
func (ins *Inspector) HandleClick(mouseX, mouseY float32, sections []Section) bool {
	if !ins.visible {
		return false
	}

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
		int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
		ins.visible = false
		return true
	}

	return int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
		int32(mouseY) >= ins.panelY && int32(mouseY) <= ins.panelY+PanelHeight(sections)
}

// PanelHeight returns the drawn height of the panel for sections.
func PanelHeight(sections []Section) int32 {
	h := int32(HeaderHeight + PanelPadding)
	for _, s := range sections {
		h += 22
		for _, f := range ExtractFields(s.Component) {
			h += fieldHeight(f)
		}
		h += sectionGap
	}
	return h + PanelPadding
}

// Draw renders the panel if visible.
func (ins *Inspector) Draw(sections []Section) {
	if !ins.visible {
		return
	}

	panelHeight := PanelHeight(sections)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, s := range sections {
		ins.drawSectionHeader(x, y, s.Title)
		y += 22
		for _, f := range ExtractFields(s.Component) {
			y += DrawField(x, y, f)
		}
		y += sectionGap
	}
}

func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-4, y-2, PanelWidth-2*PanelPadding+8, 18, ColorSection)
	rl.DrawText(title, x, y, 14, ColorSectionText)
}
