package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ecosim/components"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line and returns the
// new Y position.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawThresholdBar draws value against [lo, hi]. The fill turns from green to
// red as it approaches hi.
func (r *Renderer) DrawThresholdBar(x, y int32, label, text string, value, lo, hi float64, width int32) int32 {
	ratio := 0.0
	if hi > lo {
		ratio = min(max((value-lo)/(hi-lo), 0), 1)
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	barColor := r.Theme.BarFillLow
	if ratio > 0.7 {
		barColor = r.Theme.BarFillHigh
	} else if ratio > 0.4 {
		barColor = r.Theme.BarFillMedium
	}
	rl.DrawRectangle(barX, y+2, int32(float64(barWidth)*ratio), r.Theme.BarHeight, barColor)
	rl.DrawText(text, barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawFields draws descriptor-driven entity fields and returns the new Y
// position.
func (r *Renderer) DrawFields(x, y int32, fields []components.Field, width int32) int32 {
	for _, f := range fields {
		if f.IsBar {
			y = r.DrawThresholdBar(x, y, f.Label, f.Text, f.Value, f.Min, f.Max, width)
			continue
		}
		y = r.DrawLabelValue(x, y, f.Label, f.Text)
	}
	return y
}

// FieldsHeight returns the height DrawFields needs.
func (r *Renderer) FieldsHeight(fields []components.Field) int32 {
	var h int32
	for _, f := range fields {
		h += r.Theme.LineHeight
		if f.IsBar {
			h += 2
		}
	}
	return h
}
