// Package hud draws the screen-space overlays: the position readout and the FPS counter.
package hud

import (
	"fmt"
	"image/color"

	"text-stage/internal/drag"
)

const (
	fontSize = 20
	padding  = 12
	// refresh FPS text every N frames to limit allocations.
	updateInterval = 30
)

// Canvas is the text drawing surface the overlays render onto.
type Canvas interface {
	DrawText(text string, x, y, size int32, c color.RGBA)
	MeasureText(text string, size int32) int32
	Width() int32
}

var (
	readoutColor = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	fpsColor     = color.RGBA{G: 228, B: 48, A: 255}
)

// Readout shows the current world position of the text to two decimals.
// The string is formatted again only when the position changes.
type Readout struct {
	last    drag.WorldPosition
	text    string
	renders int
}

// Text returns the readout for p.
func (r *Readout) Text(p drag.WorldPosition) string {
	if r.text == "" || p != r.last {
		r.last = p
		r.text = fmt.Sprintf("x: %.2f, y: %.2f, z: %.2f", p.X, p.Y, p.Z)
		r.renders++
	}
	return r.text
}

// Renders counts how many times the text was formatted.
func (r *Readout) Renders() int {
	return r.renders
}

// Draw renders the readout at the bottom-left corner of a screen h pixels tall.
func (r *Readout) Draw(c Canvas, p drag.WorldPosition, h int32) {
	c.DrawText(r.Text(p), padding, h-padding-fontSize, fontSize, readoutColor)
}

// FPS is the frame counter overlay, top-right in green.
type FPS struct {
	Show   bool
	frames uint32
	text   string
}

// Text returns the counter text, refreshed every updateInterval frames.
func (f *FPS) Text(fps int32) string {
	f.frames++
	if f.text == "" || f.frames%updateInterval == 0 {
		f.text = fmt.Sprintf("FPS: %d", fps)
	}
	return f.text
}

// Draw renders the counter when Show is set.
func (f *FPS) Draw(c Canvas, fps int32) {
	if !f.Show {
		return
	}
	text := f.Text(fps)
	x := c.Width() - c.MeasureText(text, fontSize) - padding
	c.DrawText(text, x, padding, fontSize, fpsColor)
}
