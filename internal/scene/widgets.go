package scene

import (
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"text-stage/internal/panel"
	"text-stage/internal/params"
)

// Screen draws a whole viewer frame: the 3D scene, overlay text and raygui widgets.
type Screen struct {
	*Scene
	Canvas
	GUI
}

// Canvas draws overlay text with the raylib default font.
type Canvas struct{}

func (Canvas) DrawText(text string, x, y, size int32, c color.RGBA) {
	rl.DrawText(text, x, y, size, c)
}

func (Canvas) MeasureText(text string, size int32) int32 {
	return rl.MeasureText(text, size)
}

func (Canvas) Width() int32 {
	return int32(rl.GetScreenWidth())
}

// GUI implements panel.Widgets with raygui.
type GUI struct{}

// InitStyle applies the dark widget theme.
func InitStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(rl.NewColor(30, 30, 35, 230)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(45, 45, 50, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(60, 60, 70, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(rl.NewColor(70, 80, 90, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(200, 200, 200, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(rl.Yellow))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(80, 80, 90, 255)))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(rl.NewColor(60, 60, 60, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 14)
}

func rect(r panel.Rect) rl.Rectangle {
	return rl.NewRectangle(r.X, r.Y, r.W, r.H)
}

func (GUI) Panel(r panel.Rect, title string) {
	gui.Panel(rect(r), title)
}

func (GUI) Slider(r panel.Rect, label, value string, v, min, max float32) float32 {
	return gui.Slider(rect(r), label, value, v, min, max)
}

func (GUI) CheckBox(r panel.Rect, label string, checked bool) bool {
	return gui.CheckBox(rect(r), label, checked)
}

func (GUI) ColorPicker(r panel.Rect, label string, c params.RGB) params.RGB {
	// The picker draws its own hue bar to the right of r.
	r.W -= 24
	out := gui.ColorPicker(rect(r), label, rl.NewColor(c.R, c.G, c.B, 255))
	return params.RGB{R: out.R, G: out.G, B: out.B}
}

func (GUI) Button(r panel.Rect, label string) bool {
	return gui.Button(rect(r), label)
}
