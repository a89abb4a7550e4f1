// Package graphics owns the raylib window: it opens it, runs the frame loop and polls input.
package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"text-stage/internal/config"
	"text-stage/internal/input"
	"text-stage/internal/shortcut"
	"text-stage/internal/viewer"
)

// Open creates the window. It must run on the main thread before any GPU resource is loaded.
func Open(w config.Window) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	width, height := w.Width, w.Height
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(width, height, w.Title)
	// Escape is not a quit key; close via the window button.
	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(w.TargetFPS)
}

// Close destroys the window.
func Close() {
	rl.CloseWindow()
}

// Run calls update and then draw once per frame until the window is closed.
func Run(update, draw func()) {
	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(18, 18, 22, 255))
		draw()
		rl.EndDrawing()
	}
}

// FPS is the measured frame rate.
func FPS() int32 {
	return rl.GetFPS()
}

var buttons = []struct {
	mouse rl.MouseButton
	btn   input.Button
}{
	{rl.MouseButtonLeft, input.ButtonLeft},
	{rl.MouseButtonRight, input.ButtonRight},
	{rl.MouseButtonMiddle, input.ButtonMiddle},
}

var modKeys = []struct {
	keys []int32
	mod  shortcut.Mod
}{
	{[]int32{rl.KeyLeftControl, rl.KeyRightControl}, shortcut.ModCtrl},
	{[]int32{rl.KeyLeftShift, rl.KeyRightShift}, shortcut.ModShift},
	{[]int32{rl.KeyLeftAlt, rl.KeyRightAlt}, shortcut.ModAlt},
	{[]int32{rl.KeyLeftSuper, rl.KeyRightSuper}, shortcut.ModSuper},
}

// Poll reads this frame's input. keys are the keys worth reporting.
func Poll(keys []shortcut.Key) viewer.FrameInput {
	m := rl.GetMousePosition()
	in := viewer.FrameInput{
		DT:      rl.GetFrameTime(),
		Width:   float32(rl.GetScreenWidth()),
		Height:  float32(rl.GetScreenHeight()),
		Mouse:   mgl32.Vec2{m.X, m.Y},
		Wheel:   rl.GetMouseWheelMove(),
		Focused: rl.IsWindowFocused(),
	}
	for _, b := range buttons {
		if rl.IsMouseButtonPressed(b.mouse) {
			in.Pressed = append(in.Pressed, b.btn)
		}
		if rl.IsMouseButtonReleased(b.mouse) {
			in.Released = append(in.Released, b.btn)
		}
	}
	var mods shortcut.Mod
	for _, mk := range modKeys {
		for _, k := range mk.keys {
			if rl.IsKeyDown(k) {
				mods |= mk.mod
			}
		}
	}
	for _, k := range keys {
		if rl.IsKeyPressed(int32(k)) {
			in.Keys = append(in.Keys, shortcut.KeyEvent{Key: k, Mods: mods})
		}
	}
	return in
}
