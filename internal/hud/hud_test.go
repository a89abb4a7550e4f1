package hud

import (
	"image/color"
	"testing"

	"text-stage/internal/drag"
)

type drawn struct {
	text string
	x, y int32
}

type fakeCanvas struct {
	width int32
	calls []drawn
}

func (c *fakeCanvas) DrawText(text string, x, y, size int32, _ color.RGBA) {
	c.calls = append(c.calls, drawn{text, x, y})
}

func (c *fakeCanvas) MeasureText(text string, size int32) int32 {
	return int32(len(text)) * size / 2
}

func (c *fakeCanvas) Width() int32 { return c.width }

func TestReadoutFormat(t *testing.T) {
	tests := []struct {
		p    drag.WorldPosition
		want string
	}{
		{drag.WorldPosition{}, "x: 0.00, y: 0.00, z: 0.00"},
		{drag.WorldPosition{X: 1.2, Y: 0.4}, "x: 1.20, y: 0.40, z: 0.00"},
		{drag.WorldPosition{X: -0.125, Y: 3.14159, Z: 10}, "x: -0.12, y: 3.14, z: 10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var r Readout
			if got := r.Text(tt.p); got != tt.want {
				t.Errorf("Text(%v) = %q, want %q", tt.p, got, tt.want)
			}
		})
	}
}

func TestReadoutRendersOnlyOnChange(t *testing.T) {
	var r Readout
	p := drag.WorldPosition{X: 1}
	for i := 0; i < 5; i++ {
		r.Text(p)
	}
	if r.Renders() != 1 {
		t.Fatalf("Renders = %d after unchanged frames, want 1", r.Renders())
	}
	r.Text(drag.WorldPosition{X: 2})
	r.Text(drag.WorldPosition{X: 2})
	if r.Renders() != 2 {
		t.Errorf("Renders = %d after one change, want 2", r.Renders())
	}
}

func TestReadoutDraw(t *testing.T) {
	c := &fakeCanvas{width: 800}
	var r Readout
	r.Draw(c, drag.WorldPosition{}, 600)
	if len(c.calls) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(c.calls))
	}
	if got := c.calls[0]; got.x != padding || got.y != 600-padding-fontSize {
		t.Errorf("readout at (%d, %d), want bottom-left", got.x, got.y)
	}
}

func TestFPSRefreshInterval(t *testing.T) {
	var f FPS
	if got := f.Text(60); got != "FPS: 60" {
		t.Fatalf("first Text = %q, want FPS: 60", got)
	}
	for i := 2; i < updateInterval; i++ {
		if got := f.Text(30); got != "FPS: 60" {
			t.Fatalf("frame %d: Text = %q, want cached FPS: 60", i, got)
		}
	}
	if got := f.Text(30); got != "FPS: 30" {
		t.Errorf("Text at interval = %q, want FPS: 30", got)
	}
}

func TestFPSHidden(t *testing.T) {
	c := &fakeCanvas{width: 800}
	f := FPS{}
	f.Draw(c, 60)
	if len(c.calls) != 0 {
		t.Errorf("hidden FPS drew %d calls", len(c.calls))
	}
	f.Show = true
	f.Draw(c, 60)
	if len(c.calls) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(c.calls))
	}
	want := int32(800) - int32(len("FPS: 60"))*fontSize/2 - padding
	if c.calls[0].x != want {
		t.Errorf("FPS x = %d, want right-aligned %d", c.calls[0].x, want)
	}
}
