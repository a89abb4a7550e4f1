package drag

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"text-stage/internal/input"
	"text-stage/internal/picking"
)

// camera records what reaches the background.
type camera struct {
	calls []string
}

func (c *camera) OnPointerDown(*input.Event) { c.calls = append(c.calls, "down") }
func (c *camera) OnPointerMove(*input.Event) { c.calls = append(c.calls, "move") }
func (c *camera) OnPointerUp(*input.Event)   { c.calls = append(c.calls, "up") }

// quad is a 2x2 square at z=0 centred on the origin.
var quad = picking.Triangles{
	Positions: []float32{
		-1, -1, 0, 1, -1, 0, 1, 1, 0,
		-1, -1, 0, 1, 1, 0, -1, 1, 0,
	},
	Model: mgl32.Ident4(),
}

var forward = mgl32.Vec3{0, 0, -1}

func rayAt(x, y float32) picking.Ray {
	return picking.Ray{Origin: mgl32.Vec3{x, y, 5}, Dir: forward}
}

func event(id int, x, y float32) input.Event {
	return input.Event{PointerID: id, Screen: mgl32.Vec2{100, 100}, Ray: rayAt(x, y), ViewDir: forward}
}

type fixture struct {
	router *input.Router
	engine *Engine
	cam    *camera
	drags  []WorldPosition
	ends   int
}

func newFixture() *fixture {
	f := &fixture{router: input.NewRouter(), cam: &camera{}}
	f.engine = New(
		func(p WorldPosition) { f.drags = append(f.drags, p) },
		WithDragEnd(func() { f.ends++ }),
	)
	f.router.Add(f.engine, func() picking.Surface { return quad })
	f.router.SetBackground(f.cam)
	return f
}

func TestDragScenario(t *testing.T) {
	f := newFixture()

	f.router.PointerDown(event(7, 0, 0))
	if !f.engine.Dragging() || f.engine.State().PointerID != 7 {
		t.Fatalf("after down state = %+v, want dragging pointer 7", f.engine.State())
	}
	if got, ok := f.router.Captured(7); !ok || got != f.engine {
		t.Fatalf("pointer 7 not captured by engine")
	}

	f.router.PointerMove(event(7, 1.2, 0.4))
	want := WorldPosition{X: 1.2, Y: 0.4, Z: 0}
	if len(f.drags) != 1 || f.drags[0] != want {
		t.Fatalf("drags = %+v, want [%+v]", f.drags, want)
	}

	f.router.PointerUp(event(7, 1.2, 0.4))
	if _, ok := f.router.Captured(7); ok {
		t.Error("capture not released on up")
	}
	if f.ends != 1 {
		t.Errorf("onDragEnd calls = %d, want 1", f.ends)
	}

	f.router.PointerMove(event(7, 0.5, 0.5))
	if len(f.drags) != 1 {
		t.Errorf("stray move after up produced %d drags, want 1 total", len(f.drags))
	}
	if len(f.cam.calls) != 1 || f.cam.calls[0] != "move" {
		t.Errorf("camera calls = %v, want only the stray move", f.cam.calls)
	}
}

func TestOnlyMovesBetweenDownAndUpDrag(t *testing.T) {
	f := newFixture()
	f.router.PointerMove(event(1, 0, 0))
	f.router.PointerMove(event(1, 0.1, 0))
	f.router.PointerDown(event(1, 0, 0))
	for i := 0; i < 5; i++ {
		f.router.PointerMove(event(1, float32(i)*0.1, 0))
	}
	f.router.PointerUp(event(1, 0, 0))
	f.router.PointerMove(event(1, 0.2, 0))

	if len(f.drags) != 5 {
		t.Errorf("drag calls = %d, want 5", len(f.drags))
	}
	// Re-entering the machine works the same way.
	f.router.PointerDown(event(1, 0, 0))
	f.router.PointerMove(event(1, 0.3, 0))
	f.router.PointerUp(event(1, 0, 0))
	if len(f.drags) != 6 || f.ends != 2 {
		t.Errorf("after second drag: drags=%d ends=%d, want 6 and 2", len(f.drags), f.ends)
	}
}

func TestDownIsClaimedBeforeCamera(t *testing.T) {
	f := newFixture()
	f.router.PointerDown(event(3, 0, 0))
	if len(f.cam.calls) != 0 {
		t.Errorf("camera saw %v for a claimed down", f.cam.calls)
	}
	// A down that misses the object goes to the camera.
	f.router.PointerDown(event(4, 3, 3))
	if len(f.cam.calls) != 1 || f.cam.calls[0] != "down" {
		t.Errorf("camera calls = %v, want [down]", f.cam.calls)
	}
}

func TestDegenerateUnprojectionSkipsDrag(t *testing.T) {
	f := newFixture()
	f.router.PointerDown(event(2, 0, 0))
	parallel := event(2, 0, 0)
	parallel.Ray.Dir = mgl32.Vec3{1, 0, 0}
	f.router.PointerMove(parallel)
	if len(f.drags) != 0 {
		t.Errorf("parallel ray produced drags %+v", f.drags)
	}
	if len(f.cam.calls) != 0 {
		t.Error("move during drag leaked to camera")
	}
}

func TestUpWithoutDownIsHarmless(t *testing.T) {
	f := newFixture()
	f.router.PointerUp(event(9, 0, 0))
	if f.ends != 0 || f.engine.Dragging() {
		t.Errorf("stray up changed state: ends=%d state=%+v", f.ends, f.engine.State())
	}
	if len(f.cam.calls) != 1 || f.cam.calls[0] != "up" {
		t.Errorf("camera calls = %v, want [up]", f.cam.calls)
	}
}

func TestLostCaptureCancelsDrag(t *testing.T) {
	f := newFixture()
	f.router.PointerDown(event(5, 0, 0))
	f.router.CancelPointer(5)
	if f.engine.Dragging() {
		t.Fatal("drag still active after capture loss")
	}
	if f.ends != 1 {
		t.Errorf("onDragEnd calls = %d, want 1", f.ends)
	}
	f.router.PointerMove(event(5, 0.5, 0))
	if len(f.drags) != 0 {
		t.Errorf("move after cancel produced drags %+v", f.drags)
	}
}

func TestDragWithoutUpPersists(t *testing.T) {
	f := newFixture()
	f.router.PointerDown(event(6, 0, 0))
	for i := 0; i < 100; i++ {
		f.router.PointerMove(event(6, 0.01*float32(i), 0))
	}
	if !f.engine.Dragging() || len(f.drags) != 100 {
		t.Errorf("dragging=%v drags=%d, want true and 100", f.engine.Dragging(), len(f.drags))
	}
}

func TestMoveReadsCommittedState(t *testing.T) {
	f := newFixture()
	// The drag callback ends the drag; the next move must see the new state.
	f.engine.onDrag = func(p WorldPosition) {
		f.drags = append(f.drags, p)
		f.router.PointerUp(event(8, 0, 0))
	}
	f.router.PointerDown(event(8, 0, 0))
	f.router.PointerMove(event(8, 0.1, 0))
	f.router.PointerMove(event(8, 0.2, 0))
	if len(f.drags) != 1 {
		t.Errorf("drags = %d, want 1", len(f.drags))
	}
}

func TestDownWithoutHitAnchorsAtOrigin(t *testing.T) {
	var got []WorldPosition
	e := New(func(p WorldPosition) { got = append(got, p) },
		WithOrigin(func() mgl32.Vec3 { return mgl32.Vec3{0, 0, -2} }))
	ev := event(1, 0, 0)
	ev.Target = e
	e.OnPointerDown(&ev)
	move := event(1, 1, 1)
	e.OnPointerMove(&move)
	if len(got) != 1 || got[0] != (WorldPosition{X: 1, Y: 1, Z: -2}) {
		t.Errorf("got %+v, want one point on z=-2", got)
	}
}

func TestDragKeepsGrabOffset(t *testing.T) {
	origin := mgl32.Vec3{0, 0, -0.5}
	var got []WorldPosition
	e := New(func(p WorldPosition) {
		got = append(got, p)
		origin = p.Vec3()
	}, WithOrigin(func() mgl32.Vec3 { return origin }))

	tests := []struct {
		name   string
		x, y   float32
		expect WorldPosition
	}{
		{"no motion", 0.5, 0.5, WorldPosition{0, 0, -0.5}},
		{"right", 1, 0.5, WorldPosition{0.5, 0, -0.5}},
		{"back", 0.5, 0.5, WorldPosition{0, 0, -0.5}},
	}
	down := event(1, 0.5, 0.5)
	down.Target = e
	down.Hit = true
	down.Point = mgl32.Vec3{0.5, 0.5, 0}
	e.OnPointerDown(&down)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			move := event(1, tt.x, tt.y)
			e.OnPointerMove(&move)
			p := got[len(got)-1]
			if !p.Vec3().ApproxEqualThreshold(tt.expect.Vec3(), 1e-5) {
				t.Errorf("origin = %+v, want %+v", p, tt.expect)
			}
		})
	}
}
