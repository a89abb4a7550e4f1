package input

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"text-stage/internal/picking"
)

// logTarget appends "<name>:<event>" to a shared log.
type logTarget struct {
	name    string
	log     *[]string
	stop    bool
	capture bool
	release bool
}

func (l *logTarget) record(what string) { *l.log = append(*l.log, l.name+":"+what) }

func (l *logTarget) OnPointerDown(ev *Event) {
	l.record("down")
	if l.stop {
		ev.StopPropagation()
	}
	if l.capture {
		ev.SetPointerCapture()
	}
}

func (l *logTarget) OnPointerMove(ev *Event) {
	l.record("move")
	if l.stop {
		ev.StopPropagation()
	}
}

func (l *logTarget) OnPointerUp(ev *Event) {
	l.record("up")
	if l.release {
		ev.ReleasePointerCapture()
	}
	if l.stop {
		ev.StopPropagation()
	}
}

func (l *logTarget) OnPointerEnter(*Event)       { l.record("enter") }
func (l *logTarget) OnPointerLeave(*Event)       { l.record("leave") }
func (l *logTarget) OnLostPointerCapture(*Event) { l.record("lost") }

// wall is the plane z=at facing +z, limited to |x| <= 1.
type wall struct{ at float32 }

func (w wall) Intersect(r picking.Ray) (float32, bool) {
	t, ok := picking.Plane{Point: mgl32.Vec3{0, 0, w.at}, Normal: mgl32.Vec3{0, 0, 1}}.Intersect(r)
	if !ok {
		return 0, false
	}
	if x := r.At(t).X(); x < -1 || x > 1 {
		return 0, false
	}
	return t, true
}

func at(id int, x float32) Event {
	return Event{
		PointerID: id,
		Ray:       picking.Ray{Origin: mgl32.Vec3{x, 0, 10}, Dir: mgl32.Vec3{0, 0, -1}},
		ViewDir:   mgl32.Vec3{0, 0, -1},
	}
}

func surfaceOf(s picking.Surface) func() picking.Surface {
	return func() picking.Surface { return s }
}

func TestDispatchOrder(t *testing.T) {
	tests := []struct {
		name string
		stop bool
		x    float32
		want []string
	}{
		{"object then camera", false, 0, []string{"obj:enter", "obj:down", "cam:down"}},
		{"stopped at object", true, 0, []string{"obj:enter", "obj:down"}},
		{"miss goes to camera", true, 5, []string{"cam:down"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			r := NewRouter()
			r.Add(&logTarget{name: "obj", log: &log, stop: tt.stop}, surfaceOf(wall{}))
			r.SetBackground(&logTarget{name: "cam", log: &log})
			r.PointerDown(at(1, tt.x))
			if !reflect.DeepEqual(log, tt.want) {
				t.Errorf("log = %v, want %v", log, tt.want)
			}
		})
	}
}

func TestNearestObjectWins(t *testing.T) {
	var log []string
	r := NewRouter()
	r.Add(&logTarget{name: "back", log: &log, stop: true}, surfaceOf(wall{at: -1}))
	r.Add(&logTarget{name: "front", log: &log, stop: true}, surfaceOf(wall{at: 1}))
	r.Add(&logTarget{name: "empty", log: &log, stop: true}, func() picking.Surface { return nil })
	r.PointerDown(at(1, 0))
	want := []string{"front:enter", "front:down"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestCaptureRoutesOffObject(t *testing.T) {
	var log []string
	r := NewRouter()
	obj := &logTarget{name: "obj", log: &log, stop: true, capture: true, release: true}
	r.Add(obj, surfaceOf(wall{}))
	r.SetBackground(&logTarget{name: "cam", log: &log})

	r.PointerDown(at(2, 0))
	if got, ok := r.Captured(2); !ok || got != obj {
		t.Fatalf("Captured(2) = %v, %v; want obj", got, ok)
	}
	log = nil
	r.PointerMove(at(2, 5))
	want := []string{"obj:leave", "obj:move"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("captured move log = %v, want %v", log, want)
	}

	log = nil
	r.PointerUp(at(2, 5))
	if _, ok := r.Captured(2); ok {
		t.Error("capture survived release")
	}
	r.PointerMove(at(2, 5))
	want = []string{"obj:up", "cam:move"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("after release log = %v, want %v", log, want)
	}
}

func TestReleaseByNonHolderIsNoop(t *testing.T) {
	var log []string
	r := NewRouter()
	holder := &logTarget{name: "holder", log: &log}
	r.Add(holder, surfaceOf(wall{}))
	r.captured[4] = holder

	ev := at(4, 0)
	ev.router = r
	ev.Target = &logTarget{name: "other", log: &log}
	if ev.ReleasePointerCapture() {
		t.Error("non-holder released the capture")
	}
	if _, ok := r.Captured(4); !ok {
		t.Error("capture lost after non-holder release")
	}
	ev.Target = holder
	if !ev.HasPointerCapture() || !ev.ReleasePointerCapture() {
		t.Error("holder could not release its capture")
	}
	if ev.ReleasePointerCapture() {
		t.Error("second release reported success")
	}
}

func TestCaptureOverrideNotifiesLoser(t *testing.T) {
	var log []string
	r := NewRouter()
	a := &logTarget{name: "a", log: &log}
	b := &logTarget{name: "b", log: &log}
	r.captured[1] = a
	ev := at(1, 0)
	ev.router = r
	ev.Target = b
	ev.SetPointerCapture()
	if got, _ := r.Captured(1); got != b {
		t.Errorf("Captured(1) = %v, want b", got)
	}
	if want := []string{"a:lost"}; !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestHoverEnterLeave(t *testing.T) {
	var log []string
	r := NewRouter()
	obj := &logTarget{name: "obj", log: &log}
	r.Add(obj, surfaceOf(wall{}))

	r.PointerMove(at(1, 0))
	r.PointerMove(at(1, 0.5))
	if r.Hovered(1) != obj {
		t.Error("Hovered(1) is not obj")
	}
	r.PointerMove(at(1, 3))
	want := []string{"obj:enter", "obj:move", "obj:move", "obj:leave"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
	if r.Hovered(1) != nil {
		t.Error("hover survived leaving the object")
	}
}

func TestCancelPointer(t *testing.T) {
	var log []string
	r := NewRouter()
	obj := &logTarget{name: "obj", log: &log, stop: true, capture: true}
	r.Add(obj, surfaceOf(wall{}))
	r.SetBackground(&logTarget{name: "cam", log: &log})
	r.PointerDown(at(3, 0))

	log = nil
	r.CancelPointer(3)
	want := []string{"obj:lost", "obj:leave", "cam:lost"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
	if _, ok := r.Captured(3); ok {
		t.Error("capture survived cancel")
	}
}

func TestWheelGoesToBackground(t *testing.T) {
	cam := &wheelCam{}
	r := NewRouter()
	r.Wheel(1)
	r.SetBackground(cam)
	r.Wheel(0)
	r.Wheel(-2)
	if cam.total != -2 || cam.calls != 1 {
		t.Errorf("wheel total=%v calls=%d, want -2 and 1", cam.total, cam.calls)
	}
}

type wheelCam struct {
	logTarget
	total float32
	calls int
}

func (w *wheelCam) OnWheel(d float32) {
	w.total += d
	w.calls++
}
