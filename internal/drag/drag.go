// Package drag turns pointer capture events into a stream of world-space points for one
// draggable object.
package drag

import (
	"github.com/go-gl/mathgl/mgl32"

	"text-stage/internal/input"
	"text-stage/internal/picking"
)

// WorldPosition is the last unprojected drag point.
type WorldPosition struct {
	X, Y, Z float32
}

// Vec3 converts p for matrix math.
func (p WorldPosition) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{p.X, p.Y, p.Z}
}

// State is the drag state of one object. The zero value is Idle.
type State struct {
	Active    bool
	PointerID int
	// Captured is the target that holds the pointer capture while Active.
	Captured input.Target
}

// Engine is the Idle/Dragging state machine for one object. Handlers read the committed State
// through the engine at call time, never a copy taken when the handler was bound.
type Engine struct {
	state     State
	onDrag    func(WorldPosition)
	onDragEnd func()
	origin    func() mgl32.Vec3
	extra     []picking.Surface
	plane     picking.Plane
	// grab is the hit point minus the origin at pointer down.
	grab mgl32.Vec3
}

// Option configures an Engine.
type Option func(*Engine)

// WithDragEnd sets the callback run when a drag ends or is cancelled. An up for a pointer that
// is not dragging does not run it.
func WithDragEnd(fn func()) Option {
	return func(e *Engine) { e.onDragEnd = fn }
}

// WithOrigin sets the object's current position. The drag plane is anchored there when the
// down event has no hit point; otherwise the offset from the origin to the hit is kept, so
// onDrag receives the new origin rather than the point under the cursor.
func WithOrigin(fn func() mgl32.Vec3) Option {
	return func(e *Engine) { e.origin = fn }
}

// WithSurfaces adds surfaces the pointer may land on besides the camera-facing drag plane.
// The nearest hit wins.
func WithSurfaces(s ...picking.Surface) Option {
	return func(e *Engine) { e.extra = append(e.extra, s...) }
}

// New returns an idle engine that reports drag points to onDrag.
func New(onDrag func(WorldPosition), opts ...Option) *Engine {
	e := &Engine{onDrag: onDrag}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the committed state.
func (e *Engine) State() State {
	return e.state
}

// Dragging reports whether a drag is in progress.
func (e *Engine) Dragging() bool {
	return e.state.Active
}

// commit is the only place the state changes.
func (e *Engine) commit(next State) {
	e.state = next
}

// OnPointerDown starts a drag: it claims the event from the camera and captures the pointer.
// A second pointer pressed during a drag is left to the camera.
func (e *Engine) OnPointerDown(ev *input.Event) {
	if e.state.Active && e.state.PointerID != ev.PointerID {
		return
	}
	e.commit(State{Active: true, PointerID: ev.PointerID, Captured: ev.Target})
	ev.StopPropagation()
	ev.SetPointerCapture()

	var origin mgl32.Vec3
	if e.origin != nil {
		origin = e.origin()
	}
	anchor := origin
	e.grab = mgl32.Vec3{}
	if ev.Hit {
		anchor = ev.Point
		if e.origin != nil {
			e.grab = ev.Point.Sub(origin)
		}
	}
	normal := ev.ViewDir
	if normal.Len() == 0 {
		normal = ev.Ray.Dir
	}
	e.plane = picking.Plane{Point: anchor, Normal: normal}
}

// OnPointerMove reports the unprojected point while dragging. Moves for other pointers, moves
// while idle, and moves whose ray misses every surface produce no callback.
func (e *Engine) OnPointerMove(ev *input.Event) {
	s := e.state
	if !s.Active || s.PointerID != ev.PointerID {
		return
	}
	ev.StopPropagation()
	p, ok := e.unproject(ev.Ray)
	if !ok {
		return
	}
	if e.onDrag != nil {
		e.onDrag(p)
	}
}

// OnPointerUp ends the drag and releases the capture. Releasing a capture that is already gone
// is harmless. An up for a pointer this engine is not dragging is left to the camera, which
// needs it to finish its own gesture.
func (e *Engine) OnPointerUp(ev *input.Event) {
	s := e.state
	mine := s.Active && s.PointerID == ev.PointerID
	if mine {
		e.commit(State{})
		ev.StopPropagation()
	}
	ev.ReleasePointerCapture()
	if mine && e.onDragEnd != nil {
		e.onDragEnd()
	}
}

// OnLostPointerCapture cancels an active drag whose capture was taken away without a pointer
// up. Without this call a drag that never sees an up stays active.
func (e *Engine) OnLostPointerCapture(ev *input.Event) {
	if !e.state.Active || e.state.PointerID != ev.PointerID {
		return
	}
	e.commit(State{})
	if e.onDragEnd != nil {
		e.onDragEnd()
	}
}

func (e *Engine) unproject(r picking.Ray) (WorldPosition, bool) {
	surfaces := append([]picking.Surface{e.plane}, e.extra...)
	hit, ok := picking.Nearest(r, surfaces...)
	if !ok {
		return WorldPosition{}, false
	}
	p := hit.Point.Sub(e.grab)
	return WorldPosition{X: p.X(), Y: p.Y(), Z: p.Z()}, true
}
