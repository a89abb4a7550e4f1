package input

import (
	"text-stage/internal/picking"
)

type object struct {
	target  Target
	surface func() picking.Surface
}

// Router dispatches pointer events: captured target or nearest hit object first, then the
// background (camera) unless propagation was stopped.
type Router struct {
	objects    []object
	background Target
	captured   map[int]Target
	hover      map[int]Target
}

// NewRouter returns a router with no objects and no background.
func NewRouter() *Router {
	return &Router{
		captured: make(map[int]Target),
		hover:    make(map[int]Target),
	}
}

// Add registers a pickable object. surface is called on every dispatch so it can follow the
// object's current geometry and transform; it may return nil while the object has no geometry.
func (r *Router) Add(t Target, surface func() picking.Surface) {
	r.objects = append(r.objects, object{target: t, surface: surface})
}

// SetBackground sets the handler that receives unclaimed events.
func (r *Router) SetBackground(t Target) {
	r.background = t
}

// Captured returns the target holding pointerID, if any.
func (r *Router) Captured(pointerID int) (Target, bool) {
	t, ok := r.captured[pointerID]
	return t, ok
}

// Hovered returns the object currently under pointerID.
func (r *Router) Hovered(pointerID int) Target {
	return r.hover[pointerID]
}

// PointerDown dispatches a press.
func (r *Router) PointerDown(ev Event) {
	r.dispatch(ev, Target.OnPointerDown)
}

// PointerMove dispatches a move. Hover enter/leave fire before the move itself.
func (r *Router) PointerMove(ev Event) {
	r.dispatch(ev, Target.OnPointerMove)
}

// PointerUp dispatches a release.
func (r *Router) PointerUp(ev Event) {
	r.dispatch(ev, Target.OnPointerUp)
}

// Wheel forwards scroll input to the background.
func (r *Router) Wheel(delta float32) {
	if w, ok := r.background.(WheelHandler); ok && delta != 0 {
		w.OnWheel(delta)
	}
}

// CancelPointer drops any capture and hover for pointerID, for example when the window loses
// focus mid-drag. Capture holders and the background are told through OnLostPointerCapture.
func (r *Router) CancelPointer(pointerID int) {
	ev := Event{PointerID: pointerID, router: r}
	if t, ok := r.captured[pointerID]; ok {
		delete(r.captured, pointerID)
		if l, ok := t.(CaptureLoser); ok {
			ev.Target = t
			l.OnLostPointerCapture(&ev)
		}
	}
	if h, ok := r.hover[pointerID]; ok {
		delete(r.hover, pointerID)
		if hv, ok := h.(Hoverer); ok {
			ev.Target = h
			hv.OnPointerLeave(&ev)
		}
	}
	if l, ok := r.background.(CaptureLoser); ok {
		ev.Target = nil
		l.OnLostPointerCapture(&ev)
	}
}

func (r *Router) dispatch(ev Event, deliver func(Target, *Event)) {
	ev.router = r
	hitTarget, hit := r.hitTest(ev)
	r.updateHover(ev, hitTarget, hit)

	target := hitTarget
	if t, ok := r.captured[ev.PointerID]; ok {
		target = t
		hit, ev.Hit = r.intersect(t, ev)
	} else {
		ev.Hit = hitTarget != nil
	}
	if ev.Hit {
		ev.Point = hit.Point
	}

	if target != nil {
		ev.Target = target
		deliver(target, &ev)
		if ev.stopped {
			return
		}
	}
	if r.background != nil {
		bg := ev
		bg.Target = nil
		deliver(r.background, &bg)
	}
}

// hitTest returns the object nearest along the event ray.
func (r *Router) hitTest(ev Event) (Target, picking.Hit) {
	surfaces := make([]picking.Surface, len(r.objects))
	for i, o := range r.objects {
		if o.surface != nil {
			surfaces[i] = o.surface()
		}
	}
	h, ok := picking.Nearest(ev.Ray, surfaces...)
	if !ok {
		return nil, picking.Hit{}
	}
	return r.objects[h.Surface].target, h
}

func (r *Router) intersect(t Target, ev Event) (picking.Hit, bool) {
	for _, o := range r.objects {
		if o.target == t && o.surface != nil {
			return picking.Nearest(ev.Ray, o.surface())
		}
	}
	return picking.Hit{}, false
}

func (r *Router) updateHover(ev Event, next Target, hit picking.Hit) {
	prev := r.hover[ev.PointerID]
	if prev == next {
		return
	}
	if h, ok := prev.(Hoverer); ok {
		leave := ev
		leave.Target = prev
		h.OnPointerLeave(&leave)
	}
	if next == nil {
		delete(r.hover, ev.PointerID)
		return
	}
	r.hover[ev.PointerID] = next
	if h, ok := next.(Hoverer); ok {
		enter := ev
		enter.Target = next
		enter.Hit = true
		enter.Point = hit.Point
		h.OnPointerEnter(&enter)
	}
}

func (r *Router) setCapture(pointerID int, t Target, ev *Event) {
	if prev, ok := r.captured[pointerID]; ok && prev != t {
		if l, ok := prev.(CaptureLoser); ok {
			lost := *ev
			lost.Target = prev
			l.OnLostPointerCapture(&lost)
		}
	}
	r.captured[pointerID] = t
}

func (r *Router) releaseCapture(pointerID int) bool {
	if _, ok := r.captured[pointerID]; !ok {
		return false
	}
	delete(r.captured, pointerID)
	return true
}
