// Package input routes pointer events to scene objects and then to the camera, honouring pointer
// capture.
package input

import (
	"github.com/go-gl/mathgl/mgl32"

	"text-stage/internal/picking"
)

// Button is the mouse button held for a pointer interaction.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Event is one pointer event. Object handlers see it first; the camera only sees it when no
// object handler called StopPropagation.
type Event struct {
	PointerID int
	Screen    mgl32.Vec2
	Button    Button
	// Ray is the view ray through Screen, built from the camera's inverse projection.
	Ray picking.Ray
	// ViewDir is the camera's forward direction when the event was produced.
	ViewDir mgl32.Vec3
	// Point is the nearest intersection of Ray with Target's surface; Hit reports whether there
	// was one.
	Point mgl32.Vec3
	Hit   bool
	// Target is the object the event was delivered to, nil for background delivery.
	Target Target

	stopped bool
	router  *Router
}

// StopPropagation keeps the event from reaching the camera.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether a handler called StopPropagation.
func (e *Event) Stopped() bool {
	return e.stopped
}

// SetPointerCapture binds all further events for this pointer to e.Target until released.
func (e *Event) SetPointerCapture() {
	if e.router == nil || e.Target == nil {
		return
	}
	e.router.setCapture(e.PointerID, e.Target, e)
}

// ReleasePointerCapture drops e.Target's capture of this pointer. It returns false, and does
// nothing, when e.Target does not hold the pointer.
func (e *Event) ReleasePointerCapture() bool {
	if e.router == nil || e.router.captured[e.PointerID] != e.Target {
		return false
	}
	return e.router.releaseCapture(e.PointerID)
}

// HasPointerCapture reports whether e.Target currently holds this pointer.
func (e *Event) HasPointerCapture() bool {
	if e.router == nil || e.Target == nil {
		return false
	}
	return e.router.captured[e.PointerID] == e.Target
}

// Target receives pointer down, move and up events.
type Target interface {
	OnPointerDown(ev *Event)
	OnPointerMove(ev *Event)
	OnPointerUp(ev *Event)
}

// Hoverer is implemented by targets that track pointer enter and leave.
type Hoverer interface {
	OnPointerEnter(ev *Event)
	OnPointerLeave(ev *Event)
}

// CaptureLoser is implemented by targets that want to know when a capture they hold is taken
// away without a pointer up.
type CaptureLoser interface {
	OnLostPointerCapture(ev *Event)
}

// WheelHandler is implemented by background handlers that consume scroll input.
type WheelHandler interface {
	OnWheel(delta float32)
}
