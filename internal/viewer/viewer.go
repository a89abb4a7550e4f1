// Package viewer wires the pointer router, drag engine, orbit camera, parameter store, text
// renderer, shortcuts and panel into one per-frame step.
package viewer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/image/font/sfnt"

	"text-stage/internal/camera"
	"text-stage/internal/config"
	"text-stage/internal/drag"
	"text-stage/internal/hud"
	"text-stage/internal/input"
	"text-stage/internal/panel"
	"text-stage/internal/params"
	"text-stage/internal/picking"
	"text-stage/internal/renderer"
	"text-stage/internal/shortcut"
)

// mousePointer is the pointer id of the system mouse.
const mousePointer = 0

// panelMargin is the panel's distance from the top-left corner.
const panelMargin = 10

// FrameInput is everything polled from the window for one frame.
type FrameInput struct {
	DT            float32
	Width, Height float32
	Mouse         mgl32.Vec2
	// Pressed and Released list the mouse buttons that changed this frame.
	Pressed  []input.Button
	Released []input.Button
	Wheel    float32
	Focused  bool
	Keys     []shortcut.KeyEvent
}

// Screen is what a frame is drawn onto.
type Screen interface {
	hud.Canvas
	panel.Widgets
	DrawScene(mesh renderer.MeshHandle, model mgl32.Mat4, c params.RGB)
}

// textObject is the draggable text: the drag engine plus hover highlighting.
type textObject struct {
	*drag.Engine
	r *renderer.Renderer
}

func (o *textObject) OnPointerEnter(*input.Event) { o.r.SetHovered(true) }
func (o *textObject) OnPointerLeave(*input.Event) { o.r.SetHovered(false) }

// Viewer owns the interactive scene state. It is driven from the window thread.
type Viewer struct {
	log       *zap.Logger
	store     *params.Store
	router    *input.Router
	camera    *camera.Orbit
	renderer  *renderer.Renderer
	engine    *drag.Engine
	shortcuts *shortcut.Dispatcher
	bus       shortcut.Bus
	unmount   func()
	panel     *panel.Panel
	showPanel bool
	readout   hud.Readout
	fps       hud.FPS

	position     drag.WorldPosition
	homeDuration float32
	lastMouse    mgl32.Vec2
	seenMouse    bool
	button       input.Button
	buttonHeld   bool
	focused      bool
	height       float32
}

// New builds a viewer from cfg rendering with font. The first mesh is uploaded before New
// returns; a font that cannot render cfg's text is an error.
func New(cfg config.Config, font *sfnt.Font, up renderer.Uploader, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	store, err := params.NewStore(cfg.Params)
	if err != nil {
		return nil, fmt.Errorf("viewer params: %w", err)
	}
	v := &Viewer{
		log:          log,
		store:        store,
		router:       input.NewRouter(),
		camera:       camera.New(cfg.Camera),
		renderer:     renderer.New(store, up, cfg.Renderer, log.Named("renderer")),
		shortcuts:    shortcut.New(log.Named("shortcut")),
		panel:        panel.New(store, panelMargin, panelMargin, log.Named("panel")),
		showPanel:    cfg.ShowPanel,
		homeDuration: cfg.HomeDuration,
		focused:      true,
		height:       float32(cfg.Window.Height),
	}
	v.fps.Show = cfg.ShowFPS
	if err := v.renderer.SetFont(font); err != nil {
		v.renderer.Close()
		return nil, fmt.Errorf("viewer: %w", err)
	}
	v.camera.SetViewport(float32(cfg.Window.Width), float32(cfg.Window.Height))

	v.engine = drag.New(v.moveTo,
		drag.WithOrigin(func() mgl32.Vec3 { return v.position.Vec3() }),
		drag.WithDragEnd(func() {
			v.log.Debug("drag ended", zap.Float32("x", v.position.X), zap.Float32("y", v.position.Y), zap.Float32("z", v.position.Z))
		}),
	)
	obj := &textObject{Engine: v.engine, r: v.renderer}
	v.router.Add(obj, func() picking.Surface { return v.renderer.Surface(v.position) })
	v.router.SetBackground(v.camera)

	v.shortcuts.BindKeymap(cfg.Keys, shortcut.Actions{Reset: v.Reset, Home: v.Home})
	v.unmount = v.shortcuts.Mount(&v.bus)
	return v, nil
}

func (v *Viewer) moveTo(p drag.WorldPosition) {
	v.position = p
}

// Reset restores the default parameters.
func (v *Viewer) Reset() {
	v.store.Reset()
	v.log.Info("parameters reset")
}

// Home animates the camera back to its start pose.
func (v *Viewer) Home() {
	v.camera.Home(v.homeDuration)
}

// Step runs one frame: pointer routing, keyboard shortcuts, the queued panel edit, then camera
// and renderer updates.
func (v *Viewer) Step(in FrameInput) {
	if in.Width > 0 && in.Height > 0 {
		v.camera.SetViewport(in.Width, in.Height)
		v.height = in.Height
	}
	v.routePointer(in)
	for _, k := range in.Keys {
		v.bus.Emit(k)
	}
	if err := v.panel.ApplyPending(); err != nil {
		v.log.Error("panel edit", zap.Error(err))
	}
	v.camera.Update(in.DT)
	v.renderer.Update(in.DT)
}

func (v *Viewer) routePointer(in FrameInput) {
	if v.focused && !in.Focused {
		v.router.CancelPointer(mousePointer)
		v.buttonHeld = false
	}
	v.focused = in.Focused
	if !in.Focused {
		return
	}

	overPanel := v.showPanel && v.panel.Contains(in.Mouse.X(), in.Mouse.Y())
	moved := !v.seenMouse || in.Mouse != v.lastMouse
	v.lastMouse, v.seenMouse = in.Mouse, true

	if moved {
		switch {
		case v.buttonHeld || !overPanel:
			v.router.PointerMove(v.event(in, v.button))
		case v.router.Hovered(mousePointer) != nil:
			v.router.CancelPointer(mousePointer)
		}
	}
	if !v.buttonHeld && !overPanel && len(in.Pressed) > 0 {
		v.button, v.buttonHeld = in.Pressed[0], true
		v.router.PointerDown(v.event(in, v.button))
	}
	if v.buttonHeld {
		for _, b := range in.Released {
			if b == v.button {
				v.buttonHeld = false
				v.router.PointerUp(v.event(in, b))
				break
			}
		}
	}
	if !overPanel {
		v.router.Wheel(in.Wheel)
	}
}

func (v *Viewer) event(in FrameInput, b input.Button) input.Event {
	w, h := in.Width, in.Height
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	return input.Event{
		PointerID: mousePointer,
		Screen:    in.Mouse,
		Button:    b,
		Ray:       v.camera.Ray(in.Mouse.X(), in.Mouse.Y(), w, h),
		ViewDir:   v.camera.Forward(),
	}
}

// Draw renders the scene, the readout, the FPS counter and the panel.
func (v *Viewer) Draw(s Screen, fps int32) {
	s.DrawScene(v.renderer.Mesh(), v.renderer.Model(v.position), v.renderer.Color())
	v.readout.Draw(s, v.position, int32(v.height))
	v.fps.Draw(s, fps)
	if v.showPanel {
		v.panel.Draw(s)
	}
}

// Close unmounts the shortcuts and releases the mesh. It is safe to call more than once.
func (v *Viewer) Close() {
	v.unmount()
	v.renderer.Close()
}

// Position is where the text currently sits.
func (v *Viewer) Position() drag.WorldPosition { return v.position }

// Store is the parameter store.
func (v *Viewer) Store() *params.Store { return v.store }

// Camera is the orbit controller.
func (v *Viewer) Camera() *camera.Orbit { return v.camera }

// Renderer is the text renderer.
func (v *Viewer) Renderer() *renderer.Renderer { return v.renderer }

// Dragging reports whether the text is being dragged.
func (v *Viewer) Dragging() bool { return v.engine.Dragging() }

// Keys lists the keys the shortcuts listen for, for input polling.
func (v *Viewer) Keys() []shortcut.Key { return v.shortcuts.Keys() }

// Panel is the parameter panel.
func (v *Viewer) Panel() *panel.Panel { return v.panel }
