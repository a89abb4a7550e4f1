// Package camera implements an orbit controller over spherical coordinates around a target.
// It receives only the pointer events scene objects did not claim.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"text-stage/internal/input"
	"text-stage/internal/picking"
)

const (
	near = 0.1
	far  = 1000

	// polarLimit keeps the camera off the poles where the up vector degenerates.
	polarLimit = 0.01
	// settle is the pending motion below which damping snaps to rest.
	settle = 1e-5
)

// Config tunes the orbit controller.
type Config struct {
	// Distance from the target at the start and home pose.
	Distance float32 `yaml:"distance" env:"DISTANCE"`
	// Fovy is the vertical field of view in degrees.
	Fovy float32 `yaml:"fovy" env:"FOVY"`
	// Damping is the fraction of pending motion applied per Update, in (0, 1]. 1 disables
	// inertia.
	Damping     float32 `yaml:"damping" env:"DAMPING"`
	RotateSpeed float32 `yaml:"rotate_speed" env:"ROTATE_SPEED"`
	PanSpeed    float32 `yaml:"pan_speed" env:"PAN_SPEED"`
	ZoomSpeed   float32 `yaml:"zoom_speed" env:"ZOOM_SPEED"`
	MinDistance float32 `yaml:"min_distance" env:"MIN_DISTANCE"`
	MaxDistance float32 `yaml:"max_distance" env:"MAX_DISTANCE"`
}

// DefaultConfig matches a camera five units back on +Z with a 75 degree lens.
func DefaultConfig() Config {
	return Config{
		Distance:    5,
		Fovy:        75,
		Damping:     0.2,
		RotateSpeed: 1,
		PanSpeed:    1,
		ZoomSpeed:   1,
		MinDistance: 0.5,
		MaxDistance: 100,
	}
}

type pose struct {
	azimuth, polar, distance float32
	target                   mgl32.Vec3
}

type gesture struct {
	active  bool
	pointer int
	button  input.Button
	last    mgl32.Vec2
}

// homeAnim tweens every pose component back to the home pose.
type homeAnim struct {
	tweens [6]*gween.Tween
	done   [6]bool
}

// Orbit is the camera controller. Pointer handlers only accumulate motion; Update applies it
// once per frame.
type Orbit struct {
	cfg      Config
	pose     pose
	home     pose
	viewport mgl32.Vec2

	pendingRotate mgl32.Vec2 // azimuth, polar radians
	pendingPan    mgl32.Vec3 // world units
	pendingZoom   float32    // log distance

	gesture gesture
	anim    *homeAnim
}

// New returns a controller looking at the origin from cfg.Distance along +Z. Zero fields in cfg
// take their DefaultConfig values.
func New(cfg Config) *Orbit {
	cfg = withDefaults(cfg)
	home := pose{azimuth: 0, polar: math32.Pi / 2, distance: cfg.Distance}
	return &Orbit{
		cfg:      cfg,
		pose:     home,
		home:     home,
		viewport: mgl32.Vec2{800, 600},
	}
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Distance <= 0 {
		cfg.Distance = def.Distance
	}
	if cfg.Fovy <= 0 || cfg.Fovy >= 180 {
		cfg.Fovy = def.Fovy
	}
	if cfg.Damping <= 0 || cfg.Damping > 1 {
		cfg.Damping = def.Damping
	}
	if cfg.RotateSpeed == 0 {
		cfg.RotateSpeed = def.RotateSpeed
	}
	if cfg.PanSpeed == 0 {
		cfg.PanSpeed = def.PanSpeed
	}
	if cfg.ZoomSpeed == 0 {
		cfg.ZoomSpeed = def.ZoomSpeed
	}
	if cfg.MinDistance <= 0 {
		cfg.MinDistance = def.MinDistance
	}
	if cfg.MaxDistance < cfg.MinDistance {
		cfg.MaxDistance = math32.Max(def.MaxDistance, cfg.MinDistance)
	}
	cfg.Distance = clamp(cfg.Distance, cfg.MinDistance, cfg.MaxDistance)
	return cfg
}

// Config returns the effective configuration.
func (o *Orbit) Config() Config {
	return o.cfg
}

// SetViewport sets the screen size used to scale pointer motion.
func (o *Orbit) SetViewport(w, h float32) {
	if w > 0 && h > 0 {
		o.viewport = mgl32.Vec2{w, h}
	}
}

// Position returns the eye position in world space.
func (o *Orbit) Position() mgl32.Vec3 {
	p := o.pose
	sp, cp := math32.Sincos(p.polar)
	sa, ca := math32.Sincos(p.azimuth)
	return p.target.Add(mgl32.Vec3{sp * sa, cp, sp * ca}.Mul(p.distance))
}

// Target returns the orbit centre.
func (o *Orbit) Target() mgl32.Vec3 {
	return o.pose.target
}

// Up returns the world up vector.
func (o *Orbit) Up() mgl32.Vec3 {
	return mgl32.Vec3{0, 1, 0}
}

// Distance returns the current eye to target distance.
func (o *Orbit) Distance() float32 {
	return o.pose.distance
}

// Fovy returns the vertical field of view in degrees.
func (o *Orbit) Fovy() float32 {
	return o.cfg.Fovy
}

// Forward returns the unit view direction.
func (o *Orbit) Forward() mgl32.Vec3 {
	return o.pose.target.Sub(o.Position()).Normalize()
}

// View returns the world to eye matrix.
func (o *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(o.Position(), o.pose.target, o.Up())
}

// Projection returns the perspective matrix for the given aspect ratio.
func (o *Orbit) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(o.cfg.Fovy), aspect, near, far)
}

// Ray returns the view ray through screen point (x, y) of a w by h viewport, y growing down.
// The ray starts on the near plane. A zero Ray is returned when the matrices cannot be inverted.
func (o *Orbit) Ray(x, y, w, h float32) picking.Ray {
	if w <= 0 || h <= 0 {
		return picking.Ray{}
	}
	view := o.View()
	proj := o.Projection(w / h)
	iw, ih := int(w), int(h)
	nearPt, err := mgl32.UnProject(mgl32.Vec3{x, h - y, 0}, view, proj, 0, 0, iw, ih)
	if err != nil {
		return picking.Ray{}
	}
	farPt, err := mgl32.UnProject(mgl32.Vec3{x, h - y, 1}, view, proj, 0, 0, iw, ih)
	if err != nil {
		return picking.Ray{}
	}
	dir := farPt.Sub(nearPt)
	if dir.Len() == 0 {
		return picking.Ray{}
	}
	return picking.Ray{Origin: nearPt, Dir: dir.Normalize()}
}

// OnPointerDown starts a rotate (left) or pan (right, middle) gesture.
func (o *Orbit) OnPointerDown(ev *input.Event) {
	if o.gesture.active {
		return
	}
	o.anim = nil
	o.gesture = gesture{active: true, pointer: ev.PointerID, button: ev.Button, last: ev.Screen}
}

// OnPointerMove accumulates motion for the active gesture.
func (o *Orbit) OnPointerMove(ev *input.Event) {
	g := &o.gesture
	if !g.active || g.pointer != ev.PointerID {
		return
	}
	d := ev.Screen.Sub(g.last)
	g.last = ev.Screen
	h := o.viewport.Y()

	switch g.button {
	case input.ButtonLeft:
		k := o.cfg.RotateSpeed * math32.Pi / h
		o.pendingRotate = o.pendingRotate.Add(mgl32.Vec2{-d.X() * k, -d.Y() * k})
	default:
		// One pixel moves the target by the world height of a pixel at the target distance.
		scale := o.cfg.PanSpeed * 2 * o.pose.distance * math32.Tan(mgl32.DegToRad(o.cfg.Fovy)/2) / h
		right, up := o.basis()
		o.pendingPan = o.pendingPan.Add(right.Mul(-d.X() * scale)).Add(up.Mul(d.Y() * scale))
	}
}

// OnPointerUp ends the gesture started by the same pointer.
func (o *Orbit) OnPointerUp(ev *input.Event) {
	if o.gesture.active && o.gesture.pointer == ev.PointerID {
		o.gesture = gesture{}
	}
}

// OnLostPointerCapture ends the gesture when its pointer is cancelled.
func (o *Orbit) OnLostPointerCapture(ev *input.Event) {
	o.OnPointerUp(ev)
}

// OnWheel zooms; positive delta moves closer.
func (o *Orbit) OnWheel(delta float32) {
	o.anim = nil
	o.pendingZoom -= delta * o.cfg.ZoomSpeed * 0.1
}

// Active reports whether a gesture is in progress.
func (o *Orbit) Active() bool {
	return o.gesture.active
}

// Home animates back to the start pose over duration seconds. A non-positive duration jumps.
func (o *Orbit) Home(duration float32) {
	o.pendingRotate = mgl32.Vec2{}
	o.pendingPan = mgl32.Vec3{}
	o.pendingZoom = 0
	if duration <= 0 {
		o.pose = o.home
		o.anim = nil
		return
	}
	from, to := o.pose, o.home
	// Take the short way round.
	to.azimuth = from.azimuth + wrapAngle(to.azimuth-from.azimuth)
	fn := ease.OutCubic
	o.anim = &homeAnim{tweens: [6]*gween.Tween{
		gween.New(from.azimuth, to.azimuth, duration, fn),
		gween.New(from.polar, to.polar, duration, fn),
		gween.New(from.distance, to.distance, duration, fn),
		gween.New(from.target.X(), to.target.X(), duration, fn),
		gween.New(from.target.Y(), to.target.Y(), duration, fn),
		gween.New(from.target.Z(), to.target.Z(), duration, fn),
	}}
}

// Animating reports whether a home animation is running.
func (o *Orbit) Animating() bool {
	return o.anim != nil
}

// Update integrates pending motion with damping, clamps the pose, and advances the home
// animation. Call exactly once per frame.
func (o *Orbit) Update(dt float32) {
	if o.anim != nil {
		o.stepHome(dt)
		return
	}
	k := o.cfg.Damping

	rot := o.pendingRotate.Mul(k)
	o.pendingRotate = o.pendingRotate.Sub(rot)
	o.pose.azimuth = wrapAngle(o.pose.azimuth + rot.X())
	o.pose.polar = clamp(o.pose.polar+rot.Y(), polarLimit, math32.Pi-polarLimit)

	pan := o.pendingPan.Mul(k)
	o.pendingPan = o.pendingPan.Sub(pan)
	o.pose.target = o.pose.target.Add(pan)

	zoom := o.pendingZoom * k
	o.pendingZoom -= zoom
	o.pose.distance = clamp(o.pose.distance*math32.Exp(zoom), o.cfg.MinDistance, o.cfg.MaxDistance)

	if o.pendingRotate.Len() < settle {
		o.pendingRotate = mgl32.Vec2{}
	}
	if o.pendingPan.Len() < settle {
		o.pendingPan = mgl32.Vec3{}
	}
	if math32.Abs(o.pendingZoom) < settle {
		o.pendingZoom = 0
	}
}

// Settled reports whether no motion is pending.
func (o *Orbit) Settled() bool {
	return o.anim == nil && o.pendingRotate == (mgl32.Vec2{}) && o.pendingPan == (mgl32.Vec3{}) && o.pendingZoom == 0
}

func (o *Orbit) stepHome(dt float32) {
	a := o.anim
	vals := [6]float32{
		o.pose.azimuth, o.pose.polar, o.pose.distance,
		o.pose.target.X(), o.pose.target.Y(), o.pose.target.Z(),
	}
	finished := true
	for i, tw := range a.tweens {
		if a.done[i] {
			continue
		}
		vals[i], a.done[i] = tw.Update(dt)
		finished = finished && a.done[i]
	}
	o.pose = pose{
		azimuth:  vals[0],
		polar:    vals[1],
		distance: vals[2],
		target:   mgl32.Vec3{vals[3], vals[4], vals[5]},
	}
	if finished {
		o.pose = o.home
		o.anim = nil
	}
}

// basis returns the camera right and up vectors.
func (o *Orbit) basis() (right, up mgl32.Vec3) {
	fwd := o.Forward()
	right = fwd.Cross(o.Up()).Normalize()
	up = right.Cross(fwd)
	return right, up
}

func wrapAngle(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a < -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
