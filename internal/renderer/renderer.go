// Package renderer keeps exactly one uploaded text mesh in sync with the parameter store and
// owns the mesh's per-frame transform and colour.
package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/image/font/sfnt"

	"text-stage/internal/drag"
	"text-stage/internal/params"
	"text-stage/internal/picking"
	"text-stage/internal/textmesh"
)

// MeshHandle identifies uploaded geometry. The zero value is no mesh.
type MeshHandle uint32

// Uploader moves geometry to the GPU and frees it again.
type Uploader interface {
	Upload(g *textmesh.Geometry) (MeshHandle, error)
	Release(h MeshHandle)
}

// Config holds the renderer settings that are not geometry parameters.
type Config struct {
	Text string `yaml:"text" env:"TEXT"`
	// AngularSpeed is the rotation about X in radians per second.
	AngularSpeed float32    `yaml:"angular_speed" env:"ANGULAR_SPEED"`
	Highlight    params.RGB `yaml:"highlight" env:"HIGHLIGHT"`
}

// DefaultConfig renders "TAI CHI" turning at one radian per second, pink under the pointer.
func DefaultConfig() Config {
	return Config{
		Text:         "TAI CHI",
		AngularSpeed: 1,
		Highlight:    params.RGB{R: 0xFF, G: 0xC0, B: 0xCB},
	}
}

// Renderer rebuilds the mesh whenever the store changes. It builds nothing until a font is
// attached.
type Renderer struct {
	cfg    Config
	log    *zap.Logger
	store  *params.Store
	up     Uploader
	cancel func()

	font     *sfnt.Font
	built    params.GeometryParameters
	mesh     MeshHandle
	geom     *textmesh.Geometry
	builds   int
	rotation float32
	hovered  bool
	closed   bool
}

// New subscribes a renderer to store. A nil logger discards output.
func New(store *params.Store, up Uploader, cfg Config, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{cfg: cfg, log: log, store: store, up: up}
	r.cancel = store.Subscribe(func(p params.GeometryParameters) {
		if err := r.rebuild(p); err != nil {
			r.log.Error("rebuild text mesh", zap.Error(err))
		}
	})
	return r
}

// SetFont attaches the font and builds the first mesh from the current parameters.
func (r *Renderer) SetFont(f *sfnt.Font) error {
	if f == nil {
		return textmesh.ErrNoFont
	}
	r.font = f
	return r.rebuild(r.store.Get())
}

// Options maps a parameter record onto the extrusion options. Height is the extrusion depth.
func Options(p params.GeometryParameters) textmesh.Options {
	return textmesh.Options{
		Size:           p.Size,
		Depth:          p.Height,
		CurveSegments:  p.CurveSegments,
		BevelEnabled:   p.BevelEnabled,
		BevelThickness: p.BevelThickness,
		BevelSize:      p.BevelSize,
		BevelSegments:  p.BevelSegments,
	}
}

// rebuild replaces the mesh. On failure the previous mesh stays live.
func (r *Renderer) rebuild(p params.GeometryParameters) error {
	if r.closed || r.font == nil {
		return nil
	}
	if r.mesh != 0 && p == r.built && r.geom != nil {
		return nil
	}
	g, err := textmesh.Build(r.font, r.cfg.Text, Options(p))
	if err != nil {
		return fmt.Errorf("build %q: %w", r.cfg.Text, err)
	}
	h, err := r.up.Upload(g)
	if err != nil {
		return fmt.Errorf("upload mesh: %w", err)
	}
	if h == 0 {
		return errors.New("upload mesh: uploader returned no handle")
	}
	old := r.mesh
	r.mesh, r.geom, r.built = h, g, p
	r.builds++
	if old != 0 {
		r.up.Release(old)
	}
	if len(g.Missing) > 0 {
		r.log.Warn("font has no glyph", zap.String("runes", string(g.Missing)))
	}
	r.log.Debug("rebuilt text mesh",
		zap.Int("triangles", g.TriangleCount()),
		zap.Float32("size", p.Size),
		zap.Float32("height", p.Height),
		zap.Uint64("revision", r.store.Revision()),
	)
	return nil
}

// Update advances the rotation about X.
func (r *Renderer) Update(dt float32) {
	r.rotation += r.cfg.AngularSpeed * dt
}

// Rotation is the current angle about X in radians.
func (r *Renderer) Rotation() float32 {
	return r.rotation
}

// SetHovered toggles the highlight colour.
func (r *Renderer) SetHovered(h bool) {
	r.hovered = h
}

// Hovered reports whether the pointer is over the mesh.
func (r *Renderer) Hovered() bool {
	return r.hovered
}

// Color is the highlight while hovered, otherwise the current parameter colour.
func (r *Renderer) Color() params.RGB {
	if r.hovered {
		return r.cfg.Highlight
	}
	return r.store.Get().Color
}

// Model places the mesh at pos and applies the rotation.
func (r *Renderer) Model(pos drag.WorldPosition) mgl32.Mat4 {
	return mgl32.Translate3D(pos.X, pos.Y, pos.Z).Mul4(mgl32.HomogRotate3DX(r.rotation))
}

// Surface is the current mesh under Model(pos) for hit testing, nil before the first build.
func (r *Renderer) Surface(pos drag.WorldPosition) picking.Surface {
	if r.geom == nil {
		return nil
	}
	return picking.Triangles{Positions: r.geom.Positions, Model: r.Model(pos)}
}

// Mesh is the live handle, zero before the first build.
func (r *Renderer) Mesh() MeshHandle {
	return r.mesh
}

// Geometry is the geometry behind Mesh.
func (r *Renderer) Geometry() *textmesh.Geometry {
	return r.geom
}

// Builds counts successful rebuilds.
func (r *Renderer) Builds() int {
	return r.builds
}

// Close unsubscribes and releases the live mesh. It is safe to call more than once.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.cancel()
	if r.mesh != 0 {
		r.up.Release(r.mesh)
		r.mesh = 0
		r.geom = nil
	}
}
