// Package textmesh turns a string and a font into an extruded, optionally bevelled triangle
// mesh.
package textmesh

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/sfnt"
)

var (
	// ErrNoGlyphs is returned when the text produces no filled outline, for example when it is
	// empty or only whitespace.
	ErrNoGlyphs = errors.New("textmesh: text has no outlines")
	// ErrNoFont is returned when Build is called without a font.
	ErrNoFont = errors.New("textmesh: no font")
)

// Options are the extrusion parameters. Fractional segment counts round up.
type Options struct {
	Size           float32
	Depth          float32
	CurveSegments  float32
	BevelEnabled   bool
	BevelThickness float32
	BevelSize      float32
	BevelSegments  float32
}

// divisions is the number of straight pieces per curve segment, at least one.
func (o Options) divisions() int {
	d := int(math32.Ceil(o.CurveSegments))
	if d < 1 {
		return 1
	}
	return d
}

// bevelLayers is the number of rings in each bevel, zero when bevelling is off.
func (o Options) bevelLayers() int {
	if !o.BevelEnabled || o.BevelSegments <= 0 {
		return 0
	}
	return int(math32.Ceil(o.BevelSegments))
}

// Geometry is a non-indexed triangle soup with one flat normal per face.
type Geometry struct {
	Positions []float32
	Normals   []float32
	Min, Max  mgl32.Vec3
	// Missing lists runes the font has no glyph for. They are skipped.
	Missing []rune
}

// VertexCount is the number of vertices, three per triangle.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount is the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Positions) / 9
}

// Build lays out text with f and extrudes it. The result is centred on its bounding box.
func Build(f *sfnt.Font, text string, o Options) (*Geometry, error) {
	if f == nil {
		return nil, ErrNoFont
	}
	if !(o.Size > 0) || o.Depth < 0 {
		return nil, fmt.Errorf("textmesh: size %v depth %v: invalid dimensions", o.Size, o.Depth)
	}
	l, err := outlines(f, text, o.Size, o.divisions())
	if err != nil {
		return nil, fmt.Errorf("textmesh: outline %q: %w", text, err)
	}
	shapes := groupContours(l.contours)
	if len(shapes) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoGlyphs, text)
	}
	g, err := Extrude(shapes, o)
	if err != nil {
		return nil, fmt.Errorf("textmesh: %q: %w", text, err)
	}
	g.Missing = l.missing
	g.center()
	return g, nil
}

// Extrude builds the mesh for already classified shapes without centring it.
func Extrude(shapes []Shape, o Options) (*Geometry, error) {
	g := &Geometry{}
	for _, s := range shapes {
		if err := g.addShape(s, o); err != nil {
			return nil, err
		}
	}
	g.bounds()
	return g, nil
}

func (g *Geometry) bounds() {
	if len(g.Positions) == 0 {
		g.Min, g.Max = mgl32.Vec3{}, mgl32.Vec3{}
		return
	}
	inf := math32.Inf(1)
	g.Min = mgl32.Vec3{inf, inf, inf}
	g.Max = mgl32.Vec3{-inf, -inf, -inf}
	for i := 0; i+2 < len(g.Positions); i += 3 {
		for k := 0; k < 3; k++ {
			v := g.Positions[i+k]
			g.Min[k] = math32.Min(g.Min[k], v)
			g.Max[k] = math32.Max(g.Max[k], v)
		}
	}
}

func (g *Geometry) center() {
	c := g.Min.Add(g.Max).Mul(0.5)
	for i := 0; i+2 < len(g.Positions); i += 3 {
		g.Positions[i] -= c[0]
		g.Positions[i+1] -= c[1]
		g.Positions[i+2] -= c[2]
	}
	g.Min = g.Min.Sub(c)
	g.Max = g.Max.Sub(c)
}
