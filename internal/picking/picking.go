// Package picking intersects view rays with the surfaces a pointer can land on.
package picking

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// epsilon guards parallel rays and degenerate triangles.
const epsilon = 1e-6

// Ray is a half-line from Origin along Dir. Dir need not be normalized, but Distance values are
// in units of |Dir|.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Valid reports whether the ray has a finite origin and a non-zero direction.
func (r Ray) Valid() bool {
	return finite(r.Origin) && finite(r.Dir) && r.Dir.Len() > epsilon
}

// Hit is the nearest intersection of a ray with a surface.
type Hit struct {
	Point    mgl32.Vec3
	Distance float32
	Surface  int // index into the surfaces passed to Nearest
}

// Surface is anything a ray can hit. Intersect returns the ray parameter t of the closest hit in
// front of the origin.
type Surface interface {
	Intersect(r Ray) (t float32, ok bool)
}

// Nearest returns the closest hit among surfaces. ok is false when nothing is hit or the ray is
// degenerate.
func Nearest(r Ray, surfaces ...Surface) (Hit, bool) {
	if !r.Valid() {
		return Hit{}, false
	}
	best := Hit{Distance: math32.Inf(1), Surface: -1}
	for i, s := range surfaces {
		if s == nil {
			continue
		}
		t, ok := s.Intersect(r)
		if !ok || t < 0 || t >= best.Distance {
			continue
		}
		best = Hit{Point: r.At(t), Distance: t, Surface: i}
	}
	if best.Surface < 0 || !finite(best.Point) {
		return Hit{}, false
	}
	return best, true
}

// Plane is an infinite plane through Point with the given Normal.
type Plane struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// Intersect implements Surface. Rays parallel to the plane or pointing away from it miss.
func (p Plane) Intersect(r Ray) (float32, bool) {
	denom := p.Normal.Dot(r.Dir)
	if math32.Abs(denom) < epsilon {
		return 0, false
	}
	t := p.Point.Sub(r.Origin).Dot(p.Normal) / denom
	if t < 0 || math32.IsNaN(t) || math32.IsInf(t, 0) {
		return 0, false
	}
	return t, true
}

// Triangles is a non-indexed triangle soup (9 floats per triangle) placed in the world by Model.
type Triangles struct {
	Positions []float32
	Model     mgl32.Mat4
}

// Intersect implements Surface using Möller–Trumbore on each world-space triangle.
func (m Triangles) Intersect(r Ray) (float32, bool) {
	inv := m.Model.Inv()
	if inv == (mgl32.Mat4{}) {
		return 0, false
	}
	// Test in model space so the soup never has to be transformed.
	local := Ray{
		Origin: inv.Mul4x1(r.Origin.Vec4(1)).Vec3(),
		Dir:    inv.Mul4x1(r.Dir.Vec4(0)).Vec3(),
	}
	best := math32.Inf(1)
	hit := false
	for i := 0; i+8 < len(m.Positions); i += 9 {
		a := mgl32.Vec3{m.Positions[i], m.Positions[i+1], m.Positions[i+2]}
		b := mgl32.Vec3{m.Positions[i+3], m.Positions[i+4], m.Positions[i+5]}
		c := mgl32.Vec3{m.Positions[i+6], m.Positions[i+7], m.Positions[i+8]}
		if t, ok := intersectTriangle(local, a, b, c); ok && t < best {
			best = t
			hit = true
		}
	}
	return best, hit
}

// intersectTriangle is two-sided; t is in units of r.Dir.
func intersectTriangle(r Ray, a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < epsilon*epsilon {
		return 0, false
	}
	invDet := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * invDet
	if t < 0 {
		return 0, false
	}
	return t, true
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
