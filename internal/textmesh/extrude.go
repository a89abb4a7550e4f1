package textmesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// maxMiter caps how far a sharp corner is pushed out by the bevel.
const maxMiter = 2

// layer is one ring of the extrusion: the depth and how far the contour is pushed outwards.
type layer struct {
	z, offset float32
}

// layers returns the rings from the back cap to the front cap: back bevel, body, front bevel.
func (o Options) layers() []layer {
	n := o.bevelLayers()
	var thickness, size float32
	if o.BevelEnabled {
		thickness, size = o.BevelThickness, o.BevelSize
	}
	ls := make([]layer, 0, 2*n+2)
	for b := 0; b < n; b++ {
		s, c := math32.Sincos(float32(b) / float32(n) * math32.Pi / 2)
		ls = append(ls, layer{z: -thickness * c, offset: size * s})
	}
	ls = append(ls, layer{z: 0, offset: size}, layer{z: o.Depth, offset: size})
	for b := n - 1; b >= 0; b-- {
		s, c := math32.Sincos(float32(b) / float32(n) * math32.Pi / 2)
		ls = append(ls, layer{z: o.Depth + thickness*c, offset: size * s})
	}
	return ls
}

// addShape extrudes one shape into the triangle soup.
func (g *Geometry) addShape(s Shape, o Options) error {
	contours := append([][]mgl32.Vec2{s.Outer}, s.Holes...)
	var (
		pts   []mgl32.Vec2
		moves []mgl32.Vec2
		rings [][2]int // start, length
	)
	for _, c := range contours {
		rings = append(rings, [2]int{len(pts), len(c)})
		for i := range c {
			pts = append(pts, c[i])
			moves = append(moves, bevelVec(c, i))
		}
	}
	tris, err := Triangulate(s.Outer, s.Holes)
	if err != nil {
		return err
	}
	ls := o.layers()
	at := func(l, i int) mgl32.Vec3 {
		v := pts[i].Add(moves[i].Mul(ls[l].offset))
		return mgl32.Vec3{v.X(), v.Y(), ls[l].z}
	}

	last := len(ls) - 1
	for t := 0; t+2 < len(tris); t += 3 {
		a, b, c := tris[t], tris[t+1], tris[t+2]
		g.tri(at(0, c), at(0, b), at(0, a))
		g.tri(at(last, a), at(last, b), at(last, c))
	}
	for _, r := range rings {
		start, n := r[0], r[1]
		for j := 0; j < n; j++ {
			i0, i1 := start+j, start+(j+1)%n
			for l := 0; l < last; l++ {
				a, b := at(l, i0), at(l, i1)
				c, d := at(l+1, i1), at(l+1, i0)
				g.tri(a, b, c)
				g.tri(a, c, d)
			}
		}
	}
	return nil
}

// bevelVec is the direction vertex i of contour c moves so that both adjacent edges shift
// outwards, away from the filled side, by one unit.
func bevelVec(c []mgl32.Vec2, i int) mgl32.Vec2 {
	n := len(c)
	prev, cur, next := c[(i+n-1)%n], c[i], c[(i+1)%n]
	n1 := outward(cur.Sub(prev))
	n2 := outward(next.Sub(cur))
	d := 1 + n1.Dot(n2)
	if d < 1e-6 {
		return n1
	}
	v := n1.Add(n2).Mul(1 / d)
	if v.Len() > maxMiter {
		v = v.Normalize().Mul(maxMiter)
	}
	return v
}

// outward is the right-hand unit normal of edge e. For a counter-clockwise outer contour and
// clockwise holes it points away from the filled region.
func outward(e mgl32.Vec2) mgl32.Vec2 {
	if e.Len() == 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{e.Y(), -e.X()}.Normalize()
}

// tri appends one flat-shaded triangle, skipping degenerate ones.
func (g *Geometry) tri(a, b, c mgl32.Vec3) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < areaEpsilon {
		return
	}
	n = n.Normalize()
	for _, p := range [3]mgl32.Vec3{a, b, c} {
		g.Positions = append(g.Positions, p.X(), p.Y(), p.Z())
		g.Normals = append(g.Normals, n.X(), n.Y(), n.Z())
	}
}
