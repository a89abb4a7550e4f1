package textmesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rclancey/earcut"
)

const areaEpsilon = 1e-12

// Triangulate fills the polygon outer minus holes. The result is a list of counter-clockwise
// index triples into the concatenation outer, holes[0], holes[1], ... Holes with fewer than
// three points are ignored, and degenerate triangles are dropped.
func Triangulate(outer []mgl32.Vec2, holes [][]mgl32.Vec2) ([]int, error) {
	n := len(outer)
	for _, h := range holes {
		n += len(h)
	}
	pts := make([]mgl32.Vec2, 0, n)
	pts = append(pts, outer...)

	// earcut only sees the contours it is given; skipped holes keep their slots in pts so the
	// returned indices still address the caller's concatenation.
	flat := make([]float64, 0, 2*n)
	index := make([]int, 0, n)
	add := func(c []mgl32.Vec2, base int) {
		for i, p := range c {
			flat = append(flat, float64(p.X()), float64(p.Y()))
			index = append(index, base+i)
		}
	}
	add(outer, 0)
	var holeStarts []int
	for _, h := range holes {
		base := len(pts)
		pts = append(pts, h...)
		if len(h) < 3 {
			continue
		}
		holeStarts = append(holeStarts, len(index))
		add(h, base)
	}

	raw, err := earcut.Earcut(flat, holeStarts, 2)
	if err != nil {
		return nil, fmt.Errorf("triangulate: %w", err)
	}
	tris := make([]int, 0, len(raw))
	for i := 0; i+2 < len(raw); i += 3 {
		a, b, c := index[raw[i]], index[raw[i+1]], index[raw[i+2]]
		switch area := cross(pts[a], pts[b], pts[c]); {
		case area > areaEpsilon:
			tris = append(tris, a, b, c)
		case area < -areaEpsilon:
			tris = append(tris, a, c, b)
		}
	}
	return tris, nil
}

// cross is twice the signed area of triangle abc.
func cross(a, b, c mgl32.Vec2) float32 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}
