package textmesh

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape is one filled region: a counter-clockwise outer contour and the clockwise holes
// directly inside it.
type Shape struct {
	Outer []mgl32.Vec2
	Holes [][]mgl32.Vec2
}

// groupContours classifies contours by how many others contain them. Even depth is an outer
// contour, odd depth a hole of the smallest enclosing outer.
func groupContours(contours [][]mgl32.Vec2) []Shape {
	n := len(contours)
	depth := make([]int, n)
	area := make([]float32, n)
	for i, c := range contours {
		area[i] = math32.Abs(signedArea(c))
		for j, o := range contours {
			if i != j && pointInPolygon(c[0], o) {
				depth[i]++
			}
		}
	}

	shapeOf := make(map[int]int)
	var shapes []Shape
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Outers first so every hole finds its parent.
	sort.SliceStable(order, func(a, b int) bool { return depth[order[a]] < depth[order[b]] })

	for _, i := range order {
		c := contours[i]
		if depth[i]%2 == 0 {
			shapeOf[i] = len(shapes)
			shapes = append(shapes, Shape{Outer: oriented(c, true)})
			continue
		}
		parent := -1
		for j, o := range contours {
			if j == i || depth[j] != depth[i]-1 || !pointInPolygon(c[0], o) {
				continue
			}
			if parent < 0 || area[j] < area[parent] {
				parent = j
			}
		}
		s, ok := shapeOf[parent]
		if !ok {
			continue
		}
		shapes[s].Holes = append(shapes[s].Holes, oriented(c, false))
	}
	return shapes
}

// oriented returns c wound counter-clockwise when ccw is set, clockwise otherwise.
func oriented(c []mgl32.Vec2, ccw bool) []mgl32.Vec2 {
	out := append([]mgl32.Vec2(nil), c...)
	if (signedArea(out) > 0) != ccw {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// signedArea is positive for counter-clockwise polygons.
func signedArea(c []mgl32.Vec2) float32 {
	var a float32
	for i := range c {
		p, q := c[i], c[(i+1)%len(c)]
		a += p.X()*q.Y() - q.X()*p.Y()
	}
	return a / 2
}

// pointInPolygon is the even-odd crossing test.
func pointInPolygon(p mgl32.Vec2, poly []mgl32.Vec2) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y() > p.Y()) != (b.Y() > p.Y()) {
			x := a.X() + (p.Y()-a.Y())*(b.X()-a.X())/(b.Y()-a.Y())
			if p.X() < x {
				in = !in
			}
		}
	}
	return in
}
