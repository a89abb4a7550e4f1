package textmesh

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// layout is the flattened outline of a text run in model units, y up.
type layout struct {
	contours [][]mgl32.Vec2
	missing  []rune
}

// outlines lays out text on one or more lines starting at the origin and flattens every glyph
// outline into closed polygons. Curves are split into divisions straight segments.
func outlines(f *sfnt.Font, text string, size float32, divisions int) (layout, error) {
	var (
		buf  sfnt.Buffer
		out  layout
		upem = f.UnitsPerEm()
		// Load at one pixel per font unit; scale converts font units to model units.
		ppem  = fixed.I(int(upem))
		scale = size / float32(upem)
	)
	metrics, err := f.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return out, err
	}
	lineHeight := unit(metrics.Height) * scale

	var (
		penX, penY float32
		prev       sfnt.GlyphIndex
		hasPrev    bool
	)
	for _, r := range text {
		if r == '\n' {
			penX, penY = 0, penY-lineHeight
			hasPrev = false
			continue
		}
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return out, err
		}
		if idx == 0 {
			out.missing = append(out.missing, r)
			hasPrev = false
			continue
		}
		if hasPrev {
			k, err := f.Kern(&buf, prev, idx, ppem, font.HintingNone)
			if err != nil && !errors.Is(err, sfnt.ErrNotFound) {
				return out, err
			}
			penX += unit(k) * scale
		}

		segs, err := f.LoadGlyph(&buf, idx, ppem, nil)
		if err != nil {
			return out, err
		}
		out.contours = append(out.contours, flatten(segs, penX, penY, scale, divisions)...)

		adv, err := f.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
		if err != nil {
			return out, err
		}
		penX += unit(adv) * scale
		prev, hasPrev = idx, true
	}
	return out, nil
}

func unit(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// flatten converts sfnt segments (y down) into closed polygons (y up) offset by the pen.
func flatten(segs sfnt.Segments, penX, penY, scale float32, divisions int) [][]mgl32.Vec2 {
	pt := func(p fixed.Point26_6) mgl32.Vec2 {
		return mgl32.Vec2{penX + unit(p.X)*scale, penY - unit(p.Y)*scale}
	}
	var (
		out [][]mgl32.Vec2
		cur []mgl32.Vec2
	)
	flush := func() {
		if c := cleanContour(cur); len(c) >= 3 {
			out = append(out, c)
		}
		cur = nil
	}
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			cur = append(cur, pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			cur = append(cur, pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			if len(cur) == 0 {
				continue
			}
			p0, p1, p2 := cur[len(cur)-1], pt(s.Args[0]), pt(s.Args[1])
			for i := 1; i <= divisions; i++ {
				t := float32(i) / float32(divisions)
				u := 1 - t
				cur = append(cur, p0.Mul(u*u).Add(p1.Mul(2*u*t)).Add(p2.Mul(t*t)))
			}
		case sfnt.SegmentOpCubeTo:
			if len(cur) == 0 {
				continue
			}
			p0, p1, p2, p3 := cur[len(cur)-1], pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2])
			for i := 1; i <= divisions; i++ {
				t := float32(i) / float32(divisions)
				u := 1 - t
				cur = append(cur, p0.Mul(u*u*u).Add(p1.Mul(3*u*u*t)).Add(p2.Mul(3*u*t*t)).Add(p3.Mul(t*t*t)))
			}
		}
	}
	flush()
	return out
}

// cleanContour drops repeated points, including a closing point equal to the first.
func cleanContour(c []mgl32.Vec2) []mgl32.Vec2 {
	out := make([]mgl32.Vec2, 0, len(c))
	for _, p := range c {
		if len(out) > 0 && samePoint(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && samePoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	if len(out) < 3 || signedArea(out) == 0 {
		return nil
	}
	return out
}

func samePoint(a, b mgl32.Vec2) bool {
	return a.Sub(b).LenSqr() < 1e-14
}
