package textmesh

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

func goRegular(t *testing.T) *sfnt.Font {
	t.Helper()
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("parse goregular: %v", err)
	}
	return f
}

func TestOptionsRounding(t *testing.T) {
	tests := []struct {
		o         Options
		divisions int
		bevel     int
	}{
		{Options{CurveSegments: 0.1, BevelEnabled: true}, 1, 0},
		{Options{CurveSegments: 0, BevelEnabled: true, BevelSegments: 0.3}, 1, 1},
		{Options{CurveSegments: 2.5, BevelEnabled: false, BevelSegments: 3}, 3, 0},
		{Options{CurveSegments: 4, BevelEnabled: true, BevelSegments: 2.1}, 4, 3},
	}
	for _, tt := range tests {
		if got := tt.o.divisions(); got != tt.divisions {
			t.Errorf("%+v divisions = %d, want %d", tt.o, got, tt.divisions)
		}
		if got := tt.o.bevelLayers(); got != tt.bevel {
			t.Errorf("%+v bevelLayers = %d, want %d", tt.o, got, tt.bevel)
		}
	}
}

func TestExtrudeSquare(t *testing.T) {
	shape := Shape{Outer: square(0, 0, 1, 1)}
	tests := []struct {
		name     string
		o        Options
		wantTris int
		min, max mgl32.Vec3
	}{
		{
			name:     "flat",
			o:        Options{Depth: 0.4},
			wantTris: 4 + 4*2,
			min:      mgl32.Vec3{0, 0, 0},
			max:      mgl32.Vec3{1, 1, 0.4},
		},
		{
			name:     "enabled without segments",
			o:        Options{Depth: 0.4, BevelEnabled: true},
			wantTris: 4 + 4*2,
			min:      mgl32.Vec3{0, 0, 0},
			max:      mgl32.Vec3{1, 1, 0.4},
		},
		{
			name:     "one bevel layer",
			o:        Options{Depth: 0.4, BevelEnabled: true, BevelSegments: 0.3, BevelThickness: 0.1, BevelSize: 0.05},
			wantTris: 4 + 4*3*2,
			min:      mgl32.Vec3{-0.05, -0.05, -0.1},
			max:      mgl32.Vec3{1.05, 1.05, 0.5},
		},
		{
			name:     "three bevel layers",
			o:        Options{Depth: 1, BevelEnabled: true, BevelSegments: 3, BevelThickness: 0.2, BevelSize: 0.1},
			wantTris: 4 + 4*7*2,
			min:      mgl32.Vec3{-0.1, -0.1, -0.2},
			max:      mgl32.Vec3{1.1, 1.1, 1.2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Extrude([]Shape{shape}, tt.o)
			if err != nil {
				t.Fatalf("Extrude: %v", err)
			}
			if got := g.TriangleCount(); got != tt.wantTris {
				t.Errorf("TriangleCount = %d, want %d", got, tt.wantTris)
			}
			if !g.Min.ApproxEqualThreshold(tt.min, 1e-4) || !g.Max.ApproxEqualThreshold(tt.max, 1e-4) {
				t.Errorf("bounds = %v..%v, want %v..%v", g.Min, g.Max, tt.min, tt.max)
			}
			if len(g.Normals) != len(g.Positions) {
				t.Fatalf("normals %d != positions %d", len(g.Normals), len(g.Positions))
			}
			for i := 0; i+2 < len(g.Normals); i += 3 {
				n := mgl32.Vec3{g.Normals[i], g.Normals[i+1], g.Normals[i+2]}
				if math32.Abs(n.Len()-1) > 1e-4 {
					t.Fatalf("normal %d has length %v", i/3, n.Len())
				}
			}
		})
	}
}

func TestExtrudeNormalsFaceOut(t *testing.T) {
	g, err := Extrude([]Shape{{Outer: square(0, 0, 1, 1)}}, Options{Depth: 1})
	if err != nil {
		t.Fatalf("Extrude: %v", err)
	}
	centre := mgl32.Vec3{0.5, 0.5, 0.5}
	for i := 0; i < g.TriangleCount(); i++ {
		var c mgl32.Vec3
		for k := 0; k < 3; k++ {
			o := i*9 + k*3
			c = c.Add(mgl32.Vec3{g.Positions[o], g.Positions[o+1], g.Positions[o+2]})
		}
		c = c.Mul(1.0 / 3)
		n := mgl32.Vec3{g.Normals[i*9], g.Normals[i*9+1], g.Normals[i*9+2]}
		if n.Dot(c.Sub(centre)) <= 0 {
			t.Errorf("triangle %d normal %v points inwards", i, n)
		}
	}
}

func TestBuild(t *testing.T) {
	f := goRegular(t)
	g, err := Build(f, "TAI CHI", Options{Size: 0.5, Depth: 0.4, CurveSegments: 0.1, BevelEnabled: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.TriangleCount() == 0 {
		t.Fatal("no triangles")
	}
	if !g.Min.Add(g.Max).ApproxEqualThreshold(mgl32.Vec3{}, 1e-4) {
		t.Errorf("bounds %v..%v are not centred", g.Min, g.Max)
	}
	if d := g.Max.Z() - g.Min.Z(); math32.Abs(d-0.4) > 1e-4 {
		t.Errorf("depth = %v, want 0.4", d)
	}
	if w, h := g.Max.X()-g.Min.X(), g.Max.Y()-g.Min.Y(); w <= h {
		t.Errorf("width %v not greater than height %v for a one-line string", w, h)
	}
	if len(g.Missing) != 0 {
		t.Errorf("Missing = %q, want none", g.Missing)
	}
}

func TestBuildScalesWithSize(t *testing.T) {
	f := goRegular(t)
	small, err := Build(f, "TAI CHI", Options{Size: 0.5, Depth: 0.4})
	if err != nil {
		t.Fatal(err)
	}
	large, err := Build(f, "TAI CHI", Options{Size: 2, Depth: 0.4})
	if err != nil {
		t.Fatal(err)
	}
	ws := small.Max.X() - small.Min.X()
	wl := large.Max.X() - large.Min.X()
	if math32.Abs(wl/ws-4) > 1e-2 {
		t.Errorf("width ratio = %v, want 4", wl/ws)
	}
}

func TestBuildCurveSegments(t *testing.T) {
	f := goRegular(t)
	coarse, err := Build(f, "O", Options{Size: 1, Depth: 0.1, CurveSegments: 1})
	if err != nil {
		t.Fatal(err)
	}
	fine, err := Build(f, "O", Options{Size: 1, Depth: 0.1, CurveSegments: 4})
	if err != nil {
		t.Fatal(err)
	}
	if fine.TriangleCount() <= coarse.TriangleCount() {
		t.Errorf("fine %d triangles, coarse %d; want more with more segments",
			fine.TriangleCount(), coarse.TriangleCount())
	}
}

func TestBuildErrors(t *testing.T) {
	f := goRegular(t)
	tests := []struct {
		name string
		font *sfnt.Font
		text string
		o    Options
		want error
	}{
		{"no font", nil, "A", Options{Size: 1}, ErrNoFont},
		{"blank", f, "   ", Options{Size: 1}, ErrNoGlyphs},
		{"empty", f, "", Options{Size: 1}, ErrNoGlyphs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.font, tt.text, tt.o)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := Build(f, "A", Options{Size: 0}); err == nil {
		t.Error("zero size accepted")
	}
}

func TestBuildMissingGlyph(t *testing.T) {
	f := goRegular(t)
	g, err := Build(f, "A漢", Options{Size: 1, Depth: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Missing) != 1 || g.Missing[0] != '漢' {
		t.Errorf("Missing = %q, want [漢]", g.Missing)
	}
}

func TestBuildMultiline(t *testing.T) {
	f := goRegular(t)
	one, err := Build(f, "AB", Options{Size: 1, Depth: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	two, err := Build(f, "AB\nAB", Options{Size: 1, Depth: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if h1, h2 := one.Max.Y()-one.Min.Y(), two.Max.Y()-two.Min.Y(); h2 <= 1.5*h1 {
		t.Errorf("two-line height %v not clearly taller than %v", h2, h1)
	}
}
