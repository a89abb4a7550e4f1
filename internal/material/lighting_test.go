package material

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"text-stage/internal/params"
)

func luminance(c params.RGB) int {
	return int(c.R) + int(c.G) + int(c.B)
}

func TestShadeOrdering(t *testing.T) {
	l := DefaultLighting()
	green := params.MustHex("#27BB80")
	up := l.Shade(mgl32.Vec3{0, 1, 0}, green)
	side := l.Shade(mgl32.Vec3{1, 0, 0}, green)
	down := l.Shade(mgl32.Vec3{0, -1, 0}, green)
	if !(luminance(up) > luminance(side) && luminance(side) > luminance(down)) {
		t.Errorf("up %v, side %v, down %v: want brightness decreasing", up, side, down)
	}
}

func TestShadeFlatRig(t *testing.T) {
	// Ambient 0.2 plus a uniform hemisphere 0.4 and no key light scales every channel by 0.6.
	l := Lighting{
		Ambient:             mgl32.Vec3{1, 1, 1},
		AmbientIntensity:    0.2,
		SkyColor:            mgl32.Vec3{1, 1, 1},
		GroundColor:         mgl32.Vec3{1, 1, 1},
		HemisphereIntensity: 0.4,
	}
	got := l.Shade(mgl32.Vec3{0, 0, 1}, params.RGB{R: 255, G: 100, B: 0})
	want := params.RGB{R: 153, G: 60, B: 0}
	if got != want {
		t.Errorf("Shade = %v, want %v", got, want)
	}
}

func TestShadeClamps(t *testing.T) {
	l := DefaultLighting()
	l.LightIntensity = 10
	got := l.Shade(mgl32.Vec3{0.5, 1, 0.5}, params.RGB{R: 255, G: 255, B: 255})
	if got != (params.RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("Shade = %v, want white", got)
	}
	if got := l.Shade(mgl32.Vec3{}, params.RGB{}); got != (params.RGB{}) {
		t.Errorf("black albedo shaded to %v", got)
	}
}

func TestUniformsFoldIntensity(t *testing.T) {
	l := DefaultLighting()
	view := mgl32.Vec3{0, 0, 5}
	got := make(map[string]mgl32.Vec3)
	for _, u := range l.Uniforms(view) {
		got[u.Name] = u.Value
	}
	want := map[string]mgl32.Vec3{
		"viewPos":     view,
		"ambient":     {0.2, 0.2, 0.2},
		"skyColor":    {0.4, 0.4, 0.4},
		"groundColor": {0.108, 0.108, 0.108},
	}
	for name, w := range want {
		if !got[name].ApproxEqualThreshold(w, 1e-5) {
			t.Errorf("%s = %v, want %v", name, got[name], w)
		}
	}
	for _, name := range []string{"lightDir", "lightColor"} {
		if _, ok := got[name]; !ok {
			t.Errorf("uniform %s missing", name)
		}
	}
}
