// Package material is the lit material for the text mesh: a dim ambient term, a sky/ground
// hemisphere term, and one directional diffuse light. There is no specular highlight.
package material

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"text-stage/internal/params"
)

// Lighting holds the light rig. Colours are linear RGB in [0, 1].
type Lighting struct {
	Ambient             mgl32.Vec3 `yaml:"ambient"`
	AmbientIntensity    float32    `yaml:"ambient_intensity"`
	SkyColor            mgl32.Vec3 `yaml:"sky_color"`
	GroundColor         mgl32.Vec3 `yaml:"ground_color"`
	HemisphereIntensity float32    `yaml:"hemisphere_intensity"`
	// LightDir points from the surface towards the light.
	LightDir       mgl32.Vec3 `yaml:"light_dir"`
	LightColor     mgl32.Vec3 `yaml:"light_color"`
	LightIntensity float32    `yaml:"light_intensity"`
}

// DefaultLighting is ambient 0.2 and hemisphere 0.4 white light, plus a soft key light from
// above-right so the extruded sides read.
func DefaultLighting() Lighting {
	return Lighting{
		Ambient:             mgl32.Vec3{1, 1, 1},
		AmbientIntensity:    0.2,
		SkyColor:            mgl32.Vec3{1, 1, 1},
		GroundColor:         mgl32.Vec3{0.27, 0.27, 0.27},
		HemisphereIntensity: 0.4,
		LightDir:            mgl32.Vec3{0.5, 1, 0.5},
		LightColor:          mgl32.Vec3{1.0, 0.98, 0.95},
		LightIntensity:      0.5,
	}
}

// Shade is the fragment shader's colour for a unit normal n and base colour albedo. It exists so
// the lighting model can be checked without a GPU.
func (l Lighting) Shade(n mgl32.Vec3, albedo params.RGB) params.RGB {
	base := mgl32.Vec3{float32(albedo.R) / 255, float32(albedo.G) / 255, float32(albedo.B) / 255}
	if n.Len() > 0 {
		n = n.Normalize()
	}
	light := l.irradiance(n)
	return params.RGB{
		R: toByte(base.X() * light.X()),
		G: toByte(base.Y() * light.Y()),
		B: toByte(base.Z() * light.Z()),
	}
}

func (l Lighting) irradiance(n mgl32.Vec3) mgl32.Vec3 {
	amb := l.Ambient.Mul(l.AmbientIntensity)
	w := 0.5*n.Y() + 0.5
	hemi := l.GroundColor.Mul(1 - w).Add(l.SkyColor.Mul(w)).Mul(l.HemisphereIntensity)
	var diffuse mgl32.Vec3
	if l.LightDir.Len() > 0 {
		ndl := math32.Max(n.Dot(l.LightDir.Normalize()), 0)
		diffuse = l.LightColor.Mul(ndl * l.LightIntensity)
	}
	return amb.Add(hemi).Add(diffuse)
}

func toByte(v float32) uint8 {
	return uint8(math32.Round(math32.Max(0, math32.Min(1, v)) * 255))
}
