package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"text-stage/internal/material"
	"text-stage/internal/params"
)

// litMaterial owns the raylib shader and material for the text mesh.
type litMaterial struct {
	mtl      rl.Material
	shader   rl.Shader
	lighting material.Lighting
	lit      bool
}

// loadMaterial compiles the lit shader. When compilation fails the raylib default (unlit)
// shader is used.
func loadMaterial(l material.Lighting) *litMaterial {
	m := &litMaterial{mtl: rl.LoadMaterialDefault(), lighting: l}
	shader := rl.LoadShaderFromMemory(material.VertexShader, material.FragmentShader)
	if rl.IsShaderValid(shader) {
		m.shader = shader
		m.mtl.Shader = shader
		m.lit = true
	}
	return m
}

// apply sets this frame's uniforms and the base colour.
func (m *litMaterial) apply(viewPos mgl32.Vec3, c params.RGB) rl.Material {
	if albedo := m.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(c.R, c.G, c.B, 255)
	}
	if !m.lit {
		return m.mtl
	}
	for _, u := range m.lighting.Uniforms(viewPos) {
		if loc := rl.GetShaderLocation(m.shader, u.Name); loc >= 0 {
			val := [3]float32{u.Value[0], u.Value[1], u.Value[2]}
			rl.SetShaderValueV(m.shader, loc, val[:], rl.ShaderUniformVec3, 1)
		}
	}
	return m.mtl
}

// unload frees the shader. The default material's textures are owned by raylib.
func (m *litMaterial) unload() {
	if m.lit {
		rl.UnloadShader(m.shader)
		m.lit = false
	}
}
