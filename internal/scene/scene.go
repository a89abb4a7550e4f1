// Package scene is the raylib side of the viewer: it syncs the raylib camera with the orbit
// controller, uploads text meshes and draws the grid and the text.
package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"text-stage/internal/camera"
	"text-stage/internal/material"
	"text-stage/internal/params"
	"text-stage/internal/renderer"
)

const (
	gridExtent     = 10
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 40
	gridMajorAlpha = 100
	axisLineAlpha  = 200
)

// Background is the clear colour.
var Background = rl.NewColor(18, 18, 22, 255)

// Scene draws the 3D world through an orbit camera.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
	orbit       *camera.Orbit
	meshes      *MeshUploader
	material    *litMaterial
}

// New returns a scene viewed through orbit. The material is loaded here, so call it after the
// window exists.
func New(orbit *camera.Orbit, meshes *MeshUploader, l material.Lighting) *Scene {
	s := &Scene{
		orbit:       orbit,
		meshes:      meshes,
		material:    loadMaterial(l),
		GridVisible: true,
	}
	s.Camera.Projection = rl.CameraPerspective
	s.sync()
	return s
}

// Lit reports whether the lit shader compiled.
func (s *Scene) Lit() bool {
	return s.material.lit
}

// SetGridVisible sets whether the ground grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// sync copies the orbit pose into the raylib camera.
func (s *Scene) sync() {
	s.Camera.Position = vec3(s.orbit.Position())
	s.Camera.Target = vec3(s.orbit.Target())
	s.Camera.Up = vec3(s.orbit.Up())
	s.Camera.Fovy = s.orbit.Fovy()
}

// DrawScene renders the grid and the text mesh h with model transform and base colour c.
func (s *Scene) DrawScene(h renderer.MeshHandle, model mgl32.Mat4, c params.RGB) {
	s.sync()
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawGrid()
	}
	if mesh, ok := s.meshes.Get(h); ok {
		mtl := s.material.apply(s.orbit.Position(), c)
		rl.DrawMesh(mesh, mtl, Matrix(model))
	}
	rl.EndMode3D()
}

// Close frees the material.
func (s *Scene) Close() {
	s.material.unload()
}

// Matrix converts a column-major mgl32 matrix to raylib's layout. NewMatrix takes rows.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.NewMatrix(
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	)
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// drawGrid draws the XZ grid below the text with major/minor lines and the three axes.
func drawGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), -1, -gridExtent
		end.X, end.Y, end.Z = float32(i), -1, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Z = -gridExtent, float32(i)
		end.X, end.Z = gridExtent, float32(i)
		rl.DrawLine3D(start, end, c)
	}
	rl.DrawLine3D(rl.NewVector3(-gridExtent, -1, 0), rl.NewVector3(gridExtent, -1, 0), axisX)
	rl.DrawLine3D(rl.NewVector3(0, -1, -gridExtent), rl.NewVector3(0, -1, gridExtent), axisZ)
}
