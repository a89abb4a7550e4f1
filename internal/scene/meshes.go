package scene

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"text-stage/internal/renderer"
	"text-stage/internal/textmesh"
)

var errEmptyGeometry = errors.New("scene: empty geometry")

type uploaded struct {
	mesh rl.Mesh
	// The vertex arrays stay referenced for as long as raylib holds pointers into them.
	positions []float32
	normals   []float32
}

// MeshUploader implements renderer.Uploader on the GPU.
type MeshUploader struct {
	meshes map[renderer.MeshHandle]*uploaded
	next   renderer.MeshHandle
}

// NewMeshUploader returns an uploader with no meshes.
func NewMeshUploader() *MeshUploader {
	return &MeshUploader{meshes: make(map[renderer.MeshHandle]*uploaded)}
}

// Upload copies g into a static GPU mesh.
func (u *MeshUploader) Upload(g *textmesh.Geometry) (renderer.MeshHandle, error) {
	if g == nil || g.VertexCount() == 0 {
		return 0, errEmptyGeometry
	}
	m := &uploaded{
		positions: append([]float32(nil), g.Positions...),
		normals:   append([]float32(nil), g.Normals...),
	}
	m.mesh.VertexCount = int32(g.VertexCount())
	m.mesh.TriangleCount = int32(g.TriangleCount())
	m.mesh.Vertices = &m.positions[0]
	m.mesh.Normals = &m.normals[0]
	rl.UploadMesh(&m.mesh, false)

	u.next++
	u.meshes[u.next] = m
	return u.next, nil
}

// Release frees the GPU buffers of h. Unknown handles are ignored.
func (u *MeshUploader) Release(h renderer.MeshHandle) {
	m, ok := u.meshes[h]
	if !ok {
		return
	}
	rl.UnloadMesh(&m.mesh)
	delete(u.meshes, h)
}

// Get returns the raylib mesh for h.
func (u *MeshUploader) Get(h renderer.MeshHandle) (rl.Mesh, bool) {
	m, ok := u.meshes[h]
	if !ok {
		return rl.Mesh{}, false
	}
	return m.mesh, true
}

// Len is the number of live meshes.
func (u *MeshUploader) Len() int {
	return len(u.meshes)
}
