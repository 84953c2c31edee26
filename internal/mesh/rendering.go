package mesh

import (
	"github.com/Faultbox/meshkit/internal/gpu"
	"github.com/Faultbox/meshkit/pkg/math"
)

// GeometricInfo is CPU-side raycast geometry for one submesh:
// decoded positions and indices, separate from the GPU draw path.
type GeometricInfo struct {
	Positions   []float32 // tightly packed xyz triples
	Indices     []uint32  // nil for non-indexed primitives
	DoubleSided bool
}

// TriangleCount returns the number of triangles the info describes.
func (gi *GeometricInfo) TriangleCount() int {
	if gi.Indices != nil {
		return len(gi.Indices) / 3
	}
	return len(gi.Positions) / 9
}

// Position returns vertex i as a vector. The caller must keep i below
// len(Positions)/3.
func (gi *GeometricInfo) Position(i uint32) math.Vec3 {
	o := i * 3
	return math.Vec3{X: gi.Positions[o], Y: gi.Positions[o+1], Z: gi.Positions[o+2]}
}

// RenderingSubmesh is the GPU-ready materialization of one primitive.
// Buffer references are non-owning: the RenderingMesh that produced
// the submesh owns them, and the submesh must not outlive it.
type RenderingSubmesh struct {
	VertexBuffers []gpu.Buffer
	Attributes    []Attribute
	Mode          PrimitiveMode

	// IndexBuffer is nil for non-indexed draws.
	IndexBuffer gpu.Buffer
	IndexUnit   IndexUnit
	IndexCount  uint32

	// VertexCount is the vertex count of the first referenced bundle,
	// used for non-indexed draws.
	VertexCount uint32

	Geometric *GeometricInfo
}

// RenderingMesh exclusively owns the GPU buffers created during one
// materialization pass plus the submesh descriptors that reference
// them.
type RenderingMesh struct {
	vertexBuffers []gpu.Buffer
	indexBuffers  []gpu.Buffer
	submeshes     []RenderingSubmesh
}

// Submeshes returns the submesh descriptors in primitive order.
func (rm *RenderingMesh) Submeshes() []RenderingSubmesh {
	return rm.submeshes
}

// VertexBufferCount returns the number of owned vertex buffers.
func (rm *RenderingMesh) VertexBufferCount() int {
	return len(rm.vertexBuffers)
}

// IndexBufferCount returns the number of owned index buffers.
func (rm *RenderingMesh) IndexBufferCount() int {
	return len(rm.indexBuffers)
}

// Destroy releases every owned GPU buffer and clears the submesh
// list. Safe to call more than once; the mesh must not be used after.
func (rm *RenderingMesh) Destroy() {
	for _, b := range rm.vertexBuffers {
		b.Destroy()
	}
	for _, b := range rm.indexBuffers {
		b.Destroy()
	}
	rm.vertexBuffers = nil
	rm.indexBuffers = nil
	rm.submeshes = nil
}
