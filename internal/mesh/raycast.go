package mesh

import (
	gomath "math"

	"github.com/Faultbox/meshkit/internal/picking"
	"github.com/Faultbox/meshkit/pkg/math"
)

// RaycastHit identifies the closest triangle hit by a ray.
type RaycastHit struct {
	Submesh  int
	Triangle int
	Distance float32
	Point    math.Vec3
}

// Raycast tests the ray against every submesh carrying geometric
// info and returns the closest hit. Only triangle-list submeshes
// participate. Single-sided geometry rejects back-facing hits;
// double-sided geometry accepts both windings.
func (rm *RenderingMesh) Raycast(ray picking.Ray) (RaycastHit, bool) {
	best := RaycastHit{Distance: float32(gomath.MaxFloat32)}
	found := false

	for si := range rm.submeshes {
		sub := &rm.submeshes[si]
		gi := sub.Geometric
		if gi == nil || sub.Mode != ModeTriangles {
			continue
		}

		vertexCount := uint32(len(gi.Positions) / 3)
		for ti := 0; ti < gi.TriangleCount(); ti++ {
			i0, i1, i2 := triangleIndices(gi, ti)
			if i0 >= vertexCount || i1 >= vertexCount || i2 >= vertexCount {
				continue
			}

			t, hit := ray.IntersectTriangle(
				gi.Position(i0), gi.Position(i1), gi.Position(i2),
				!gi.DoubleSided)
			if hit && t < best.Distance {
				best = RaycastHit{
					Submesh:  si,
					Triangle: ti,
					Distance: t,
					Point:    ray.At(t),
				}
				found = true
			}
		}
	}
	return best, found
}

// triangleIndices returns the vertex indices of triangle ti; sequential
// triples when the geometry is non-indexed.
func triangleIndices(gi *GeometricInfo, ti int) (uint32, uint32, uint32) {
	base := ti * 3
	if gi.Indices != nil {
		return gi.Indices[base], gi.Indices[base+1], gi.Indices[base+2]
	}
	return uint32(base), uint32(base + 1), uint32(base + 2)
}
