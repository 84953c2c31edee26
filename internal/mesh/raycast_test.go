package mesh

import (
	"testing"

	"github.com/Faultbox/meshkit/internal/gpu/gputest"
	"github.com/Faultbox/meshkit/internal/picking"
	"github.com/Faultbox/meshkit/pkg/math"
)

func materializeTestMesh(t *testing.T, doubleSided bool) *RenderingMesh {
	t.Helper()
	s, buf := buildTestData()
	s.Primitives[0].GeometricInfo.DoubleSided = doubleSided

	rm, err := BuildRenderingMesh(s, buf, gputest.NewDevice())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return rm
}

func TestRaycastHit(t *testing.T) {
	rm := materializeTestMesh(t, false)

	// Straight down the -Z axis onto the triangle in the XY plane
	ray := picking.Ray{
		Origin:    math.Vec3{X: 0.25, Y: 0.25, Z: 5},
		Direction: math.Vec3{X: 0, Y: 0, Z: -1},
	}

	hit, ok := rm.Raycast(ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Submesh != 0 || hit.Triangle != 0 {
		t.Errorf("hit submesh/triangle = %d/%d, want 0/0", hit.Submesh, hit.Triangle)
	}
	if hit.Distance < 4.99 || hit.Distance > 5.01 {
		t.Errorf("hit distance = %f, want ~5", hit.Distance)
	}
	if abs32(hit.Point.Z) > 0.001 {
		t.Errorf("hit point Z = %f, want ~0", hit.Point.Z)
	}
}

func TestRaycastMiss(t *testing.T) {
	rm := materializeTestMesh(t, false)

	ray := picking.Ray{
		Origin:    math.Vec3{X: 5, Y: 5, Z: 5},
		Direction: math.Vec3{X: 0, Y: 0, Z: -1},
	}
	if _, ok := rm.Raycast(ray); ok {
		t.Error("ray outside the triangle should miss")
	}
}

func TestRaycastBackfaceCulling(t *testing.T) {
	// The test triangle winds counter-clockwise seen from +Z, so a ray
	// arriving from -Z sees its back face.
	ray := picking.Ray{
		Origin:    math.Vec3{X: 0.25, Y: 0.25, Z: -5},
		Direction: math.Vec3{X: 0, Y: 0, Z: 1},
	}

	single := materializeTestMesh(t, false)
	if _, ok := single.Raycast(ray); ok {
		t.Error("single-sided geometry should reject back-facing hits")
	}

	double := materializeTestMesh(t, true)
	if _, ok := double.Raycast(ray); !ok {
		t.Error("double-sided geometry should accept back-facing hits")
	}
}

func TestRaycastIgnoresSubmeshWithoutGeometry(t *testing.T) {
	s, buf := buildTestData()
	s.Primitives[0].GeometricInfo = nil

	rm, err := BuildRenderingMesh(s, buf, gputest.NewDevice())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	ray := picking.Ray{
		Origin:    math.Vec3{X: 0.25, Y: 0.25, Z: 5},
		Direction: math.Vec3{X: 0, Y: 0, Z: -1},
	}
	if _, ok := rm.Raycast(ray); ok {
		t.Error("submeshes without geometric info should not register hits")
	}
}

func TestGeometricInfoNonIndexed(t *testing.T) {
	gi := &GeometricInfo{
		Positions: []float32{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
		},
	}
	if got := gi.TriangleCount(); got != 1 {
		t.Errorf("TriangleCount() = %d, want 1", got)
	}

	i0, i1, i2 := triangleIndices(gi, 0)
	if i0 != 0 || i1 != 1 || i2 != 2 {
		t.Errorf("non-indexed triangle = (%d,%d,%d), want (0,1,2)", i0, i1, i2)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
