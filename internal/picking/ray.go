// Package picking provides ray casting utilities for intersection tests.
package picking

import (
	gomath "math"

	"github.com/Faultbox/meshkit/pkg/math"
)

// Ray represents a ray in 3D space with origin and normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport
// dimensions. invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Normalized device coords (-1 to 1), Y flipped
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	near := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1.0})
	far := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 1.0})

	return Ray{
		Origin:    near,
		Direction: far.Sub(near).Normalize(),
	}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding
// box given as min/max corners. Returns the distance to intersection
// and whether intersection occurred. A ray starting inside the box
// reports the exit distance.
func (r Ray) IntersectAABB(bmin, bmax math.Vec3) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{bmin.X, bmin.Y, bmin.Z}
	hi := [3]float32{bmax.X, bmax.Y, bmax.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] != 0 {
			t1 := (lo[axis] - origin[axis]) / dir[axis]
			t2 := (hi[axis] - origin[axis]) / dir[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
			return 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle tests ray intersection with a triangle using the
// Moller-Trumbore algorithm. With cullBackface set, triangles facing
// away from the ray are rejected. Returns the distance along the ray
// and whether a hit occurred in front of the origin.
func (r Ray) IntersectTriangle(v0, v1, v2 math.Vec3, cullBackface bool) (t float32, hit bool) {
	const epsilon = 1e-7

	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	p := r.Direction.Cross(e2)
	det := e1.Dot(p)

	if cullBackface {
		if det < epsilon {
			return 0, false
		}
	} else if det > -epsilon && det < epsilon {
		return 0, false
	}

	invDet := 1 / det
	s := r.Origin.Sub(v0)

	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(q) * invDet
	if t < epsilon {
		return 0, false
	}
	return t, true
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
