package main

import (
	"encoding/binary"
	"fmt"
	gomath "math"

	"github.com/Faultbox/meshkit/internal/mesh"
	"github.com/Faultbox/meshkit/pkg/math"
)

// geometry is raw interleaved demo geometry before packing:
// 6 floats per vertex (position + normal) and u16 triangle indices.
type geometry struct {
	verts   []float32
	indices []uint16
}

func (g geometry) vertexCount() int {
	return len(g.verts) / 6
}

// buildScene packs the named demo scene into a structural descriptor
// and a single byte buffer, the same pair an asset loader would hand
// to a mesh asset.
func buildScene(name string, doubleSided bool) (*mesh.Struct, []byte, error) {
	switch name {
	case "cube":
		s, buf := packScene(cubeGeometry(), doubleSided)
		return s, buf, nil
	case "plane":
		s, buf := packScene(planeGeometry(-1.5), doubleSided)
		return s, buf, nil
	case "merged":
		s, buf := packMergedScene(cubeGeometry(), planeGeometry(-1.5), doubleSided)
		return s, buf, nil
	}
	return nil, nil, fmt.Errorf("unknown scene %q", name)
}

func cubeGeometry() geometry {
	// 24 vertices, 4 per face, so each face gets a flat normal
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	}

	var g geometry
	for fi, f := range faces {
		for _, c := range f.corners {
			g.verts = append(g.verts, c[0], c[1], c[2], f.normal[0], f.normal[1], f.normal[2])
		}
		base := uint16(fi * 4)
		g.indices = append(g.indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

func planeGeometry(y float32) geometry {
	const ext = 4.0
	return geometry{
		verts: []float32{
			-ext, y, -ext, 0, 1, 0,
			-ext, y, ext, 0, 1, 0,
			ext, y, ext, 0, 1, 0,
			ext, y, -ext, 0, 1, 0,
		},
		indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

// packScene lays one geometry out as [vertices][indices][pad][raycast
// positions] and describes it with a single-bundle, single-primitive
// structural descriptor.
func packScene(g geometry, doubleSided bool) (*mesh.Struct, []byte) {
	nv := g.vertexCount()
	vertBytes := nv * 24
	idxBytes := len(g.indices) * 2
	geoOff := align4(vertBytes + idxBytes)
	geoBytes := nv * 12

	buf := make([]byte, geoOff+geoBytes)
	putFloats(buf[0:], g.verts)
	for i, idx := range g.indices {
		binary.LittleEndian.PutUint16(buf[vertBytes+i*2:], idx)
	}
	putFloats(buf[geoOff:], positionsOf(g))

	bmin, bmax := boundsOf(g)
	s := &mesh.Struct{
		Bundles: []mesh.VertexBundle{
			{
				Data:        mesh.BufferRange{Offset: 0, Length: uint32(vertBytes)},
				VertexCount: uint32(nv),
				Attributes:  demoAttributes(),
			},
		},
		Primitives: []mesh.Primitive{
			{
				BundleIndices: []uint32{0},
				Mode:          mesh.ModeTriangles,
				Indices: &mesh.IndexView{
					Range: mesh.BufferRange{Offset: uint32(vertBytes), Length: uint32(idxBytes)},
					Unit:  mesh.IndexU16,
				},
				GeometricInfo: &mesh.GeometricRange{
					Range:       mesh.BufferRange{Offset: uint32(geoOff), Length: uint32(geoBytes)},
					DoubleSided: doubleSided,
				},
			},
		},
		MinPosition: &bmin,
		MaxPosition: &bmax,
	}
	return s, buf
}

// packMergedScene concatenates two compatible geometries section by
// section ([vertsA vertsB][idxA idxB][geoA geoB]) and merges their
// descriptors. The physical concatenation is the caller's side of the
// merge contract: Merge itself only folds the metadata.
func packMergedScene(a, b geometry, doubleSided bool) (*mesh.Struct, []byte) {
	nvA, nvB := a.vertexCount(), b.vertexCount()

	// b draws from the shared bundle after a's vertices
	rebased := make([]uint16, len(b.indices))
	for i, idx := range b.indices {
		rebased[i] = idx + uint16(nvA)
	}

	vertsLenA, vertsLenB := nvA*24, nvB*24
	idxOff := vertsLenA + vertsLenB
	idxLenA, idxLenB := len(a.indices)*2, len(rebased)*2
	geoOff := align4(idxOff + idxLenA + idxLenB)
	geoLenA, geoLenB := nvA*12, nvB*12

	buf := make([]byte, geoOff+geoLenA+geoLenB)
	putFloats(buf[0:], a.verts)
	putFloats(buf[vertsLenA:], b.verts)
	for i, idx := range a.indices {
		binary.LittleEndian.PutUint16(buf[idxOff+i*2:], idx)
	}
	for i, idx := range rebased {
		binary.LittleEndian.PutUint16(buf[idxOff+idxLenA+i*2:], idx)
	}
	putFloats(buf[geoOff:], positionsOf(a))
	putFloats(buf[geoOff+geoLenA:], positionsOf(b))

	aMin, aMax := boundsOf(a)
	bMin, bMax := boundsOf(b)

	structA := &mesh.Struct{
		Bundles: []mesh.VertexBundle{
			{
				Data:        mesh.BufferRange{Offset: 0, Length: uint32(vertsLenA)},
				VertexCount: uint32(nvA),
				Attributes:  demoAttributes(),
			},
		},
		Primitives: []mesh.Primitive{
			{
				BundleIndices: []uint32{0},
				Mode:          mesh.ModeTriangles,
				Indices: &mesh.IndexView{
					Range: mesh.BufferRange{Offset: uint32(idxOff), Length: uint32(idxLenA)},
					Unit:  mesh.IndexU16,
				},
				GeometricInfo: &mesh.GeometricRange{
					Range:       mesh.BufferRange{Offset: uint32(geoOff), Length: uint32(geoLenA)},
					DoubleSided: doubleSided,
				},
			},
		},
		MinPosition: &aMin,
		MaxPosition: &aMax,
	}
	structB := &mesh.Struct{
		Bundles: []mesh.VertexBundle{
			{
				Data:        mesh.BufferRange{Offset: uint32(vertsLenA), Length: uint32(vertsLenB)},
				VertexCount: uint32(nvB),
				Attributes:  demoAttributes(),
			},
		},
		Primitives: []mesh.Primitive{
			{
				BundleIndices: []uint32{0},
				Mode:          mesh.ModeTriangles,
				Indices: &mesh.IndexView{
					Range: mesh.BufferRange{Offset: uint32(idxOff + idxLenA), Length: uint32(idxLenB)},
					Unit:  mesh.IndexU16,
				},
			},
		},
		MinPosition: &bMin,
		MaxPosition: &bMax,
	}

	if !mesh.Merge(structA, structB, true) {
		// Both descriptors come from demoAttributes, so this cannot
		// fail; fall back to a alone if it ever does.
		return structA, buf
	}
	// Merge extends draw metadata only; the raycast range follows the
	// same concatenation by hand.
	structA.Primitives[0].GeometricInfo.Range.Length += uint32(geoLenB)
	return structA, buf
}

func demoAttributes() []mesh.Attribute {
	return []mesh.Attribute{
		{Name: "position", Format: mesh.FormatFloat32x3, Offset: 0},
		{Name: "normal", Format: mesh.FormatFloat32x3, Offset: 12},
	}
}

func positionsOf(g geometry) []float32 {
	out := make([]float32, 0, g.vertexCount()*3)
	for i := 0; i < len(g.verts); i += 6 {
		out = append(out, g.verts[i], g.verts[i+1], g.verts[i+2])
	}
	return out
}

func boundsOf(g geometry) (math.Vec3, math.Vec3) {
	bmin := math.Vec3{X: 1e10, Y: 1e10, Z: 1e10}
	bmax := math.Vec3{X: -1e10, Y: -1e10, Z: -1e10}
	for i := 0; i < len(g.verts); i += 6 {
		p := math.Vec3{X: g.verts[i], Y: g.verts[i+1], Z: g.verts[i+2]}
		bmin = bmin.Min(p)
		bmax = bmax.Max(p)
	}
	return bmin, bmax
}

func putFloats(dst []byte, values []float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(dst[i*4:], gomath.Float32bits(v))
	}
}

func align4(n int) int {
	return (n + 3) &^ 3
}
