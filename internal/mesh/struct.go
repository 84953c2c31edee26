// Package mesh implements packed-buffer mesh assets: a structural
// descriptor over a single byte buffer, lazy GPU materialization into
// per-primitive submeshes, metadata merging, and raycast geometry.
package mesh

import (
	"github.com/Faultbox/meshkit/pkg/math"
)

// BufferRange is a byte-granular slice into the packed mesh buffer.
type BufferRange struct {
	Offset uint32
	Length uint32
}

// InBounds reports whether the range fits a buffer of bufLen bytes.
func (r BufferRange) InBounds(bufLen int) bool {
	return int64(r.Offset)+int64(r.Length) <= int64(bufLen)
}

// Slice returns the bytes the range covers. The caller must have
// checked InBounds first.
func (r BufferRange) Slice(buf []byte) []byte {
	return buf[r.Offset : r.Offset+r.Length]
}

// AttributeFormat is the data format of one vertex attribute.
type AttributeFormat uint8

const (
	FormatFloat32x2 AttributeFormat = iota
	FormatFloat32x3
	FormatFloat32x4
	FormatUint8x4
)

// Size returns the byte size of one attribute element.
func (f AttributeFormat) Size() uint32 {
	switch f {
	case FormatFloat32x2:
		return 8
	case FormatFloat32x3:
		return 12
	case FormatFloat32x4:
		return 16
	case FormatUint8x4:
		return 4
	}
	return 0
}

// Components returns the number of scalar components.
func (f AttributeFormat) Components() int32 {
	switch f {
	case FormatFloat32x2:
		return 2
	case FormatFloat32x3:
		return 3
	case FormatFloat32x4, FormatUint8x4:
		return 4
	}
	return 0
}

// Attribute describes one per-vertex field inside a bundle's stride.
type Attribute struct {
	Name   string // semantic name, e.g. "position"
	Format AttributeFormat
	Offset uint32 // byte offset within the vertex stride
}

// VertexBundle is a contiguous block of interleaved per-vertex data.
// Data.Length must be an exact multiple of VertexCount.
type VertexBundle struct {
	Data        BufferRange
	VertexCount uint32
	Attributes  []Attribute
}

// Stride returns the per-vertex byte stride, or 0 when VertexCount is 0.
func (b *VertexBundle) Stride() uint32 {
	if b.VertexCount == 0 {
		return 0
	}
	return b.Data.Length / b.VertexCount
}

// PrimitiveMode is the draw topology of a primitive.
type PrimitiveMode uint8

const (
	ModePoints PrimitiveMode = iota
	ModeLines
	ModeLineStrip
	ModeTriangles
	ModeTriangleStrip
	ModeTriangleFan
)

// String returns the topology name.
func (m PrimitiveMode) String() string {
	switch m {
	case ModePoints:
		return "points"
	case ModeLines:
		return "lines"
	case ModeLineStrip:
		return "line_strip"
	case ModeTriangles:
		return "triangles"
	case ModeTriangleStrip:
		return "triangle_strip"
	case ModeTriangleFan:
		return "triangle_fan"
	}
	return "unknown"
}

// IndexView locates a primitive's index data in the packed buffer.
type IndexView struct {
	Range BufferRange
	Unit  IndexUnit
}

// GeometricRange locates auxiliary raycast geometry: tightly packed
// 3-float positions kept for CPU-side intersection tests.
type GeometricRange struct {
	Range       BufferRange
	DoubleSided bool
}

// Primitive is one draw-unit within a mesh. BundleIndices reference
// entries of the owning Struct's bundle list by position; a primitive
// with no bundle indices contributes nothing renderable.
type Primitive struct {
	BundleIndices []uint32
	Mode          PrimitiveMode
	Indices       *IndexView
	GeometricInfo *GeometricRange
}

// Struct is the full structural description of a packed mesh buffer.
// It is pure metadata: it never owns the byte buffer, and only Merge
// mutates it after construction.
type Struct struct {
	Bundles     []VertexBundle
	Primitives  []Primitive
	MinPosition *math.Vec3
	MaxPosition *math.Vec3
}
