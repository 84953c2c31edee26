package mesh

import (
	"encoding/binary"
	gomath "math"
)

// IndexUnit is the storage width of one index element.
type IndexUnit uint8

const (
	IndexU8 IndexUnit = iota
	IndexU16
	IndexU32
)

// Stride returns the byte width of one index element. Unrecognized
// units fall back to 1 byte; this is kept permissive on purpose so a
// descriptor produced by an older exporter still loads.
func (u IndexUnit) Stride() uint32 {
	switch u {
	case IndexU16:
		return 2
	case IndexU32:
		return 4
	default:
		return 1
	}
}

// String returns the unit name.
func (u IndexUnit) String() string {
	switch u {
	case IndexU8:
		return "u8"
	case IndexU16:
		return "u16"
	case IndexU32:
		return "u32"
	}
	return "unknown"
}

// DecodeIndices widens the index elements covered by r into uint32
// values. Element count is r.Length / unit.Stride(); trailing bytes
// that do not fill an element are ignored. Multi-byte elements are
// little-endian.
func DecodeIndices(buf []byte, r BufferRange, unit IndexUnit) []uint32 {
	stride := unit.Stride()
	src := r.Slice(buf)
	n := int(r.Length / stride)

	out := make([]uint32, n)
	switch stride {
	case 1:
		for i := 0; i < n; i++ {
			out[i] = uint32(src[i])
		}
	case 2:
		for i := 0; i < n; i++ {
			out[i] = uint32(binary.LittleEndian.Uint16(src[i*2:]))
		}
	case 4:
		for i := 0; i < n; i++ {
			out[i] = binary.LittleEndian.Uint32(src[i*4:])
		}
	}
	return out
}

// Float32View decodes the bytes covered by r as tightly packed
// little-endian float32 values, r.Length/4 elements.
func Float32View(buf []byte, r BufferRange) []float32 {
	src := r.Slice(buf)
	n := int(r.Length / 4)

	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = gomath.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}
	return out
}
