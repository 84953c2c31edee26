package mesh

import (
	"encoding/binary"
	gomath "math"
	"testing"
)

func TestIndexUnitStride(t *testing.T) {
	tests := []struct {
		unit IndexUnit
		want uint32
	}{
		{IndexU8, 1},
		{IndexU16, 2},
		{IndexU32, 4},
		{IndexUnit(99), 1}, // unknown units fall back to the narrowest width
	}

	for _, tt := range tests {
		if got := tt.unit.Stride(); got != tt.want {
			t.Errorf("IndexUnit(%d).Stride() = %d, want %d", tt.unit, got, tt.want)
		}
	}
}

func TestDecodeIndicesU8(t *testing.T) {
	buf := []byte{7, 1, 2, 250}
	got := DecodeIndices(buf, BufferRange{Offset: 0, Length: 4}, IndexU8)

	want := []uint32{7, 1, 2, 250}
	if len(got) != len(want) {
		t.Fatalf("decoded %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestDecodeIndicesU16(t *testing.T) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint16(buf[2:], 300)
	binary.LittleEndian.PutUint16(buf[4:], 65535)

	// Skip the first two bytes via the range offset
	got := DecodeIndices(buf, BufferRange{Offset: 2, Length: 4}, IndexU16)

	if len(got) != 2 {
		t.Fatalf("decoded %d elements, want 2", len(got))
	}
	if got[0] != 300 || got[1] != 65535 {
		t.Errorf("decoded %v, want [300 65535]", got)
	}
}

func TestDecodeIndicesU32(t *testing.T) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:], 1<<20)
	binary.LittleEndian.PutUint32(buf[4:], 42)

	got := DecodeIndices(buf, BufferRange{Offset: 0, Length: 8}, IndexU32)

	if len(got) != 2 {
		t.Fatalf("decoded %d elements, want 2", len(got))
	}
	if got[0] != 1<<20 || got[1] != 42 {
		t.Errorf("decoded %v, want [1048576 42]", got)
	}
}

func TestDecodeIndicesElementCount(t *testing.T) {
	// 10 bytes of u32 data only holds 2 whole elements
	buf := make([]byte, 10)
	got := DecodeIndices(buf, BufferRange{Offset: 0, Length: 10}, IndexU32)
	if len(got) != 2 {
		t.Errorf("decoded %d elements, want 2 (length/stride)", len(got))
	}
}

func TestFloat32View(t *testing.T) {
	values := []float32{1.5, -2.25, 100}
	buf := make([]byte, 12)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], gomath.Float32bits(v))
	}

	got := Float32View(buf, BufferRange{Offset: 0, Length: 12})
	if len(got) != 3 {
		t.Fatalf("decoded %d floats, want 3", len(got))
	}
	for i, v := range values {
		if got[i] != v {
			t.Errorf("float %d = %f, want %f", i, got[i], v)
		}
	}
}

func TestBufferRangeInBounds(t *testing.T) {
	tests := []struct {
		r      BufferRange
		bufLen int
		want   bool
	}{
		{BufferRange{0, 10}, 10, true},
		{BufferRange{5, 5}, 10, true},
		{BufferRange{5, 6}, 10, false},
		{BufferRange{11, 0}, 10, false},
		{BufferRange{0, 0}, 0, true},
	}

	for _, tt := range tests {
		if got := tt.r.InBounds(tt.bufLen); got != tt.want {
			t.Errorf("BufferRange{%d,%d}.InBounds(%d) = %v, want %v",
				tt.r.Offset, tt.r.Length, tt.bufLen, got, tt.want)
		}
	}
}
