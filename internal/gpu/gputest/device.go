// Package gputest provides an in-memory Device for tests.
package gputest

import (
	"fmt"

	"github.com/Faultbox/meshkit/internal/gpu"
)

// Device records every buffer allocation. It implements gpu.Device
// without a GPU: uploads are kept in memory for inspection.
type Device struct {
	// Buffers holds every buffer ever created, in allocation order,
	// including destroyed ones.
	Buffers []*Buffer

	// FailAfter makes CreateBuffer fail once this many buffers have
	// been allocated. Zero means never fail.
	FailAfter int
}

// NewDevice returns an empty recording device.
func NewDevice() *Device {
	return &Device{}
}

// CreateBuffer allocates an in-memory buffer.
func (d *Device) CreateBuffer(usage gpu.BufferUsage, mem gpu.MemoryFlags, size, stride uint32) (gpu.Buffer, error) {
	if d.FailAfter > 0 && len(d.Buffers) >= d.FailAfter {
		return nil, fmt.Errorf("create buffer: allocation failure injected after %d buffers", d.FailAfter)
	}
	if size == 0 {
		return nil, fmt.Errorf("create buffer: zero size")
	}
	if stride == 0 || size%stride != 0 {
		return nil, fmt.Errorf("create buffer: stride %d does not divide size %d", stride, size)
	}

	b := &Buffer{
		Usage:  usage,
		Mem:    mem,
		size:   size,
		stride: stride,
		Data:   make([]byte, size),
	}
	d.Buffers = append(d.Buffers, b)
	return b, nil
}

// Live returns the number of buffers not yet destroyed.
func (d *Device) Live() int {
	n := 0
	for _, b := range d.Buffers {
		if !b.Destroyed {
			n++
		}
	}
	return n
}

// Buffer is an in-memory gpu.Buffer recording its uploads.
type Buffer struct {
	Usage     gpu.BufferUsage
	Mem       gpu.MemoryFlags
	Data      []byte
	Updates   int
	Destroyed bool

	size   uint32
	stride uint32
}

// Update copies data into the in-memory backing store.
func (b *Buffer) Update(data []byte) error {
	if b.Destroyed {
		return fmt.Errorf("update: buffer destroyed")
	}
	if uint32(len(data)) > b.size {
		return fmt.Errorf("update: %d bytes exceeds buffer size %d", len(data), b.size)
	}
	copy(b.Data, data)
	b.Updates++
	return nil
}

// Destroy marks the buffer destroyed. Idempotent.
func (b *Buffer) Destroy() {
	b.Destroyed = true
}

// Size returns the allocated byte size.
func (b *Buffer) Size() uint32 {
	return b.size
}

// Stride returns the per-element byte stride.
func (b *Buffer) Stride() uint32 {
	return b.stride
}
