package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshkit/internal/logger"
	"go.uber.org/zap"
)

// GLDevice implements Device on top of an OpenGL 4.1 context.
// The context must be current on the calling thread.
type GLDevice struct{}

// NewGLDevice returns a device backed by the current GL context.
func NewGLDevice() *GLDevice {
	return &GLDevice{}
}

// CreateBuffer allocates a GL buffer object of the given size.
func (d *GLDevice) CreateBuffer(usage BufferUsage, mem MemoryFlags, size, stride uint32) (Buffer, error) {
	if size == 0 {
		return nil, fmt.Errorf("create buffer: zero size")
	}
	if stride == 0 || size%stride != 0 {
		return nil, fmt.Errorf("create buffer: stride %d does not divide size %d", stride, size)
	}

	target := uint32(gl.ARRAY_BUFFER)
	if usage&UsageIndex != 0 {
		target = gl.ELEMENT_ARRAY_BUFFER
	}

	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(target, id)
	gl.BufferData(target, int(size), nil, gl.STATIC_DRAW)

	if glErr := gl.GetError(); glErr != gl.NO_ERROR {
		gl.DeleteBuffers(1, &id)
		return nil, fmt.Errorf("create buffer: glBufferData failed (0x%04x, size %d)", glErr, size)
	}

	logger.Debug("GL buffer allocated",
		zap.Uint32("id", id),
		zap.Uint32("size", size),
		zap.Uint32("stride", stride))

	return &GLBuffer{id: id, target: target, size: size, stride: stride}, nil
}

// GLBuffer is a GL buffer object created by GLDevice.
type GLBuffer struct {
	id     uint32
	target uint32
	size   uint32
	stride uint32
}

// ID returns the GL buffer object name for binding.
func (b *GLBuffer) ID() uint32 {
	return b.id
}

// Update replaces the buffer contents with data.
func (b *GLBuffer) Update(data []byte) error {
	if b.id == 0 {
		return fmt.Errorf("update: buffer destroyed")
	}
	if uint32(len(data)) > b.size {
		return fmt.Errorf("update: %d bytes exceeds buffer size %d", len(data), b.size)
	}
	if len(data) == 0 {
		return nil
	}

	gl.BindBuffer(b.target, b.id)
	gl.BufferSubData(b.target, 0, len(data), gl.Ptr(data))

	if glErr := gl.GetError(); glErr != gl.NO_ERROR {
		return fmt.Errorf("update: glBufferSubData failed (0x%04x)", glErr)
	}
	return nil
}

// Destroy releases the GL buffer object. Idempotent.
func (b *GLBuffer) Destroy() {
	if b.id == 0 {
		return
	}
	gl.DeleteBuffers(1, &b.id)
	b.id = 0
}

// Size returns the allocated byte size.
func (b *GLBuffer) Size() uint32 {
	return b.size
}

// Stride returns the per-element byte stride.
func (b *GLBuffer) Stride() uint32 {
	return b.stride
}
