// Package gpu abstracts GPU buffer allocation and upload for mesh data.
package gpu

// BufferUsage describes what a buffer will be bound as.
type BufferUsage uint32

const (
	// UsageVertex marks a buffer holding vertex attribute data.
	UsageVertex BufferUsage = 1 << iota
	// UsageIndex marks a buffer holding element indices.
	UsageIndex
	// UsageTransferDst marks a buffer as an upload target.
	UsageTransferDst
)

// MemoryFlags describes where a buffer's memory should live.
type MemoryFlags uint32

const (
	// MemHostVisible requests memory writable from the CPU.
	MemHostVisible MemoryFlags = 1 << iota
	// MemDeviceLocal requests memory resident on the GPU.
	MemDeviceLocal
)

// Device allocates GPU buffers. Implementations are not safe for
// concurrent use; all calls must come from the rendering thread.
type Device interface {
	// CreateBuffer allocates a buffer of the given byte size.
	// stride is the per-element size in bytes and must divide size.
	// Fails on zero size or allocation failure.
	CreateBuffer(usage BufferUsage, mem MemoryFlags, size, stride uint32) (Buffer, error)
}

// Buffer is a GPU-resident buffer.
type Buffer interface {
	// Update replaces the buffer contents with data.
	// len(data) must not exceed the allocated size.
	Update(data []byte) error
	// Destroy releases the GPU resources. Safe to call more than once.
	Destroy()
	// Size returns the allocated byte size.
	Size() uint32
	// Stride returns the per-element byte stride the buffer was created with.
	Stride() uint32
}
