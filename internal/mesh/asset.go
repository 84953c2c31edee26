package mesh

import (
	"github.com/Faultbox/meshkit/internal/gpu"
)

// State tracks the materialization lifecycle of an Asset.
type State uint8

const (
	// StateUnmaterialized means no rendering mesh exists yet; the next
	// RenderingMesh call builds one.
	StateUnmaterialized State = iota
	// StateMaterialized means a rendering mesh is cached.
	StateMaterialized
	// StateInvalidated is the transient state while a reassignment or
	// teardown destroys the previous rendering mesh.
	StateInvalidated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnmaterialized:
		return "unmaterialized"
	case StateMaterialized:
		return "materialized"
	case StateInvalidated:
		return "invalidated"
	}
	return "unknown"
}

// Asset owns one structural descriptor + packed byte buffer pair and,
// lazily, at most one RenderingMesh materialized from it. Not safe
// for concurrent use; confine each asset to the rendering thread.
type Asset struct {
	strct     *Struct
	data      []byte
	rendering *RenderingMesh
	state     State
}

// NewAsset creates an asset over a descriptor/buffer pair. Both may be
// nil for an empty asset that gets a pair through Assign later.
func NewAsset(s *Struct, data []byte) *Asset {
	return &Asset{strct: s, data: data}
}

// Struct returns the structural descriptor.
func (a *Asset) Struct() *Struct {
	return a.strct
}

// Data returns the packed byte buffer.
func (a *Asset) Data() []byte {
	return a.data
}

// State returns the current materialization state.
func (a *Asset) State() State {
	return a.state
}

// Assign replaces the descriptor/buffer pair, destroying any cached
// rendering mesh. The next RenderingMesh call re-materializes.
func (a *Asset) Assign(s *Struct, data []byte) {
	a.invalidate()
	a.strct = s
	a.data = data
}

// RenderingMesh returns the materialized rendering mesh, building it
// through dev on first access after construction or Assign. An asset
// without a packed buffer returns nil; callers must not request
// rendering data for a buffer-less asset.
func (a *Asset) RenderingMesh(dev gpu.Device) (*RenderingMesh, error) {
	if a.state == StateMaterialized {
		return a.rendering, nil
	}
	if a.strct == nil || a.data == nil {
		return nil, nil
	}

	rm, err := BuildRenderingMesh(a.strct, a.data, dev)
	if err != nil {
		return nil, err
	}
	a.rendering = rm
	a.state = StateMaterialized
	return rm, nil
}

// Destroy releases the rendering mesh and drops the descriptor/buffer
// pair. Idempotent.
func (a *Asset) Destroy() {
	a.invalidate()
	a.strct = nil
	a.data = nil
}

func (a *Asset) invalidate() {
	if a.rendering != nil {
		a.state = StateInvalidated
		a.rendering.Destroy()
		a.rendering = nil
	}
	a.state = StateUnmaterialized
}
