package mesh

import (
	"testing"

	"github.com/Faultbox/meshkit/internal/gpu/gputest"
)

func TestAssetLazyMaterialization(t *testing.T) {
	s, buf := buildTestData()
	dev := gputest.NewDevice()
	a := NewAsset(s, buf)

	if a.State() != StateUnmaterialized {
		t.Fatalf("new asset state = %v, want unmaterialized", a.State())
	}
	if len(dev.Buffers) != 0 {
		t.Fatal("constructing an asset must not touch the device")
	}

	rm, err := a.RenderingMesh(dev)
	if err != nil {
		t.Fatalf("materialization failed: %v", err)
	}
	if rm == nil {
		t.Fatal("expected a rendering mesh")
	}
	if a.State() != StateMaterialized {
		t.Errorf("state = %v, want materialized", a.State())
	}

	allocated := len(dev.Buffers)

	// Second access returns the cache without re-allocating
	rm2, err := a.RenderingMesh(dev)
	if err != nil {
		t.Fatalf("cached access failed: %v", err)
	}
	if rm2 != rm {
		t.Error("second access should return the cached rendering mesh")
	}
	if len(dev.Buffers) != allocated {
		t.Errorf("cached access allocated %d extra buffers", len(dev.Buffers)-allocated)
	}
}

func TestAssetAssignInvalidates(t *testing.T) {
	s, buf := buildTestData()
	dev := gputest.NewDevice()
	a := NewAsset(s, buf)

	rm, err := a.RenderingMesh(dev)
	if err != nil {
		t.Fatalf("materialization failed: %v", err)
	}
	firstCount := len(dev.Buffers)

	s2, buf2 := buildTestData()
	a.Assign(s2, buf2)

	if a.State() != StateUnmaterialized {
		t.Errorf("state after assign = %v, want unmaterialized", a.State())
	}
	// The old rendering mesh must have been destroyed
	if dev.Live() != 0 {
		t.Errorf("%d buffers live after assign, want 0", dev.Live())
	}
	if len(rm.Submeshes()) != 0 {
		t.Error("old rendering mesh should be inert after assign")
	}

	rm2, err := a.RenderingMesh(dev)
	if err != nil {
		t.Fatalf("re-materialization failed: %v", err)
	}
	if rm2 == rm {
		t.Error("re-materialization should build a fresh rendering mesh")
	}
	if len(dev.Buffers) <= firstCount {
		t.Error("re-materialization should allocate new buffers")
	}
}

func TestAssetWithoutBuffer(t *testing.T) {
	dev := gputest.NewDevice()
	a := NewAsset(nil, nil)

	rm, err := a.RenderingMesh(dev)
	if err != nil {
		t.Fatalf("buffer-less access returned error: %v", err)
	}
	if rm != nil {
		t.Error("buffer-less asset should yield no rendering mesh")
	}
	if len(dev.Buffers) != 0 {
		t.Error("buffer-less access must not touch the device")
	}
	if a.State() != StateUnmaterialized {
		t.Errorf("state = %v, want unmaterialized", a.State())
	}
}

func TestAssetMaterializationFailureLeavesStateClean(t *testing.T) {
	s, buf := buildTestData()
	dev := gputest.NewDevice()
	dev.FailAfter = 1
	a := NewAsset(s, buf)

	if _, err := a.RenderingMesh(dev); err == nil {
		t.Fatal("expected device failure to propagate")
	}
	if a.State() != StateUnmaterialized {
		t.Errorf("state after failure = %v, want unmaterialized", a.State())
	}
	if dev.Live() != 0 {
		t.Errorf("%d buffers live after failed materialization", dev.Live())
	}

	// Once the device recovers, the asset materializes normally.
	dev.FailAfter = 0
	rm, err := a.RenderingMesh(dev)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if rm == nil {
		t.Fatal("retry should produce a rendering mesh")
	}
}

func TestAssetDestroyIdempotent(t *testing.T) {
	s, buf := buildTestData()
	dev := gputest.NewDevice()
	a := NewAsset(s, buf)

	if _, err := a.RenderingMesh(dev); err != nil {
		t.Fatalf("materialization failed: %v", err)
	}

	a.Destroy()
	a.Destroy()

	if dev.Live() != 0 {
		t.Errorf("%d buffers live after destroy, want 0", dev.Live())
	}
	if a.Struct() != nil || a.Data() != nil {
		t.Error("destroy should drop the descriptor/buffer pair")
	}
}
