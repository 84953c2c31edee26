package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/internal/gpu"
	"github.com/Faultbox/meshkit/internal/logger"
)

// BuildRenderingMesh materializes GPU buffers for a structural
// descriptor over its packed byte buffer: one vertex buffer per
// bundle, one index buffer per indexed primitive, and one submesh
// descriptor per renderable primitive, all in declaration order.
//
// The whole layout is validated before anything is allocated; a
// *LayoutError means the device was never touched. A device failure
// mid-pass releases every buffer allocated so far and propagates.
func BuildRenderingMesh(s *Struct, data []byte, dev gpu.Device) (*RenderingMesh, error) {
	if err := validateLayout(s, len(data)); err != nil {
		return nil, err
	}

	rm := &RenderingMesh{}

	for i := range s.Bundles {
		b := &s.Bundles[i]
		buf, err := dev.CreateBuffer(
			gpu.UsageVertex|gpu.UsageTransferDst,
			gpu.MemHostVisible|gpu.MemDeviceLocal,
			b.Data.Length, b.Stride())
		if err != nil {
			rm.Destroy()
			return nil, fmt.Errorf("vertex bundle %d: %w", i, err)
		}
		rm.vertexBuffers = append(rm.vertexBuffers, buf)

		if err := buf.Update(b.Data.Slice(data)); err != nil {
			rm.Destroy()
			return nil, fmt.Errorf("vertex bundle %d upload: %w", i, err)
		}
	}

	for pi := range s.Primitives {
		p := &s.Primitives[pi]
		if len(p.BundleIndices) == 0 {
			logger.Debug("skipping primitive with no vertex bundles", zap.Int("primitive", pi))
			continue
		}

		first := &s.Bundles[p.BundleIndices[0]]
		sub := RenderingSubmesh{
			Mode:        p.Mode,
			Attributes:  first.Attributes,
			VertexCount: first.VertexCount,
		}
		for _, bi := range p.BundleIndices {
			sub.VertexBuffers = append(sub.VertexBuffers, rm.vertexBuffers[bi])
		}

		if p.Indices != nil {
			stride := p.Indices.Unit.Stride()
			ibuf, err := dev.CreateBuffer(
				gpu.UsageIndex|gpu.UsageTransferDst,
				gpu.MemHostVisible|gpu.MemDeviceLocal,
				p.Indices.Range.Length, stride)
			if err != nil {
				rm.Destroy()
				return nil, fmt.Errorf("primitive %d index buffer: %w", pi, err)
			}
			rm.indexBuffers = append(rm.indexBuffers, ibuf)

			if err := ibuf.Update(p.Indices.Range.Slice(data)); err != nil {
				rm.Destroy()
				return nil, fmt.Errorf("primitive %d index upload: %w", pi, err)
			}

			sub.IndexBuffer = ibuf
			sub.IndexUnit = p.Indices.Unit
			sub.IndexCount = p.Indices.Range.Length / stride
		}

		if p.GeometricInfo != nil {
			gi := &GeometricInfo{
				Positions:   Float32View(data, p.GeometricInfo.Range),
				DoubleSided: p.GeometricInfo.DoubleSided,
			}
			if p.Indices != nil {
				gi.Indices = DecodeIndices(data, p.Indices.Range, p.Indices.Unit)
			}
			sub.Geometric = gi
		}

		rm.submeshes = append(rm.submeshes, sub)
	}

	logger.Debug("rendering mesh materialized",
		zap.Int("vertexBuffers", len(rm.vertexBuffers)),
		zap.Int("indexBuffers", len(rm.indexBuffers)),
		zap.Int("submeshes", len(rm.submeshes)))

	return rm, nil
}

// validateLayout checks every range of the descriptor against the
// packed buffer before any GPU allocation happens.
func validateLayout(s *Struct, bufLen int) error {
	for i := range s.Bundles {
		b := &s.Bundles[i]
		section := fmt.Sprintf("vertex bundle %d", i)

		if !b.Data.InBounds(bufLen) {
			return layoutErrorf(section, "range [%d:+%d] exceeds buffer size %d",
				b.Data.Offset, b.Data.Length, bufLen)
		}
		if b.Data.Length == 0 {
			return layoutErrorf(section, "empty data range")
		}
		if b.VertexCount == 0 {
			return layoutErrorf(section, "zero vertex count with %d data bytes", b.Data.Length)
		}
		if b.Data.Length%b.VertexCount != 0 {
			return layoutErrorf(section, "%d data bytes not divisible by %d vertices",
				b.Data.Length, b.VertexCount)
		}
	}

	for pi := range s.Primitives {
		p := &s.Primitives[pi]
		section := fmt.Sprintf("primitive %d", pi)

		for _, bi := range p.BundleIndices {
			if int(bi) >= len(s.Bundles) {
				return layoutErrorf(section, "bundle index %d out of range (have %d bundles)",
					bi, len(s.Bundles))
			}
		}
		if p.Indices != nil {
			if !p.Indices.Range.InBounds(bufLen) {
				return layoutErrorf(section, "index range [%d:+%d] exceeds buffer size %d",
					p.Indices.Range.Offset, p.Indices.Range.Length, bufLen)
			}
			if p.Indices.Range.Length == 0 {
				return layoutErrorf(section, "empty index range")
			}
			if p.Indices.Range.Length%p.Indices.Unit.Stride() != 0 {
				return layoutErrorf(section, "index range length %d not divisible by %s stride",
					p.Indices.Range.Length, p.Indices.Unit)
			}
		}
		if p.GeometricInfo != nil && !p.GeometricInfo.Range.InBounds(bufLen) {
			return layoutErrorf(section, "geometric range [%d:+%d] exceeds buffer size %d",
				p.GeometricInfo.Range.Offset, p.GeometricInfo.Range.Length, bufLen)
		}
	}
	return nil
}
