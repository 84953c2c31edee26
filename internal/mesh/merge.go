package mesh

// ValidateMerge reports whether two structural descriptors are layout
// compatible: same bundle shapes (attribute formats in order), same
// primitive shapes (bundle indices, mode, and index unit where both
// sides are indexed). Byte buffer contents are never compared.
func ValidateMerge(a, b *Struct) bool {
	if len(a.Bundles) != len(b.Bundles) {
		return false
	}
	for i := range a.Bundles {
		ab, bb := &a.Bundles[i], &b.Bundles[i]
		if len(ab.Attributes) != len(bb.Attributes) {
			return false
		}
		for j := range ab.Attributes {
			if ab.Attributes[j].Format != bb.Attributes[j].Format {
				return false
			}
		}
	}

	if len(a.Primitives) != len(b.Primitives) {
		return false
	}
	for i := range a.Primitives {
		ap, bp := &a.Primitives[i], &b.Primitives[i]
		if len(ap.BundleIndices) != len(bp.BundleIndices) {
			return false
		}
		for j := range ap.BundleIndices {
			if ap.BundleIndices[j] != bp.BundleIndices[j] {
				return false
			}
		}
		if ap.Mode != bp.Mode {
			return false
		}
		if ap.Indices != nil && bp.Indices != nil && ap.Indices.Unit != bp.Indices.Unit {
			return false
		}
	}
	return true
}

// Merge folds b's metadata into a: bundle byte lengths and vertex
// counts are summed, index range lengths are summed where both sides
// are indexed, and the bounding box is expanded component-wise.
//
// Only metadata moves. The packed byte buffer backing a must already
// hold b's vertex/index data concatenated after a's in matching order;
// Merge cannot verify that.
//
// With validate set, incompatible inputs are rejected and neither
// struct is touched. Without it, merging incompatible structs produces
// garbage metadata; avoiding that is the caller's responsibility.
func Merge(a, b *Struct, validate bool) bool {
	if validate && !ValidateMerge(a, b) {
		return false
	}

	for i := range a.Bundles {
		if i >= len(b.Bundles) {
			break
		}
		a.Bundles[i].Data.Length += b.Bundles[i].Data.Length
		a.Bundles[i].VertexCount += b.Bundles[i].VertexCount
	}

	for i := range a.Primitives {
		if i >= len(b.Primitives) {
			break
		}
		ap, bp := &a.Primitives[i], &b.Primitives[i]
		if ap.Indices != nil && bp.Indices != nil {
			ap.Indices.Range.Length += bp.Indices.Range.Length
		}
	}

	if a.MaxPosition != nil && b.MaxPosition != nil {
		*a.MaxPosition = a.MaxPosition.Max(*b.MaxPosition)
	}
	if a.MinPosition != nil && b.MinPosition != nil {
		*a.MinPosition = a.MinPosition.Min(*b.MinPosition)
	}
	return true
}
