package gpu

import (
	"github.com/gogpu/brush"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// vertexFormat returns the vertex format of a single attribute.
func vertexFormat(a brush.Attrib) gputypes.VertexFormat {
	switch a.Components() {
	case 1:
		return gputypes.VertexFormatFloat32
	case 2:
		return gputypes.VertexFormatFloat32x2
	default:
		return gputypes.VertexFormatFloat32x4
	}
}

// VertexLayout returns the interleaved vertex buffer layout carrying a
// float32x2 position at location 0 followed by the attributes of s.
func VertexLayout(s brush.Attribs) gputypes.VertexBufferLayout {
	attrs := []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
	}
	offset := uint64(8)
	s.Each(func(a brush.Attrib) {
		attrs = append(attrs, gputypes.VertexAttribute{
			Format:         vertexFormat(a),
			Offset:         offset,
			ShaderLocation: uint32(s.Location(a) + 1),
		})
		offset += uint64(a.Components() * 4)
	})
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(s.Stride()),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// BindGroupLayoutEntries returns the bind group 0 layout of a permutation.
// All resources are read by the fragment stage only.
func BindGroupLayoutEntries(l brush.Layout) []gputypes.BindGroupLayoutEntry {
	bs := l.Bindings()
	entries := make([]gputypes.BindGroupLayoutEntry, 0, len(bs))
	for _, b := range bs {
		e := gputypes.BindGroupLayoutEntry{
			Binding:    uint32(b.Slot),
			Visibility: gputypes.ShaderStageFragment,
		}
		switch b.Kind {
		case brush.BindingUniform:
			e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
		case brush.BindingTexture:
			e.Texture = &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		case brush.BindingSampler:
			e.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
		}
		entries = append(entries, e)
	}
	return entries
}

func addressMode(m brush.AddressMode) gputypes.AddressMode {
	switch m {
	case brush.AddressRepeat:
		return gputypes.AddressModeRepeat
	case brush.AddressMirror:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

func filterMode(f brush.Filter) gputypes.FilterMode {
	if f == brush.FilterNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

// SamplerDescriptor returns the fixed sampler of image slot img. Slots
// sampled without explicit derivatives use the base level only.
func SamplerDescriptor(l brush.Layout, img brush.Image) *hal.SamplerDescriptor {
	st := l.Sampling(img)
	mip := gputypes.FilterModeNearest
	if st.Mipmaps {
		mip = filterMode(st.Filter)
	}
	return &hal.SamplerDescriptor{
		Label:        l.Selector.Name() + "_" + img.String() + "_sampler",
		AddressModeU: addressMode(st.AddressU),
		AddressModeV: addressMode(st.AddressV),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filterMode(st.Filter),
		MinFilter:    filterMode(st.Filter),
		MipmapFilter: mip,
	}
}
