package brush

import "fmt"

// Uniforms is the set of per-primitive constants a permutation reads.
type Uniforms uint8

const (
	// UniformRGBA is the raw color of EffectRGBA.
	UniformRGBA Uniforms = 1 << iota
	// UniformOpacity is the opacity scalar of linear and pattern paints.
	UniformOpacity
	// UniformRadial is the 2x4 radial gradient descriptor.
	UniformRadial
	// UniformBlend is the blend factor of Blur and Shadow.
	UniformBlend
	// UniformShadow is the shadow color and offset of Shadow.
	UniformShadow
)

// Has reports whether all of u are in the set.
func (s Uniforms) Has(u Uniforms) bool {
	return s&u == u
}

// Block0 reports whether the paint constant block is bound.
func (s Uniforms) Block0() bool {
	return s&(UniformRGBA|UniformOpacity|UniformRadial) != 0
}

// Block1 reports whether the effect constant block is bound.
func (s Uniforms) Block1() bool {
	return s&(UniformBlend|UniformShadow) != 0
}

// Image identifies one bound image slot.
type Image uint8

const (
	ImagePattern Image = iota
	ImageRamps
	ImageImage
	ImageGlyphs
	ImageShadow

	imageCount
)

var imageNames = [...]string{"pattern", "ramps", "image", "glyphs", "shadow"}

// String returns the shader-facing name of the image slot.
func (i Image) String() string {
	if i >= imageCount {
		return fmt.Sprintf("Image(%d)", uint8(i))
	}
	return imageNames[i]
}

// Images is a set of image slots.
type Images uint8

// Has reports whether the set contains i.
func (s Images) Has(i Image) bool {
	return s&(1<<i) != 0
}

// With returns the set with i added.
func (s Images) With(i Image) Images {
	return s | 1<<i
}

// Each calls fn for every image of the set in slot order.
func (s Images) Each(fn func(Image)) {
	for i := ImagePattern; i < imageCount; i++ {
		if s.Has(i) {
			fn(i)
		}
	}
}

// Filter is a texture filtering mode.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

// AddressMode is a texture addressing mode.
type AddressMode uint8

const (
	AddressClamp AddressMode = iota
	AddressRepeat
	AddressMirror
)

// SamplerState is the fixed sampling mode of one image slot.
type SamplerState struct {
	Filter   Filter
	AddressU AddressMode
	AddressV AddressMode
	// Mipmaps is set when the permutation samples with explicit derivatives.
	Mipmaps bool
}

// Layout describes every host-visible resource of a permutation: its vertex
// attributes, constant blocks, bound images and output targets.
type Layout struct {
	Selector Selector
	Attribs  Attribs
	Uniforms Uniforms
	Images   Images
	// Targets is 2 for SDF-LCD and 1 otherwise.
	Targets int
}

// LayoutFor derives the resource layout of the normalized selector.
func LayoutFor(sel Selector) Layout {
	sel = sel.Normalize()
	l := Layout{Selector: sel, Attribs: Required(sel), Targets: 1}

	switch sel.Paint {
	case PaintLinear:
		l.Uniforms |= UniformOpacity
		l.Images = l.Images.With(ImageRamps)
	case PaintRadial:
		l.Uniforms |= UniformRadial
		l.Images = l.Images.With(ImageRamps)
	case PaintPattern:
		l.Uniforms |= UniformOpacity
		l.Images = l.Images.With(ImagePattern)
	}

	switch sel.Effect {
	case EffectRGBA:
		l.Uniforms |= UniformRGBA
	case EffectOpacity:
		l.Images = l.Images.With(ImageImage)
	case EffectShadow:
		l.Uniforms |= UniformShadow | UniformBlend
		l.Images = l.Images.With(ImageImage).With(ImageShadow)
	case EffectBlur:
		l.Uniforms |= UniformBlend
		l.Images = l.Images.With(ImageImage).With(ImageShadow)
	case EffectSDF:
		l.Images = l.Images.With(ImageGlyphs)
	case EffectSDFLCD:
		l.Images = l.Images.With(ImageGlyphs)
		l.Targets = 2
	case EffectDownsample:
		l.Images = l.Images.With(ImagePattern)
	case EffectUpsample:
		l.Images = l.Images.With(ImagePattern).With(ImageImage)
	}
	return l
}

// Sampling returns the fixed sampler state of image slot img.
func (l Layout) Sampling(img Image) SamplerState {
	st := SamplerState{Filter: FilterLinear}
	if img == ImagePattern && l.Selector.Paint == PaintPattern {
		switch {
		case l.Selector.Wrap == WrapNone:
			st.AddressU, st.AddressV = AddressRepeat, AddressRepeat
		case l.Selector.Wrap.Tiling():
			st.Mipmaps = true
		}
	}
	return st
}

// BindingKind distinguishes the entries of a binding table.
type BindingKind uint8

const (
	BindingUniform BindingKind = iota
	BindingTexture
	BindingSampler
)

// Binding is one entry of a permutation's binding table.
type Binding struct {
	Slot  int
	Kind  BindingKind
	Name  string
	Block int   // uniform block index, for BindingUniform
	Image Image // image slot, for BindingTexture and BindingSampler
}

// Bindings returns the binding table of the layout: constant blocks first,
// then a texture and sampler pair per bound image, numbered densely from 0.
func (l Layout) Bindings() []Binding {
	var out []Binding
	add := func(b Binding) {
		b.Slot = len(out)
		out = append(out, b)
	}
	if l.Uniforms.Block0() {
		add(Binding{Kind: BindingUniform, Name: "buffer0", Block: 0})
	}
	if l.Uniforms.Block1() {
		add(Binding{Kind: BindingUniform, Name: "buffer1", Block: 1})
	}
	l.Images.Each(func(img Image) {
		add(Binding{Kind: BindingTexture, Name: img.String(), Image: img})
		add(Binding{Kind: BindingSampler, Name: img.String() + "_sampler", Image: img})
	})
	return out
}
