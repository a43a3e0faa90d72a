package brush

import "strings"

// Attrib identifies one interpolated per-vertex input of a brush permutation.
type Attrib uint16

const (
	// AttrColor is the flat per-primitive color of a solid paint.
	AttrColor Attrib = 1 << iota
	// AttrUV0 is the primary paint coordinate.
	AttrUV0
	// AttrUV1 is the secondary, effect-space coordinate.
	AttrUV1
	// AttrUV2 and AttrUV3 are the extra box-filter taps of Downsample.
	AttrUV2
	AttrUV3
	// AttrST1 carries the glyph-local coordinate (xy) and the subpixel
	// offset factor (zw) of the SDF effects.
	AttrST1
	// AttrCoverage is the rasterizer's per-pixel antialiasing weight.
	AttrCoverage
	// AttrRect is the per-primitive valid sampling region (min xy, max zw).
	AttrRect
	// AttrTile is the per-primitive pattern tile (origin xy, size zw).
	AttrTile
)

// attribOrder is the fixed declaration order shared by vertex layouts,
// generated shader structs and Varyings.
var attribOrder = [...]Attrib{
	AttrColor, AttrUV0, AttrUV1, AttrUV2, AttrUV3, AttrST1, AttrCoverage, AttrRect, AttrTile,
}

var attribNames = map[Attrib]string{
	AttrColor:    "color",
	AttrUV0:      "uv0",
	AttrUV1:      "uv1",
	AttrUV2:      "uv2",
	AttrUV3:      "uv3",
	AttrST1:      "st1",
	AttrCoverage: "coverage",
	AttrRect:     "rect",
	AttrTile:     "tile",
}

// String returns the shader-facing name of a single attribute.
func (a Attrib) String() string {
	if n, ok := attribNames[a]; ok {
		return n
	}
	return "attrib?"
}

// Components returns the number of float32 components of a single attribute.
func (a Attrib) Components() int {
	switch a {
	case AttrCoverage:
		return 1
	case AttrUV0, AttrUV1, AttrUV2, AttrUV3:
		return 2
	default:
		return 4
	}
}

// Flat reports whether a single attribute is constant across a primitive
// and therefore not interpolated.
func (a Attrib) Flat() bool {
	return a == AttrColor || a == AttrRect || a == AttrTile
}

// Attribs is a set of attributes.
type Attribs uint16

// Has reports whether the set contains a.
func (s Attribs) Has(a Attrib) bool {
	return uint16(s)&uint16(a) != 0
}

// With returns the set with a added.
func (s Attribs) With(a Attrib) Attribs {
	return s | Attribs(a)
}

// Without returns the set with a removed.
func (s Attribs) Without(a Attrib) Attribs {
	return s &^ Attribs(a)
}

// Each calls fn for every attribute of the set in declaration order.
func (s Attribs) Each(fn func(Attrib)) {
	for _, a := range attribOrder {
		if s.Has(a) {
			fn(a)
		}
	}
}

// List returns the attributes of the set in declaration order.
func (s Attribs) List() []Attrib {
	out := make([]Attrib, 0, len(attribOrder))
	s.Each(func(a Attrib) { out = append(out, a) })
	return out
}

// Count returns the number of attributes in the set.
func (s Attribs) Count() int {
	n := 0
	s.Each(func(Attrib) { n++ })
	return n
}

// Location returns the interstage location of a within the set, counting
// from zero in declaration order, or -1 if a is not in the set.
// Vertex input locations are offset by one because location 0 holds the
// position.
func (s Attribs) Location(a Attrib) int {
	if !s.Has(a) {
		return -1
	}
	loc := 0
	for _, o := range attribOrder {
		if o == a {
			return loc
		}
		if s.Has(o) {
			loc++
		}
	}
	return -1
}

// Stride returns the size in bytes of one vertex carrying the set plus a
// float32x2 position.
func (s Attribs) Stride() int {
	n := 2
	s.Each(func(a Attrib) { n += a.Components() })
	return n * 4
}

// String returns the attribute names joined by '|', or "position" for the
// empty set.
func (s Attribs) String() string {
	if s == 0 {
		return "position"
	}
	names := make([]string, 0, len(attribOrder))
	s.Each(func(a Attrib) { names = append(names, a.String()) })
	return strings.Join(names, "|")
}

// Required derives the minimal set of interpolated inputs that the
// normalized permutation sel reads.
//
// A custom pattern receives the primary coordinate like every other
// pattern paint.
func Required(sel Selector) Attribs {
	sel = sel.Normalize()
	var s Attribs

	switch sel.Paint {
	case PaintSolid:
		s = s.With(AttrColor)
	case PaintLinear, PaintRadial, PaintPattern:
		s = s.With(AttrUV0)
	}

	if sel.Paint == PaintPattern {
		switch {
		case sel.Wrap == WrapClamp:
			s = s.With(AttrRect)
		case sel.Wrap.Tiling():
			s = s.With(AttrRect).With(AttrTile)
		}
	}

	switch sel.Effect {
	case EffectPathAA:
		s = s.With(AttrCoverage)
	case EffectOpacity, EffectBlur:
		s = s.With(AttrUV1)
	case EffectShadow:
		s = s.With(AttrUV1).With(AttrRect)
	case EffectSDF, EffectSDFLCD:
		s = s.With(AttrUV1).With(AttrST1)
	case EffectDownsample:
		s = s.With(AttrUV0).With(AttrUV1).With(AttrUV2).With(AttrUV3)
	case EffectUpsample:
		s = s.With(AttrUV0).With(AttrUV1)
	}
	return s
}
