package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/brush"
)

// Uniform block sizes in bytes. Blocks are padded to 16 bytes.
const (
	block0ColorSize  = 16 // rgba: vec4<f32>
	block0ScalarSize = 16 // opacity: f32
	block0RadialSize = 32 // radial_grad: array<vec4<f32>, 2>
	block1BlendSize  = 16 // blend: f32
	block1ShadowSize = 32 // shadow_color @0, shadow_offset @16, blend @24
)

func putF32(b []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v))
}

func putVec4(b []byte, off int, v brush.Vec4) {
	putF32(b, off, v.X)
	putF32(b, off+4, v.Y)
	putF32(b, off+8, v.Z)
	putF32(b, off+12, v.W)
}

// PackUniforms encodes the constants read by a permutation into its two
// uniform blocks, laid out as the generated WGSL declares them. A block the
// permutation does not bind is nil.
func PackUniforms(l brush.Layout, c brush.Constants) (block0, block1 []byte) {
	u := l.Uniforms
	switch {
	case u.Has(brush.UniformRGBA):
		block0 = make([]byte, block0ColorSize)
		putVec4(block0, 0, c.RGBA.Vec4())
	case u.Has(brush.UniformOpacity):
		block0 = make([]byte, block0ScalarSize)
		putF32(block0, 0, c.Opacity)
	case u.Has(brush.UniformRadial):
		block0 = make([]byte, block0RadialSize)
		putVec4(block0, 0, c.Radial[0])
		putVec4(block0, 16, c.Radial[1])
	}

	switch {
	case u.Has(brush.UniformShadow):
		block1 = make([]byte, block1ShadowSize)
		putVec4(block1, 0, c.ShadowColor.Vec4())
		putF32(block1, 16, c.ShadowOffset.X)
		putF32(block1, 20, c.ShadowOffset.Y)
		putF32(block1, 24, c.Blend)
	case u.Has(brush.UniformBlend):
		block1 = make([]byte, block1BlendSize)
		putF32(block1, 0, c.Blend)
	}
	return block0, block1
}

// AppendVertex appends one interleaved vertex carrying the attributes of s
// to dst, in the layout returned by VertexLayout.
func AppendVertex(dst []byte, s brush.Attribs, pos brush.Vec2, v *brush.Varyings) []byte {
	var scratch [4]byte
	f := func(x float32) {
		binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(x))
		dst = append(dst, scratch[:]...)
	}
	vec2 := func(p brush.Vec2) { f(p.X); f(p.Y) }
	vec4 := func(p brush.Vec4) { f(p.X); f(p.Y); f(p.Z); f(p.W) }

	vec2(pos)
	s.Each(func(a brush.Attrib) {
		switch a {
		case brush.AttrColor:
			vec4(v.Color.Vec4())
		case brush.AttrUV0:
			vec2(v.UV0)
		case brush.AttrUV1:
			vec2(v.UV1)
		case brush.AttrUV2:
			vec2(v.UV2)
		case brush.AttrUV3:
			vec2(v.UV3)
		case brush.AttrST1:
			vec4(v.ST1)
		case brush.AttrCoverage:
			f(v.Coverage)
		case brush.AttrRect:
			vec4(v.Rect)
		case brush.AttrTile:
			vec4(v.Tile)
		}
	})
	return dst
}
