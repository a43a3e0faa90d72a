package wgsl

import (
	"fmt"

	"github.com/gogpu/brush"
)

// Brush generates the WGSL module of the permutation sel.
//
// It fails like [brush.Compile]: with the selector validation errors, with
// [brush.ErrNoCustomPaint] when a custom pattern has no source, and with
// [brush.ErrInvalidSDF] for an unusable calibration.
func Brush(sel brush.Selector, opts ...Option) (string, error) {
	if err := sel.Validate(); err != nil {
		return "", err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sel = sel.Normalize()
	custom := sel.Paint == brush.PaintPattern && sel.Wrap == brush.WrapCustom
	if custom && o.custom == "" {
		return "", fmt.Errorf("%w: %s", brush.ErrNoCustomPaint, sel.Name())
	}
	sdf := sel.Effect == brush.EffectSDF || sel.Effect == brush.EffectSDFLCD
	if sdf {
		if err := o.sdf.Validate(); err != nil {
			return "", err
		}
	}

	g := &brushGen{sel: sel, layout: brush.LayoutFor(sel), sdf: o.sdf}
	g.w.line("// %s", sel.Name())
	g.w.line("")
	g.uniforms()
	g.bindings()
	g.structs()
	g.helpers(sdf)
	g.vertex()
	g.fragment()
	if custom {
		g.w.line("")
		g.w.raw(o.custom)
	}

	brush.Logger().Debug("wgsl: generated brush", "name", sel.Name(), "bytes", g.w.buf.Len())
	return g.w.String(), nil
}

type brushGen struct {
	w      writer
	sel    brush.Selector
	layout brush.Layout
	sdf    brush.SDFParams
}

func (g *brushGen) uniforms() {
	u := g.layout.Uniforms
	if u.Block0() {
		g.w.open("struct Buffer0")
		switch {
		case u.Has(brush.UniformRGBA):
			g.w.line("rgba: vec4<f32>,")
		case u.Has(brush.UniformOpacity):
			g.w.line("opacity: f32,")
		case u.Has(brush.UniformRadial):
			g.w.line("radial_grad: array<vec4<f32>, 2>,")
		}
		g.w.close("")
		g.w.line("")
	}
	if u.Block1() {
		g.w.open("struct Buffer1")
		if u.Has(brush.UniformShadow) {
			g.w.line("shadow_color: vec4<f32>,")
			g.w.line("shadow_offset: vec2<f32>,")
		}
		g.w.line("blend: f32,")
		g.w.close("")
		g.w.line("")
	}
}

func (g *brushGen) bindings() {
	bs := g.layout.Bindings()
	for _, b := range bs {
		switch b.Kind {
		case brush.BindingUniform:
			g.w.line("@group(0) @binding(%d) var<uniform> %s: Buffer%d;", b.Slot, b.Name, b.Block)
		case brush.BindingTexture:
			g.w.line("@group(0) @binding(%d) var %s: texture_2d<f32>;", b.Slot, b.Name)
		case brush.BindingSampler:
			g.w.line("@group(0) @binding(%d) var %s: sampler;", b.Slot, b.Name)
		}
	}
	if len(bs) > 0 {
		g.w.line("")
	}
}

func (g *brushGen) structs() {
	attrs := g.layout.Attribs

	g.w.open("struct VertexInput")
	g.w.line("@location(0) position: vec2<f32>,")
	attrs.Each(func(a brush.Attrib) {
		g.w.line("@location(%d) %s: %s,", attrs.Location(a)+1, a, typeOf(a))
	})
	g.w.close("")
	g.w.line("")

	g.w.open("struct In")
	g.w.line("@builtin(position) position: vec4<f32>,")
	attrs.Each(func(a brush.Attrib) {
		g.w.line("@location(%d)%s %s: %s,", attrs.Location(a), interpolation(a), a, typeOf(a))
	})
	g.w.close("")
	g.w.line("")

	g.w.open("struct Out")
	g.w.line("@location(0) color: vec4<f32>,")
	if g.layout.Targets > 1 {
		g.w.line("@location(1) alpha: vec4<f32>,")
	}
	g.w.close("")
	g.w.line("")
}

func (g *brushGen) helpers(sdf bool) {
	switch g.sel.Wrap {
	case brush.WrapMirrorU, brush.WrapMirrorV, brush.WrapMirror:
		g.w.open("fn mirror_wrap(x: vec2<f32>) -> vec2<f32>")
		g.w.line("return abs(x - 2.0 * floor((x - 1.0) / 2.0) - 2.0);")
		g.w.close("")
		g.w.line("")
	}
	if !sdf {
		return
	}
	p := g.sdf

	g.w.open("fn sdf_distance(encoded: f32) -> f32")
	g.w.line("return %s * (encoded - %s);", f32(p.Scale), f32(p.Bias))
	g.w.close("")
	g.w.line("")

	g.w.open("fn sdf_coverage(d: f32, grad_len: f32) -> f32")
	g.w.line("let scale = 1.0 / grad_len;")
	g.w.line("let t = (clamp(scale, %[1]s, %[2]s) - %[1]s) / (%[2]s - %[1]s);", f32(p.BaseMin), f32(p.BaseMax))
	g.w.line("let base = %s * (1.0 - t);", f32(p.BaseDev))
	g.w.line("let width = %s * grad_len;", f32(p.AAFactor))
	g.w.line("let e0 = base - width;")
	g.w.line("let e1 = base + width;")
	g.w.line("let s = select(step(e0, d), clamp((d - e0) / max(e1 - e0, 1e-30), 0.0, 1.0), e1 > e0);")
	g.w.line("return s * s * (3.0 - 2.0 * s);")
	g.w.close("")
	g.w.line("")
}

func (g *brushGen) vertex() {
	g.w.line("@vertex")
	g.w.open("fn vs_main(v: VertexInput) -> In")
	g.w.line("var o: In;")
	g.w.line("o.position = vec4<f32>(v.position, 0.0, 1.0);")
	g.layout.Attribs.Each(func(a brush.Attrib) {
		g.w.line("o.%[1]s = v.%[1]s;", a)
	})
	g.w.line("return o;")
	g.w.close("")
	g.w.line("")
}

func (g *brushGen) fragment() {
	g.w.line("@fragment")
	g.w.open("fn fs_main(in: In) -> Out")
	g.paint()
	g.w.line("var o: Out;")
	g.effect()
	g.w.line("return o;")
	g.w.close("")
}

func (g *brushGen) paint() {
	w := &g.w
	switch g.sel.Paint {
	case brush.PaintNone:
		return
	case brush.PaintSolid:
		w.line("let paint = in.color;")
		w.line("let opacity = 1.0;")
	case brush.PaintLinear:
		w.line("let paint = textureSample(ramps, ramps_sampler, in.uv0);")
		w.line("let opacity = buffer0.opacity;")
	case brush.PaintRadial:
		w.line("let g0 = buffer0.radial_grad[0];")
		w.line("let g1 = buffer0.radial_grad[1];")
		w.line("let dd = g1.x * in.uv0.x - g1.y * in.uv0.y;")
		w.line("let u = g0.x * in.uv0.x + g0.y * in.uv0.y + g0.z * sqrt(max(dot(in.uv0, in.uv0) - dd * dd, 0.0));")
		w.line("let paint = textureSample(ramps, ramps_sampler, vec2<f32>(u, g1.z));")
		w.line("let opacity = g0.w;")
	case brush.PaintPattern:
		g.pattern()
		w.line("let opacity = buffer0.opacity;")
	}
}

func (g *brushGen) pattern() {
	w := &g.w
	switch g.sel.Wrap {
	case brush.WrapNone:
		w.line("let paint = textureSample(pattern, pattern_sampler, in.uv0);")
	case brush.WrapCustom:
		w.line("let paint = get_custom_pattern(in);")
	case brush.WrapClamp:
		w.line("let inside = %s;", insideRect("in.uv0"))
		w.line("let paint = textureSample(pattern, pattern_sampler, in.uv0) * inside;")
	default:
		w.line("let tile_uv = (in.uv0 - in.tile.xy) / in.tile.zw;")
		switch g.sel.Wrap {
		case brush.WrapRepeat:
			w.line("let wrapped = fract(tile_uv);")
		case brush.WrapMirrorU:
			w.line("let wrapped = vec2<f32>(mirror_wrap(tile_uv).x, fract(tile_uv.y));")
		case brush.WrapMirrorV:
			w.line("let wrapped = vec2<f32>(fract(tile_uv.x), mirror_wrap(tile_uv).y);")
		case brush.WrapMirror:
			w.line("let wrapped = mirror_wrap(tile_uv);")
		}
		w.line("let uv = wrapped * in.tile.zw + in.tile.xy;")
		w.line("let inside = %s;", insideRect("uv"))
		w.line("let paint = textureSampleGrad(pattern, pattern_sampler, uv, dpdx(in.uv0), dpdy(in.uv0)) * inside;")
	}
}

// insideRect returns the 0/1 mask of uv lying within in.rect, bounds
// inclusive. The comparisons are per component and combined without short
// circuits.
func insideRect(uv string) string {
	return fmt.Sprintf("select(0.0, 1.0, (%[1]s.x >= in.rect.x) & (%[1]s.x <= in.rect.z) & (%[1]s.y >= in.rect.y) & (%[1]s.y <= in.rect.w))", uv)
}

func (g *brushGen) effect() {
	w := &g.w
	switch g.sel.Effect {
	case brush.EffectRGBA:
		w.line("o.color = buffer0.rgba;")
	case brush.EffectMask:
		w.line("o.color = vec4<f32>(1.0, 1.0, 1.0, 1.0);")
	case brush.EffectClear:
		w.line("o.color = vec4<f32>(0.0, 0.0, 0.0, 0.0);")
	case brush.EffectPath:
		w.line("o.color = opacity * paint;")
	case brush.EffectPathAA:
		w.line("o.color = (opacity * in.coverage) * paint;")
	case brush.EffectOpacity:
		w.line("o.color = textureSample(image, image_sampler, in.uv1) * (opacity * paint.a);")
	case brush.EffectShadow:
		w.line("let shadow_uv = clamp(in.uv1 - buffer1.shadow_offset, in.rect.xy, in.rect.zw);")
		w.line("let halo = mix(textureSample(image, image_sampler, shadow_uv).a, textureSample(shadow, shadow_sampler, shadow_uv).a, buffer1.blend);")
		w.line("let img = textureSample(image, image_sampler, clamp(in.uv1, in.rect.xy, in.rect.zw));")
		w.line("o.color = (img + (1.0 - img.a) * (buffer1.shadow_color * halo)) * paint.a;")
	case brush.EffectBlur:
		w.line("o.color = mix(textureSample(image, image_sampler, in.uv1), textureSample(shadow, shadow_sampler, in.uv1), buffer1.blend) * paint.a;")
	case brush.EffectSDF:
		w.line("let d = sdf_distance(textureSample(glyphs, glyphs_sampler, in.uv1).r);")
		w.line("let grad_len = max(length(dpdx(in.st1.xy)), %s);", f32(brush.MinGradient))
		w.line("let alpha = sdf_coverage(d, grad_len);")
		w.line("o.color = (alpha * opacity) * paint;")
	case brush.EffectSDFLCD:
		w.line("let grad = dpdx(in.st1.xy);")
		w.line("let offset = grad * in.st1.zw;")
		w.line("let dr = sdf_distance(textureSample(glyphs, glyphs_sampler, in.uv1 - offset).r);")
		w.line("let dg = sdf_distance(textureSample(glyphs, glyphs_sampler, in.uv1).r);")
		w.line("let db = sdf_distance(textureSample(glyphs, glyphs_sampler, in.uv1 + offset).r);")
		w.line("let grad_len = max(length(grad), %s);", f32(brush.MinGradient))
		w.line("let alpha = vec3<f32>(sdf_coverage(dr, grad_len), sdf_coverage(dg, grad_len), sdf_coverage(db, grad_len));")
		w.line("o.color = vec4<f32>(opacity * paint.rgb * alpha, alpha.g);")
		w.line("o.alpha = vec4<f32>((opacity * paint.a) * alpha, alpha.g);")
	case brush.EffectDownsample:
		w.line("o.color = (textureSample(pattern, pattern_sampler, in.uv0) +")
		w.line("    textureSample(pattern, pattern_sampler, in.uv1) +")
		w.line("    textureSample(pattern, pattern_sampler, in.uv2) +")
		w.line("    textureSample(pattern, pattern_sampler, in.uv3)) * 0.25;")
	case brush.EffectUpsample:
		w.line("o.color = mix(textureSample(image, image_sampler, in.uv1), textureSample(pattern, pattern_sampler, in.uv0), paint.a);")
	}
}
