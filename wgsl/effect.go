package wgsl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/effect"
)

// ErrNoEffectSource is returned when an effect definition carries no WGSL
// body or the body does not define get_custom_effect.
var ErrNoEffectSource = errors.New("wgsl: effect has no get_custom_effect")

// Effect vertex input locations. Location 0 is the position.
const (
	EffectLocColor    = 1
	EffectLocUV       = 2
	EffectLocRect     = 3
	EffectLocImagePos = 4
)

const effectShim = `struct VertexInput {
    @location(0) position: vec2<f32>,
    @location(1) color: vec4<f32>,
    @location(2) uv: vec2<f32>,
    @location(3) rect: vec4<f32>,
    @location(4) image_pos: vec4<f32>,
}

struct In {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) @interpolate(flat) rect: vec4<f32>,
    @location(3) image_pos: vec4<f32>,
}

struct EffectContext {
    color: vec4<f32>,
    uv: vec2<f32>,
    rect: vec4<f32>,
    image_pos: vec4<f32>,
}

@group(0) @binding(0) var input_texture: texture_2d<f32>;
@group(0) @binding(1) var input_sampler: sampler;

fn get_input_coordinate(ctx: EffectContext) -> vec2<f32> {
    return ctx.uv;
}

fn get_normalized_input_coordinate(ctx: EffectContext) -> vec2<f32> {
    let size = ctx.rect.zw - ctx.rect.xy;
    let degenerate = size == vec2<f32>(0.0, 0.0);
    let n = (ctx.uv - ctx.rect.xy) / select(size, vec2<f32>(1.0, 1.0), degenerate);
    return select(n, vec2<f32>(0.0, 0.0), degenerate);
}

fn get_image_position(ctx: EffectContext) -> vec2<f32> {
    return ctx.image_pos.xy;
}

fn sample_input(ctx: EffectContext, uv: vec2<f32>) -> vec4<f32> {
    return textureSample(input_texture, input_sampler, uv);
}

fn sample_input_at_offset(ctx: EffectContext, offset: vec2<f32>) -> vec4<f32> {
    let uv = clamp(ctx.uv + offset * ctx.image_pos.zw, ctx.rect.xy, ctx.rect.zw);
    return sample_input(ctx, uv);
}

fn sample_input_at_position(ctx: EffectContext, pos: vec2<f32>) -> vec4<f32> {
    return sample_input_at_offset(ctx, pos - ctx.image_pos.xy);
}

@vertex
fn vs_main(v: VertexInput) -> In {
    var o: In;
    o.position = vec4<f32>(v.position, 0.0, 1.0);
    o.color = v.color;
    o.uv = v.uv;
    o.rect = v.rect;
    o.image_pos = v.image_pos;
    return o;
}

@fragment
fn fs_main(in: In) -> @location(0) vec4<f32> {
    let ctx = EffectContext(in.color, in.uv, in.rect, in.image_pos);
    return get_custom_effect(ctx) * in.color.a;
}
`

// Effect generates the WGSL module of a custom effect: the sampling
// context shim followed by the definition's get_custom_effect body.
func Effect(def effect.Definition) (string, error) {
	if def.Name == "" {
		return "", effect.ErrNoName
	}
	if !strings.Contains(def.WGSL, "fn get_custom_effect") {
		return "", fmt.Errorf("%w: %s", ErrNoEffectSource, def.Name)
	}

	var w writer
	w.line("// effect %s", def.Name)
	w.line("")
	w.raw(effectShim)
	w.line("")
	w.raw(def.WGSL)

	brush.Logger().Debug("wgsl: generated effect", "name", def.Name, "bytes", w.buf.Len())
	return w.String(), nil
}
