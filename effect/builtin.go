package effect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gogpu/brush"
)

// Definition bundles a custom effect for both execution paths: Func runs
// on the software path, WGSL is the body compiled into the GPU shader.
//
// WGSL must define
//
//	fn get_custom_effect(ctx: EffectContext) -> vec4<f32>
//
// and may call the context functions get_input_coordinate,
// get_normalized_input_coordinate, get_image_position, sample_input,
// sample_input_at_offset and sample_input_at_position, each taking ctx as
// its first argument.
type Definition struct {
	Name string
	Func Func
	WGSL string
}

// Compile compiles the software side of the definition.
func (d Definition) Compile() (*Shader, error) {
	return Compile(d.Name, d.Func)
}

// luma weights for Rec. 709 luminance.
var luma = [3]float32{0.2126, 0.7152, 0.0722}

// Desaturate blends the input toward its luminance by amount in [0, 1].
func Desaturate(amount float32) Definition {
	return Definition{
		Name: "desaturate",
		Func: func(ctx *Context) brush.RGBA {
			c := ctx.SampleInput(ctx.InputCoordinate())
			l := c.R*luma[0] + c.G*luma[1] + c.B*luma[2]
			gray := brush.RGBA{R: l, G: l, B: l, A: c.A}
			return c.Lerp(gray, amount)
		},
		WGSL: fmt.Sprintf(`fn get_custom_effect(ctx: EffectContext) -> vec4<f32> {
    let c = sample_input(ctx, get_input_coordinate(ctx));
    let l = dot(c.rgb, vec3<f32>(%s, %s, %s));
    return mix(c, vec4<f32>(l, l, l, c.a), %s);
}
`, floatLit(luma[0]), floatLit(luma[1]), floatLit(luma[2]), floatLit(amount)),
	}
}

// Pixelate snaps every pixel to the center of its cell, cell scene pixels
// wide.
func Pixelate(cell float32) Definition {
	cell = math32.Max(cell, 1)
	return Definition{
		Name: "pixelate",
		Func: func(ctx *Context) brush.RGBA {
			p := ctx.ImagePosition()
			snapped := brush.V2(
				math32.Floor(p.X/cell)*cell+cell/2,
				math32.Floor(p.Y/cell)*cell+cell/2,
			)
			return ctx.SampleInputAtPosition(snapped)
		},
		WGSL: fmt.Sprintf(`fn get_custom_effect(ctx: EffectContext) -> vec4<f32> {
    let cell = %s;
    let p = get_image_position(ctx);
    return sample_input_at_position(ctx, floor(p / cell) * cell + cell * 0.5);
}
`, floatLit(cell)),
	}
}

// DropOffset composites a hard shadow of the input, offset by (dx, dy)
// scene pixels and tinted with the premultiplied color c, under the input.
func DropOffset(dx, dy float32, c brush.RGBA) Definition {
	off := brush.V2(-dx, -dy)
	return Definition{
		Name: "drop_offset",
		Func: func(ctx *Context) brush.RGBA {
			src := ctx.SampleInput(ctx.InputCoordinate())
			a := ctx.SampleInputAtOffset(off).A
			return src.Add(c.Scale(a * (1 - src.A)))
		},
		WGSL: fmt.Sprintf(`fn get_custom_effect(ctx: EffectContext) -> vec4<f32> {
    let src = sample_input(ctx, get_input_coordinate(ctx));
    let a = sample_input_at_offset(ctx, vec2<f32>(%s, %s)).a;
    return src + vec4<f32>(%s, %s, %s, %s) * (a * (1.0 - src.a));
}
`, floatLit(off.X), floatLit(off.Y), floatLit(c.R), floatLit(c.G), floatLit(c.B), floatLit(c.A)),
	}
}

// Vignette darkens the input toward the edges of the logical image.
func Vignette(strength float32) Definition {
	return Definition{
		Name: "vignette",
		Func: func(ctx *Context) brush.RGBA {
			n := ctx.NormalizedInputCoordinate().Sub(brush.V2(0.5, 0.5))
			k := 1 - strength*n.Dot(n)*2
			return ctx.SampleInput(ctx.InputCoordinate()).Scale(math32.Max(k, 0))
		},
		WGSL: fmt.Sprintf(`fn get_custom_effect(ctx: EffectContext) -> vec4<f32> {
    let n = get_normalized_input_coordinate(ctx) - vec2<f32>(0.5, 0.5);
    let k = max(1.0 - %s * dot(n, n) * 2.0, 0.0);
    return sample_input(ctx, get_input_coordinate(ctx)) * k;
}
`, floatLit(strength)),
	}
}

// Builtins returns every ready-made effect with representative parameters.
func Builtins() []Definition {
	return []Definition{
		Desaturate(1),
		Pixelate(4),
		DropOffset(3, 3, brush.RGBA{A: 0.5}),
		Vignette(0.8),
	}
}

// floatLit formats f as a WGSL f32 literal.
func floatLit(f float32) string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
