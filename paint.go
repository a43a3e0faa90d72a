package brush

import "github.com/chewxy/math32"

// Fract returns x - floor(x).
func Fract(x float32) float32 {
	return x - math32.Floor(x)
}

// MirrorWrap is the triangle wave with period 2 used by the mirror wrap
// modes: it rises from 0 to 1 on [0, 1] and falls back on [1, 2].
func MirrorWrap(x float32) float32 {
	return math32.Abs(x - 2*math32.Floor((x-1)/2) - 2)
}

// WrapUV remaps a pattern-space coordinate into the tile (origin xy,
// size zw) according to w and maps it back to pattern space. Non-tiling
// modes return uv unchanged.
func WrapUV(uv Vec2, tile Vec4, w Wrap) Vec2 {
	if !w.Tiling() {
		return uv
	}
	local := Vec2{X: (uv.X - tile.X) / tile.Z, Y: (uv.Y - tile.Y) / tile.W}
	switch w {
	case WrapRepeat:
		local = Vec2{X: Fract(local.X), Y: Fract(local.Y)}
	case WrapMirrorU:
		local = Vec2{X: MirrorWrap(local.X), Y: Fract(local.Y)}
	case WrapMirrorV:
		local = Vec2{X: Fract(local.X), Y: MirrorWrap(local.Y)}
	case WrapMirror:
		local = Vec2{X: MirrorWrap(local.X), Y: MirrorWrap(local.Y)}
	}
	return Vec2{X: local.X*tile.Z + tile.X, Y: local.Y*tile.W + tile.Y}
}

// InsideRect returns 1 if uv lies within rect on both axes (bounds
// inclusive) and 0 otherwise, including for NaN coordinates.
func InsideRect(uv Vec2, rect Vec4) float32 {
	if uv.X >= rect.X && uv.X <= rect.Z && uv.Y >= rect.Y && uv.Y <= rect.W {
		return 1
	}
	return 0
}

// paintFunc resolves the paint color and opacity of one pixel.
type paintFunc func(px *pixel) (RGBA, float32)

// selectPaint returns the paint stage of a normalized selector.
func selectPaint(sel Selector, custom CustomPaintFunc) paintFunc {
	switch sel.Paint {
	case PaintSolid:
		return func(px *pixel) (RGBA, float32) {
			return px.v.Color, 1
		}

	case PaintLinear:
		return func(px *pixel) (RGBA, float32) {
			return px.res.Ramps.Sample(px.v.UV0), px.res.Opacity
		}

	case PaintRadial:
		return func(px *pixel) (RGBA, float32) {
			g := px.res.Radial
			u := RadialU(px.v.UV0, g)
			return px.res.Ramps.Sample(Vec2{X: u, Y: g[1].Z}), g[0].W
		}

	case PaintPattern:
		return selectPattern(sel.Wrap, custom)
	}

	return func(*pixel) (RGBA, float32) {
		return Transparent, 0
	}
}

func selectPattern(w Wrap, custom CustomPaintFunc) paintFunc {
	switch {
	case w == WrapCustom:
		return func(px *pixel) (RGBA, float32) {
			ctx := PaintContext{pixel: px}
			return custom(&ctx), px.res.Opacity
		}

	case w == WrapClamp:
		return func(px *pixel) (RGBA, float32) {
			uv := px.v.UV0
			inside := InsideRect(uv, px.v.Rect)
			return px.res.Pattern.Sample(uv).Scale(inside), px.res.Opacity
		}

	case w.Tiling():
		return func(px *pixel) (RGBA, float32) {
			uv := WrapUV(px.v.UV0, px.v.Tile, w)
			inside := InsideRect(uv, px.v.Rect)
			c := px.res.Pattern.SampleGrad(uv, px.quad.ddxUV0, px.quad.ddyUV0)
			return c.Scale(inside), px.res.Opacity
		}
	}

	return func(px *pixel) (RGBA, float32) {
		return px.res.Pattern.Sample(px.v.UV0), px.res.Opacity
	}
}

// CustomPaintFunc computes the color of a custom pattern paint. The
// compositor applies the opacity constant and the effect afterwards.
type CustomPaintFunc func(ctx *PaintContext) RGBA

// PaintContext is the read-only view a custom paint function receives.
type PaintContext struct {
	pixel *pixel
}

// In returns the interpolated inputs of the pixel.
func (c *PaintContext) In() *Varyings {
	return c.pixel.v
}

// Resources returns the bound images and constants.
func (c *PaintContext) Resources() *Resources {
	return c.pixel.res
}

// Derivatives returns the screen-space derivatives of fn across the
// pixel's 2x2 quad.
func (c *PaintContext) Derivatives(fn func(*Varyings) Vec2) (ddx, ddy Vec2) {
	return c.pixel.quad.derivatives(fn)
}

// SamplePattern samples the pattern image at uv.
func (c *PaintContext) SamplePattern(uv Vec2) RGBA {
	return c.pixel.res.Pattern.Sample(uv)
}
