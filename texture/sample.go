package texture

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/brush"
)

// Sample returns the filtered color at uv from level 0.
func (t *Texture) Sample(uv brush.Vec2) brush.RGBA {
	return t.sampleLevel(&t.levels[0], uv)
}

// SampleLevel samples at a fractional level of detail, blending the two
// nearest mip levels. Without a mip chain it samples level 0.
func (t *Texture) SampleLevel(uv brush.Vec2, lod float32) brush.RGBA {
	n := len(t.levels)
	if n == 1 || !(lod > 0) {
		return t.sampleLevel(&t.levels[0], uv)
	}
	lod = math32.Min(lod, float32(n-1))
	l0 := int(lod)
	frac := lod - float32(l0)
	c := t.sampleLevel(&t.levels[l0], uv)
	if frac == 0 || l0+1 >= n {
		return c
	}
	return c.Lerp(t.sampleLevel(&t.levels[l0+1], uv), frac)
}

// LOD returns the level of detail selected by the screen-space derivatives
// ddx and ddy of a normalized coordinate: log2 of the longest derivative in
// level 0 texels.
func (t *Texture) LOD(ddx, ddy brush.Vec2) float32 {
	size := brush.V2(float32(t.Width()), float32(t.Height()))
	rho := math32.Max(ddx.MulVec(size).Length(), ddy.MulVec(size).Length())
	if rho <= 1 {
		return 0
	}
	return math32.Log2(rho)
}

// SampleGrad samples with explicit derivatives. Without a mip chain it
// falls back to Sample and logs a warning once.
func (t *Texture) SampleGrad(uv, ddx, ddy brush.Vec2) brush.RGBA {
	if len(t.levels) == 1 {
		if t.sampler.Mipmaps {
			t.warnOnce.Do(func() {
				brush.Logger().Warn("texture: SampleGrad without mip chain",
					"width", t.Width(), "height", t.Height())
			})
		}
		return t.Sample(uv)
	}
	return t.SampleLevel(uv, t.LOD(ddx, ddy))
}

func (t *Texture) sampleLevel(l *level, uv brush.Vec2) brush.RGBA {
	if t.sampler.Filter == brush.FilterNearest {
		x := address(int(math32.Floor(uv.X*float32(l.width))), l.width, t.sampler.AddressU)
		y := address(int(math32.Floor(uv.Y*float32(l.height))), l.height, t.sampler.AddressV)
		return l.at(x, y)
	}

	// Texel centers sit at half-integer positions.
	fx := uv.X*float32(l.width) - 0.5
	fy := uv.Y*float32(l.height) - 0.5
	if math32.IsNaN(fx) || math32.IsNaN(fy) {
		return brush.Transparent
	}
	x0f, y0f := math32.Floor(fx), math32.Floor(fy)
	tx, ty := fx-x0f, fy-y0f
	x0, y0 := int(x0f), int(y0f)

	ax0 := address(x0, l.width, t.sampler.AddressU)
	ax1 := address(x0+1, l.width, t.sampler.AddressU)
	ay0 := address(y0, l.height, t.sampler.AddressV)
	ay1 := address(y0+1, l.height, t.sampler.AddressV)

	top := l.at(ax0, ay0).Lerp(l.at(ax1, ay0), tx)
	bottom := l.at(ax0, ay1).Lerp(l.at(ax1, ay1), tx)
	return top.Lerp(bottom, ty)
}

// address maps an integer texel index into [0, n) according to mode.
func address(i, n int, mode brush.AddressMode) int {
	switch mode {
	case brush.AddressRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case brush.AddressMirror:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i
	default:
		return min(max(i, 0), n-1)
	}
}
