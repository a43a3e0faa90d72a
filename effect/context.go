package effect

import (
	"github.com/gogpu/brush"
)

// Input is the per-pixel data captured for a custom effect invocation.
type Input struct {
	// Color is the primitive color; only its alpha is used, to composite
	// the effect result at primitive edges.
	Color brush.RGBA
	// UV is the interpolated input coordinate in the source image.
	UV brush.Vec2
	// Rect bounds the logical image inside the source (min xy, max zw).
	Rect brush.Vec4
	// ImagePos holds the scene pixel position of the pixel (xy) and the
	// size of one scene pixel in UV units (zw).
	ImagePos brush.Vec4
}

// Context is the read-only view of one pixel handed to a custom effect.
type Context struct {
	in    Input
	input brush.Sampler
}

// NewContext returns the context for one pixel of the source image.
func NewContext(input brush.Sampler, in Input) *Context {
	return &Context{in: in, input: input}
}

// Input returns the captured per-pixel data.
func (c *Context) Input() Input {
	return c.in
}

// InputCoordinate returns the raw interpolated coordinate. It is only
// meaningful when passed back to SampleInput.
func (c *Context) InputCoordinate() brush.Vec2 {
	return c.in.UV
}

// NormalizedInputCoordinate maps the raw coordinate from the image
// rectangle to [0, 1] on both axes. A degenerate rectangle axis maps to 0.
func (c *Context) NormalizedInputCoordinate() brush.Vec2 {
	r := c.in.Rect
	return brush.V2(normalize(c.in.UV.X, r.X, r.Z), normalize(c.in.UV.Y, r.Y, r.W))
}

func normalize(x, lo, hi float32) float32 {
	if hi == lo {
		return 0
	}
	return (x - lo) / (hi - lo)
}

// ImagePosition returns the absolute scene position of the pixel.
func (c *Context) ImagePosition() brush.Vec2 {
	return c.in.ImagePos.XY()
}

// SampleInput samples the source at a raw coordinate.
func (c *Context) SampleInput(uv brush.Vec2) brush.RGBA {
	return c.input.Sample(uv)
}

// SampleInputAtOffset samples the source offset by the given number of
// scene pixels from the current coordinate, clamped to the image rectangle.
func (c *Context) SampleInputAtOffset(offset brush.Vec2) brush.RGBA {
	uv := c.in.UV.Add(offset.MulVec(c.in.ImagePos.ZW()))
	return c.SampleInput(uv.ClampRect(c.in.Rect))
}

// SampleInputAtPosition samples the source at an absolute scene position,
// clamped to the image rectangle.
func (c *Context) SampleInputAtPosition(pos brush.Vec2) brush.RGBA {
	return c.SampleInputAtOffset(pos.Sub(c.ImagePosition()))
}
