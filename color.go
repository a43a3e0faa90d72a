package brush

import (
	"image/color"

	"github.com/chewxy/math32"
)

// RGBA is a premultiplied color with float32 components in [0, 1].
// Every color flowing through the compositor is premultiplied: R, G and B
// never exceed A.
type RGBA struct {
	R, G, B, A float32
}

// Transparent is the zero color.
var Transparent = RGBA{}

// Premul creates a premultiplied color from straight (unassociated) components.
func Premul(r, g, b, a float32) RGBA {
	return RGBA{R: r * a, G: g * a, B: b * a, A: a}
}

// Gray returns an opaque gray.
func Gray(v float32) RGBA {
	return RGBA{R: v, G: v, B: v, A: 1}
}

// FromColor converts a standard color.Color to a premultiplied RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float32(r) / 0xffff,
		G: float32(g) / 0xffff,
		B: float32(b) / 0xffff,
		A: float32(a) / 0xffff,
	}
}

// Color converts c to a color.RGBA64 (also premultiplied).
func (c RGBA) Color() color.Color {
	c = c.Clamp()
	return color.RGBA64{
		R: uint16(c.R*0xffff + 0.5),
		G: uint16(c.G*0xffff + 0.5),
		B: uint16(c.B*0xffff + 0.5),
		A: uint16(c.A*0xffff + 0.5),
	}
}

// Scale multiplies every component by s.
func (c RGBA) Scale(s float32) RGBA {
	return RGBA{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Add returns the component-wise sum.
func (c RGBA) Add(o RGBA) RGBA {
	return RGBA{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A + o.A}
}

// Mul returns the component-wise product.
func (c RGBA) Mul(o RGBA) RGBA {
	return RGBA{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A * o.A}
}

// Lerp interpolates between c and o.
func (c RGBA) Lerp(o RGBA, t float32) RGBA {
	return RGBA{
		R: lerpf(c.R, o.R, t),
		G: lerpf(c.G, o.G, t),
		B: lerpf(c.B, o.B, t),
		A: lerpf(c.A, o.A, t),
	}
}

// Over composites c over dst (premultiplied source-over).
func (c RGBA) Over(dst RGBA) RGBA {
	return c.Add(dst.Scale(1 - c.A))
}

// Clamp clamps every component into [0, 1].
func (c RGBA) Clamp() RGBA {
	return RGBA{R: saturate(c.R), G: saturate(c.G), B: saturate(c.B), A: saturate(c.A)}
}

// Vec4 reinterprets the color as a vector.
func (c RGBA) Vec4() Vec4 {
	return Vec4{X: c.R, Y: c.G, Z: c.B, W: c.A}
}

// ApproxEqual reports whether every component of c and o differs by at most eps.
func (c RGBA) ApproxEqual(o RGBA, eps float32) bool {
	return math32.Abs(c.R-o.R) <= eps &&
		math32.Abs(c.G-o.G) <= eps &&
		math32.Abs(c.B-o.B) <= eps &&
		math32.Abs(c.A-o.A) <= eps
}
