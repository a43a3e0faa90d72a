package filter

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/texture"
)

// ColorMatrix is a 4x5 row-major color transform applied to
// unpremultiplied colors in [0, 1]:
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
type ColorMatrix [20]float32

// Identity is the color matrix that leaves colors unchanged.
var Identity = ColorMatrix{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// Rec. 709 luminance weights.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// Saturation returns a matrix scaling saturation by s: 0 is grayscale,
// 1 is unchanged.
func Saturation(s float32) ColorMatrix {
	inv := 1 - s
	return ColorMatrix{
		lumR*inv + s, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + s, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Brightness returns a matrix scaling the color channels by f.
func Brightness(f float32) ColorMatrix {
	return ColorMatrix{
		f, 0, 0, 0, 0,
		0, f, 0, 0, 0,
		0, 0, f, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// HueRotate returns a matrix rotating hue by degrees.
func HueRotate(degrees float32) ColorMatrix {
	rad := degrees * math32.Pi / 180
	c, s := math32.Cos(rad), math32.Sin(rad)
	return ColorMatrix{
		lumR + c*(1-lumR) - s*lumR, lumG - c*lumG - s*lumG, lumB - c*lumB + s*(1-lumB), 0, 0,
		lumR - c*lumR + s*0.143, lumG + c*(1-lumG) + s*0.140, lumB - c*lumB - s*0.283, 0, 0,
		lumR - c*lumR - s*(1-lumR), lumG - c*lumG + s*lumG, lumB + c*(1-lumB) + s*lumB, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Mul returns the matrix applying n first, then m.
func (m ColorMatrix) Mul(n ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for r := range 4 {
		for c := range 5 {
			var v float32
			for k := range 4 {
				v += m[r*5+k] * n[k*5+c]
			}
			if c == 4 {
				v += m[r*5+4]
			}
			out[r*5+c] = v
		}
	}
	return out
}

// Transform applies m to a premultiplied color and returns the clamped,
// premultiplied result.
func (m ColorMatrix) Transform(c brush.RGBA) brush.RGBA {
	var r, g, b float32
	if c.A > 0 {
		r, g, b = c.R/c.A, c.G/c.A, c.B/c.A
	}
	a := c.A
	nr := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
	ng := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
	nb := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
	na := m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]
	return brush.Premul(clamp01(nr), clamp01(ng), clamp01(nb), clamp01(na))
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}

// Apply returns a copy of src with m applied to every texel.
func (m ColorMatrix) Apply(src *texture.Texture, opts ...texture.Option) (*texture.Texture, error) {
	if src == nil {
		return nil, ErrNilTexture
	}
	dst, err := texture.New(src.Width(), src.Height(), opts...)
	if err != nil {
		return nil, err
	}
	for y := range src.Height() {
		for x := range src.Width() {
			dst.Set(x, y, m.Transform(src.At(x, y)))
		}
	}
	if dst.Sampler().Mipmaps {
		dst.GenerateMipmaps()
	}
	return dst, nil
}
