package texture

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/brush"
)

var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("texture: invalid dimensions")

	// ErrNilImage is returned by FromImage for a nil source.
	ErrNilImage = errors.New("texture: nil image")
)

// level is one mip level.
type level struct {
	width, height int
	pix           []brush.RGBA
}

func newLevel(w, h int) level {
	return level{width: w, height: h, pix: make([]brush.RGBA, w*h)}
}

func (l *level) at(x, y int) brush.RGBA {
	return l.pix[y*l.width+x]
}

// Texture is a premultiplied float32 image with fixed sampler state and an
// optional mip chain.
//
// Thread safety: sampling is safe for concurrent use. Set and
// GenerateMipmaps require external synchronization with readers.
type Texture struct {
	levels  []level
	sampler brush.SamplerState

	warnOnce sync.Once
}

// Option configures a Texture.
type Option func(*Texture)

// WithFilter sets the filtering mode. The default is linear.
func WithFilter(f brush.Filter) Option {
	return func(t *Texture) {
		t.sampler.Filter = f
	}
}

// WithAddress sets the addressing mode per axis. The default is clamp.
func WithAddress(u, v brush.AddressMode) Option {
	return func(t *Texture) {
		t.sampler.AddressU = u
		t.sampler.AddressV = v
	}
}

// WithSampler sets the complete sampler state, typically taken from
// brush.Layout.Sampling for the slot the texture is bound to.
func WithSampler(s brush.SamplerState) Option {
	return func(t *Texture) {
		t.sampler = s
	}
}

// WithMipmaps requests a mip chain, built when the texture is created from
// an image and rebuilt by GenerateMipmaps.
func WithMipmaps() Option {
	return func(t *Texture) {
		t.sampler.Mipmaps = true
	}
}

// New creates a transparent texture.
func New(width, height int, opts ...Option) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	t := &Texture{
		levels:  []level{newLevel(width, height)},
		sampler: brush.SamplerState{Filter: brush.FilterLinear},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// MustNew is like New but panics on error.
func MustNew(width, height int, opts ...Option) *Texture {
	t, err := New(width, height, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Filled creates a texture of a single color.
func Filled(width, height int, c brush.RGBA, opts ...Option) (*Texture, error) {
	t, err := New(width, height, opts...)
	if err != nil {
		return nil, err
	}
	t.Fill(c)
	if t.sampler.Mipmaps {
		t.GenerateMipmaps()
	}
	return t, nil
}

// Width returns the width of level 0.
func (t *Texture) Width() int { return t.levels[0].width }

// Height returns the height of level 0.
func (t *Texture) Height() int { return t.levels[0].height }

// Levels returns the number of mip levels, at least 1.
func (t *Texture) Levels() int { return len(t.levels) }

// Sampler returns the texture's sampler state.
func (t *Texture) Sampler() brush.SamplerState { return t.sampler }

// At returns the texel at (x, y) of level 0, or transparent outside the
// texture.
func (t *Texture) At(x, y int) brush.RGBA {
	l := &t.levels[0]
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return brush.Transparent
	}
	return l.at(x, y)
}

// Set writes the texel at (x, y) of level 0. Writes outside the texture
// are ignored. The mip chain is not updated; call GenerateMipmaps.
func (t *Texture) Set(x, y int, c brush.RGBA) {
	l := &t.levels[0]
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return
	}
	l.pix[y*l.width+x] = c
}

// Fill sets every texel of level 0 to c.
func (t *Texture) Fill(c brush.RGBA) {
	pix := t.levels[0].pix
	for i := range pix {
		pix[i] = c
	}
}

// GenerateMipmaps rebuilds the mip chain from level 0 with a 2x2 box
// filter, down to a 1x1 level.
func (t *Texture) GenerateMipmaps() {
	t.levels = t.levels[:1]
	for {
		src := &t.levels[len(t.levels)-1]
		if src.width == 1 && src.height == 1 {
			break
		}
		t.levels = append(t.levels, downsample(src))
	}
	t.sampler.Mipmaps = true
	brush.Logger().Debug("texture: generated mipmaps",
		"width", t.Width(), "height", t.Height(), "levels", len(t.levels))
}

// downsample halves src with a box filter, repeating the last row or
// column for odd sizes.
func downsample(src *level) level {
	dst := newLevel(max(1, src.width/2), max(1, src.height/2))
	for y := range dst.height {
		sy0 := min(2*y, src.height-1)
		sy1 := min(2*y+1, src.height-1)
		for x := range dst.width {
			sx0 := min(2*x, src.width-1)
			sx1 := min(2*x+1, src.width-1)
			sum := src.at(sx0, sy0).
				Add(src.at(sx1, sy0)).
				Add(src.at(sx0, sy1)).
				Add(src.at(sx1, sy1))
			dst.pix[y*dst.width+x] = sum.Scale(0.25)
		}
	}
	return dst
}
