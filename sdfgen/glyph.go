package sdfgen

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/brush"
)

var (
	// ErrNoGlyph is returned when the font has no glyph for a rune.
	ErrNoGlyph = errors.New("sdfgen: no glyph for rune")

	// ErrNilFont is returned by Glyph for a nil font.
	ErrNilFont = errors.New("sdfgen: nil font")

	// ErrInvalidSize is returned for a non-positive pixel size or atlas
	// dimension.
	ErrInvalidSize = errors.New("sdfgen: invalid size")
)

// Option configures glyph generation.
type Option func(*options)

type options struct {
	supersample int
	spread      int
	params      brush.SDFParams
}

func defaultOptions() options {
	return options{supersample: 4, spread: 4, params: brush.DefaultSDF}
}

// WithSupersample sets the outline rasterization factor. The default is 4.
func WithSupersample(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.supersample = n
		}
	}
}

// WithSpread sets the distance range and padding in output texels. The
// default is 4.
func WithSpread(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.spread = n
		}
	}
}

// WithParams sets the distance encoding. The default is brush.DefaultSDF.
func WithParams(p brush.SDFParams) Option {
	return func(o *options) {
		o.params = p
	}
}

// Field is the distance field of one glyph.
type Field struct {
	// Image holds the encoded distances.
	Image *image.Gray
	// Origin is the pen position at the baseline, in texels from the
	// top-left corner of Image.
	Origin brush.Vec2
	// Advance is the horizontal advance in pixels.
	Advance float32
}

// Glyph rasterizes the outline of r at ppem pixels per em and returns its
// distance field, padded by the spread on every side. Glyphs without an
// outline, such as a space, yield a field that is entirely outside.
func Glyph(f *sfnt.Font, r rune, ppem float32, opts ...Option) (*Field, error) {
	if f == nil {
		return nil, ErrNilFont
	}
	if !(ppem > 0) {
		return nil, fmt.Errorf("%w: ppem %v", ErrInvalidSize, ppem)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.params.Validate(); err != nil {
		return nil, err
	}

	var buf sfnt.Buffer
	idx, err := f.GlyphIndex(&buf, r)
	if err != nil {
		return nil, fmt.Errorf("sdfgen: glyph index of %q: %w", r, err)
	}
	if idx == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoGlyph, r)
	}
	adv, err := f.GlyphAdvance(&buf, idx, fixed.Int26_6(ppem*64), font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("sdfgen: advance of %q: %w", r, err)
	}

	ss := o.supersample
	segs, err := f.LoadGlyph(&buf, idx, fixed.Int26_6(ppem*float32(ss)*64), nil)
	if err != nil {
		return nil, fmt.Errorf("sdfgen: load %q: %w", r, err)
	}

	field := &Field{Advance: float32(adv) / 64}
	pad := o.spread
	if len(segs) == 0 {
		field.Image = image.NewGray(image.Rect(0, 0, 2*pad, 2*pad))
		fill := encode(o.params, -float32(pad))
		for i := range field.Image.Pix {
			field.Image.Pix[i] = fill
		}
		field.Origin = brush.V2(float32(pad), float32(pad))
		return field, nil
	}

	// Output texel bounds of the glyph plus padding.
	b := segs.Bounds()
	scale := 1 / (64 * float64(ss))
	x0 := int(math.Floor(float64(b.Min.X)*scale)) - pad
	y0 := int(math.Floor(float64(b.Min.Y)*scale)) - pad
	x1 := int(math.Ceil(float64(b.Max.X)*scale)) + pad
	y1 := int(math.Ceil(float64(b.Max.Y)*scale)) + pad
	w, h := x1-x0, y1-y0

	mask := rasterize(segs, w*ss, h*ss, float32(x0*ss), float32(y0*ss))
	dist := signedDistance(mask, float64(pad*ss))

	field.Image = image.NewGray(image.Rect(0, 0, w, h))
	inv := 1 / float64(ss*ss*ss)
	for ty := range h {
		for tx := range w {
			var sum float64
			for sy := range ss {
				row := dist[(ty*ss+sy)*w*ss:]
				for sx := range ss {
					sum += row[tx*ss+sx]
				}
			}
			d := float32(sum * inv)
			field.Image.Pix[ty*field.Image.Stride+tx] = encode(o.params, d)
		}
	}
	field.Origin = brush.V2(float32(-x0), float32(-y0))

	brush.Logger().Debug("sdfgen: glyph",
		"rune", string(r), "ppem", ppem, "width", w, "height", h, "supersample", ss)
	return field, nil
}

// rasterize fills the outline into a w x h coverage mask. (ox, oy) is the
// outline position of the mask's top-left corner.
func rasterize(segs sfnt.Segments, w, h int, ox, oy float32) *image.Alpha {
	z := vector.NewRasterizer(w, h)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 - ox, float32(p.Y)/64 - oy
	}
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			z.ClosePath()
			x, y := pt(s.Args[0])
			z.MoveTo(x, y)
		case sfnt.SegmentOpLineTo:
			x, y := pt(s.Args[0])
			z.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
