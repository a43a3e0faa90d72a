package sdfgen

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/texture"
)

// ErrAtlasFull is returned when a field does not fit in the atlas.
var ErrAtlasFull = errors.New("sdfgen: atlas full")

// Region locates one glyph field inside an atlas.
type Region struct {
	// Bounds is the texel rectangle of the field.
	Bounds image.Rectangle
	// UV is Bounds in normalized atlas coordinates (min.x, min.y, max.x,
	// max.y).
	UV brush.Vec4
	// Origin and Advance are copied from the field.
	Origin  brush.Vec2
	Advance float32
}

// shelf is a horizontal strip of the atlas. Items are placed left to
// right; the shelf is as tall as its tallest item.
type shelf struct {
	y, height, x int
}

// Atlas packs glyph fields into one grayscale image with shelf packing.
// Unused texels encode the farthest outside distance.
//
// An Atlas is not safe for concurrent use.
type Atlas struct {
	img     *image.Gray
	padding int
	shelves []shelf
	used    int
	regions map[rune]Region
}

// NewAtlas creates an empty atlas of width x height texels with padding
// texels between fields.
func NewAtlas(width, height, padding int) (*Atlas, error) {
	if width <= 0 || height <= 0 || padding < 0 {
		return nil, fmt.Errorf("%w: atlas %dx%d padding %d", ErrInvalidSize, width, height, padding)
	}
	return &Atlas{
		img:     image.NewGray(image.Rect(0, 0, width, height)),
		padding: padding,
		shelves: make([]shelf, 0, 16),
		regions: make(map[rune]Region),
	}, nil
}

// Add places f under key r and returns its region. Adding a key that is
// already present returns the existing region.
func (a *Atlas) Add(r rune, f *Field) (Region, error) {
	if reg, ok := a.regions[r]; ok {
		return reg, nil
	}
	size := f.Image.Bounds().Size()
	x, y, ok := a.allocate(size.X, size.Y)
	if !ok {
		return Region{}, fmt.Errorf("%w: %q needs %dx%d", ErrAtlasFull, r, size.X, size.Y)
	}

	bounds := image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+size.X, y+size.Y)}
	draw.Draw(a.img, bounds, f.Image, f.Image.Bounds().Min, draw.Src)

	w, h := float32(a.img.Rect.Dx()), float32(a.img.Rect.Dy())
	reg := Region{
		Bounds:  bounds,
		UV:      brush.V4(float32(bounds.Min.X)/w, float32(bounds.Min.Y)/h, float32(bounds.Max.X)/w, float32(bounds.Max.Y)/h),
		Origin:  f.Origin,
		Advance: f.Advance,
	}
	a.regions[r] = reg
	return reg, nil
}

// allocate finds room for a w x h item, extending the last shelf when the
// item is taller than it and room remains below.
func (a *Atlas) allocate(w, h int) (x, y int, ok bool) {
	width, height := a.img.Rect.Dx(), a.img.Rect.Dy()
	pw, ph := w+a.padding, h+a.padding

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+pw > width {
			continue
		}
		if h > s.height {
			if i != len(a.shelves)-1 || s.y+ph > height {
				continue
			}
			s.height = h
		}
		x, y = s.x, s.y
		s.x += pw
		a.used += w * h
		return x, y, true
	}

	newY := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		newY = last.y + last.height + a.padding
	}
	if newY+ph > height || pw > width {
		return -1, -1, false
	}
	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: pw})
	a.used += w * h
	return 0, newY, true
}

// Region returns the region stored under r.
func (a *Atlas) Region(r rune) (Region, bool) {
	reg, ok := a.regions[r]
	return reg, ok
}

// Len returns the number of fields in the atlas.
func (a *Atlas) Len() int { return len(a.regions) }

// Utilization returns the fraction of texels covered by fields.
func (a *Atlas) Utilization() float64 {
	return float64(a.used) / float64(a.img.Rect.Dx()*a.img.Rect.Dy())
}

// Image returns the atlas image. It is shared, not copied.
func (a *Atlas) Image() *image.Gray { return a.img }

// Texture converts the atlas into a texture for the Glyphs image slot.
// The encoded distance is in every color channel.
func (a *Atlas) Texture(opts ...texture.Option) (*texture.Texture, error) {
	return texture.FromImage(a.img, opts...)
}
