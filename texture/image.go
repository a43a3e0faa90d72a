package texture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/gogpu/brush"
)

// FromImage converts img to a premultiplied float32 texture. A mip chain is
// built when WithMipmaps is given.
func FromImage(img image.Image, opts ...Option) (*Texture, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	b := img.Bounds()
	t, err := New(b.Dx(), b.Dy(), opts...)
	if err != nil {
		return nil, err
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	l := &t.levels[0]
	for y := range l.height {
		row := rgba.Pix[y*rgba.Stride:]
		for x := range l.width {
			p := row[x*4 : x*4+4]
			l.pix[y*l.width+x] = brush.RGBA{
				R: float32(p[0]) / 255,
				G: float32(p[1]) / 255,
				B: float32(p[2]) / 255,
				A: float32(p[3]) / 255,
			}
		}
	}
	if t.sampler.Mipmaps {
		t.GenerateMipmaps()
	}
	return t, nil
}

// Image converts level 0 back to a premultiplied 8-bit image.
func (t *Texture) Image() *image.RGBA {
	l := &t.levels[0]
	dst := image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	for y := range l.height {
		for x := range l.width {
			dst.Set(x, y, l.at(x, y).Color())
		}
	}
	return dst
}

// Decode reads a PNG, JPEG or any registered image format into a texture.
func Decode(r io.Reader, opts ...Option) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("texture: decode: %w", err)
	}
	return FromImage(img, opts...)
}

// Load decodes the image file at path.
func Load(path string, opts ...Option) (*Texture, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("texture: open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f, opts...)
}

// EncodePNG writes level 0 as a PNG.
func (t *Texture) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, t.Image()); err != nil {
		return fmt.Errorf("texture: encode png: %w", err)
	}
	return nil
}

// SavePNG writes level 0 to a PNG file.
func (t *Texture) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("texture: create file: %w", err)
	}
	if err := t.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
