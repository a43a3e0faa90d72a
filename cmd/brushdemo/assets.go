package main

import (
	"fmt"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/filter"
	"github.com/gogpu/brush/sdfgen"
	"github.com/gogpu/brush/texture"
)

// assets holds every image bound by the demo permutations.
type assets struct {
	ramps   *texture.Texture
	linearV float32
	radialV float32

	pattern *texture.Texture // checkerboard, mipmapped for tiling wraps
	photo   *texture.Texture // Image slot of the image effects
	low     *texture.Texture // quarter-resolution photo for Upsample
	blurred *texture.Texture
	shadow  *texture.Texture
	gray    *texture.Texture // photo through a saturation matrix

	glyphs *texture.Texture
	glyph  sdfgen.Region
	atlasW float32
}

func loadAssets(cell int) (*assets, error) {
	a := new(assets)

	ramps, err := texture.NewRampAtlas(texture.DefaultRampWidth, 2)
	if err != nil {
		return nil, err
	}
	if a.linearV, err = ramps.Add([]texture.Stop{
		{Offset: 0, Color: brush.Premul(0.95, 0.3, 0.2, 1)},
		{Offset: 0.5, Color: brush.Premul(0.95, 0.85, 0.2, 1)},
		{Offset: 1, Color: brush.Premul(0.2, 0.5, 0.95, 1)},
	}); err != nil {
		return nil, fmt.Errorf("linear ramp: %w", err)
	}
	if a.radialV, err = ramps.Add([]texture.Stop{
		{Offset: 0, Color: brush.Premul(1, 1, 1, 1)},
		{Offset: 0.6, Color: brush.Premul(0.3, 0.7, 0.4, 1)},
		{Offset: 1, Color: brush.Premul(0.05, 0.2, 0.3, 0.4)},
	}); err != nil {
		return nil, fmt.Errorf("radial ramp: %w", err)
	}
	a.ramps = ramps.Texture()

	a.pattern = checker(16, 4, texture.WithMipmaps())

	src := blob(cell / 2)
	if a.photo, err = filter.Upscale(src, cell, cell); err != nil {
		return nil, err
	}
	if a.low, err = filter.Downscale(a.photo, 4); err != nil {
		return nil, err
	}
	if a.blurred, err = filter.Blur(a.photo, float32(cell)/16); err != nil {
		return nil, err
	}
	if a.shadow, err = filter.Shadow(a.photo, float32(cell)/12); err != nil {
		return nil, err
	}
	if a.gray, err = filter.Saturation(0).Mul(filter.Brightness(1.2)).Apply(a.photo); err != nil {
		return nil, err
	}

	if err := a.loadGlyph(float32(cell)); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *assets) loadGlyph(ppem float32) error {
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	field, err := sdfgen.Glyph(f, 'g', ppem)
	if err != nil {
		return err
	}
	atlas, err := sdfgen.NewAtlas(256, 256, 1)
	if err != nil {
		return err
	}
	if a.glyph, err = atlas.Add('g', field); err != nil {
		return err
	}
	if a.glyphs, err = atlas.Texture(); err != nil {
		return err
	}
	a.atlasW = float32(atlas.Image().Bounds().Dx())
	return nil
}

// checker returns a size x size checkerboard of n x n squares.
func checker(size, n int, opts ...texture.Option) *texture.Texture {
	t := texture.MustNew(size, size, opts...)
	light := brush.Premul(0.9, 0.9, 0.85, 1)
	dark := brush.Premul(0.35, 0.25, 0.5, 1)
	step := size / n
	for y := range size {
		for x := range size {
			c := dark
			if (x/step+y/step)%2 == 0 {
				c = light
			}
			t.Set(x, y, c)
		}
	}
	if t.Sampler().Mipmaps {
		t.GenerateMipmaps()
	}
	return t
}

// blob returns a soft colored disc on a transparent background.
func blob(size int) *texture.Texture {
	t := texture.MustNew(size, size)
	c := float32(size) / 2
	for y := range size {
		for x := range size {
			p := brush.V2(float32(x)+0.5-c, float32(y)+0.5-c).Mul(1 / c)
			d := p.Length()
			if d >= 0.8 {
				continue
			}
			a := min((0.8-d)*8, 1)
			t.Set(x, y, brush.Premul(0.5+p.X/2, 0.5-p.Y/2, 0.8, a))
		}
	}
	return t
}
