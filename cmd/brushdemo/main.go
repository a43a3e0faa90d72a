// Command brushdemo renders a contact sheet of brush permutations with the
// software rasterizer: one column per paint, one row per effect, and a
// final row of paint-independent effects.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/effect"
	"github.com/gogpu/brush/raster"
	"github.com/gogpu/brush/texture"
)

func main() {
	var (
		output  = flag.String("output", "demo.png", "output file")
		cell    = flag.Int("cell", 96, "cell size in pixels")
		workers = flag.Int("workers", 0, "shading workers (0 = GOMAXPROCS)")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sheet, err := render(ctx, *cell, *workers)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := sheet.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d)\n", *output, sheet.Width(), sheet.Height())
}

// column is one paint of the sheet.
type column struct {
	paint brush.Paint
	wrap  brush.Wrap
}

var columns = []column{
	{paint: brush.PaintSolid},
	{paint: brush.PaintLinear},
	{paint: brush.PaintRadial},
	{paint: brush.PaintPattern, wrap: brush.WrapClamp},
	{paint: brush.PaintPattern, wrap: brush.WrapRepeat},
	{paint: brush.PaintPattern, wrap: brush.WrapMirror},
	{paint: brush.PaintPattern, wrap: brush.WrapCustom},
}

var rows = []brush.Effect{
	brush.EffectPath,
	brush.EffectPathAA,
	brush.EffectOpacity,
	brush.EffectShadow,
	brush.EffectBlur,
	brush.EffectSDF,
	brush.EffectSDFLCD,
}

// The last row holds these cells, followed by two effect-package cells.
var extras = []brush.Effect{
	brush.EffectRGBA,
	brush.EffectMask,
	brush.EffectDownsample,
	brush.EffectUpsample,
}

const gap = 8

var (
	background = brush.Gray(0.12)
	focal      = brush.V2(0.35, -0.25)
)

// sheet draws cells into one color target and one alpha target.
type sheet struct {
	r      *raster.Renderer
	target raster.Target
	a      *assets
	cell   int
	cache  map[brush.Selector]*brush.Shader
}

func render(ctx context.Context, cell, workers int) (*texture.Texture, error) {
	if cell < 16 {
		return nil, fmt.Errorf("cell size %d too small", cell)
	}
	a, err := loadAssets(cell)
	if err != nil {
		return nil, err
	}

	w := len(columns)*(cell+gap) + gap
	h := (len(rows)+1)*(cell+gap) + gap
	color, err := texture.Filled(w, h, background)
	if err != nil {
		return nil, err
	}
	alpha, err := texture.New(w, h)
	if err != nil {
		return nil, err
	}

	s := &sheet{
		r:      raster.NewRenderer(workers),
		target: raster.Target{Color: color, Alpha: alpha},
		a:      a,
		cell:   cell,
		cache:  make(map[brush.Selector]*brush.Shader),
	}
	defer s.r.Close()

	for y, e := range rows {
		for x, c := range columns {
			sel := brush.Selector{Paint: c.paint, Wrap: c.wrap, Effect: e}
			if err := s.draw(ctx, x, y, sel); err != nil {
				return nil, fmt.Errorf("%s: %w", sel, err)
			}
		}
	}
	last := len(rows)
	for x, e := range extras {
		sel := brush.Selector{Paint: brush.PaintSolid, Effect: e}.Normalize()
		if err := s.draw(ctx, x, last, sel); err != nil {
			return nil, fmt.Errorf("%s: %w", sel, err)
		}
	}
	for i, def := range []effect.Definition{effect.Vignette(0.8), effect.Desaturate(1)} {
		if err := s.apply(len(extras)+i, last, def); err != nil {
			return nil, err
		}
	}
	return color, nil
}

func (s *sheet) shader(sel brush.Selector) (*brush.Shader, error) {
	if sh, ok := s.cache[sel]; ok {
		return sh, nil
	}
	sh, err := brush.Compile(sel, brush.WithCustomPaint(rings))
	if err != nil {
		return nil, err
	}
	s.cache[sel] = sh
	return sh, nil
}

// bounds returns the pixel rectangle of cell (x, y).
func (s *sheet) bounds(x, y int) brush.Vec4 {
	x0 := float32(gap + x*(s.cell+gap))
	y0 := float32(gap + y*(s.cell+gap))
	return brush.V4(x0, y0, x0+float32(s.cell), y0+float32(s.cell))
}

func (s *sheet) draw(ctx context.Context, x, y int, sel brush.Selector) error {
	sh, err := s.shader(sel)
	if err != nil {
		return err
	}
	res := s.resources(sel.Effect)
	corners := s.corners(s.bounds(x, y), sh.Selector())
	return s.r.DrawRect(ctx, s.target, sh, res, corners)
}

func (s *sheet) resources(e brush.Effect) *brush.Resources {
	a := s.a
	res := &brush.Resources{
		Pattern: a.pattern,
		Ramps:   a.ramps,
		Image:   a.photo,
		Glyphs:  a.glyphs,
		Shadow:  a.shadow,
		Constants: brush.Constants{
			RGBA:         brush.Premul(0.9, 0.5, 0.1, 1),
			Opacity:      1,
			Radial:       brush.RadialGradient(focal, a.radialV, 1),
			ShadowColor:  brush.Premul(0, 0, 0, 0.7),
			ShadowOffset: brush.V2(0.08, 0.08),
			Blend:        1,
		},
	}
	switch e {
	case brush.EffectBlur:
		res.Shadow = a.blurred
	case brush.EffectOpacity:
		res.Image = a.gray
	case brush.EffectDownsample:
		res.Pattern = a.photo
	case brush.EffectUpsample:
		res.Pattern = a.low
	}
	return res
}

// corners returns the vertices of a cell for a normalized selector.
func (s *sheet) corners(b brush.Vec4, sel brush.Selector) [4]raster.Vertex {
	base := raster.Vertex{
		Color:    brush.Premul(0.25, 0.6, 0.95, 1),
		Coverage: 1,
		Rect:     brush.V4(0, 0, 1, 1),
		Tile:     brush.V4(0, 0, 1, 1),
	}
	uv0 := brush.V4(0, 0, 1, 1)
	uv1 := brush.V4(0, 0, 1, 1)

	switch sel.Paint {
	case brush.PaintLinear:
		uv0 = brush.V4(0, s.a.linearV, 1, s.a.linearV)
	case brush.PaintRadial:
		uv0 = brush.V4(-1-focal.X, -1-focal.Y, 1-focal.X, 1-focal.Y)
	case brush.PaintPattern:
		if sel.Wrap.Tiling() {
			uv0 = brush.V4(-0.5, -0.5, 2.5, 2.5)
		} else if sel.Wrap == brush.WrapClamp {
			uv0 = brush.V4(-0.25, -0.25, 1.25, 1.25)
		}
	}

	var c [4]raster.Vertex
	switch sel.Effect {
	case brush.EffectSDF, brush.EffectSDFLCD:
		g := s.a.glyph
		gw, gh := float32(g.Bounds.Dx()), float32(g.Bounds.Dy())
		scale := float32(s.cell) / max(gw, gh)
		cx, cy := (b.X+b.Z)/2, (b.Y+b.W)/2
		b = brush.V4(cx-gw*scale/2, cy-gh*scale/2, cx+gw*scale/2, cy+gh*scale/2)
		c = raster.RectCorners(b, base, uv0, g.UV)
		st := brush.V4(float32(g.Bounds.Min.X), float32(g.Bounds.Min.Y), float32(g.Bounds.Max.X), float32(g.Bounds.Max.Y))
		lcd := 1 / (3 * s.a.atlasW)
		for i := range c {
			p := stCorner(st, i)
			c[i].ST1 = brush.V4(p.X, p.Y, lcd, 0)
		}

	case brush.EffectPathAA:
		c = raster.RectCorners(b, base, uv0, uv1)
		c[0].Coverage, c[2].Coverage = 0.15, 0.15

	case brush.EffectDownsample:
		c = raster.RectCorners(b, base, uv0, uv1)
		h := 0.5 / float32(s.a.photo.Width())
		for i := range c {
			uv := c[i].UV0
			c[i].UV0 = uv.Add(brush.V2(-h, -h))
			c[i].UV1 = uv.Add(brush.V2(h, -h))
			c[i].UV2 = uv.Add(brush.V2(-h, h))
			c[i].UV3 = uv.Add(brush.V2(h, h))
		}

	case brush.EffectUpsample:
		base.Color = brush.Premul(1, 1, 1, 0.5)
		c = raster.RectCorners(b, base, uv0, uv1)

	default:
		c = raster.RectCorners(b, base, uv0, uv1)
	}
	return c
}

// stCorner returns corner i of r in RectCorners order.
func stCorner(r brush.Vec4, i int) brush.Vec2 {
	p := r.XY()
	if i&1 != 0 {
		p.X = r.Z
	}
	if i&2 != 0 {
		p.Y = r.W
	}
	return p
}

// apply runs an effect-package definition over the photo into cell (x, y).
func (s *sheet) apply(x, y int, def effect.Definition) error {
	sh, err := def.Compile()
	if err != nil {
		return err
	}
	b := s.bounds(x, y)
	x0, y0 := int(b.X), int(b.Y)
	dst := s.target.Color
	sh.Apply(s.a.photo, brush.V4(0, 0, 1, 1), s.cell, s.cell, func(px, py int, c brush.RGBA) {
		dst.Set(x0+px, y0+py, c.Over(dst.At(x0+px, y0+py)))
	})
	return nil
}

// rings is the custom pattern paint: concentric bands around the cell
// center, antialiased with the pattern coordinate derivatives.
func rings(ctx *brush.PaintContext) brush.RGBA {
	uv := ctx.In().UV0
	ddx, _ := ctx.Derivatives(func(v *brush.Varyings) brush.Vec2 { return v.UV0 })
	d := uv.Sub(brush.V2(0.5, 0.5)).Length() * 8
	f := d - float32(int(d))
	w := max(ddx.Length()*8, 1e-3)
	t := min(max((min(f, 1-f)-0.25)/w+0.5, 0), 1)
	return brush.Premul(0.95, 0.6, 0.2, 1).Lerp(brush.Premul(0.15, 0.1, 0.3, 1), t)
}
