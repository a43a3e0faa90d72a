// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/internal/parallel"
	"github.com/gogpu/brush/texture"
)

var (
	// ErrNoTarget is returned when the color target is nil.
	ErrNoTarget = errors.New("raster: nil color target")

	// ErrNoAlphaTarget is returned when a two-target permutation is drawn
	// without an alpha target.
	ErrNoAlphaTarget = errors.New("raster: permutation needs an alpha target")

	// ErrTargetSize is returned when the alpha target differs in size from
	// the color target.
	ErrTargetSize = errors.New("raster: target size mismatch")

	// ErrVertexCount is returned when a triangle list is not a multiple of
	// three vertices.
	ErrVertexCount = errors.New("raster: vertex count is not a multiple of 3")
)

// DefaultBandHeight is the number of rows shaded per task.
const DefaultBandHeight = 16

// Target is the set of render targets of one draw. Alpha receives the
// per-subpixel coverage of SDF-LCD permutations and is ignored otherwise.
type Target struct {
	Color *texture.Texture
	Alpha *texture.Texture
}

// Vertex is one triangle corner. Position is in target pixels; the other
// fields are the attributes interpolated across the triangle.
type Vertex = brush.Varyings

// Renderer rasterizes triangle lists with compiled brush shaders.
//
// A Renderer is safe for concurrent use, but concurrent draws into the
// same target race on the pixels they share.
type Renderer struct {
	pool       *parallel.Pool
	bandHeight int
	blend      BlendMode
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithBandHeight sets the number of rows shaded per task. It is rounded
// up to an even number so quads never straddle two bands.
func WithBandHeight(h int) RendererOption {
	return func(r *Renderer) {
		if h > 0 {
			r.bandHeight = (h + 1) &^ 1
		}
	}
}

// WithBlend sets the blend mode applied to single-target permutations.
// The default is BlendSourceOver.
func WithBlend(m BlendMode) RendererOption {
	return func(r *Renderer) {
		r.blend = m
	}
}

// NewRenderer creates a renderer shading on the given number of workers.
// If workers <= 0, runtime.GOMAXPROCS(0) is used.
func NewRenderer(workers int, opts ...RendererOption) *Renderer {
	r := &Renderer{
		pool:       parallel.NewPool(workers),
		bandHeight: DefaultBandHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Workers returns the number of shading workers.
func (r *Renderer) Workers() int { return r.pool.Workers() }

// Close stops the workers. Draws after Close fail with parallel.ErrClosed.
func (r *Renderer) Close() { r.pool.Close() }

// DrawTriangles shades the triangle list verts into target. Triangles are
// drawn in order; later triangles blend over earlier ones.
//
// The context is checked between bands. On cancellation the bands already
// shaded stay written and ctx.Err() is returned.
func (r *Renderer) DrawTriangles(ctx context.Context, target Target, sh *brush.Shader, res *brush.Resources, verts []Vertex) error {
	if err := r.check(target, sh, res); err != nil {
		return err
	}
	if len(verts)%3 != 0 {
		return fmt.Errorf("%w: %d", ErrVertexCount, len(verts))
	}
	if len(verts) == 0 {
		return nil
	}

	tris := make([]triangle, 0, len(verts)/3)
	for i := 0; i < len(verts); i += 3 {
		if t, ok := setupTriangle(&verts[i], &verts[i+1], &verts[i+2]); ok {
			tris = append(tris, t)
		}
	}
	if len(tris) == 0 {
		return nil
	}

	d := draw{
		target: target,
		shader: sh,
		res:    res,
		tris:   tris,
		width:  target.Color.Width(),
		height: target.Color.Height(),
		blend:  r.blend.fn(),
		lcd:    sh.Targets() > 1,
	}
	bands := (d.height + r.bandHeight - 1) / r.bandHeight
	return r.pool.Run(ctx, bands, func(i int) {
		y0 := i * r.bandHeight
		d.band(y0, min(y0+r.bandHeight, d.height))
	})
}

// DrawRect draws the quadrilateral with corners in the order top-left,
// top-right, bottom-left, bottom-right as two triangles.
func (r *Renderer) DrawRect(ctx context.Context, target Target, sh *brush.Shader, res *brush.Resources, corners [4]Vertex) error {
	verts := []Vertex{
		corners[0], corners[1], corners[2],
		corners[2], corners[1], corners[3],
	}
	return r.DrawTriangles(ctx, target, sh, res, verts)
}

func (r *Renderer) check(target Target, sh *brush.Shader, res *brush.Resources) error {
	if target.Color == nil {
		return ErrNoTarget
	}
	if sh.Targets() > 1 {
		if target.Alpha == nil {
			return fmt.Errorf("%w: %s", ErrNoAlphaTarget, sh.Name())
		}
		if target.Alpha.Width() != target.Color.Width() || target.Alpha.Height() != target.Color.Height() {
			return fmt.Errorf("%w: color %dx%d, alpha %dx%d", ErrTargetSize,
				target.Color.Width(), target.Color.Height(), target.Alpha.Width(), target.Alpha.Height())
		}
	}
	return sh.CheckResources(res)
}

// RectCorners returns the corners of the pixel rectangle bounds in
// DrawRect order. Every corner starts as base; UV0 spans uv0 and UV1
// spans uv1 across the rectangle, each given as (min.x, min.y, max.x,
// max.y).
func RectCorners(bounds brush.Vec4, base Vertex, uv0, uv1 brush.Vec4) [4]Vertex {
	var c [4]Vertex
	for i := range c {
		c[i] = base
		right := i&1 != 0
		bottom := i&2 != 0
		c[i].Position = corner(bounds, right, bottom)
		c[i].UV0 = corner(uv0, right, bottom)
		c[i].UV1 = corner(uv1, right, bottom)
	}
	return c
}

func corner(r brush.Vec4, right, bottom bool) brush.Vec2 {
	p := r.XY()
	if right {
		p.X = r.Z
	}
	if bottom {
		p.Y = r.W
	}
	return p
}
