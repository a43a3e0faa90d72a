// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"

	"github.com/gogpu/brush"
)

// edge is the line function of one triangle side. For a pixel center p,
// w = a*p.x + b*p.y + c is zero on the side and positive inside.
type edge struct {
	a, b, c float64
	// tie decides ownership of pixel centers exactly on the side. Two
	// triangles sharing a side traverse it in opposite directions, so
	// exactly one of them owns it.
	tie bool
}

func newEdge(p, q brush.Vec2) edge {
	dx := float64(q.X) - float64(p.X)
	dy := float64(q.Y) - float64(p.Y)
	e := edge{a: -dy, b: dx}
	e.c = -(e.a*float64(p.X) + e.b*float64(p.Y))
	e.tie = dy > 0 || (dy == 0 && dx < 0)
	return e
}

func (e *edge) eval(x, y float64) float64 {
	return e.a*x + e.b*y + e.c
}

func (e *edge) inside(w float64) bool {
	return w > 0 || (w == 0 && e.tie)
}

// triangle is a set-up triangle with positive area. v[0] is the provoking
// vertex and edges[i] is the side opposite v[i].
type triangle struct {
	v     [3]Vertex
	edges [3]edge
	area  float64

	// Pixel bounds, min inclusive and max exclusive.
	minX, minY, maxX, maxY int
}

// setupTriangle orients the triangle and computes its edges and bounds.
// Degenerate triangles report false.
func setupTriangle(a, b, c *Vertex) (triangle, bool) {
	t := triangle{v: [3]Vertex{*a, *b, *c}}
	t.area = newEdge(a.Position, b.Position).eval(float64(c.Position.X), float64(c.Position.Y))
	if t.area == 0 || math.IsNaN(t.area) || math.IsInf(t.area, 0) {
		return triangle{}, false
	}
	if t.area < 0 {
		t.v[1], t.v[2] = t.v[2], t.v[1]
		t.area = -t.area
	}
	for i := range t.edges {
		t.edges[i] = newEdge(t.v[(i+1)%3].Position, t.v[(i+2)%3].Position)
	}

	p0, p1, p2 := t.v[0].Position, t.v[1].Position, t.v[2].Position
	t.minX = int(math.Floor(float64(min(p0.X, p1.X, p2.X))))
	t.minY = int(math.Floor(float64(min(p0.Y, p1.Y, p2.Y))))
	t.maxX = int(math.Ceil(float64(max(p0.X, p1.X, p2.X))))
	t.maxY = int(math.Ceil(float64(max(p0.Y, p1.Y, p2.Y))))
	return t, true
}

// weights returns the unnormalized barycentric weights of the pixel
// center (x, y) and whether the center is covered.
func (t *triangle) weights(x, y float64) ([3]float64, bool) {
	var w [3]float64
	in := true
	for i := range t.edges {
		w[i] = t.edges[i].eval(x, y)
		in = in && t.edges[i].inside(w[i])
	}
	return w, in
}

// interpolate returns the varyings at pos with barycentric weights w.
// Flat attributes take the provoking vertex.
func (t *triangle) interpolate(w [3]float64, pos brush.Vec2) brush.Varyings {
	l0 := float32(w[0] / t.area)
	l1 := float32(w[1] / t.area)
	l2 := float32(w[2] / t.area)
	a, b, c := &t.v[0], &t.v[1], &t.v[2]

	v := *a
	v.Position = pos
	v.UV0 = bary2(a.UV0, b.UV0, c.UV0, l0, l1, l2)
	v.UV1 = bary2(a.UV1, b.UV1, c.UV1, l0, l1, l2)
	v.UV2 = bary2(a.UV2, b.UV2, c.UV2, l0, l1, l2)
	v.UV3 = bary2(a.UV3, b.UV3, c.UV3, l0, l1, l2)
	v.ST1 = a.ST1.Mul(l0).Add(b.ST1.Mul(l1)).Add(c.ST1.Mul(l2))
	v.Coverage = a.Coverage*l0 + b.Coverage*l1 + c.Coverage*l2
	return v
}

func bary2(a, b, c brush.Vec2, l0, l1, l2 float32) brush.Vec2 {
	return a.Mul(l0).Add(b.Mul(l1)).Add(c.Mul(l2))
}

// draw is the immutable state of one DrawTriangles call shared by all
// bands.
type draw struct {
	target Target
	shader *brush.Shader
	res    *brush.Resources
	tris   []triangle
	width  int
	height int
	blend  blendFunc
	lcd    bool
}

// band shades rows [y0, y1). y0 is even.
func (d *draw) band(y0, y1 int) {
	var (
		q       brush.Quad
		out     [4]brush.Output
		w       [4][3]float64
		covered [4]bool
	)
	for ti := range d.tris {
		t := &d.tris[ti]
		qy0 := max(t.minY, y0) &^ 1
		qy1 := min(t.maxY, y1)
		qx0 := max(t.minX, 0) &^ 1
		qx1 := min(t.maxX, d.width)

		for qy := qy0; qy < qy1; qy += 2 {
			for qx := qx0; qx < qx1; qx += 2 {
				hit := false
				for j := range q {
					px, py := qx+(j&1), qy+(j>>1)
					var in bool
					w[j], in = t.weights(float64(px)+0.5, float64(py)+0.5)
					covered[j] = in && px < d.width && py < y1
					hit = hit || covered[j]
				}
				if !hit {
					continue
				}
				for j := range q {
					center := brush.V2(float32(qx+(j&1))+0.5, float32(qy+(j>>1))+0.5)
					q[j] = t.interpolate(w[j], center)
				}
				d.shader.ShadeQuad(d.res, &q, &out)
				for j := range q {
					if covered[j] {
						d.write(qx+(j&1), qy+(j>>1), &out[j])
					}
				}
			}
		}
	}
}

func (d *draw) write(x, y int, o *brush.Output) {
	dst := d.target.Color.At(x, y)
	if !d.lcd {
		d.target.Color.Set(x, y, d.blend(o.Color, dst))
		return
	}
	d.target.Color.Set(x, y, blendComponentAlpha(o.Color, o.Alpha, dst))
	alpha := d.target.Alpha.At(x, y)
	d.target.Alpha.Set(x, y, blendCoverage(o.Alpha, alpha))
}
