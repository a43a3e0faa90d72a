package sdfgen

import (
	"image"
	"math"

	"github.com/gogpu/brush"
)

// inf stands in for an infinite squared distance. It stays finite so the
// parabola intersections below never produce NaN.
const inf = 1e20

// insideThreshold is the alpha at or above which a mask texel is inside.
const insideThreshold = 0x80

// FromMask returns the encoded signed distance field of mask, one texel
// per mask texel. Distances are clamped to spread texels.
func FromMask(mask *image.Alpha, spread int, params brush.SDFParams) *image.Gray {
	b := mask.Bounds()
	d := signedDistance(mask, float64(max(spread, 1)))
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for i, v := range d {
		dst.Pix[i] = encode(params, float32(v))
	}
	return dst
}

func encode(params brush.SDFParams, d float32) uint8 {
	return uint8(params.Encode(d)*255 + 0.5)
}

// signedDistance returns the exact Euclidean distance from each texel
// center to the shape boundary, row-major, clamped to [-spread, spread].
// The boundary lies halfway between an inside and an outside texel.
func signedDistance(mask *image.Alpha, spread float64) []float64 {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	inside := make([]bool, w*h)
	for y := range h {
		row := mask.Pix[y*mask.Stride:]
		for x := range w {
			inside[y*w+x] = row[x] >= insideThreshold
		}
	}

	toInside := squaredDistance(inside, w, h, true)
	toOutside := squaredDistance(inside, w, h, false)

	out := make([]float64, w*h)
	for i, in := range inside {
		var d float64
		if in {
			d = math.Sqrt(toOutside[i]) - 0.5
		} else {
			d = 0.5 - math.Sqrt(toInside[i])
		}
		out[i] = min(max(d, -spread), spread)
	}
	return out
}

// squaredDistance computes, for every texel, the squared distance to the
// nearest texel whose inside flag equals feature. It runs the separable
// lower-envelope transform of Felzenszwalb and Huttenlocher over columns
// and then rows.
func squaredDistance(inside []bool, w, h int, feature bool) []float64 {
	grid := make([]float64, w*h)
	for i, in := range inside {
		if in == feature {
			grid[i] = 0
		} else {
			grid[i] = inf
		}
	}

	n := max(w, h)
	f := make([]float64, n)
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	for x := range w {
		for y := range h {
			f[y] = grid[y*w+x]
		}
		transform1D(f[:h], d[:h], v, z)
		for y := range h {
			grid[y*w+x] = d[y]
		}
	}
	for y := range h {
		row := grid[y*w : (y+1)*w]
		copy(f, row)
		transform1D(f[:w], d[:w], v, z)
		copy(row, d[:w])
	}
	return grid
}

// transform1D writes into d the squared distance transform of the sampled
// function f.
func transform1D(f, d []float64, v []int, z []float64) {
	n := len(f)
	if n == 0 {
		return
	}
	k := 0
	v[0] = 0
	z[0] = -inf
	z[1] = inf
	for q := 1; q < n; q++ {
		s := intersect(f, q, v[k])
		for s <= z[k] {
			k--
			s = intersect(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = inf
	}
	k = 0
	for q := range n {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

// intersect returns the abscissa where the parabolas rooted at q and p
// cross.
func intersect(f []float64, q, p int) float64 {
	fq, fp := float64(q), float64(p)
	return ((f[q] + fq*fq) - (f[p] + fp*fp)) / (2*fq - 2*fp)
}
