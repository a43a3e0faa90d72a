// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "github.com/gogpu/brush"

// BlendMode selects how shaded pixels combine with the color target.
// All modes operate on premultiplied colors.
type BlendMode uint8

const (
	// BlendSourceOver composites the source over the destination.
	BlendSourceOver BlendMode = iota
	// BlendSource replaces the destination.
	BlendSource
	// BlendPlus adds source and destination, clamped to [0, 1].
	BlendPlus
	// BlendDestinationOut keeps the destination where the source is
	// transparent.
	BlendDestinationOut
)

// String returns the mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendSourceOver:
		return "SourceOver"
	case BlendSource:
		return "Source"
	case BlendPlus:
		return "Plus"
	case BlendDestinationOut:
		return "DestinationOut"
	default:
		return "Unknown"
	}
}

// blendFunc combines a premultiplied source with a premultiplied
// destination.
type blendFunc func(src, dst brush.RGBA) brush.RGBA

func (m BlendMode) fn() blendFunc {
	switch m {
	case BlendSource:
		return blendSource
	case BlendPlus:
		return blendPlus
	case BlendDestinationOut:
		return blendDestinationOut
	default:
		return blendSourceOver
	}
}

// blendSourceOver: S + D*(1-Sa)
func blendSourceOver(src, dst brush.RGBA) brush.RGBA {
	return src.Over(dst)
}

// blendSource: S
func blendSource(src, _ brush.RGBA) brush.RGBA {
	return src
}

// blendPlus: min(1, S + D)
func blendPlus(src, dst brush.RGBA) brush.RGBA {
	return src.Add(dst).Clamp()
}

// blendDestinationOut: D*(1-Sa)
func blendDestinationOut(src, dst brush.RGBA) brush.RGBA {
	return dst.Scale(1 - src.A)
}

// blendComponentAlpha composites a subpixel-antialiased source using a
// separate coverage per channel: D = S + D*(1-A) for each of r, g and b.
// The destination alpha uses the largest channel coverage.
func blendComponentAlpha(src, alpha, dst brush.RGBA) brush.RGBA {
	a := max(alpha.R, alpha.G, alpha.B)
	return brush.RGBA{
		R: src.R + dst.R*(1-alpha.R),
		G: src.G + dst.G*(1-alpha.G),
		B: src.B + dst.B*(1-alpha.B),
		A: a + dst.A*(1-a),
	}
}

// blendCoverage accumulates subpixel coverage into the alpha target:
// S + D*(1-S) on every channel.
func blendCoverage(src, dst brush.RGBA) brush.RGBA {
	return brush.RGBA{
		R: src.R + dst.R*(1-src.R),
		G: src.G + dst.G*(1-src.G),
		B: src.B + dst.B*(1-src.B),
		A: src.A + dst.A*(1-src.A),
	}
}
