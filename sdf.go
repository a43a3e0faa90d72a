package brush

import (
	"fmt"

	"github.com/chewxy/math32"
)

// MinGradient is the smallest screen-space gradient length used by the SDF
// effects. A zero derivative (a degenerate or single-pixel quad) yields a
// hard edge instead of a division by zero.
const MinGradient = 1e-6

// SDFParams is the calibration that maps an encoded glyph atlas sample back
// to a signed distance in glyph units, and the curve that derives the edge
// offset and antialiasing width from the on-screen glyph scale.
//
// The values must match the generator that produced the atlas; see
// package sdfgen.
type SDFParams struct {
	// Scale and Bias decode a sample: distance = Scale * (sample - Bias).
	Scale float32
	Bias  float32
	// AAFactor scales the gradient length into the smoothstep half-width.
	AAFactor float32
	// BaseMin and BaseMax bound the pixel-to-glyph scale fed to the base curve.
	BaseMin float32
	BaseMax float32
	// BaseDev is the edge offset applied at BaseMin; it fades to zero at BaseMax.
	BaseDev float32
}

// DefaultSDF is the calibration used by the built-in glyph pipeline.
var DefaultSDF = SDFParams{
	Scale:    7.96875,
	Bias:     0.50196078431,
	AAFactor: 0.65,
	BaseMin:  0.125,
	BaseMax:  0.25,
	BaseDev:  -0.65,
}

// Validate reports whether p is usable.
func (p SDFParams) Validate() error {
	if p.Scale <= 0 || math32.IsNaN(p.Scale) {
		return fmt.Errorf("%w: scale %v", ErrInvalidSDF, p.Scale)
	}
	if p.BaseMax <= p.BaseMin {
		return fmt.Errorf("%w: base range [%v, %v]", ErrInvalidSDF, p.BaseMin, p.BaseMax)
	}
	if p.AAFactor < 0 {
		return fmt.Errorf("%w: aa factor %v", ErrInvalidSDF, p.AAFactor)
	}
	return nil
}

// Distance decodes an atlas sample into a signed distance.
func (p SDFParams) Distance(sample float32) float32 {
	return p.Scale * (sample - p.Bias)
}

// Encode is the inverse of Distance, clamped to the storable range [0, 1].
func (p SDFParams) Encode(distance float32) float32 {
	return saturate(distance/p.Scale + p.Bias)
}

// Base returns the edge offset for a screen-space gradient of length gradLen.
// The local glyph scale is the reciprocal of gradLen.
func (p SDFParams) Base(gradLen float32) float32 {
	scale := 1 / math32.Max(gradLen, MinGradient)
	t := (clampf(scale, p.BaseMin, p.BaseMax) - p.BaseMin) / (p.BaseMax - p.BaseMin)
	return p.BaseDev * (1 - t)
}

// Range returns the smoothstep half-width for a gradient of length gradLen.
func (p SDFParams) Range(gradLen float32) float32 {
	return p.AAFactor * math32.Max(gradLen, MinGradient)
}

// Coverage returns the antialiased coverage of a pixel whose decoded
// distance is d and whose glyph-space gradient has length gradLen.
//
// The gradient is treated as isotropic: only its length is used, which is
// exact for uniform scale without perspective.
func (p SDFParams) Coverage(d, gradLen float32) float32 {
	base := p.Base(gradLen)
	r := p.Range(gradLen)
	return Smoothstep(base-r, base+r, d)
}

// Smoothstep is the Hermite step between e0 and e1. An empty interval
// degrades to a hard step at e0.
func Smoothstep(e0, e1, x float32) float32 {
	if e1 <= e0 {
		if x >= e0 {
			return 1
		}
		return 0
	}
	t := saturate((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}
