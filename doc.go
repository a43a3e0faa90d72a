// Package brush implements the pixel stage of a 2D vector renderer: the
// brush compositor that turns interpolated per-vertex attributes and bound
// images into a final premultiplied color for every covered pixel.
//
// # Overview
//
// A brush is the combination of a paint (how color is produced across a
// primitive) and an effect (how coverage, opacity, shadows, blur and glyph
// distance fields are applied to that color). Every supported combination is
// described by a [Selector] and compiled once, ahead of use, into a [Shader].
// The per-pixel code of a compiled shader contains no branch on the selector.
//
//	sel := brush.Selector{Paint: brush.PaintLinear, Effect: brush.EffectPathAA}
//	sh, err := brush.Compile(sel)
//	if err != nil {
//	    return err
//	}
//	// sh.Attribs() lists the vertex attributes the producer must supply.
//
// # Paints
//
//   - [PaintSolid]: flat per-vertex color
//   - [PaintLinear]: 1-D ramp lookup at the primary UV
//   - [PaintRadial]: focal radial gradient mapped onto a ramp row
//   - [PaintPattern]: image lookup with a [Wrap] mode (clamp, repeat, mirror)
//     or a caller-supplied custom function
//
// # Effects
//
// RawColor, Mask, Clear, PathFill, PathFillAA, Opacity, Shadow, Blur, SDF,
// SDF-LCD, Downsample and Upsample. SDF-LCD writes a second, per-channel
// alpha target used for subpixel (component alpha) blending.
//
// # Derivatives
//
// Pixels are evaluated in 2x2 quads ([Quad]). Screen-space derivatives of any
// value are the coarse differences across the quad, which is what glyph
// anti-aliasing and mip selection for wrapped patterns rely on.
//
// # Related packages
//
//   - effect: the sampling context handed to custom full-screen effects
//   - texture: float32 textures, samplers and gradient ramp atlases
//   - wgsl: WGSL generation and SPIR-V compilation for every permutation
//   - gpu: WebGPU pipelines built from the same permutation descriptions
//   - raster: a software driver that runs compiled shaders over triangles
//   - filter: host-side blur, shadow and resampling of auxiliary images
//   - sdfgen: glyph distance fields encoded for the SDF effects
package brush
