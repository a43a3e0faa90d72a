// Package sdfgen builds the single-channel signed distance fields sampled
// by the SDF and SDF-LCD brush effects.
//
// Distances are measured in texels, positive inside the shape, and stored
// with brush.SDFParams.Encode so the shader's Distance recovers them.
// Glyph fields are rasterized from sfnt outlines at a supersampled size
// and reduced, then packed into a shared atlas with a shelf allocator.
package sdfgen
