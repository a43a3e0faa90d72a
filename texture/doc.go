// Package texture provides float32 premultiplied textures with fixed
// sampler state, the bound-image implementation used by the brush
// compositor's software path.
//
// A Texture implements brush.Sampler. Texture coordinates are normalized:
// (0, 0) is the top-left corner of the top-left texel and (1, 1) the
// bottom-right corner of the bottom-right texel.
//
// RampAtlas packs 1-D gradient ramps as rows of one texture, the layout
// the linear and radial paints expect.
package texture
