// Package effect runs custom full-screen post effects over an already
// rendered image.
//
// A custom effect is a Func that receives a read-only Context for the
// pixel being shaded. The Context exposes the source image through three
// coordinate conventions:
//
//   - the raw input coordinate, opaque to the atlas layout
//   - the coordinate normalized to [0, 1] across the logical image
//   - the absolute position in scene pixels
//
// Effects must treat the raw coordinate and the image rectangle as opaque:
// the portable operations are normalization and sampling at pixel offsets,
// which keeps an effect correct when the host packs the image into a shared
// atlas. The result of the effect is multiplied by the alpha of the
// primitive being drawn so the effect blends at its edges.
package effect
