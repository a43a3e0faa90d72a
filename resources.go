package brush

import "fmt"

// Sampler is a bound image with its fixed sampler state.
//
// Implementations must be safe for concurrent reads; see
// texture.Texture for the standard one.
type Sampler interface {
	// Sample returns the filtered, premultiplied color at uv.
	Sample(uv Vec2) RGBA
	// SampleGrad samples with explicit screen-space derivatives of uv,
	// which select the mip level.
	SampleGrad(uv, ddx, ddy Vec2) RGBA
}

// Constants is the per-primitive constant data. A permutation reads only
// the members named by its Layout.Uniforms.
type Constants struct {
	// RGBA is the output of EffectRGBA.
	RGBA RGBA
	// Opacity scales linear and pattern paints.
	Opacity float32
	// Radial is the radial gradient descriptor; see RadialGradient.
	Radial [2]Vec4
	// ShadowColor and ShadowOffset describe the Shadow halo. The offset is
	// in effect-space (UV1) units.
	ShadowColor  RGBA
	ShadowOffset Vec2
	// Blend weighs the shadow image against the source (Shadow) or the
	// blurred image against the source (Blur).
	Blend float32
}

// Resources bundles the images and constants bound for a draw.
type Resources struct {
	Pattern Sampler
	Ramps   Sampler
	Image   Sampler
	Glyphs  Sampler
	Shadow  Sampler

	Constants
}

// Sampler returns the sampler bound to image slot img.
func (r *Resources) Sampler(img Image) Sampler {
	switch img {
	case ImagePattern:
		return r.Pattern
	case ImageRamps:
		return r.Ramps
	case ImageImage:
		return r.Image
	case ImageGlyphs:
		return r.Glyphs
	case ImageShadow:
		return r.Shadow
	}
	return nil
}

// check reports the first image of imgs that is not bound.
func (r *Resources) check(imgs Images) error {
	var err error
	imgs.Each(func(img Image) {
		if err == nil && r.Sampler(img) == nil {
			err = fmt.Errorf("%w: %s", ErrMissingImage, img)
		}
	})
	return err
}
