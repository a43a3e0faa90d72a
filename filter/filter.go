// Package filter prepares the auxiliary images sampled by brush
// permutations: blurred sources and shadows for the Blur and Shadow
// effects, and resampled copies for Downsample and Upsample.
//
// Resampling and blurring are done by github.com/disintegration/imaging
// on 8-bit images; results come back as textures with linear, clamped
// sampling unless other texture options are given.
package filter

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/disintegration/imaging"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/texture"
)

var (
	// ErrInvalidSigma is returned for a negative or non-finite blur sigma.
	ErrInvalidSigma = errors.New("filter: invalid sigma")

	// ErrInvalidFactor is returned for a scale factor or target size that
	// does not shrink (Downscale) or grow (Upscale) the source.
	ErrInvalidFactor = errors.New("filter: invalid factor")

	// ErrNilTexture is returned for a nil source.
	ErrNilTexture = errors.New("filter: nil texture")
)

// Blur returns a Gaussian-blurred copy of src. A zero sigma returns an
// unblurred copy.
func Blur(src *texture.Texture, sigma float32, opts ...texture.Option) (*texture.Texture, error) {
	if src == nil {
		return nil, ErrNilTexture
	}
	if err := checkSigma(sigma); err != nil {
		return nil, err
	}
	img := src.Image()
	if sigma == 0 {
		return texture.FromImage(img, opts...)
	}
	blurred := imaging.Blur(img, float64(sigma))
	brush.Logger().Debug("filter: blur", "width", src.Width(), "height", src.Height(), "sigma", sigma)
	return texture.FromImage(blurred, opts...)
}

// Shadow returns a blurred copy of the alpha channel of src. The color
// channels of the result are zero.
func Shadow(src *texture.Texture, sigma float32, opts ...texture.Option) (*texture.Texture, error) {
	if src == nil {
		return nil, ErrNilTexture
	}
	if err := checkSigma(sigma); err != nil {
		return nil, err
	}
	w, h := src.Width(), src.Height()
	mask := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			a := src.At(x, y).A
			mask.SetNRGBA(x, y, color.NRGBA{A: uint8(clamp01(a)*255 + 0.5)})
		}
	}
	var img image.Image = mask
	if sigma > 0 {
		img = imaging.Blur(mask, float64(sigma))
	}
	brush.Logger().Debug("filter: shadow", "width", w, "height", h, "sigma", sigma)
	return texture.FromImage(img, opts...)
}

// Downscale shrinks src by an integer factor with a box filter. Each
// dimension is rounded down and kept at least one texel.
func Downscale(src *texture.Texture, factor int, opts ...texture.Option) (*texture.Texture, error) {
	if src == nil {
		return nil, ErrNilTexture
	}
	if factor < 1 {
		return nil, fmt.Errorf("%w: downscale by %d", ErrInvalidFactor, factor)
	}
	w := max(src.Width()/factor, 1)
	h := max(src.Height()/factor, 1)
	if factor == 1 {
		return texture.FromImage(src.Image(), opts...)
	}
	return texture.FromImage(imaging.Resize(src.Image(), w, h, imaging.Box), opts...)
}

// Upscale grows src to width x height with linear filtering. Both
// dimensions must be at least those of src.
func Upscale(src *texture.Texture, width, height int, opts ...texture.Option) (*texture.Texture, error) {
	if src == nil {
		return nil, ErrNilTexture
	}
	if width < src.Width() || height < src.Height() {
		return nil, fmt.Errorf("%w: upscale %dx%d to %dx%d", ErrInvalidFactor,
			src.Width(), src.Height(), width, height)
	}
	if width == src.Width() && height == src.Height() {
		return texture.FromImage(src.Image(), opts...)
	}
	return texture.FromImage(imaging.Resize(src.Image(), width, height, imaging.Linear), opts...)
}

func checkSigma(sigma float32) error {
	if sigma < 0 || math32.IsNaN(sigma) || sigma > maxSigma {
		return fmt.Errorf("%w: %v", ErrInvalidSigma, sigma)
	}
	return nil
}

// maxSigma bounds the blur kernel; imaging sizes it at 3 sigma.
const maxSigma = 1 << 10
