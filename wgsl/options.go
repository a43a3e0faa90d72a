package wgsl

import "github.com/gogpu/brush"

// Option configures brush generation.
type Option func(*options)

type options struct {
	custom string
	sdf    brush.SDFParams
}

func defaultOptions() options {
	return options{sdf: brush.DefaultSDF}
}

// WithCustomPaint sets the WGSL source defining get_custom_pattern for
// custom pattern permutations.
func WithCustomPaint(src string) Option {
	return func(o *options) {
		o.custom = src
	}
}

// WithSDFParams sets the distance-field calibration baked into the SDF
// permutations.
func WithSDFParams(p brush.SDFParams) Option {
	return func(o *options) {
		o.sdf = p
	}
}
