package brush

// Option configures permutation compilation.
//
// Example:
//
//	sh, err := brush.Compile(sel,
//	    brush.WithCustomPaint(checker),
//	    brush.WithSDFParams(atlasParams),
//	)
type Option func(*options)

type options struct {
	custom CustomPaintFunc
	sdf    SDFParams
}

func defaultOptions() options {
	return options{sdf: DefaultSDF}
}

// WithCustomPaint supplies the paint function of a WrapCustom pattern.
// It is ignored by every other permutation.
func WithCustomPaint(fn CustomPaintFunc) Option {
	return func(o *options) {
		o.custom = fn
	}
}

// WithSDFParams overrides the glyph atlas calibration used by the SDF
// effects. The default is DefaultSDF.
func WithSDFParams(p SDFParams) Option {
	return func(o *options) {
		o.sdf = p
	}
}
