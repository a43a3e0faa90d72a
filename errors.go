package brush

import "errors"

var (
	// ErrNoEffect is returned when a selector names no effect. Every
	// permutation must apply exactly one effect.
	ErrNoEffect = errors.New("brush: selector has no effect")

	// ErrNoPaint is returned when an effect that consumes the paint color
	// is paired with PaintNone.
	ErrNoPaint = errors.New("brush: effect requires a paint")

	// ErrInvalidSelector is returned for out-of-range paint, wrap or effect values.
	ErrInvalidSelector = errors.New("brush: invalid selector")

	// ErrNoCustomPaint is returned when a custom pattern permutation is
	// compiled without a custom paint function.
	ErrNoCustomPaint = errors.New("brush: custom pattern requires a paint function")

	// ErrMissingImage is returned by Shader.CheckResources when a bound
	// image required by the permutation is nil.
	ErrMissingImage = errors.New("brush: required image not bound")

	// ErrUnknownName is returned by the Parse functions for unrecognized names.
	ErrUnknownName = errors.New("brush: unknown name")
)

// ErrInvalidSDF is returned by SDFParams.Validate for calibrations that
// cannot map an encoded sample back to a distance.
var ErrInvalidSDF = errors.New("brush: invalid SDF calibration")
