package brush

import (
	"fmt"
	"strings"
)

// Paint selects how a brush sources its color.
type Paint uint8

const (
	// PaintNone is only valid with effects that ignore the paint
	// (RawColor, Mask, Clear, Downsample).
	PaintNone Paint = iota
	PaintSolid
	PaintLinear
	PaintRadial
	PaintPattern

	paintCount
)

var paintNames = [...]string{"none", "solid", "linear", "radial", "pattern"}

// String returns the permutation name fragment for p.
func (p Paint) String() string {
	if p >= paintCount {
		return fmt.Sprintf("Paint(%d)", uint8(p))
	}
	return paintNames[p]
}

// Wrap selects how a pattern paint addresses coordinates outside its tile.
type Wrap uint8

const (
	// WrapNone samples the pattern directly and leaves addressing to the
	// sampler state.
	WrapNone Wrap = iota
	WrapClamp
	WrapRepeat
	WrapMirrorU
	WrapMirrorV
	WrapMirror
	// WrapCustom delegates the whole paint to a caller-supplied function.
	WrapCustom

	wrapCount
)

var wrapNames = [...]string{"none", "clamp", "repeat", "mirror_u", "mirror_v", "mirror", "custom"}

// String returns the permutation name fragment for w.
func (w Wrap) String() string {
	if w >= wrapCount {
		return fmt.Sprintf("Wrap(%d)", uint8(w))
	}
	return wrapNames[w]
}

// Tiling reports whether w remaps coordinates into a repeating tile.
func (w Wrap) Tiling() bool {
	return w == WrapRepeat || w == WrapMirrorU || w == WrapMirrorV || w == WrapMirror
}

// Effect selects the final per-pixel operation applied to the paint.
type Effect uint8

const (
	EffectNone Effect = iota
	// EffectRGBA outputs a per-primitive constant color (RawColor).
	EffectRGBA
	EffectMask
	EffectClear
	// EffectPath is the plain path fill.
	EffectPath
	// EffectPathAA is the path fill modulated by rasterizer coverage.
	EffectPathAA
	EffectOpacity
	EffectShadow
	EffectBlur
	EffectSDF
	EffectSDFLCD
	EffectDownsample
	EffectUpsample

	effectCount
)

var effectNames = [...]string{
	"none", "rgba", "mask", "clear", "path", "path_aa", "opacity",
	"shadow", "blur", "sdf", "sdf_lcd", "downsample", "upsample",
}

// String returns the permutation name fragment for e.
func (e Effect) String() string {
	if e >= effectCount {
		return fmt.Sprintf("Effect(%d)", uint8(e))
	}
	return effectNames[e]
}

// UsesPaint reports whether the effect reads the paint color or opacity.
func (e Effect) UsesPaint() bool {
	switch e {
	case EffectRGBA, EffectMask, EffectClear, EffectDownsample:
		return false
	default:
		return true
	}
}

// ParsePaint returns the paint named s.
func ParsePaint(s string) (Paint, error) {
	for i, n := range paintNames {
		if strings.EqualFold(n, s) {
			return Paint(i), nil
		}
	}
	return PaintNone, fmt.Errorf("%w: paint %q", ErrUnknownName, s)
}

// ParseWrap returns the wrap mode named s. The empty string is WrapNone.
func ParseWrap(s string) (Wrap, error) {
	if s == "" {
		return WrapNone, nil
	}
	for i, n := range wrapNames {
		if strings.EqualFold(n, s) {
			return Wrap(i), nil
		}
	}
	return WrapNone, fmt.Errorf("%w: wrap %q", ErrUnknownName, s)
}

// ParseEffect returns the effect named s.
func ParseEffect(s string) (Effect, error) {
	for i, n := range effectNames {
		if i != 0 && strings.EqualFold(n, s) {
			return Effect(i), nil
		}
	}
	return EffectNone, fmt.Errorf("%w: effect %q", ErrUnknownName, s)
}

// Selector is the set of build-time switches that identifies one compiled
// brush permutation.
type Selector struct {
	Paint  Paint
	Wrap   Wrap
	Effect Effect
}

// Normalize returns the canonical form of s:
//   - Upsample forces a solid paint (its interpolation weight is the paint alpha)
//   - effects that ignore the paint drop it
//   - wrap modes are dropped from non-pattern paints
func (s Selector) Normalize() Selector {
	switch {
	case s.Effect == EffectUpsample:
		s.Paint = PaintSolid
	case !s.Effect.UsesPaint():
		s.Paint = PaintNone
	}
	if s.Paint != PaintPattern {
		s.Wrap = WrapNone
	}
	return s
}

// Validate reports configuration errors that make s impossible to build.
// It validates the normalized form.
func (s Selector) Validate() error {
	if s.Paint >= paintCount || s.Wrap >= wrapCount || s.Effect >= effectCount {
		return fmt.Errorf("%w: %d/%d/%d", ErrInvalidSelector, s.Paint, s.Wrap, s.Effect)
	}
	if s.Effect == EffectNone {
		return ErrNoEffect
	}
	n := s.Normalize()
	if n.Paint == PaintNone && n.Effect.UsesPaint() {
		return fmt.Errorf("%w: %s", ErrNoPaint, n.Effect)
	}
	return nil
}

// Name returns a stable identifier for the normalized permutation,
// e.g. "linear_path_aa", "pattern_mirror_u_sdf" or "downsample".
func (s Selector) Name() string {
	n := s.Normalize()
	var b strings.Builder
	if n.Paint != PaintNone {
		b.WriteString(n.Paint.String())
		b.WriteByte('_')
		if n.Paint == PaintPattern && n.Wrap != WrapNone {
			b.WriteString(n.Wrap.String())
			b.WriteByte('_')
		}
	}
	b.WriteString(n.Effect.String())
	return b.String()
}

// String implements fmt.Stringer.
func (s Selector) String() string {
	return s.Name()
}

// Selectors enumerates every valid normalized selector exactly once, in a
// stable order: paint-independent effects first, then paint by paint.
func Selectors() []Selector {
	var out []Selector
	for e := EffectRGBA; e < effectCount; e++ {
		if !e.UsesPaint() {
			out = append(out, Selector{Effect: e})
		}
	}
	out = append(out, Selector{Paint: PaintSolid, Effect: EffectUpsample})
	for p := PaintSolid; p < paintCount; p++ {
		wraps := []Wrap{WrapNone}
		if p == PaintPattern {
			wraps = make([]Wrap, 0, wrapCount)
			for w := WrapNone; w < wrapCount; w++ {
				wraps = append(wraps, w)
			}
		}
		for _, w := range wraps {
			for e := EffectRGBA; e < effectCount; e++ {
				if !e.UsesPaint() || e == EffectUpsample {
					continue
				}
				out = append(out, Selector{Paint: p, Wrap: w, Effect: e})
			}
		}
	}
	return out
}
