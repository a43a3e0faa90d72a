package wgsl

import (
	"fmt"

	"github.com/gogpu/brush"
)

// Permutation is one generated brush module.
type Permutation struct {
	Name     string
	Selector brush.Selector
	Source   string
}

// All generates every permutation of [brush.Selectors]. Custom pattern
// permutations are included only when a custom paint source is set.
func All(opts ...Option) ([]Permutation, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sels := brush.Selectors()
	out := make([]Permutation, 0, len(sels))
	for _, sel := range sels {
		if sel.Wrap == brush.WrapCustom && o.custom == "" {
			continue
		}
		src, err := Brush(sel, opts...)
		if err != nil {
			return nil, fmt.Errorf("wgsl: %s: %w", sel.Name(), err)
		}
		out = append(out, Permutation{Name: sel.Name(), Selector: sel, Source: src})
	}
	return out, nil
}

// CustomBrush generates the permutations a custom pattern brush is built
// into: plain fill, antialiased fill, distance-field text and opacity
// group.
func CustomBrush(src string, opts ...Option) ([]Permutation, error) {
	opts = append(opts[:len(opts):len(opts)], WithCustomPaint(src))
	out := make([]Permutation, 0, len(CustomEffects))
	for _, e := range CustomEffects {
		sel := brush.Selector{Paint: brush.PaintPattern, Wrap: brush.WrapCustom, Effect: e}
		code, err := Brush(sel, opts...)
		if err != nil {
			return nil, fmt.Errorf("wgsl: %s: %w", sel.Name(), err)
		}
		out = append(out, Permutation{Name: sel.Name(), Selector: sel, Source: code})
	}
	return out, nil
}

// CustomEffects lists the effects a custom pattern brush is built with.
var CustomEffects = []brush.Effect{
	brush.EffectPath,
	brush.EffectPathAA,
	brush.EffectSDF,
	brush.EffectOpacity,
}
