package brush

import "fmt"

// Varyings holds the interpolated inputs of one pixel. A permutation reads
// only the fields named by its Attribs; the others may hold anything.
type Varyings struct {
	// Position is the pixel center in target pixels.
	Position Vec2

	Color    RGBA
	UV0      Vec2
	UV1      Vec2
	UV2      Vec2
	UV3      Vec2
	ST1      Vec4
	Coverage float32
	Rect     Vec4
	Tile     Vec4
}

// Quad is a 2x2 block of pixels in the order top-left, top-right,
// bottom-left, bottom-right. Derivatives are taken across the block.
type Quad [4]Varyings

// derivatives returns the coarse screen-space derivatives of fn over q.
func (q *Quad) derivatives(fn func(*Varyings) Vec2) (ddx, ddy Vec2) {
	v0 := fn(&q[0])
	return fn(&q[1]).Sub(v0), fn(&q[2]).Sub(v0)
}

// Output is the result of one pixel. Alpha is written only by SDF-LCD and
// holds the per-subpixel coverage multiplied by the paint alpha.
type Output struct {
	Color RGBA
	Alpha RGBA
}

// quadState holds the derivatives shared by all pixels of a quad.
type quadState struct {
	ddxUV0 Vec2
	ddyUV0 Vec2
	ddxST1 Vec2
	q      *Quad
}

func (s *quadState) derivatives(fn func(*Varyings) Vec2) (ddx, ddy Vec2) {
	return s.q.derivatives(fn)
}

// pixel is the per-invocation state handed to the paint and effect stages.
type pixel struct {
	v    *Varyings
	res  *Resources
	quad *quadState
}

func uv0(v *Varyings) Vec2 { return v.UV0 }
func st1(v *Varyings) Vec2 { return v.ST1.XY() }

// Shader is one compiled brush permutation. The paint and effect stages are
// chosen once at compile time; evaluating a pixel performs no dispatch on
// the selector.
//
// A Shader is immutable and safe for concurrent use.
type Shader struct {
	layout Layout
	sdf    SDFParams
	paint  paintFunc
	effect effectFunc
}

// Compile builds the permutation described by sel.
//
// It fails with ErrNoEffect, ErrNoPaint or ErrInvalidSelector for selectors
// that cannot be built, with ErrNoCustomPaint when a custom pattern has no
// paint function, and with ErrInvalidSDF for an unusable calibration.
func Compile(sel Selector, opts ...Option) (*Shader, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sel = sel.Normalize()
	if sel.Paint == PaintPattern && sel.Wrap == WrapCustom && o.custom == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCustomPaint, sel.Name())
	}
	if sel.Effect == EffectSDF || sel.Effect == EffectSDFLCD {
		if err := o.sdf.Validate(); err != nil {
			return nil, err
		}
	}

	s := &Shader{
		layout: LayoutFor(sel),
		sdf:    o.sdf,
		paint:  selectPaint(sel, o.custom),
		effect: selectEffect(sel.Effect, o.sdf),
	}
	Logger().Debug("brush: compiled permutation",
		"name", sel.Name(),
		"attribs", s.layout.Attribs.String(),
		"targets", s.layout.Targets)
	return s, nil
}

// MustCompile is like Compile but panics on error. It is intended for
// package-level permutation tables.
func MustCompile(sel Selector, opts ...Option) *Shader {
	s, err := Compile(sel, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Selector returns the normalized selector of the permutation.
func (s *Shader) Selector() Selector { return s.layout.Selector }

// Name returns the permutation name.
func (s *Shader) Name() string { return s.layout.Selector.Name() }

// Attribs returns the interpolated inputs the permutation reads.
func (s *Shader) Attribs() Attribs { return s.layout.Attribs }

// Layout returns the resource layout of the permutation.
func (s *Shader) Layout() Layout { return s.layout }

// Targets returns the number of output targets (2 for SDF-LCD).
func (s *Shader) Targets() int { return s.layout.Targets }

// SDF returns the calibration the permutation was compiled with.
func (s *Shader) SDF() SDFParams { return s.sdf }

// CheckResources reports an error wrapping ErrMissingImage if an image the
// permutation samples is not bound in res.
func (s *Shader) CheckResources(res *Resources) error {
	if res == nil {
		return fmt.Errorf("%w: nil resources", ErrMissingImage)
	}
	return res.check(s.layout.Images)
}

// ShadeQuad evaluates the four pixels of q. Every pixel is evaluated, so
// helper pixels outside a primitive still contribute to the derivatives;
// the caller decides which outputs to keep.
func (s *Shader) ShadeQuad(res *Resources, q *Quad, out *[4]Output) {
	st := quadState{q: q}
	st.ddxUV0, st.ddyUV0 = q.derivatives(uv0)
	st.ddxST1, _ = q.derivatives(st1)

	for i := range q {
		px := pixel{v: &q[i], res: res, quad: &st}
		c, o := s.paint(&px)
		out[i] = s.effect(&px, c, o)
	}
}

// Shade evaluates a single pixel with zero derivatives, as if the whole
// quad carried the same inputs.
func (s *Shader) Shade(res *Resources, v Varyings) Output {
	q := Quad{v, v, v, v}
	st := quadState{q: &q}
	px := pixel{v: &q[0], res: res, quad: &st}
	c, o := s.paint(&px)
	return s.effect(&px, c, o)
}
